package config

type (
	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		Logger     Logger
	}
	PostgresDB struct {
		Host     string
		Port     string
		Username string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
