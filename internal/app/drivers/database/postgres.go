package database

import (
	"bookwell-service/internal/app/config"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func NewPostgresDB(driverConfig *config.DriverConfig, log *logrus.Logger) *sql.DB {
	connectionString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		driverConfig.PostgresDB.Host,
		driverConfig.PostgresDB.Port,
		driverConfig.PostgresDB.Username,
		driverConfig.PostgresDB.Password,
		driverConfig.PostgresDB.DBName,
		driverConfig.PostgresDB.SSLMode)

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		log.Fatalf("Failed to open postgres database connection: %s", err.Error())
	}

	err = db.Ping()
	if err != nil {
		log.Fatalf("Failed to connect to postgres database: %s", err.Error())
	}

	log.Println("Successfully connected to postgres database")

	return db
}
