package config

import (
	"bookwell-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "bookwell"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "bookwell"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "bookwell"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			DefaultTimezone: utils.GetEnvString("APP_DEFAULT_TIMEZONE", "UTC"),

			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
			ShutdownTimeoutInSeconds:  utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:   utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),

			SlotGranularityMinutes:      utils.GetEnvInt("APP_SLOT_GRANULARITY_MINUTES", 30),
			HoldTTLInMinutes:            utils.GetEnvInt("APP_HOLD_TTL_IN_MINUTES", 5),
			LockReaperIntervalInMinutes: utils.GetEnvInt("APP_LOCK_REAPER_INTERVAL_IN_MINUTES", 10),
			BookingLockTTLInSeconds:     utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECONDS", 10),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
	}
}
