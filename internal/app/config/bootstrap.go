package config

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	PostgresDB     *sql.DB
	Redis          *redis.Client
	Logger         *logrus.Logger
	ZapLogger      *zap.Logger
	DriverConfig   *DriverConfig
	InternalConfig *InternalConfig
}
