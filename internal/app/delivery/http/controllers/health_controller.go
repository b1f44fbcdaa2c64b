package controllers

import (
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/utils"
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type HealthController struct {
	Log        *zap.Logger
	PostgresDB *sql.DB
	Redis      *redis.Client
}

func NewHealthController(logger *zap.Logger, postgresDB *sql.DB, redisClient *redis.Client) *HealthController {
	return &HealthController{
		Log:        logger,
		PostgresDB: postgresDB,
		Redis:      redisClient,
	}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := ctrl.PostgresDB.PingContext(r.Context()); err != nil {
		ctrl.Log.Error("HealthController.Check postgres ping failed", zap.Error(err))
		status["postgres"] = "unreachable"
		healthy = false
	}
	if err := ctrl.Redis.Ping(r.Context()).Err(); err != nil {
		ctrl.Log.Error("HealthController.Check redis ping failed", zap.Error(err))
		status["redis"] = "unreachable"
		healthy = false
	}

	if !healthy {
		utils.BuildSuccessResponse(w, constvars.StatusServiceUnavailable, constvars.HealthCheckDegradedMessage, status)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, status)
}
