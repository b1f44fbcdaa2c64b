package contracts

import (
	"bookwell-service/internal/app/models"
	"context"
	"time"
)

type SlotLockRepository interface {
	CountActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error)
	FindActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.SlotLock, error)
	Create(ctx context.Context, lock *models.SlotLock) (*models.SlotLock, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
