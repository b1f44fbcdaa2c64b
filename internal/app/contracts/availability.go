package contracts

import (
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type ConflictUsecase interface {
	// HasConflict checks the already buffer-expanded window [start, end)
	// against non-cancelled appointments, time-off blocks and unexpired slot
	// locks, short-circuiting on the first match. A failure to query any
	// source aborts the call; it is never treated as "no conflict".
	HasConflict(ctx context.Context, staffID string, start, end time.Time) (bool, error)
	// GetDayBlocks fetches all blocking intervals intersecting
	// [dayStart, dayEnd) in one pass per source.
	GetDayBlocks(ctx context.Context, staffID string, dayStart, dayEnd time.Time) (*models.DayBlocks, error)
}

type AvailabilityUsecase interface {
	GenerateSlots(ctx context.Context, query *requests.AvailabilityQuery) ([]responses.Slot, error)
}
