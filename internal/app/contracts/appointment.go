package contracts

import (
	"bookwell-service/internal/app/models"
	"context"
	"time"
)

type AppointmentRepository interface {
	CountOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error)
	FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.Appointment, error)
	// CreateIfNoConflict re-checks the buffer-expanded effective window and
	// inserts in a single transaction; the store-level exclusion constraint
	// is the final arbiter. Returns exceptions.ErrSlotTaken on any overlap.
	CreateIfNoConflict(ctx context.Context, appointment *models.Appointment, effective models.Interval) (*models.Appointment, error)
	// FindLastBookingTimes returns, per staff id, the creation time of its
	// most recent non-cancelled appointment. Staff with no appointments are
	// absent from the map.
	FindLastBookingTimes(ctx context.Context, staffIDs []string) (map[string]time.Time, error)
}
