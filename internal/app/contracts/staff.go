package contracts

import (
	"bookwell-service/internal/app/models"
	"context"
	"time"
)

type StaffRepository interface {
	// FindByID returns nil, nil when no staff row exists.
	FindByID(ctx context.Context, staffID string) (*models.Staff, error)
	// FindWorkingHours returns nil, nil when the staff member has no row for
	// the weekday, meaning they do not work that day.
	FindWorkingHours(ctx context.Context, staffID string, weekday int) (*models.WorkingHours, error)
}

type TimeOffRepository interface {
	FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.TimeOff, error)
}
