package contracts

import (
	"bookwell-service/internal/app/models"
	"context"
	"time"
)

type ScheduleUsecase interface {
	// ResolveWorkingHours anchors the staff member's weekly schedule row onto
	// date in the tenant's timezone and returns the working interval in UTC.
	// Returns nil, nil when the staff member does not work that weekday.
	ResolveWorkingHours(ctx context.Context, staffID string, date time.Time, loc *time.Location) (*models.Interval, error)
}
