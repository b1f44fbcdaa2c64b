package contracts

import (
	"bookwell-service/internal/app/models"
	"context"
)

type ServiceRepository interface {
	// FindByID returns nil, nil when no service row exists.
	FindByID(ctx context.Context, serviceID string) (*models.Service, error)
	FindStaffIDsByServiceID(ctx context.Context, serviceID string) ([]string, error)
	IsStaffAssigned(ctx context.Context, serviceID, staffID string) (bool, error)
}
