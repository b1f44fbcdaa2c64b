package contracts

import (
	"bookwell-service/internal/app/models"
	"context"
)

type CustomerRepository interface {
	// FindByID returns nil, nil when no customer row exists.
	FindByID(ctx context.Context, customerID string) (*models.Customer, error)
	// Upsert inserts the customer or, when a row with the same (tenant, phone)
	// already exists, returns that row untouched. Idempotent under races.
	Upsert(ctx context.Context, customer *models.Customer) (*models.Customer, error)
}
