package customers

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/queries"
	"context"
	"database/sql"
)

type customerPostgresRepository struct {
	DB *sql.DB
}

func NewCustomerPostgresRepository(db *sql.DB) contracts.CustomerRepository {
	return &customerPostgresRepository{
		DB: db,
	}
}

func (repo *customerPostgresRepository) FindByID(ctx context.Context, customerID string) (*models.Customer, error) {
	query := queries.GetCustomerByID
	var customer models.Customer
	err := repo.DB.QueryRowContext(ctx, query, customerID).Scan(
		&customer.ID,
		&customer.TenantID,
		&customer.FullName,
		&customer.Phone,
		&customer.Email,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &customer, nil
}

// Upsert relies on the unique (tenant_id, phone) index: a second booking from
// the same phone returns the original row, whatever name the caller supplied.
func (repo *customerPostgresRepository) Upsert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := queries.InsertCustomer
	var upserted models.Customer
	err := repo.DB.QueryRowContext(ctx, query,
		customer.ID,
		customer.TenantID,
		customer.FullName,
		customer.Phone,
		customer.Email,
	).Scan(
		&upserted.ID,
		&upserted.TenantID,
		&upserted.FullName,
		&upserted.Phone,
		&upserted.Email,
		&upserted.CreatedAt,
		&upserted.UpdatedAt,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &upserted, nil
}
