package services

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/queries"
	"context"
	"database/sql"
)

type servicePostgresRepository struct {
	DB *sql.DB
}

func NewServicePostgresRepository(db *sql.DB) contracts.ServiceRepository {
	return &servicePostgresRepository{
		DB: db,
	}
}

func (repo *servicePostgresRepository) FindByID(ctx context.Context, serviceID string) (*models.Service, error) {
	query := queries.GetServiceByID
	var service models.Service
	err := repo.DB.QueryRowContext(ctx, query, serviceID).Scan(
		&service.ID,
		&service.TenantID,
		&service.Name,
		&service.DurationMinutes,
		&service.BufferBeforeMinutes,
		&service.BufferAfterMinutes,
		&service.Price,
		&service.DepositRequired,
		&service.DepositAmount,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &service, nil
}

func (repo *servicePostgresRepository) FindStaffIDsByServiceID(ctx context.Context, serviceID string) ([]string, error) {
	query := queries.GetStaffIDsByServiceID
	rows, err := repo.DB.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var staffIDs []string
	for rows.Next() {
		var staffID string
		if err := rows.Scan(&staffID); err != nil {
			return nil, exceptions.ErrPostgresDBIterateRows(err)
		}
		staffIDs = append(staffIDs, staffID)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateRows(err)
	}

	return staffIDs, nil
}

func (repo *servicePostgresRepository) IsStaffAssigned(ctx context.Context, serviceID, staffID string) (bool, error) {
	query := queries.CountServiceStaffAssignment
	var count int
	err := repo.DB.QueryRowContext(ctx, query, serviceID, staffID).Scan(&count)
	if err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return count > 0, nil
}
