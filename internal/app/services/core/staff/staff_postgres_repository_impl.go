package staff

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/queries"
	"context"
	"database/sql"
)

type staffPostgresRepository struct {
	DB *sql.DB
}

func NewStaffPostgresRepository(db *sql.DB) contracts.StaffRepository {
	return &staffPostgresRepository{
		DB: db,
	}
}

func (repo *staffPostgresRepository) FindByID(ctx context.Context, staffID string) (*models.Staff, error) {
	query := queries.GetStaffByID
	var staff models.Staff
	err := repo.DB.QueryRowContext(ctx, query, staffID).Scan(
		&staff.ID,
		&staff.TenantID,
		&staff.FullName,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &staff, nil
}

func (repo *staffPostgresRepository) FindWorkingHours(ctx context.Context, staffID string, weekday int) (*models.WorkingHours, error) {
	query := queries.GetWorkingHoursByStaffAndWeekday
	var workingHours models.WorkingHours
	err := repo.DB.QueryRowContext(ctx, query, staffID, weekday).Scan(
		&workingHours.ID,
		&workingHours.StaffID,
		&workingHours.Weekday,
		&workingHours.StartTime,
		&workingHours.EndTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &workingHours, nil
}
