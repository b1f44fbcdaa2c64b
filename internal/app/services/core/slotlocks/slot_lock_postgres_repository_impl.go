package slotlocks

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/queries"
	"context"
	"database/sql"
	"time"
)

type slotLockPostgresRepository struct {
	DB *sql.DB
}

func NewSlotLockPostgresRepository(db *sql.DB) contracts.SlotLockRepository {
	return &slotLockPostgresRepository{
		DB: db,
	}
}

func (repo *slotLockPostgresRepository) CountActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error) {
	query := queries.CountSlotLocksOverlapping
	var count int
	err := repo.DB.QueryRowContext(ctx, query, staffID, start, end).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *slotLockPostgresRepository) FindActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.SlotLock, error) {
	query := queries.GetSlotLocksOverlapping
	rows, err := repo.DB.QueryContext(ctx, query, staffID, start, end)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var locks []models.SlotLock
	for rows.Next() {
		var lock models.SlotLock
		if err := rows.Scan(
			&lock.ID,
			&lock.TenantID,
			&lock.StaffID,
			&lock.StartTime,
			&lock.EndTime,
			&lock.ExpiresAt,
			&lock.CreatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBIterateRows(err)
		}
		locks = append(locks, lock)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateRows(err)
	}

	return locks, nil
}

func (repo *slotLockPostgresRepository) Create(ctx context.Context, lock *models.SlotLock) (*models.SlotLock, error) {
	query := queries.InsertSlotLock
	var inserted models.SlotLock
	err := repo.DB.QueryRowContext(ctx, query,
		lock.ID,
		lock.TenantID,
		lock.StaffID,
		lock.StartTime,
		lock.EndTime,
		lock.ExpiresAt,
	).Scan(
		&inserted.ID,
		&inserted.TenantID,
		&inserted.StaffID,
		&inserted.StartTime,
		&inserted.EndTime,
		&inserted.ExpiresAt,
		&inserted.CreatedAt,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &inserted, nil
}

func (repo *slotLockPostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := queries.DeleteExpiredSlotLocks
	result, err := repo.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, exceptions.ErrPostgresDBDeleteData(err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, exceptions.ErrPostgresDBDeleteData(err)
	}
	return deleted, nil
}
