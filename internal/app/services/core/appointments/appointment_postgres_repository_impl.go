package appointments

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

type appointmentPostgresRepository struct {
	DB *sql.DB
}

func NewAppointmentPostgresRepository(db *sql.DB) contracts.AppointmentRepository {
	return &appointmentPostgresRepository{
		DB: db,
	}
}

func (repo *appointmentPostgresRepository) CountOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error) {
	query := queries.CountAppointmentsOverlapping
	var count int
	err := repo.DB.QueryRowContext(ctx, query, staffID, start, end).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *appointmentPostgresRepository) FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.Appointment, error) {
	query := queries.GetAppointmentsOverlapping
	rows, err := repo.DB.QueryContext(ctx, query, staffID, start, end)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var appointments []models.Appointment
	for rows.Next() {
		var appointment models.Appointment
		if err := scanAppointment(rows.Scan, &appointment); err != nil {
			return nil, exceptions.ErrPostgresDBIterateRows(err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateRows(err)
	}

	return appointments, nil
}

// CreateIfNoConflict runs the overlap re-check and the insert in one
// serializable transaction. The re-check uses the buffer-expanded effective
// window; the exclusion constraint on the stored interval backstops
// concurrent writers that both pass the check.
func (repo *appointmentPostgresRepository) CreateIfNoConflict(ctx context.Context, appointment *models.Appointment, effective models.Interval) (*models.Appointment, error) {
	tx, err := repo.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, exceptions.ErrPostgresDBBeginTx(err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx, queries.CountAppointmentsOverlapping,
		appointment.StaffID, effective.Start, effective.End).Scan(&count)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	if count > 0 {
		return nil, exceptions.ErrSlotTaken(nil)
	}

	var inserted models.Appointment
	err = tx.QueryRowContext(ctx, queries.InsertAppointment,
		appointment.ID,
		appointment.TenantID,
		appointment.ServiceID,
		appointment.StaffID,
		appointment.CustomerID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.PaymentMethod,
		appointment.Notes,
	).Scan(
		&inserted.ID,
		&inserted.TenantID,
		&inserted.ServiceID,
		&inserted.StaffID,
		&inserted.CustomerID,
		&inserted.StartTime,
		&inserted.EndTime,
		&inserted.Status,
		&inserted.PaymentMethod,
		&inserted.Notes,
		&inserted.CreatedAt,
		&inserted.UpdatedAt,
	)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, exceptions.ErrSlotTaken(err)
		}
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	if err := tx.Commit(); err != nil {
		if isOverlapViolation(err) {
			return nil, exceptions.ErrSlotTaken(err)
		}
		return nil, exceptions.ErrPostgresDBCommitTx(err)
	}

	return &inserted, nil
}

func (repo *appointmentPostgresRepository) FindLastBookingTimes(ctx context.Context, staffIDs []string) (map[string]time.Time, error) {
	query := queries.GetLastBookingTimesByStaffIDs
	rows, err := repo.DB.QueryContext(ctx, query, pq.Array(staffIDs))
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	lastBooked := make(map[string]time.Time, len(staffIDs))
	for rows.Next() {
		var staffID string
		var bookedAt time.Time
		if err := rows.Scan(&staffID, &bookedAt); err != nil {
			return nil, exceptions.ErrPostgresDBIterateRows(err)
		}
		lastBooked[staffID] = bookedAt
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateRows(err)
	}

	return lastBooked, nil
}

// exclusion_violation (23P01) comes from the no-overlap constraint,
// serialization_failure (40001) from two serializable writers racing.
// Both mean somebody else took the slot first.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "40001"
	}
	return false
}

func scanAppointment(scan func(dest ...interface{}) error, appointment *models.Appointment) error {
	return scan(
		&appointment.ID,
		&appointment.TenantID,
		&appointment.ServiceID,
		&appointment.StaffID,
		&appointment.CustomerID,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.PaymentMethod,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
}
