package staff

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/queries"
	"context"
	"database/sql"
	"time"
)

type timeOffPostgresRepository struct {
	DB *sql.DB
}

func NewTimeOffPostgresRepository(db *sql.DB) contracts.TimeOffRepository {
	return &timeOffPostgresRepository{
		DB: db,
	}
}

func (repo *timeOffPostgresRepository) FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.TimeOff, error) {
	query := queries.GetTimeOffOverlapping
	rows, err := repo.DB.QueryContext(ctx, query, staffID, start, end)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var blocks []models.TimeOff
	for rows.Next() {
		var block models.TimeOff
		if err := rows.Scan(
			&block.ID,
			&block.StaffID,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
		); err != nil {
			return nil, exceptions.ErrPostgresDBIterateRows(err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateRows(err)
	}

	return blocks, nil
}
