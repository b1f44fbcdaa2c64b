package queries

const (
	GetStaffByID = `
		SELECT
			id,
			tenant_id,
			full_name,
			is_active,
			created_at,
			updated_at
		FROM staff
		WHERE id = $1
	`

	GetWorkingHoursByStaffAndWeekday = `
		SELECT
			id,
			staff_id,
			weekday,
			start_time,
			end_time
		FROM staff_working_hours
		WHERE staff_id = $1 AND weekday = $2
	`

	GetTimeOffOverlapping = `
		SELECT
			id,
			staff_id,
			start_time,
			end_time,
			reason
		FROM staff_time_off
		WHERE staff_id = $1
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`
)
