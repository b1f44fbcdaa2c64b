package queries

const (
	// Half-open [start, end) overlap: rows with a.start < $3 AND a.end > $2.
	// Touching boundaries do not match, so back-to-back bookings are allowed.
	CountAppointmentsOverlapping = `
		SELECT COUNT(1)
		FROM appointments
		WHERE staff_id = $1
			AND status <> 'cancelled'
			AND start_time < $3
			AND end_time > $2
	`

	GetAppointmentsOverlapping = `
		SELECT
			id,
			tenant_id,
			service_id,
			staff_id,
			customer_id,
			start_time,
			end_time,
			status,
			payment_method,
			notes,
			created_at,
			updated_at
		FROM appointments
		WHERE staff_id = $1
			AND status <> 'cancelled'
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`

	InsertAppointment = `
		INSERT INTO appointments (
			id,
			tenant_id,
			service_id,
			staff_id,
			customer_id,
			start_time,
			end_time,
			status,
			payment_method,
			notes,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING
			id,
			tenant_id,
			service_id,
			staff_id,
			customer_id,
			start_time,
			end_time,
			status,
			payment_method,
			notes,
			created_at,
			updated_at
	`

	// Most recent non-cancelled appointment creation per staff, used to pick
	// the least-recently-booked staff member when the client did not choose one.
	GetLastBookingTimesByStaffIDs = `
		SELECT staff_id, MAX(created_at)
		FROM appointments
		WHERE staff_id = ANY($1)
			AND status <> 'cancelled'
		GROUP BY staff_id
	`
)
