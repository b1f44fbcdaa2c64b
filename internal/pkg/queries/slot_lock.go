package queries

const (
	// Unexpired locks only: expiry is evaluated against NOW() at query time,
	// so rows never need to be deleted for correctness.
	CountSlotLocksOverlapping = `
		SELECT COUNT(1)
		FROM slot_locks
		WHERE staff_id = $1
			AND expires_at > NOW()
			AND start_time < $3
			AND end_time > $2
	`

	GetSlotLocksOverlapping = `
		SELECT
			id,
			tenant_id,
			staff_id,
			start_time,
			end_time,
			expires_at,
			created_at
		FROM slot_locks
		WHERE staff_id = $1
			AND expires_at > NOW()
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`

	InsertSlotLock = `
		INSERT INTO slot_locks (
			id,
			tenant_id,
			staff_id,
			start_time,
			end_time,
			expires_at,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING
			id,
			tenant_id,
			staff_id,
			start_time,
			end_time,
			expires_at,
			created_at
	`

	DeleteExpiredSlotLocks = `
		DELETE FROM slot_locks
		WHERE expires_at <= NOW()
	`
)
