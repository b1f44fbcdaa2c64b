package queries

const (
	GetServiceByID = `
		SELECT
			id,
			tenant_id,
			name,
			duration_minutes,
			buffer_before_minutes,
			buffer_after_minutes,
			price,
			deposit_required,
			deposit_amount,
			is_active,
			created_at,
			updated_at
		FROM services
		WHERE id = $1
	`

	GetStaffIDsByServiceID = `
		SELECT staff_id
		FROM service_staff
		WHERE service_id = $1
		ORDER BY staff_id
	`

	CountServiceStaffAssignment = `
		SELECT COUNT(1)
		FROM service_staff
		WHERE service_id = $1 AND staff_id = $2
	`
)
