package queries

const (
	GetCustomerByID = `
		SELECT
			id,
			tenant_id,
			full_name,
			phone,
			email,
			created_at,
			updated_at
		FROM customers
		WHERE id = $1
	`

	GetCustomerByTenantAndPhone = `
		SELECT
			id,
			tenant_id,
			full_name,
			phone,
			email,
			created_at,
			updated_at
		FROM customers
		WHERE tenant_id = $1 AND phone = $2
	`

	InsertCustomer = `
		INSERT INTO customers (
			id,
			tenant_id,
			full_name,
			phone,
			email,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (tenant_id, phone) DO UPDATE SET updated_at = NOW()
		RETURNING
			id,
			tenant_id,
			full_name,
			phone,
			email,
			created_at,
			updated_at
	`
)
