package models

import (
	"time"
)

type Customer struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
