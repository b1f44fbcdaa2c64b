package responses

import (
	"time"
)

type Appointment struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	ServiceID     string    `json:"service_id"`
	StaffID       string    `json:"staff_id"`
	CustomerID    string    `json:"customer_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SlotHold struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ExpiresAt time.Time `json:"expires_at"`
}
