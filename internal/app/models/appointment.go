package models

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentConfirmed      AppointmentStatus = "confirmed"
	AppointmentPendingPayment AppointmentStatus = "pending_payment"
	AppointmentCancelled      AppointmentStatus = "cancelled"
	AppointmentCompleted      AppointmentStatus = "completed"
	AppointmentNoShow         AppointmentStatus = "no_show"
)

// Appointment stores the unexpanded [StartTime, EndTime) service interval in
// UTC. Buffers are never persisted; they are applied on the fly during
// conflict checks and slot generation.
type Appointment struct {
	ID            string            `json:"id"`
	TenantID      string            `json:"tenant_id"`
	ServiceID     string            `json:"service_id"`
	StaffID       string            `json:"staff_id"`
	CustomerID    string            `json:"customer_id"`
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	Status        AppointmentStatus `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
