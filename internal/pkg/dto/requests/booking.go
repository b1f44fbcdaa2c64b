package requests

// CreateBookingRequest carries a chosen slot plus customer identification.
// StaffID may be empty; the commit step then assigns the least-recently-booked
// staff member that is free for the window. Either CustomerID or
// CustomerName+CustomerPhone must be supplied.
type CreateBookingRequest struct {
	ServiceID     string `json:"service_id" validate:"required,uuid"`
	StaffID       string `json:"staff_id" validate:"omitempty,uuid"`
	StartTime     string `json:"start_time" validate:"required"`
	CustomerID    string `json:"customer_id" validate:"omitempty,uuid"`
	CustomerName  string `json:"customer_name" validate:"omitempty,min=1,max=255"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,phone_number"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=64"`
	Notes         string `json:"notes" validate:"omitempty,max=2000"`
}

// CreateHoldRequest places a short-lived hold on a staff/time window while
// the caller finishes the booking form.
type CreateHoldRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	StaffID   string `json:"staff_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required"`
}
