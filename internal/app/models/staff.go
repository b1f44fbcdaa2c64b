package models

import (
	"time"
)

type Staff struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkingHours is one row per (staff, weekday). Absence of a row means the
// staff member does not work that weekday. StartTime and EndTime are naked
// time-of-day values ("15:04"); they only become instants once anchored onto
// a calendar date in the tenant's timezone.
type WorkingHours struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id"`
	Weekday   int    `json:"weekday"` // Sunday=0
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimeOff is an absolute UTC [Start, End) block that overrides working hours.
type TimeOff struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
}
