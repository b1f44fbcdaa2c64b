package models

import (
	"time"
)

// SlotLock is a temporary hold on a staff/time window, placed while a
// customer fills in the booking form. Only rows whose ExpiresAt is in the
// future count as blocking; expired rows are ignored at read time and swept
// by the reaper.
type SlotLock struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	StaffID   string    `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
