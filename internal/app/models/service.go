package models

import (
	"time"
)

type Service struct {
	ID                  string    `json:"id"`
	TenantID            string    `json:"tenant_id"`
	Name                string    `json:"name"`
	DurationMinutes     int       `json:"duration_minutes"`
	BufferBeforeMinutes int       `json:"buffer_before_minutes"`
	BufferAfterMinutes  int       `json:"buffer_after_minutes"`
	Price               int64     `json:"price"`
	DepositRequired     bool      `json:"deposit_required"`
	DepositAmount       int64     `json:"deposit_amount"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Duration returns the bookable length of the service, buffers excluded.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

func (s *Service) BufferBefore() time.Duration {
	return time.Duration(s.BufferBeforeMinutes) * time.Minute
}

func (s *Service) BufferAfter() time.Duration {
	return time.Duration(s.BufferAfterMinutes) * time.Minute
}
