package requests

// AvailabilityQuery is built from the availability endpoint query string.
type AvailabilityQuery struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
	Timezone  string `json:"timezone" validate:"required,timezone_name"`
	StaffID   string `json:"staff_id" validate:"omitempty,uuid"`
}
