package constvars

const (
	GetAvailabilitySuccessMessage = "Successfully retrieved availability"
	CreateBookingSuccessMessage   = "Successfully created booking"
	CreateHoldSuccessMessage      = "Successfully placed hold on time slot"
	HealthCheckSuccessMessage     = "Service is healthy"
	HealthCheckDegradedMessage    = "Service is degraded"
)
