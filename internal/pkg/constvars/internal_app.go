package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_TENANT_ID_KEY            ContextKey = "tenant_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	// TimeOfDayLayout is the layout for staff_working_hours start/end columns.
	TimeOfDayLayout = "15:04"
	// CalendarDateLayout is the layout for the availability date query parameter.
	CalendarDateLayout = "2006-01-02"
)

const (
	// Sunday=0, matching the weekday column in staff_working_hours.
	WeekdaySunday   = 0
	WeekdaySaturday = 6
)

const (
	AppointmentStatusConfirmed      = "confirmed"
	AppointmentStatusPendingPayment = "pending_payment"
	AppointmentStatusCancelled      = "cancelled"
)

const (
	ResponseUnknown = "UNKNOWN"
)

const (
	BookingLockKeyFormat = "booking-lock:%s:%d"
)
