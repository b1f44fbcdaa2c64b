package constvars

// Client-facing messages. Kept deliberately vague for anything internal.
const (
	ErrClientCannotProcessRequest          = "We cannot process your request, please check your input"
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"

	ErrClientServiceNotFound      = "The requested service could not be found"
	ErrClientStaffNotFound        = "The requested staff member could not be found"
	ErrClientStaffNotEligible     = "The selected staff member does not provide this service"
	ErrClientSlotNoLongerAvailable = "The selected time slot is no longer available, please pick another one"
	ErrClientInvalidTimezone      = "The supplied timezone is not a valid IANA timezone name"
	ErrClientCustomerInfoRequired = "Customer name and phone number are required when no customer id is supplied"
	ErrClientCustomerNotFound     = "The requested customer could not be found"
)

// Developer-facing messages, surfaced in logs and non-production responses.
const (
	ErrDevValidationFailed      = "Request validation failed"
	ErrDevCannotParseJSON       = "Failed to parse JSON request body"
	ErrDevCannotParseDate       = "Failed to parse calendar date, expected YYYY-MM-DD"
	ErrDevCannotParseTime       = "Failed to parse time value, expected RFC3339"
	ErrDevCannotLoadTimezone    = "Failed to load IANA location"
	ErrDevMissingRequestID      = "Request ID not found in request context"
	ErrDevMissingTenantID       = "Tenant ID not found in request context"
	ErrDevTokenMissing          = "Authorization bearer token is missing"
	ErrDevTokenInvalid          = "Authorization bearer token is invalid or expired"
	ErrDevServerDeadlineExceeded = "Request deadline exceeded"

	ErrDevServiceNotFound       = "Service row does not exist for the given id"
	ErrDevStaffNotFound         = "Staff row does not exist for the given id"
	ErrDevCustomerNotFound      = "Customer row does not exist for the given id"
	ErrDevStaffNotEligible      = "No service_staff assignment links the staff to the service"
	ErrDevSlotConflict          = "Candidate window overlaps an appointment, time-off block or unexpired slot lock"
	ErrDevWorkingHoursCorrupt   = "staff_working_hours row holds a malformed time-of-day value"

	ErrDevDBFailedToFindData     = "Failed to find data on postgres"
	ErrDevDBFailedToInsertData   = "Failed to insert data on postgres"
	ErrDevDBFailedToDeleteData   = "Failed to delete data on postgres"
	ErrDevDBFailedToIterateRows  = "Failed to iterate postgres result set"
	ErrDevDBFailedToBeginTx      = "Failed to begin postgres transaction"
	ErrDevDBFailedToCommitTx     = "Failed to commit postgres transaction"

	ErrDevRedisSetData    = "Failed to set data on redis"
	ErrDevRedisGetData    = "Failed to get data from redis"
	ErrDevRedisDeleteData = "Failed to delete data from redis"
	ErrDevRedisUnlock     = "Failed to release redis lock"
)
