package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingTenantIDKey      = "tenant_id"
	LoggingServiceIDKey     = "service_id"
	LoggingStaffIDKey       = "staff_id"
	LoggingCustomerIDKey    = "customer_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingSlotLockIDKey    = "slot_lock_id"
	LoggingDateKey          = "date"
	LoggingTimezoneKey      = "timezone"
	LoggingStartTimeKey     = "start_time"
	LoggingEndTimeKey       = "end_time"
	LoggingRequestKey       = "request"
	LoggingResponseKey      = "response"
	LoggingResponseCountKey = "response_count"
	LoggingQueryParamsKey   = "query_params"
	LoggingRedisKey         = "redis_key"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
)
