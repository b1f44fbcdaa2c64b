package config

type InternalConfig struct {
	App App
	JWT JWT
}

type App struct {
	Env             string
	Port            string
	Version         string
	EndpointPrefix  string
	DefaultTimezone string

	MaxRequests               int
	MaxTimeRequestsPerSeconds int
	ShutdownTimeoutInSeconds  int
	RequestTimeoutInSeconds   int

	// SlotGranularityMinutes is the spacing between candidate appointment
	// start times during slot generation.
	SlotGranularityMinutes int
	// HoldTTLInMinutes bounds how long a slot hold blocks other callers.
	HoldTTLInMinutes int
	// LockReaperIntervalInMinutes is how often expired slot_locks rows are
	// swept. Sweeping is storage hygiene; read-time expiry filtering is what
	// keeps expired holds from blocking.
	LockReaperIntervalInMinutes int
	// BookingLockTTLInSeconds bounds the redis advisory lock held around the
	// booking check-then-insert.
	BookingLockTTLInSeconds int
}

type JWT struct {
	Secret string
}
