package exceptions

import (
	"bookwell-service/internal/pkg/constvars"
)

var (
	// Input / parsing
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseDate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseDate)
	}
	ErrCannotParseTime = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseTime)
	}
	ErrInvalidTimezone = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidTimezone, constvars.ErrDevCannotLoadTimezone)
	}
	ErrCustomerInfoRequired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCustomerInfoRequired, constvars.ErrDevValidationFailed)
	}

	// Request context
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingTenantID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevMissingTenantID)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevTokenInvalid)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}

	// Domain
	ErrServiceNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientServiceNotFound, constvars.ErrDevServiceNotFound)
	}
	ErrStaffNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientStaffNotFound, constvars.ErrDevStaffNotFound)
	}
	ErrCustomerNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientCustomerNotFound, constvars.ErrDevCustomerNotFound)
	}
	ErrStaffNotEligible = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientStaffNotEligible, constvars.ErrDevStaffNotEligible)
	}
	ErrSlotTaken = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSlotNoLongerAvailable, constvars.ErrDevSlotConflict)
	}
	ErrWorkingHoursCorrupt = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevWorkingHoursCorrupt)
	}

	// Postgres
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBDeleteData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteData)
	}
	ErrPostgresDBIterateRows = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateRows)
	}
	ErrPostgresDBBeginTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTx)
	}
	ErrPostgresDBCommitTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommitTx)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
)
