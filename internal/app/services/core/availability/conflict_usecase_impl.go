package availability

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/constvars"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type conflictUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	TimeOffRepository     contracts.TimeOffRepository
	SlotLockRepository    contracts.SlotLockRepository
	Log                   *zap.Logger
}

var (
	conflictUsecaseInstance contracts.ConflictUsecase
	onceConflictUsecase     sync.Once
)

func NewConflictUsecase(
	appointmentPostgresRepository contracts.AppointmentRepository,
	timeOffPostgresRepository contracts.TimeOffRepository,
	slotLockPostgresRepository contracts.SlotLockRepository,
	logger *zap.Logger,
) contracts.ConflictUsecase {
	onceConflictUsecase.Do(func() {
		conflictUsecaseInstance = &conflictUsecase{
			AppointmentRepository: appointmentPostgresRepository,
			TimeOffRepository:     timeOffPostgresRepository,
			SlotLockRepository:    slotLockPostgresRepository,
			Log:                   logger,
		}
	})
	return conflictUsecaseInstance
}

// HasConflict checks appointments, then time-off, then slot locks, stopping at
// the first hit. A query error on any source aborts the whole call; a source
// that could not be checked is never assumed clear.
func (uc *conflictUsecase) HasConflict(ctx context.Context, staffID string, start, end time.Time) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("conflictUsecase.HasConflict called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStaffIDKey, staffID),
		zap.Time(constvars.LoggingStartTimeKey, start),
		zap.Time(constvars.LoggingEndTimeKey, end),
	)

	appointmentCount, err := uc.AppointmentRepository.CountOverlapping(ctx, staffID, start, end)
	if err != nil {
		uc.Log.Error("conflictUsecase.HasConflict error counting overlapping appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return false, err
	}
	if appointmentCount > 0 {
		uc.Log.Info("conflictUsecase.HasConflict found overlapping appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Int("appointment_count", appointmentCount),
		)
		return true, nil
	}

	timeOff, err := uc.TimeOffRepository.FindOverlapping(ctx, staffID, start, end)
	if err != nil {
		uc.Log.Error("conflictUsecase.HasConflict error fetching overlapping time-off",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return false, err
	}
	if len(timeOff) > 0 {
		uc.Log.Info("conflictUsecase.HasConflict found overlapping time-off",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Int("time_off_count", len(timeOff)),
		)
		return true, nil
	}

	lockCount, err := uc.SlotLockRepository.CountActiveOverlapping(ctx, staffID, start, end)
	if err != nil {
		uc.Log.Error("conflictUsecase.HasConflict error counting overlapping slot locks",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return false, err
	}
	if lockCount > 0 {
		uc.Log.Info("conflictUsecase.HasConflict found active slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Int("lock_count", lockCount),
		)
		return true, nil
	}

	uc.Log.Info("conflictUsecase.HasConflict no conflict",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStaffIDKey, staffID),
	)
	return false, nil
}

// GetDayBlocks uses the same overlap boundary semantics as HasConflict, so a
// slot accepted during generation is accepted at commit absent races.
func (uc *conflictUsecase) GetDayBlocks(ctx context.Context, staffID string, dayStart, dayEnd time.Time) (*models.DayBlocks, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("conflictUsecase.GetDayBlocks called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStaffIDKey, staffID),
		zap.Time(constvars.LoggingStartTimeKey, dayStart),
		zap.Time(constvars.LoggingEndTimeKey, dayEnd),
	)

	appointments, err := uc.AppointmentRepository.FindOverlapping(ctx, staffID, dayStart, dayEnd)
	if err != nil {
		uc.Log.Error("conflictUsecase.GetDayBlocks error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return nil, err
	}

	timeOff, err := uc.TimeOffRepository.FindOverlapping(ctx, staffID, dayStart, dayEnd)
	if err != nil {
		uc.Log.Error("conflictUsecase.GetDayBlocks error fetching time-off",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return nil, err
	}

	locks, err := uc.SlotLockRepository.FindActiveOverlapping(ctx, staffID, dayStart, dayEnd)
	if err != nil {
		uc.Log.Error("conflictUsecase.GetDayBlocks error fetching slot locks",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return nil, err
	}

	blocks := &models.DayBlocks{
		Appointments: appointments,
		TimeOff:      timeOff,
		Locks:        locks,
	}
	uc.Log.Info("conflictUsecase.GetDayBlocks succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStaffIDKey, staffID),
		zap.Int("appointment_count", len(appointments)),
		zap.Int("time_off_count", len(timeOff)),
		zap.Int("lock_count", len(locks)),
	)
	return blocks, nil
}
