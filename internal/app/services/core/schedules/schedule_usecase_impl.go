package schedules

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type scheduleUsecase struct {
	StaffRepository contracts.StaffRepository
	Log             *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	staffPostgresRepository contracts.StaffRepository,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = &scheduleUsecase{
			StaffRepository: staffPostgresRepository,
			Log:             logger,
		}
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) ResolveWorkingHours(ctx context.Context, staffID string, date time.Time, loc *time.Location) (*models.Interval, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.ResolveWorkingHours called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStaffIDKey, staffID),
		zap.String(constvars.LoggingDateKey, date.Format(constvars.CalendarDateLayout)),
		zap.String(constvars.LoggingTimezoneKey, loc.String()),
	)

	staff, err := uc.StaffRepository.FindByID(ctx, staffID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ResolveWorkingHours error fetching staff",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return nil, err
	}
	if staff == nil {
		uc.Log.Warn("scheduleUsecase.ResolveWorkingHours staff not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
		)
		return nil, exceptions.ErrStaffNotFound(nil)
	}

	// The weekday is taken from the date as seen in the tenant's timezone, not
	// in UTC, so schedules near midnight land on the day the tenant expects.
	localDate := date.In(loc)
	weekday := int(localDate.Weekday())

	workingHours, err := uc.StaffRepository.FindWorkingHours(ctx, staffID, weekday)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ResolveWorkingHours error fetching working hours",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Int("weekday", weekday),
			zap.Error(err),
		)
		return nil, err
	}
	if workingHours == nil {
		uc.Log.Info("scheduleUsecase.ResolveWorkingHours staff does not work this weekday",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Int("weekday", weekday),
		)
		return nil, nil
	}

	startClock, err := time.Parse(constvars.TimeOfDayLayout, workingHours.StartTime)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ResolveWorkingHours malformed start_time",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.String(constvars.LoggingStartTimeKey, workingHours.StartTime),
			zap.Error(err),
		)
		return nil, exceptions.ErrWorkingHoursCorrupt(err)
	}
	endClock, err := time.Parse(constvars.TimeOfDayLayout, workingHours.EndTime)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ResolveWorkingHours malformed end_time",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.String(constvars.LoggingEndTimeKey, workingHours.EndTime),
			zap.Error(err),
		)
		return nil, exceptions.ErrWorkingHoursCorrupt(err)
	}

	start := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), startClock.Hour(), startClock.Minute(), 0, 0, loc)
	end := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), endClock.Hour(), endClock.Minute(), 0, 0, loc)
	if !start.Before(end) {
		uc.Log.Error("scheduleUsecase.ResolveWorkingHours shift start is not before shift end",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.String(constvars.LoggingStartTimeKey, workingHours.StartTime),
			zap.String(constvars.LoggingEndTimeKey, workingHours.EndTime),
		)
		return nil, exceptions.ErrWorkingHoursCorrupt(nil)
	}

	interval := &models.Interval{Start: start.UTC(), End: end.UTC()}
	uc.Log.Info("scheduleUsecase.ResolveWorkingHours succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStaffIDKey, staffID),
		zap.Time(constvars.LoggingStartTimeKey, interval.Start),
		zap.Time(constvars.LoggingEndTimeKey, interval.End),
	)
	return interval, nil
}
