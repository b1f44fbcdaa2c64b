package availability

import (
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/dto/responses"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	ServiceRepository contracts.ServiceRepository
	ScheduleUsecase   contracts.ScheduleUsecase
	ConflictUsecase   contracts.ConflictUsecase
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

func NewAvailabilityUsecase(
	servicePostgresRepository contracts.ServiceRepository,
	scheduleUsecase contracts.ScheduleUsecase,
	conflictUsecase contracts.ConflictUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		availabilityUsecaseInstance = &availabilityUsecase{
			ServiceRepository: servicePostgresRepository,
			ScheduleUsecase:   scheduleUsecase,
			ConflictUsecase:   conflictUsecase,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) GenerateSlots(ctx context.Context, query *requests.AvailabilityQuery) ([]responses.Slot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GenerateSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, query.ServiceID),
		zap.String(constvars.LoggingDateKey, query.Date),
		zap.String(constvars.LoggingTimezoneKey, query.Timezone),
		zap.String(constvars.LoggingStaffIDKey, query.StaffID),
	)

	date, err := time.Parse(constvars.CalendarDateLayout, query.Date)
	if err != nil {
		uc.Log.Warn("availabilityUsecase.GenerateSlots cannot parse date",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDateKey, query.Date),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseDate(err)
	}

	loc, err := time.LoadLocation(query.Timezone)
	if err != nil {
		uc.Log.Warn("availabilityUsecase.GenerateSlots invalid timezone",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTimezoneKey, query.Timezone),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidTimezone(err)
	}

	service, err := uc.ServiceRepository.FindByID(ctx, query.ServiceID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GenerateSlots error fetching service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, query.ServiceID),
			zap.Error(err),
		)
		return nil, err
	}
	if service == nil {
		uc.Log.Warn("availabilityUsecase.GenerateSlots service not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, query.ServiceID),
		)
		return nil, exceptions.ErrServiceNotFound(nil)
	}

	staffIDs, err := uc.resolveEligibleStaff(ctx, service.ID, query.StaffID)
	if err != nil {
		return nil, err
	}
	if len(staffIDs) == 0 {
		uc.Log.Info("availabilityUsecase.GenerateSlots no eligible staff",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, service.ID),
		)
		return []responses.Slot{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	granularity := time.Duration(uc.InternalConfig.App.SlotGranularityMinutes) * time.Minute
	duration := service.Duration()
	bufferBefore := service.BufferBefore()
	bufferAfter := service.BufferAfter()

	// Union across staff keyed by the UTC start instant; the per-slot staff
	// list lets the booking step assign a concrete staff member later.
	slotStaff := make(map[int64][]string)

	for _, staffID := range staffIDs {
		working, err := uc.ScheduleUsecase.ResolveWorkingHours(ctx, staffID, dayStart, loc)
		if err != nil {
			return nil, err
		}
		if working == nil {
			continue
		}

		// One bulk fetch per staff, widened by the buffers so blocks just
		// outside the day still collide with buffer-expanded candidates.
		blocks, err := uc.ConflictUsecase.GetDayBlocks(ctx, staffID, dayStart.UTC().Add(-bufferBefore), dayEnd.UTC().Add(bufferAfter))
		if err != nil {
			return nil, err
		}
		blockIntervals := blocks.Intervals()

		for candidate := dayStart; !candidate.Add(duration).After(working.End); candidate = candidate.Add(granularity) {
			effective := models.Interval{
				Start: candidate.Add(-bufferBefore).UTC(),
				End:   candidate.Add(duration + bufferAfter).UTC(),
			}
			if !working.Contains(effective) {
				continue
			}
			if overlapsAny(effective, blockIntervals) {
				continue
			}
			slotStaff[candidate.UTC().Unix()] = append(slotStaff[candidate.UTC().Unix()], staffID)
		}
	}

	starts := make([]int64, 0, len(slotStaff))
	for start := range slotStaff {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	slots := make([]responses.Slot, 0, len(starts))
	for _, start := range starts {
		startTime := time.Unix(start, 0).UTC()
		staffForSlot := slotStaff[start]
		sort.Strings(staffForSlot)
		slots = append(slots, responses.Slot{
			Start:     startTime,
			End:       startTime.Add(duration),
			Available: true,
			StaffIDs:  staffForSlot,
		})
	}

	uc.Log.Info("availabilityUsecase.GenerateSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, service.ID),
		zap.Int(constvars.LoggingResponseCountKey, len(slots)),
	)
	return slots, nil
}

func (uc *availabilityUsecase) resolveEligibleStaff(ctx context.Context, serviceID, staffID string) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if staffID != "" {
		assigned, err := uc.ServiceRepository.IsStaffAssigned(ctx, serviceID, staffID)
		if err != nil {
			uc.Log.Error("availabilityUsecase.resolveEligibleStaff error checking staff assignment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingServiceIDKey, serviceID),
				zap.String(constvars.LoggingStaffIDKey, staffID),
				zap.Error(err),
			)
			return nil, err
		}
		if !assigned {
			uc.Log.Warn("availabilityUsecase.resolveEligibleStaff staff not assigned to service",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingServiceIDKey, serviceID),
				zap.String(constvars.LoggingStaffIDKey, staffID),
			)
			return nil, exceptions.ErrStaffNotEligible(nil)
		}
		return []string{staffID}, nil
	}

	staffIDs, err := uc.ServiceRepository.FindStaffIDsByServiceID(ctx, serviceID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.resolveEligibleStaff error fetching assigned staff",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
			zap.Error(err),
		)
		return nil, err
	}
	return staffIDs, nil
}

func overlapsAny(candidate models.Interval, blocks []models.Interval) bool {
	for _, block := range blocks {
		if candidate.Overlaps(block) {
			return true
		}
	}
	return false
}
