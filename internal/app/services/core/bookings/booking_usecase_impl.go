package bookings

import (
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/dto/responses"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingUsecase struct {
	ServiceRepository     contracts.ServiceRepository
	StaffRepository       contracts.StaffRepository
	CustomerRepository    contracts.CustomerRepository
	AppointmentRepository contracts.AppointmentRepository
	SlotLockRepository    contracts.SlotLockRepository
	ConflictUsecase       contracts.ConflictUsecase
	LockerService         contracts.LockerService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	servicePostgresRepository contracts.ServiceRepository,
	staffPostgresRepository contracts.StaffRepository,
	customerPostgresRepository contracts.CustomerRepository,
	appointmentPostgresRepository contracts.AppointmentRepository,
	slotLockPostgresRepository contracts.SlotLockRepository,
	conflictUsecase contracts.ConflictUsecase,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			ServiceRepository:     servicePostgresRepository,
			StaffRepository:       staffPostgresRepository,
			CustomerRepository:    customerPostgresRepository,
			AppointmentRepository: appointmentPostgresRepository,
			SlotLockRepository:    slotLockPostgresRepository,
			ConflictUsecase:       conflictUsecase,
			LockerService:         lockerService,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return bookingUsecaseInstance
}

func (uc *bookingUsecase) CreateBooking(ctx context.Context, request *requests.CreateBookingRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		zap.String(constvars.LoggingStaffIDKey, request.StaffID),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	start, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		uc.Log.Warn("bookingUsecase.CreateBooking cannot parse start_time",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStartTimeKey, request.StartTime),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseTime(err)
	}
	start = start.UTC()

	// The tenant comes from the service row, never from client input.
	service, err := uc.ServiceRepository.FindByID(ctx, request.ServiceID)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateBooking error fetching service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
			zap.Error(err),
		)
		return nil, err
	}
	if service == nil {
		uc.Log.Warn("bookingUsecase.CreateBooking service not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		)
		return nil, exceptions.ErrServiceNotFound(nil)
	}

	end := start.Add(service.Duration())
	effective := models.Interval{
		Start: start.Add(-service.BufferBefore()),
		End:   end.Add(service.BufferAfter()),
	}

	staffID, err := uc.resolveStaff(ctx, service, request.StaffID, effective)
	if err != nil {
		return nil, err
	}

	customer, err := uc.resolveCustomer(ctx, service.TenantID, request)
	if err != nil {
		return nil, err
	}

	// Advisory lock narrows the check-then-insert race window; the store's
	// exclusion constraint inside CreateIfNoConflict is the final arbiter.
	lockKey := fmt.Sprintf(constvars.BookingLockKeyFormat, staffID, start.Unix())
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateBooking error acquiring booking lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		uc.Log.Info("bookingUsecase.CreateBooking slot locked by concurrent booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
		)
		return nil, exceptions.ErrSlotTaken(nil)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("bookingUsecase.CreateBooking error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	conflict, err := uc.ConflictUsecase.HasConflict(ctx, staffID, effective.Start, effective.End)
	if err != nil {
		return nil, err
	}
	if conflict {
		uc.Log.Info("bookingUsecase.CreateBooking slot no longer available",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Time(constvars.LoggingStartTimeKey, effective.Start),
			zap.Time(constvars.LoggingEndTimeKey, effective.End),
		)
		return nil, exceptions.ErrSlotTaken(nil)
	}

	appointment := &models.Appointment{
		ID:            uuid.NewString(),
		TenantID:      service.TenantID,
		ServiceID:     service.ID,
		StaffID:       staffID,
		CustomerID:    customer.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        models.AppointmentConfirmed,
		PaymentMethod: request.PaymentMethod,
		Notes:         request.Notes,
	}
	created, err := uc.AppointmentRepository.CreateIfNoConflict(ctx, appointment, effective)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateBooking error persisting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, staffID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &responses.Appointment{
		ID:            created.ID,
		TenantID:      created.TenantID,
		ServiceID:     created.ServiceID,
		StaffID:       created.StaffID,
		CustomerID:    created.CustomerID,
		StartTime:     created.StartTime,
		EndTime:       created.EndTime,
		Status:        string(created.Status),
		PaymentMethod: created.PaymentMethod,
		CreatedAt:     created.CreatedAt,
	}
	if created.PaymentMethod != "" {
		response.PaymentStatus = "pending"
	}

	uc.Log.Info("bookingUsecase.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, created.ID),
		zap.String(constvars.LoggingStaffIDKey, created.StaffID),
		zap.String(constvars.LoggingCustomerIDKey, created.CustomerID),
	)
	return response, nil
}

func (uc *bookingUsecase) CreateHold(ctx context.Context, request *requests.CreateHoldRequest) (*responses.SlotHold, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateHold called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		zap.String(constvars.LoggingStaffIDKey, request.StaffID),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	start, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		uc.Log.Warn("bookingUsecase.CreateHold cannot parse start_time",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStartTimeKey, request.StartTime),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseTime(err)
	}
	start = start.UTC()

	service, err := uc.ServiceRepository.FindByID(ctx, request.ServiceID)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateHold error fetching service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
			zap.Error(err),
		)
		return nil, err
	}
	if service == nil {
		uc.Log.Warn("bookingUsecase.CreateHold service not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		)
		return nil, exceptions.ErrServiceNotFound(nil)
	}

	assigned, err := uc.ServiceRepository.IsStaffAssigned(ctx, service.ID, request.StaffID)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateHold error checking staff assignment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, request.StaffID),
			zap.Error(err),
		)
		return nil, err
	}
	if !assigned {
		uc.Log.Warn("bookingUsecase.CreateHold staff not assigned to service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, service.ID),
			zap.String(constvars.LoggingStaffIDKey, request.StaffID),
		)
		return nil, exceptions.ErrStaffNotEligible(nil)
	}

	end := start.Add(service.Duration())
	effective := models.Interval{
		Start: start.Add(-service.BufferBefore()),
		End:   end.Add(service.BufferAfter()),
	}

	conflict, err := uc.ConflictUsecase.HasConflict(ctx, request.StaffID, effective.Start, effective.End)
	if err != nil {
		return nil, err
	}
	if conflict {
		uc.Log.Info("bookingUsecase.CreateHold window already blocked",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, request.StaffID),
		)
		return nil, exceptions.ErrSlotTaken(nil)
	}

	lock := &models.SlotLock{
		ID:        uuid.NewString(),
		TenantID:  service.TenantID,
		StaffID:   request.StaffID,
		StartTime: start,
		EndTime:   end,
		ExpiresAt: time.Now().UTC().Add(time.Duration(uc.InternalConfig.App.HoldTTLInMinutes) * time.Minute),
	}
	created, err := uc.SlotLockRepository.Create(ctx, lock)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateHold error persisting slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStaffIDKey, request.StaffID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("bookingUsecase.CreateHold succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotLockIDKey, created.ID),
		zap.String(constvars.LoggingStaffIDKey, created.StaffID),
	)
	return &responses.SlotHold{
		ID:        created.ID,
		StaffID:   created.StaffID,
		StartTime: created.StartTime,
		EndTime:   created.EndTime,
		ExpiresAt: created.ExpiresAt,
	}, nil
}

// resolveStaff validates a client-chosen staff member, or assigns the
// least-recently-booked free one when the client did not choose.
func (uc *bookingUsecase) resolveStaff(ctx context.Context, service *models.Service, staffID string, effective models.Interval) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if staffID != "" {
		staff, err := uc.StaffRepository.FindByID(ctx, staffID)
		if err != nil {
			uc.Log.Error("bookingUsecase.resolveStaff error fetching staff",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingStaffIDKey, staffID),
				zap.Error(err),
			)
			return "", err
		}
		if staff == nil {
			uc.Log.Warn("bookingUsecase.resolveStaff staff not found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingStaffIDKey, staffID),
			)
			return "", exceptions.ErrStaffNotFound(nil)
		}
		assigned, err := uc.ServiceRepository.IsStaffAssigned(ctx, service.ID, staffID)
		if err != nil {
			uc.Log.Error("bookingUsecase.resolveStaff error checking staff assignment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingStaffIDKey, staffID),
				zap.Error(err),
			)
			return "", err
		}
		if !assigned {
			uc.Log.Warn("bookingUsecase.resolveStaff staff not assigned to service",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingServiceIDKey, service.ID),
				zap.String(constvars.LoggingStaffIDKey, staffID),
			)
			return "", exceptions.ErrStaffNotEligible(nil)
		}
		return staffID, nil
	}

	eligible, err := uc.ServiceRepository.FindStaffIDsByServiceID(ctx, service.ID)
	if err != nil {
		uc.Log.Error("bookingUsecase.resolveStaff error fetching assigned staff",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, service.ID),
			zap.Error(err),
		)
		return "", err
	}

	free := make([]string, 0, len(eligible))
	for _, candidateID := range eligible {
		conflict, err := uc.ConflictUsecase.HasConflict(ctx, candidateID, effective.Start, effective.End)
		if err != nil {
			return "", err
		}
		if !conflict {
			free = append(free, candidateID)
		}
	}
	if len(free) == 0 {
		uc.Log.Info("bookingUsecase.resolveStaff no free staff for window",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, service.ID),
		)
		return "", exceptions.ErrSlotTaken(nil)
	}

	lastBooked, err := uc.AppointmentRepository.FindLastBookingTimes(ctx, free)
	if err != nil {
		uc.Log.Error("bookingUsecase.resolveStaff error fetching last booking times",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, service.ID),
			zap.Error(err),
		)
		return "", err
	}

	// Least-recently-booked wins; staff never booked sort first. Ties break
	// on id so concurrent requests resolve the same order deterministically.
	sort.Strings(free)
	picked := free[0]
	for _, candidateID := range free[1:] {
		if lastBooked[candidateID].Before(lastBooked[picked]) {
			picked = candidateID
		}
	}

	uc.Log.Info("bookingUsecase.resolveStaff assigned staff",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, service.ID),
		zap.String(constvars.LoggingStaffIDKey, picked),
	)
	return picked, nil
}

// resolveCustomer finds the referenced customer, or upserts one by
// (tenant, phone) so repeat bookings from the same phone reuse the row.
func (uc *bookingUsecase) resolveCustomer(ctx context.Context, tenantID string, request *requests.CreateBookingRequest) (*models.Customer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if request.CustomerID != "" {
		customer, err := uc.CustomerRepository.FindByID(ctx, request.CustomerID)
		if err != nil {
			uc.Log.Error("bookingUsecase.resolveCustomer error fetching customer",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCustomerIDKey, request.CustomerID),
				zap.Error(err),
			)
			return nil, err
		}
		if customer == nil || customer.TenantID != tenantID {
			uc.Log.Warn("bookingUsecase.resolveCustomer customer not found for tenant",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTenantIDKey, tenantID),
				zap.String(constvars.LoggingCustomerIDKey, request.CustomerID),
			)
			return nil, exceptions.ErrCustomerNotFound(nil)
		}
		return customer, nil
	}

	if request.CustomerName == "" || request.CustomerPhone == "" {
		uc.Log.Warn("bookingUsecase.resolveCustomer missing customer identification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTenantIDKey, tenantID),
		)
		return nil, exceptions.ErrCustomerInfoRequired(nil)
	}

	customer, err := uc.CustomerRepository.Upsert(ctx, &models.Customer{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		FullName: request.CustomerName,
		Phone:    request.CustomerPhone,
		Email:    request.CustomerEmail,
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.resolveCustomer error upserting customer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTenantIDKey, tenantID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("bookingUsecase.resolveCustomer resolved customer",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCustomerIDKey, customer.ID),
	)
	return customer, nil
}
