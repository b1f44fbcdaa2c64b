package availability

import (
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAppointmentRepository struct {
	appointments []models.Appointment
	err          error
}

func (f *fakeAppointmentRepository) CountOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error) {
	rows, err := f.FindOverlapping(ctx, staffID, start, end)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (f *fakeAppointmentRepository) FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	window := models.Interval{Start: start, End: end}
	var matched []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.StaffID != staffID || appointment.Status == models.AppointmentCancelled {
			continue
		}
		if window.Overlaps(models.Interval{Start: appointment.StartTime, End: appointment.EndTime}) {
			matched = append(matched, appointment)
		}
	}
	return matched, nil
}

func (f *fakeAppointmentRepository) CreateIfNoConflict(ctx context.Context, appointment *models.Appointment, effective models.Interval) (*models.Appointment, error) {
	return appointment, nil
}

func (f *fakeAppointmentRepository) FindLastBookingTimes(ctx context.Context, staffIDs []string) (map[string]time.Time, error) {
	return map[string]time.Time{}, nil
}

type fakeTimeOffRepository struct {
	timeOff []models.TimeOff
	err     error
}

func (f *fakeTimeOffRepository) FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.TimeOff, error) {
	if f.err != nil {
		return nil, f.err
	}
	window := models.Interval{Start: start, End: end}
	var matched []models.TimeOff
	for _, block := range f.timeOff {
		if block.StaffID != staffID {
			continue
		}
		if window.Overlaps(models.Interval{Start: block.StartTime, End: block.EndTime}) {
			matched = append(matched, block)
		}
	}
	return matched, nil
}

type fakeSlotLockRepository struct {
	locks []models.SlotLock
	err   error
}

func (f *fakeSlotLockRepository) CountActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error) {
	rows, err := f.FindActiveOverlapping(ctx, staffID, start, end)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (f *fakeSlotLockRepository) FindActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.SlotLock, error) {
	if f.err != nil {
		return nil, f.err
	}
	window := models.Interval{Start: start, End: end}
	now := time.Now().UTC()
	var matched []models.SlotLock
	for _, lock := range f.locks {
		if lock.StaffID != staffID || !lock.ExpiresAt.After(now) {
			continue
		}
		if window.Overlaps(models.Interval{Start: lock.StartTime, End: lock.EndTime}) {
			matched = append(matched, lock)
		}
	}
	return matched, nil
}

func (f *fakeSlotLockRepository) Create(ctx context.Context, lock *models.SlotLock) (*models.SlotLock, error) {
	return lock, nil
}

func (f *fakeSlotLockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeServiceRepository struct {
	service  *models.Service
	staffIDs []string
}

func (f *fakeServiceRepository) FindByID(ctx context.Context, serviceID string) (*models.Service, error) {
	if f.service != nil && f.service.ID == serviceID {
		return f.service, nil
	}
	return nil, nil
}

func (f *fakeServiceRepository) FindStaffIDsByServiceID(ctx context.Context, serviceID string) ([]string, error) {
	return f.staffIDs, nil
}

func (f *fakeServiceRepository) IsStaffAssigned(ctx context.Context, serviceID, staffID string) (bool, error) {
	for _, id := range f.staffIDs {
		if id == staffID {
			return true, nil
		}
	}
	return false, nil
}

type fakeScheduleUsecase struct {
	intervals map[string]*models.Interval
}

func (f *fakeScheduleUsecase) ResolveWorkingHours(ctx context.Context, staffID string, date time.Time, loc *time.Location) (*models.Interval, error) {
	return f.intervals[staffID], nil
}

func newTestConflictUsecase(
	appointmentRepo *fakeAppointmentRepository,
	timeOffRepo *fakeTimeOffRepository,
	slotLockRepo *fakeSlotLockRepository,
) *conflictUsecase {
	return &conflictUsecase{
		AppointmentRepository: appointmentRepo,
		TimeOffRepository:     timeOffRepo,
		SlotLockRepository:    slotLockRepo,
		Log:                   zap.NewNop(),
	}
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{SlotGranularityMinutes: 30},
	}
}

// Monday 2025-09-01, staff works 09:00-12:00 UTC.
func mondayShift() *models.Interval {
	return &models.Interval{
		Start: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateSlots(t *testing.T) {
	service := &models.Service{
		ID:              "service-1",
		TenantID:        "tenant-1",
		Name:            "Consultation",
		DurationMinutes: 30,
		IsActive:        true,
	}

	baseQuery := &requests.AvailabilityQuery{
		ServiceID: "service-1",
		Date:      "2025-09-01",
		Timezone:  "UTC",
	}

	t.Run("Free morning shift yields every half-hour start", func(t *testing.T) {
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service, staffIDs: []string{"staff-1"}},
			ScheduleUsecase:   &fakeScheduleUsecase{intervals: map[string]*models.Interval{"staff-1": mondayShift()}},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		assert.Len(t, slots, 6)
		assert.Equal(t, time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC), slots[0].Start)
		assert.Equal(t, time.Date(2025, 9, 1, 11, 30, 0, 0, time.UTC), slots[5].Start)
		for _, slot := range slots {
			assert.True(t, slot.Available)
			assert.Equal(t, slot.Start.Add(30*time.Minute), slot.End)
			assert.Equal(t, []string{"staff-1"}, slot.StaffIDs)
		}
	})

	t.Run("Existing appointment removes its start but keeps adjacent slots", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{
			appointments: []models.Appointment{{
				StaffID:   "staff-1",
				StartTime: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
				Status:    models.AppointmentConfirmed,
			}},
		}
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service, staffIDs: []string{"staff-1"}},
			ScheduleUsecase:   &fakeScheduleUsecase{intervals: map[string]*models.Interval{"staff-1": mondayShift()}},
			ConflictUsecase:   newTestConflictUsecase(appointmentRepo, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		assert.Len(t, slots, 5)

		starts := make([]time.Time, 0, len(slots))
		for _, slot := range slots {
			starts = append(starts, slot.Start)
		}
		assert.NotContains(t, starts, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
		// Half-open semantics keep the back-to-back 10:30 slot bookable.
		assert.Contains(t, starts, time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC))
		assert.Contains(t, starts, time.Date(2025, 9, 1, 9, 30, 0, 0, time.UTC))
	})

	t.Run("Full-day time off yields no slots", func(t *testing.T) {
		timeOffRepo := &fakeTimeOffRepository{
			timeOff: []models.TimeOff{{
				StaffID:   "staff-1",
				StartTime: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
			}},
		}
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service, staffIDs: []string{"staff-1"}},
			ScheduleUsecase:   &fakeScheduleUsecase{intervals: map[string]*models.Interval{"staff-1": mondayShift()}},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, timeOffRepo, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Buffers shrink the usable shift", func(t *testing.T) {
		buffered := &models.Service{
			ID:                  "service-1",
			TenantID:            "tenant-1",
			DurationMinutes:     30,
			BufferBeforeMinutes: 15,
			BufferAfterMinutes:  15,
			IsActive:            true,
		}
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: buffered, staffIDs: []string{"staff-1"}},
			ScheduleUsecase:   &fakeScheduleUsecase{intervals: map[string]*models.Interval{"staff-1": mondayShift()}},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		// 09:00 needs 08:45 free and 11:30 needs until 12:15, both outside
		// the shift, so only 09:30 through 11:00 survive.
		assert.Len(t, slots, 4)
		assert.Equal(t, time.Date(2025, 9, 1, 9, 30, 0, 0, time.UTC), slots[0].Start)
		assert.Equal(t, time.Date(2025, 9, 1, 11, 0, 0, 0, time.UTC), slots[3].Start)
	})

	t.Run("Union across staff is sorted and attributes every free staff member", func(t *testing.T) {
		afternoonShift := &models.Interval{
			Start: time.Date(2025, 9, 1, 11, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 1, 13, 0, 0, 0, time.UTC),
		}
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service, staffIDs: []string{"staff-2", "staff-1"}},
			ScheduleUsecase: &fakeScheduleUsecase{intervals: map[string]*models.Interval{
				"staff-1": mondayShift(),
				"staff-2": afternoonShift,
			}},
			ConflictUsecase: newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:  testInternalConfig(),
			Log:             zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		// 09:00..11:30 from staff-1 plus 12:00, 12:30 from staff-2.
		assert.Len(t, slots, 8)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Start.Before(slots[i].Start))
		}

		bySlot := make(map[time.Time][]string)
		for _, slot := range slots {
			bySlot[slot.Start] = slot.StaffIDs
		}
		assert.Equal(t, []string{"staff-1", "staff-2"}, bySlot[time.Date(2025, 9, 1, 11, 0, 0, 0, time.UTC)])
		assert.Equal(t, []string{"staff-1", "staff-2"}, bySlot[time.Date(2025, 9, 1, 11, 30, 0, 0, time.UTC)])
		assert.Equal(t, []string{"staff-1"}, bySlot[time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)])
		assert.Equal(t, []string{"staff-2"}, bySlot[time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)])
	})

	t.Run("Every generated slot passes the commit-time conflict check", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{
			appointments: []models.Appointment{{
				StaffID:   "staff-1",
				StartTime: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
				Status:    models.AppointmentConfirmed,
			}},
		}
		conflictUC := newTestConflictUsecase(appointmentRepo, &fakeTimeOffRepository{}, &fakeSlotLockRepository{})
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service, staffIDs: []string{"staff-1"}},
			ScheduleUsecase:   &fakeScheduleUsecase{intervals: map[string]*models.Interval{"staff-1": mondayShift()}},
			ConflictUsecase:   conflictUC,
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		assert.NotEmpty(t, slots)
		for _, slot := range slots {
			conflict, err := conflictUC.HasConflict(
				context.Background(),
				"staff-1",
				slot.Start.Add(-service.BufferBefore()),
				slot.End.Add(service.BufferAfter()),
			)
			assert.NoError(t, err)
			assert.False(t, conflict, "slot %v should survive re-validation", slot.Start)
		}
	})

	t.Run("Unknown service is not found", func(t *testing.T) {
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{},
			ScheduleUsecase:   &fakeScheduleUsecase{},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.Nil(t, slots)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("No assigned staff yields empty list", func(t *testing.T) {
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service},
			ScheduleUsecase:   &fakeScheduleUsecase{},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		slots, err := uc.GenerateSlots(context.Background(), baseQuery)
		assert.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("Requested staff must be assigned to the service", func(t *testing.T) {
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service, staffIDs: []string{"staff-1"}},
			ScheduleUsecase:   &fakeScheduleUsecase{},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		query := &requests.AvailabilityQuery{
			ServiceID: "service-1",
			Date:      "2025-09-01",
			Timezone:  "UTC",
			StaffID:   "staff-9",
		}
		slots, err := uc.GenerateSlots(context.Background(), query)
		assert.Nil(t, slots)
		assert.Error(t, err)
	})

	t.Run("Invalid date is rejected before any lookup", func(t *testing.T) {
		uc := &availabilityUsecase{
			ServiceRepository: &fakeServiceRepository{service: service},
			ScheduleUsecase:   &fakeScheduleUsecase{},
			ConflictUsecase:   newTestConflictUsecase(&fakeAppointmentRepository{}, &fakeTimeOffRepository{}, &fakeSlotLockRepository{}),
			InternalConfig:    testInternalConfig(),
			Log:               zap.NewNop(),
		}

		query := &requests.AvailabilityQuery{ServiceID: "service-1", Date: "01-09-2025", Timezone: "UTC"}
		slots, err := uc.GenerateSlots(context.Background(), query)
		assert.Nil(t, slots)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})
}

func TestHasConflict(t *testing.T) {
	window := mondayShift()

	t.Run("Source error aborts instead of reporting no conflict", func(t *testing.T) {
		uc := newTestConflictUsecase(
			&fakeAppointmentRepository{err: errors.New("connection reset")},
			&fakeTimeOffRepository{},
			&fakeSlotLockRepository{},
		)

		conflict, err := uc.HasConflict(context.Background(), "staff-1", window.Start, window.End)
		assert.Error(t, err)
		assert.False(t, conflict)
	})

	t.Run("Time-off error aborts even when appointments are clear", func(t *testing.T) {
		uc := newTestConflictUsecase(
			&fakeAppointmentRepository{},
			&fakeTimeOffRepository{err: errors.New("connection reset")},
			&fakeSlotLockRepository{},
		)

		conflict, err := uc.HasConflict(context.Background(), "staff-1", window.Start, window.End)
		assert.Error(t, err)
		assert.False(t, conflict)
	})

	t.Run("Expired slot lock does not block", func(t *testing.T) {
		uc := newTestConflictUsecase(
			&fakeAppointmentRepository{},
			&fakeTimeOffRepository{},
			&fakeSlotLockRepository{locks: []models.SlotLock{{
				StaffID:   "staff-1",
				StartTime: window.Start,
				EndTime:   window.End,
				ExpiresAt: time.Now().UTC().Add(-time.Minute),
			}}},
		)

		conflict, err := uc.HasConflict(context.Background(), "staff-1", window.Start, window.End)
		assert.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("Active slot lock blocks", func(t *testing.T) {
		uc := newTestConflictUsecase(
			&fakeAppointmentRepository{},
			&fakeTimeOffRepository{},
			&fakeSlotLockRepository{locks: []models.SlotLock{{
				StaffID:   "staff-1",
				StartTime: window.Start,
				EndTime:   window.End,
				ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
			}}},
		)

		conflict, err := uc.HasConflict(context.Background(), "staff-1", window.Start, window.End)
		assert.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("Cancelled appointment does not block", func(t *testing.T) {
		uc := newTestConflictUsecase(
			&fakeAppointmentRepository{appointments: []models.Appointment{{
				StaffID:   "staff-1",
				StartTime: window.Start,
				EndTime:   window.End,
				Status:    models.AppointmentCancelled,
			}}},
			&fakeTimeOffRepository{},
			&fakeSlotLockRepository{},
		)

		conflict, err := uc.HasConflict(context.Background(), "staff-1", window.Start, window.End)
		assert.NoError(t, err)
		assert.False(t, conflict)
	})
}
