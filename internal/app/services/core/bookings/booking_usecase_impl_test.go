package bookings

import (
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/models"
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

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

type fakeStaffRepository struct {
	staff map[string]*models.Staff
}

func (f *fakeStaffRepository) FindByID(ctx context.Context, staffID string) (*models.Staff, error) {
	return f.staff[staffID], nil
}

func (f *fakeStaffRepository) FindWorkingHours(ctx context.Context, staffID string, weekday int) (*models.WorkingHours, error) {
	return nil, nil
}

type fakeCustomerRepository struct {
	customers map[string]*models.Customer
	byPhone   map[string]*models.Customer
	upserted  []*models.Customer
}

func (f *fakeCustomerRepository) FindByID(ctx context.Context, customerID string) (*models.Customer, error) {
	return f.customers[customerID], nil
}

func (f *fakeCustomerRepository) Upsert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	f.upserted = append(f.upserted, customer)
	if existing, ok := f.byPhone[customer.TenantID+"/"+customer.Phone]; ok {
		return existing, nil
	}
	created := &models.Customer{
		ID:       "customer-new",
		TenantID: customer.TenantID,
		FullName: customer.FullName,
		Phone:    customer.Phone,
		Email:    customer.Email,
	}
	if f.byPhone == nil {
		f.byPhone = map[string]*models.Customer{}
	}
	f.byPhone[customer.TenantID+"/"+customer.Phone] = created
	return created, nil
}

type fakeAppointmentRepository struct {
	created      []*models.Appointment
	createErr    error
	lastBookings map[string]time.Time
}

func (f *fakeAppointmentRepository) CountOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error) {
	return 0, nil
}

func (f *fakeAppointmentRepository) FindOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepository) CreateIfNoConflict(ctx context.Context, appointment *models.Appointment, effective models.Interval) (*models.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	persisted := *appointment
	persisted.ID = "appointment-1"
	persisted.CreatedAt = time.Now().UTC()
	f.created = append(f.created, &persisted)
	return &persisted, nil
}

func (f *fakeAppointmentRepository) FindLastBookingTimes(ctx context.Context, staffIDs []string) (map[string]time.Time, error) {
	if f.lastBookings == nil {
		return map[string]time.Time{}, nil
	}
	return f.lastBookings, nil
}

type fakeSlotLockRepository struct {
	created []*models.SlotLock
}

func (f *fakeSlotLockRepository) CountActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) (int, error) {
	return 0, nil
}

func (f *fakeSlotLockRepository) FindActiveOverlapping(ctx context.Context, staffID string, start, end time.Time) ([]models.SlotLock, error) {
	return nil, nil
}

func (f *fakeSlotLockRepository) Create(ctx context.Context, lock *models.SlotLock) (*models.SlotLock, error) {
	persisted := *lock
	persisted.ID = "lock-1"
	persisted.CreatedAt = time.Now().UTC()
	f.created = append(f.created, &persisted)
	return &persisted, nil
}

func (f *fakeSlotLockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeConflictUsecase struct {
	conflicts map[string]bool
	err       error
	checked   []string
}

func (f *fakeConflictUsecase) HasConflict(ctx context.Context, staffID string, start, end time.Time) (bool, error) {
	f.checked = append(f.checked, staffID)
	if f.err != nil {
		return false, f.err
	}
	return f.conflicts[staffID], nil
}

func (f *fakeConflictUsecase) GetDayBlocks(ctx context.Context, staffID string, dayStart, dayEnd time.Time) (*models.DayBlocks, error) {
	return &models.DayBlocks{}, nil
}

type fakeLockerService struct {
	denied   bool
	unlocked []string
}

func (f *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.denied {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (f *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlocked = append(f.unlocked, key)
	return nil
}

func testService() *models.Service {
	return &models.Service{
		ID:                  "service-1",
		TenantID:            "tenant-1",
		Name:                "Consultation",
		DurationMinutes:     30,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  10,
		IsActive:            true,
	}
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			HoldTTLInMinutes:        5,
			BookingLockTTLInSeconds: 10,
		},
	}
}

func newTestBookingUsecase(
	serviceRepo *fakeServiceRepository,
	staffRepo *fakeStaffRepository,
	customerRepo *fakeCustomerRepository,
	appointmentRepo *fakeAppointmentRepository,
	slotLockRepo *fakeSlotLockRepository,
	conflictUC *fakeConflictUsecase,
	lockerSvc *fakeLockerService,
) *bookingUsecase {
	return &bookingUsecase{
		ServiceRepository:     serviceRepo,
		StaffRepository:       staffRepo,
		CustomerRepository:    customerRepo,
		AppointmentRepository: appointmentRepo,
		SlotLockRepository:    slotLockRepo,
		ConflictUsecase:       conflictUC,
		LockerService:         lockerSvc,
		InternalConfig:        testConfig(),
		Log:                   zap.NewNop(),
	}
}

func TestCreateBooking(t *testing.T) {
	staffRepo := &fakeStaffRepository{staff: map[string]*models.Staff{
		"staff-1": {ID: "staff-1", TenantID: "tenant-1", FullName: "Rina"},
		"staff-2": {ID: "staff-2", TenantID: "tenant-1", FullName: "Bud"},
	}}

	baseRequest := func() *requests.CreateBookingRequest {
		return &requests.CreateBookingRequest{
			ServiceID:     "service-1",
			StaffID:       "staff-1",
			StartTime:     "2025-09-01T10:00:00Z",
			CustomerName:  "Sari",
			CustomerPhone: "+6281234567890",
		}
	}

	t.Run("Persists confirmed appointment with the unexpanded interval", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			appointmentRepo,
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		response, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.NoError(t, err)
		assert.NotNil(t, response)
		assert.Equal(t, "tenant-1", response.TenantID)
		assert.Equal(t, "confirmed", response.Status)

		assert.Len(t, appointmentRepo.created, 1)
		created := appointmentRepo.created[0]
		// Buffers are computed at check time, never stored.
		assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), created.StartTime)
		assert.Equal(t, time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC), created.EndTime)
	})

	t.Run("Conflict at commit returns 409 and persists nothing", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			appointmentRepo,
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{conflicts: map[string]bool{"staff-1": true}},
			&fakeLockerService{},
		)

		response, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.Nil(t, response)
		assert.Empty(t, appointmentRepo.created)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("Conflict check runs on the buffer-expanded window", func(t *testing.T) {
		conflictUC := &fakeConflictUsecase{}
		appointmentRepo := &fakeAppointmentRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			appointmentRepo,
			&fakeSlotLockRepository{},
			conflictUC,
			&fakeLockerService{},
		)

		_, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.NoError(t, err)
		assert.Contains(t, conflictUC.checked, "staff-1")
	})

	t.Run("Advisory lock denial maps to conflict", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			appointmentRepo,
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{denied: true},
		)

		response, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.Nil(t, response)
		assert.Empty(t, appointmentRepo.created)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("Repeat booking from same phone reuses the customer", func(t *testing.T) {
		customerRepo := &fakeCustomerRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			customerRepo,
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		first, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.NoError(t, err)

		secondRequest := baseRequest()
		secondRequest.StartTime = "2025-09-01T11:00:00Z"
		secondRequest.CustomerName = "Sari Updated"
		second, err := uc.CreateBooking(context.Background(), secondRequest)
		assert.NoError(t, err)

		assert.Equal(t, first.CustomerID, second.CustomerID)
		assert.Len(t, customerRepo.upserted, 2)
	})

	t.Run("Missing customer identification is rejected", func(t *testing.T) {
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		request := baseRequest()
		request.CustomerName = ""
		request.CustomerPhone = ""
		response, err := uc.CreateBooking(context.Background(), request)
		assert.Nil(t, response)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("Customer id from another tenant is not found", func(t *testing.T) {
		customerRepo := &fakeCustomerRepository{customers: map[string]*models.Customer{
			"customer-x": {ID: "customer-x", TenantID: "tenant-other"},
		}}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			customerRepo,
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		request := baseRequest()
		request.CustomerID = "customer-x"
		response, err := uc.CreateBooking(context.Background(), request)
		assert.Nil(t, response)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("Unparsable start time is rejected without store access", func(t *testing.T) {
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		request := baseRequest()
		request.StartTime = "next tuesday"
		response, err := uc.CreateBooking(context.Background(), request)
		assert.Nil(t, response)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("Unknown service is not found", func(t *testing.T) {
		uc := newTestBookingUsecase(
			&fakeServiceRepository{},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		response, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.Nil(t, response)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("Omitted staff assigns the least recently booked free member", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{lastBookings: map[string]time.Time{
			"staff-1": time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
			"staff-2": time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		}}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1", "staff-2"}},
			staffRepo,
			&fakeCustomerRepository{},
			appointmentRepo,
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		request := baseRequest()
		request.StaffID = ""
		response, err := uc.CreateBooking(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, "staff-2", response.StaffID)
	})

	t.Run("Never-booked staff wins assignment", func(t *testing.T) {
		appointmentRepo := &fakeAppointmentRepository{lastBookings: map[string]time.Time{
			"staff-1": time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
		}}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1", "staff-2"}},
			staffRepo,
			&fakeCustomerRepository{},
			appointmentRepo,
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		request := baseRequest()
		request.StaffID = ""
		response, err := uc.CreateBooking(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, "staff-2", response.StaffID)
	})

	t.Run("Omitted staff with every member busy is a conflict", func(t *testing.T) {
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1", "staff-2"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{conflicts: map[string]bool{"staff-1": true, "staff-2": true}},
			&fakeLockerService{},
		)

		request := baseRequest()
		request.StaffID = ""
		response, err := uc.CreateBooking(context.Background(), request)
		assert.Nil(t, response)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("Staff not assigned to the service is rejected", func(t *testing.T) {
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-2"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		response, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.Nil(t, response)
		assert.Error(t, err)
	})

	t.Run("Advisory lock is released after commit", func(t *testing.T) {
		lockerSvc := &fakeLockerService{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			lockerSvc,
		)

		_, err := uc.CreateBooking(context.Background(), baseRequest())
		assert.NoError(t, err)
		assert.Len(t, lockerSvc.unlocked, 1)
	})
}

func TestCreateHold(t *testing.T) {
	staffRepo := &fakeStaffRepository{staff: map[string]*models.Staff{
		"staff-1": {ID: "staff-1", TenantID: "tenant-1"},
	}}

	baseRequest := func() *requests.CreateHoldRequest {
		return &requests.CreateHoldRequest{
			ServiceID: "service-1",
			StaffID:   "staff-1",
			StartTime: "2025-09-01T10:00:00Z",
		}
	}

	t.Run("Creates an expiring lock for the unexpanded window", func(t *testing.T) {
		slotLockRepo := &fakeSlotLockRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			slotLockRepo,
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		response, err := uc.CreateHold(context.Background(), baseRequest())
		assert.NoError(t, err)
		assert.NotNil(t, response)
		assert.Len(t, slotLockRepo.created, 1)

		lock := slotLockRepo.created[0]
		assert.Equal(t, "tenant-1", lock.TenantID)
		assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), lock.StartTime)
		assert.Equal(t, time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC), lock.EndTime)
		assert.True(t, lock.ExpiresAt.After(time.Now().UTC()))
	})

	t.Run("Blocked window is a conflict", func(t *testing.T) {
		slotLockRepo := &fakeSlotLockRepository{}
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-1"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			slotLockRepo,
			&fakeConflictUsecase{conflicts: map[string]bool{"staff-1": true}},
			&fakeLockerService{},
		)

		response, err := uc.CreateHold(context.Background(), baseRequest())
		assert.Nil(t, response)
		assert.Empty(t, slotLockRepo.created)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("Staff outside the service roster cannot hold", func(t *testing.T) {
		uc := newTestBookingUsecase(
			&fakeServiceRepository{service: testService(), staffIDs: []string{"staff-9"}},
			staffRepo,
			&fakeCustomerRepository{},
			&fakeAppointmentRepository{},
			&fakeSlotLockRepository{},
			&fakeConflictUsecase{},
			&fakeLockerService{},
		)

		response, err := uc.CreateHold(context.Background(), baseRequest())
		assert.Nil(t, response)
		assert.Error(t, err)
	})
}
