package main

import (
	"bookwell-service/cmd/migration"
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/delivery/http/controllers"
	"bookwell-service/internal/app/delivery/http/middlewares"
	"bookwell-service/internal/app/delivery/http/routers"
	"bookwell-service/internal/app/drivers/database"
	"bookwell-service/internal/app/drivers/logger"
	"bookwell-service/internal/app/services/core/appointments"
	"bookwell-service/internal/app/services/core/availability"
	"bookwell-service/internal/app/services/core/bookings"
	"bookwell-service/internal/app/services/core/customers"
	"bookwell-service/internal/app/services/core/schedules"
	"bookwell-service/internal/app/services/core/services"
	"bookwell-service/internal/app/services/core/slotlocks"
	"bookwell-service/internal/app/services/core/staff"
	"bookwell-service/internal/app/services/shared/locker"
	sharedRedis "bookwell-service/internal/app/services/shared/redis"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.DefaultTimezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)

	migration.Run(postgresDB)

	chiRouter := chi.NewRouter()

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()

	bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		Redis:          redisClient,
		Logger:         log,
		ZapLogger:      zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}, reaperCtx)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	stopReaper()
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap, reaperCtx context.Context) {
	// Shared
	redisRepository := sharedRedis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.ZapLogger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.ZapLogger, bootstrap.InternalConfig)

	// Repositories
	serviceRepository := services.NewServicePostgresRepository(bootstrap.PostgresDB)
	staffRepository := staff.NewStaffPostgresRepository(bootstrap.PostgresDB)
	timeOffRepository := staff.NewTimeOffPostgresRepository(bootstrap.PostgresDB)
	customerRepository := customers.NewCustomerPostgresRepository(bootstrap.PostgresDB)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(bootstrap.PostgresDB)
	slotLockRepository := slotlocks.NewSlotLockPostgresRepository(bootstrap.PostgresDB)

	// Usecases
	scheduleUsecase := schedules.NewScheduleUsecase(staffRepository, bootstrap.ZapLogger)
	conflictUsecase := availability.NewConflictUsecase(appointmentRepository, timeOffRepository, slotLockRepository, bootstrap.ZapLogger)
	availabilityUsecase := availability.NewAvailabilityUsecase(serviceRepository, scheduleUsecase, conflictUsecase, bootstrap.InternalConfig, bootstrap.ZapLogger)
	bookingUsecase := bookings.NewBookingUsecase(
		serviceRepository,
		staffRepository,
		customerRepository,
		appointmentRepository,
		slotLockRepository,
		conflictUsecase,
		lockerService,
		bootstrap.InternalConfig,
		bootstrap.ZapLogger,
	)

	// Controllers
	availabilityController := controllers.NewAvailabilityController(bootstrap.ZapLogger, availabilityUsecase, bootstrap.InternalConfig)
	bookingController := controllers.NewBookingController(bootstrap.ZapLogger, bookingUsecase, bootstrap.InternalConfig)
	healthController := controllers.NewHealthController(bootstrap.ZapLogger, bootstrap.PostgresDB, bootstrap.Redis)

	// Background sweep of expired slot locks
	reaper := slotlocks.NewReaper(
		slotLockRepository,
		time.Duration(bootstrap.InternalConfig.App.LockReaperIntervalInMinutes)*time.Minute,
		bootstrap.ZapLogger,
	)
	go reaper.Run(reaperCtx)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, availabilityController, bookingController, healthController)
}
