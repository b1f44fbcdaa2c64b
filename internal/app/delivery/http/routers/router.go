package routers

import (
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/delivery/http/controllers"
	"bookwell-service/internal/app/delivery/http/middlewares"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	availabilityController *controllers.AvailabilityController,
	bookingController *controllers.BookingController,
	healthController *controllers.HealthController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/availability", func(r chi.Router) {
				attachAvailabilityRoutes(r, middlewares, availabilityController)
			})

			r.Route("/bookings", func(r chi.Router) {
				attachBookingRoutes(r, middlewares, bookingController)
			})

			r.Route("/health", func(r chi.Router) {
				attachHealthRoutes(r, middlewares, healthController)
			})
		})
	})
}
