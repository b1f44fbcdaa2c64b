package routers

import (
	"bookwell-service/internal/app/delivery/http/controllers"
	"bookwell-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.With(middlewares.TenantContext).Post("/", bookingController.CreateBooking)
	router.With(middlewares.TenantContext).Post("/holds", bookingController.CreateHold)
}
