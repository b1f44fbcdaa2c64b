package routers

import (
	"bookwell-service/internal/app/delivery/http/controllers"
	"bookwell-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	router.Get("/", availabilityController.GetAvailability)
}
