package routers

import (
	"bookwell-service/internal/app/delivery/http/controllers"
	"bookwell-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachHealthRoutes(router chi.Router, middlewares *middlewares.Middlewares, healthController *controllers.HealthController) {
	router.Get("/", healthController.Check)
}
