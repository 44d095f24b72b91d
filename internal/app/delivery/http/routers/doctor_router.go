package routers

import (
	"mindhaven-service/internal/app/delivery/http/controllers"
	"mindhaven-service/internal/app/delivery/http/middlewares"
	"mindhaven-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.ListDoctors)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireRole(models.RoleDoctor))

		r.Get("/profile", doctorController.GetProfile)
		r.Put("/profile", doctorController.UpdateProfile)
		r.Post("/profile/documents", doctorController.UploadVerificationDocument)
	})

	router.Get("/{id}", doctorController.GetDoctorByID)
}
