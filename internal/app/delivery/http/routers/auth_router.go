package routers

import (
	"mindhaven-service/internal/app/delivery/http/controllers"
	"mindhaven-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	authLimiter := middlewares.AuthRateLimiter()

	router.With(authLimiter.Limit).Post("/signup", authController.Signup)
	router.With(authLimiter.Limit).Post("/login", authController.Login)

	router.With(middlewares.Authenticate).Get("/me", authController.GetCurrentUser)
	router.With(middlewares.Authenticate).Delete("/me", authController.DeactivateCurrentUser)
}
