package routers

import (
	"fmt"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/delivery/http/controllers"
	"mindhaven-service/internal/app/delivery/http/middlewares"
	"mindhaven-service/internal/app/services/shared/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	serviceMetrics *metrics.Metrics,
	authController *controllers.AuthController,
	doctorController *controllers.DoctorController,
	healthController *controllers.HealthController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.GlobalRateLimiter())
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.Instrument)

	if internalConfig.App.RequestBodyLimitInMegabyte > 0 {
		// uploads are bounded separately by the document size limit
		bodyLimit := int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20
		documentLimit := (internalConfig.Minio.MaxDocumentSizeInMB + 1) << 20
		router.Use(middleware.RequestSize(max(bodyLimit, documentLimit)))
	}

	router.Method("GET", "/metrics", serviceMetrics.Handler())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)

	router.Route(endpointPrefix, func(r chi.Router) {
		if internalConfig.App.Version == "" {
			attachAPIRoutes(r, middlewares, authController, doctorController, healthController)
			return
		}
		versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)
		r.Route(versionPrefix, func(r chi.Router) {
			attachAPIRoutes(r, middlewares, authController, doctorController, healthController)
		})
	})
}

func attachAPIRoutes(
	r chi.Router,
	middlewares *middlewares.Middlewares,
	authController *controllers.AuthController,
	doctorController *controllers.DoctorController,
	healthController *controllers.HealthController,
) {
	r.Route("/auth", func(r chi.Router) {
		attachAuthRoutes(r, middlewares, authController)
	})

	r.Route("/doctors", func(r chi.Router) {
		attachDoctorRoutes(r, middlewares, doctorController)
	})

	attachHealthRoutes(r, healthController)
}
