package middlewares

import (
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/app/services/shared/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	TokenService   contracts.TokenService
	UserRepository contracts.UserRepository
	Metrics        *metrics.Metrics
}

func NewMiddlewares(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	tokenService contracts.TokenService,
	userRepository contracts.UserRepository,
	serviceMetrics *metrics.Metrics,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		TokenService:   tokenService,
		UserRepository: userRepository,
		Metrics:        serviceMetrics,
	}
}
