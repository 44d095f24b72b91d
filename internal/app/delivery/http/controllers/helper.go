package controllers

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const usecaseTimeout = 10 * time.Second

// writeUsecaseError renders err, turning an expired usecase deadline into a 504.
func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func identityFromRequest(r *http.Request) (*models.PublicUser, error) {
	identity, ok := r.Context().Value(constvars.CONTEXT_IDENTITY_KEY).(*models.PublicUser)
	if !ok || identity == nil {
		return nil, exceptions.ErrIdentityMissing(nil)
	}
	return identity, nil
}
