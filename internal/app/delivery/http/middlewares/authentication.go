package middlewares

import (
	"context"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/app/services/shared/metrics"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token to a live, active identity and
// stores it in the request context under CONTEXT_IDENTITY_KEY.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := utils.GetRequestID(ctx)

		token := bearerToken(r.Header.Get(constvars.HeaderAuthorization))
		if token == "" {
			m.Metrics.RecordAuthOutcome(metrics.AuthOutcomeMissingToken)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		claims := m.TokenService.VerifyToken(ctx, token)
		if claims == nil {
			m.Metrics.RecordAuthOutcome(metrics.AuthOutcomeInvalidToken)
			utils.LogSecurityEvent(m.Log, "invalid_token", requestID, "medium",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		identity, err := m.UserRepository.FindPublicByID(ctx, claims.UserID)
		if err != nil {
			m.Metrics.RecordAuthOutcome(metrics.AuthOutcomeLookupFailed)
			m.Log.Error("Middlewares.Authenticate error looking up identity",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingUserIDKey, claims.UserID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrIdentityLookup(err))
			return
		}

		if identity == nil {
			m.Metrics.RecordAuthOutcome(metrics.AuthOutcomeUnknownUser)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrUserNotExist(nil))
			return
		}

		if !identity.IsActive {
			m.Metrics.RecordAuthOutcome(metrics.AuthOutcomeDeactivated)
			utils.LogSecurityEvent(m.Log, "deactivated_account_access", requestID, "low",
				zap.String(constvars.LoggingUserIDKey, claims.UserID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAccountDeactivated(nil))
			return
		}

		m.Metrics.RecordAuthOutcome(metrics.AuthOutcomeAccepted)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IDENTITY_KEY, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after Authenticate.
func (m *Middlewares) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := r.Context().Value(constvars.CONTEXT_IDENTITY_KEY).(*models.PublicUser)
			if !ok || identity == nil {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrIdentityMissing(nil))
				return
			}

			if identity.UserType != role {
				utils.BuildErrorResponse(m.Log, w, roleMismatchError(role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func roleMismatchError(required models.Role) *exceptions.CustomError {
	switch required {
	case models.RoleDoctor:
		return exceptions.ErrOnlyDoctorsAllowed(nil)
	case models.RolePatient:
		return exceptions.ErrOnlyPatientsAllowed(nil)
	}
	return exceptions.ErrIdentityMissing(nil)
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constvars.AuthorizationSchemeBearer) {
		return ""
	}
	return strings.TrimSpace(token)
}
