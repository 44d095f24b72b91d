package middlewares

import (
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimiter caps every client IP at App.MaxRequests per second and
// answers in the standard error envelope.
func (m *Middlewares) GlobalRateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}

// AuthRateLimiter is the stricter per-IP limiter for signup and login.
func (m *Middlewares) AuthRateLimiter() *RateLimiter {
	return NewRateLimiter(
		m.InternalConfig.App.AuthMaxRequestsPerMinute,
		time.Minute/time.Duration(max(m.InternalConfig.App.AuthMaxRequestsPerMinute, 1)),
		time.Duration(m.InternalConfig.App.AuthBlockTimeInMinutes)*time.Minute,
		m.Log,
	)
}
