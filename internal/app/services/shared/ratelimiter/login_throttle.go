package ratelimiter

import (
	"context"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/pkg/constvars"
	"time"
)

// LoginThrottle caps login attempts per e-mail address. Every attempt
// counts, successful or not.
type LoginThrottle struct {
	limiter *ResourceLimiter
	rule    Rule
	now     func() time.Time
}

func NewLoginThrottle(limiter *ResourceLimiter, cfg *config.InternalConfig) *LoginThrottle {
	return &LoginThrottle{
		limiter: limiter,
		rule: Rule{
			Group:  constvars.LoginLimiterGroupName,
			Window: time.Duration(cfg.Auth.LoginWindowInSeconds) * time.Second,
			Quota:  cfg.Auth.LoginMaxAttempts,
		},
		now: time.Now,
	}
}

func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, int, error) {
	decision, err := t.limiter.Take(ctx, &t.rule, email, t.now().UTC())
	if err != nil {
		return false, 0, err
	}
	return decision.Allowed, decision.RetryAfterSecs, nil
}
