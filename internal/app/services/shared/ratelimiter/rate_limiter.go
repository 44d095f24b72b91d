package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultWindow = time.Minute

var errEmptyRule = errors.New("rate limit rule is nil")

// Rule is a fixed-window quota shared by every resource of one group.
// A Quota of zero or less disables the rule.
type Rule struct {
	Group  string
	Window time.Duration
	Quota  int
}

type Decision struct {
	Allowed        bool
	RetryAfterSecs int
}

// ResourceLimiter counts hits per (group, resource, window) in Redis. Each
// window has its own key, so counters expire on their own.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log}
}

// Take records one hit for resource at now and reports whether it fits the
// rule. Refused hits carry the seconds until the next window opens.
func (l *ResourceLimiter) Take(ctx context.Context, rule *Rule, resource string, now time.Time) (Decision, error) {
	if rule == nil {
		return Decision{}, errEmptyRule
	}
	if rule.Quota <= 0 {
		return Decision{Allowed: true}, nil
	}

	window := rule.Window
	if window < time.Second {
		window = defaultWindow
	}
	windowSecs := int64(window / time.Second)

	group := strings.ToUpper(strings.TrimSpace(rule.Group))
	resource = strings.ToLower(strings.TrimSpace(resource))
	if group == "" || resource == "" {
		return Decision{RetryAfterSecs: int(windowSecs)}, nil
	}

	windowID := now.Unix() / windowSecs
	key := fmt.Sprintf("%s:%s:%d", group, resource, windowID)

	hits, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("ResourceLimiter.Take error incrementing counter",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String("key", key),
			zap.Error(err),
		)
		return Decision{}, err
	}

	if hits <= rule.Quota {
		return Decision{Allowed: true}, nil
	}

	retryAfter := int((windowID+1)*windowSecs-now.Unix()) + 1
	l.log.Warn("ResourceLimiter.Take quota exceeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String("group", group),
		zap.Int(constvars.LoggingCountKey, hits),
		zap.Int("retry_after_secs", retryAfter),
	)
	return Decision{RetryAfterSecs: retryAfter}, nil
}
