package ratelimiter

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func TestResourceLimiter_Take(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_010, 0).UTC()
	loginRule := &Rule{Group: "login_attempt", Window: time.Minute, Quota: 5}

	t.Run("Within Quota", func(t *testing.T) {
		redisRepo := new(MockRedisRepository)
		limiter := NewResourceLimiter(redisRepo, zap.NewNop())
		redisRepo.On("IncrementWithTTL", ctx, "LOGIN_ATTEMPT:jane@example.com:28333333", 61*time.Second).Return(5, nil)

		decision, err := limiter.Take(ctx, loginRule, " Jane@Example.com ", now)

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Zero(t, decision.RetryAfterSecs)
		redisRepo.AssertExpectations(t)
	})

	t.Run("Quota Exceeded", func(t *testing.T) {
		redisRepo := new(MockRedisRepository)
		limiter := NewResourceLimiter(redisRepo, zap.NewNop())
		redisRepo.On("IncrementWithTTL", ctx, mock.Anything, mock.Anything).Return(6, nil)

		decision, err := limiter.Take(ctx, loginRule, "jane@example.com", now)

		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		// next window opens 30s after now, plus one second of slack
		assert.Equal(t, 31, decision.RetryAfterSecs)
	})

	t.Run("Zero Quota Disables Rule", func(t *testing.T) {
		redisRepo := new(MockRedisRepository)
		limiter := NewResourceLimiter(redisRepo, zap.NewNop())

		decision, err := limiter.Take(ctx, &Rule{Group: "LOGIN_ATTEMPT"}, "jane@example.com", now)

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		redisRepo.AssertNotCalled(t, "IncrementWithTTL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Short Window Falls Back To A Minute", func(t *testing.T) {
		redisRepo := new(MockRedisRepository)
		limiter := NewResourceLimiter(redisRepo, zap.NewNop())
		redisRepo.On("IncrementWithTTL", ctx, mock.Anything, 61*time.Second).Return(1, nil)

		decision, err := limiter.Take(ctx, &Rule{Group: "LOGIN_ATTEMPT", Quota: 1}, "jane@example.com", now)

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		redisRepo.AssertExpectations(t)
	})

	t.Run("Redis Failure", func(t *testing.T) {
		redisRepo := new(MockRedisRepository)
		limiter := NewResourceLimiter(redisRepo, zap.NewNop())
		redisRepo.On("IncrementWithTTL", ctx, mock.Anything, mock.Anything).Return(0, errors.New("connection refused"))

		decision, err := limiter.Take(ctx, loginRule, "jane@example.com", now)

		assert.Error(t, err)
		assert.False(t, decision.Allowed)
	})

	t.Run("Nil Rule", func(t *testing.T) {
		limiter := NewResourceLimiter(new(MockRedisRepository), zap.NewNop())
		_, err := limiter.Take(ctx, nil, "jane@example.com", now)
		assert.Error(t, err)
	})
}

func TestLoginThrottle_Allow(t *testing.T) {
	ctx := context.Background()
	cfg := &config.InternalConfig{Auth: config.AppAuth{LoginMaxAttempts: 2, LoginWindowInSeconds: 900}}

	redisRepo := new(MockRedisRepository)
	// 1_700_000_010 / 900 = 1888888
	redisRepo.On("IncrementWithTTL", ctx, "LOGIN_ATTEMPT:jane@example.com:1888888", 901*time.Second).Return(3, nil)

	throttle := NewLoginThrottle(NewResourceLimiter(redisRepo, zap.NewNop()), cfg)
	throttle.now = func() time.Time { return time.Unix(1_700_000_010, 0) }
	allowed, retryAfter, err := throttle.Allow(ctx, "jane@example.com")

	require.NoError(t, err)
	assert.False(t, allowed, "third attempt over a quota of two should be refused")
	// window 1888888 ends at 1_700_000_100
	assert.Equal(t, 91, retryAfter)
}
