package middlewares

import (
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-IP token bucket that blocks an IP for blockTime once
// its bucket runs dry. It guards the signup and login routes.
type RateLimiter struct {
	visitors  map[string]*visitor
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	idleAfter time.Duration
	lastSweep time.Time
	log       *zap.Logger
	now       func() time.Time
}

// NewRateLimiter allows bursts of requests, refilled at one token per per.
func NewRateLimiter(requests int, per, blockTime time.Duration, log *zap.Logger) *RateLimiter {
	// a bucket idle for a full refill is indistinguishable from a new one
	idleAfter := per * time.Duration(max(requests, 1))
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		idleAfter: max(idleAfter, blockTime),
		log:       log,
		now:       time.Now,
	}
}

// sweep drops idle buckets and expired blocks. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleAfter {
		return
	}
	rl.lastSweep = now

	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idleAfter {
			delete(rl.visitors, ip)
		}
	}
	for ip, blockedUntil := range rl.blocked {
		if !now.Before(blockedUntil) {
			delete(rl.blocked, ip)
		}
	}
}

func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors) + len(rl.blocked)
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		rl.mu.Lock()
		now := rl.now()
		rl.sweep(now)

		if blockedUntil, found := rl.blocked[ip]; found {
			if now.Before(blockedUntil) {
				rl.mu.Unlock()
				rl.reject(w, r, ip, blockedUntil.Sub(now))
				return
			}
			delete(rl.blocked, ip)
		}

		v, exists := rl.visitors[ip]
		if !exists {
			v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.per), rl.requests)}
			rl.visitors[ip] = v
		}
		v.lastSeen = now

		if !v.limiter.AllowN(now, 1) {
			rl.blocked[ip] = now.Add(rl.blockTime)
			rl.mu.Unlock()
			rl.reject(w, r, ip, rl.blockTime)
			return
		}
		rl.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request, ip string, retryAfter time.Duration) {
	utils.LogSecurityEvent(rl.log, "auth_rate_limited", utils.GetRequestID(r.Context()), "medium",
		zap.String(constvars.LoggingRemoteAddrKey, ip),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
	)
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())+1))
	utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(nil))
}
