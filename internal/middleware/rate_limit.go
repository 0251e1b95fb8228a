package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// bucket separates a user's reads from their writes. Every ledger write
// reloads the snapshot of each subscriber to the workspace, so writes draw
// from a smaller bucket.
type bucket struct {
	userID uuid.UUID
	write  bool
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Policy is the budget of one bucket
type Policy struct {
	PerMinute int
	Burst     int
}

func (p Policy) limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(p.PerMinute)/60.0), p.Burst)
}

// RateLimiter manages per-user rate limiting
type RateLimiter struct {
	limiters map[bucket]*limiterEntry
	mu       sync.Mutex
	read     Policy
	write    Policy
	now      func() time.Time
	stopCh   chan struct{}
}

// NewRateLimiterWithConfig creates a RateLimiter allowing requestsPerMinute
// reads per user. Writes get half of the read budget.
func NewRateLimiterWithConfig(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[bucket]*limiterEntry),
		read:     Policy{PerMinute: requestsPerMinute, Burst: burstSize},
		write:    Policy{PerMinute: max(1, requestsPerMinute/2), Burst: max(1, burstSize/2)},
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (r *RateLimiter) policy(write bool) Policy {
	if write {
		return r.write
	}
	return r.read
}

// Take spends one token from the user's bucket. When the bucket is empty it
// reports how long until a token is available and spends nothing.
func (r *RateLimiter) Take(userID uuid.UUID, write bool) (ok bool, remaining int, retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	key := bucket{userID: userID, write: write}
	entry, exists := r.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: r.policy(write).limiter()}
		r.limiters[key] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, 0, delay
	}
	return true, int(math.Max(0, entry.limiter.TokensAt(now))), 0
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > LimiterTTL {
			delete(r.limiters, key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("Cleaned up stale rate limiters")
	}
	return evicted
}

// Stop stops the cleanup goroutine
func (r *RateLimiter) Stop() {
	close(r.stopCh)
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// RateLimitMiddleware returns an Echo middleware that applies per-user rate
// limiting. Requests without a resolved user pass through.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if userID == uuid.Nil {
				return next(c)
			}

			write := isWrite(c.Request().Method)
			ok, remaining, wait := rl.Take(userID, write)

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(rl.policy(write).PerMinute))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if ok {
				return next(c)
			}

			retryAfter := int(math.Ceil(wait.Seconds()))
			header.Set("Retry-After", strconv.Itoa(retryAfter))
			log.Warn().
				Str("user_id", userID.String()).
				Bool("write", write).
				Int("retry_after", retryAfter).
				Msg("Rate limit exceeded")

			return rateLimitError(c, "Too many requests. Please retry after "+strconv.Itoa(retryAfter)+" seconds.")
		}
	}
}
