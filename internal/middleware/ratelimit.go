package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/response"
)

const rateLimitKeyPrefix = "rate_limit:"

// RatePolicy describes one fixed-window rate limit: at most Max requests
// per Window per key. The window is anchored at the first counted request;
// later increments reuse the remaining TTL instead of rearming it.
type RatePolicy struct {
	Window  time.Duration
	Max     int
	Message string

	// KeyFunc derives the counter key for a request. Nil means per-IP
	// per-path.
	KeyFunc func(c *gin.Context) string
}

// Preset policies matching the public API surface.
var (
	// GeneralRateLimit covers ordinary read traffic.
	GeneralRateLimit = RatePolicy{
		Window:  15 * time.Minute,
		Max:     200,
		Message: "too many requests, please try again later",
	}

	// FormSubmissionRateLimit covers the public contact and newsletter
	// forms.
	FormSubmissionRateLimit = RatePolicy{
		Window:  15 * time.Minute,
		Max:     10,
		Message: "too many submissions, please try again later",
	}

	// StrictRateLimit covers the OTP endpoints.
	StrictRateLimit = RatePolicy{
		Window:  time.Hour,
		Max:     3,
		Message: "too many attempts, please try again in an hour",
	}

	// AuthRateLimit covers login, keyed per-IP per-email so one address
	// cannot exhaust another account's attempts.
	AuthRateLimit = RatePolicy{
		Window:  15 * time.Minute,
		Max:     5,
		Message: "too many login attempts, please try again later",
		KeyFunc: authRateKey,
	}
)

// RateLimiter builds rate-limit middleware over the shared store. With the
// failover store behind it the limiter keeps counting through a Redis
// outage, each process on its own in-memory window.
type RateLimiter struct {
	store   store.Store
	logger  *zap.Logger
	enabled bool
}

// NewRateLimiter constructs a RateLimiter.
func NewRateLimiter(st store.Store, logger *zap.Logger, enabled bool) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{store: st, logger: logger, enabled: enabled}
}

// Limit applies one policy to a route group. Counting is read-then-write,
// not atomic; a burst can slightly overshoot Max, which is acceptable for
// an abuse brake.
func (r *RateLimiter) Limit(policy RatePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.enabled {
			c.Next()
			return
		}

		key := rateKey(c, policy)
		ctx := c.Request.Context()

		count := 0
		if raw, err := r.store.Get(ctx, key); err == nil {
			if n, convErr := strconv.Atoi(raw); convErr == nil {
				count = n
			}
		} else if !isNotFound(err) {
			// Store trouble must not take the API down. Let the
			// request through and move on.
			r.logger.Warn("rate limit read failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		remainingTTL := policy.Window
		if count > 0 {
			if ttl, err := r.store.TTL(ctx, key); err == nil && ttl > 0 {
				remainingTTL = ttl
			}
		}

		if count >= policy.Max {
			retryAfter := int(remainingTTL.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			setRateHeaders(c, policy.Max, 0, remainingTTL)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, appErrors.RateLimited(policy.Message, retryAfter))
			c.Abort()
			return
		}

		if err := r.store.Set(ctx, key, strconv.Itoa(count+1), remainingTTL); err != nil {
			r.logger.Warn("rate limit write failed", zap.String("key", key), zap.Error(err))
		}

		remaining := policy.Max - count - 1
		setRateHeaders(c, policy.Max, remaining, remainingTTL)
		c.Next()
	}
}

func rateKey(c *gin.Context, policy RatePolicy) string {
	if policy.KeyFunc != nil {
		return policy.KeyFunc(c)
	}
	return fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, c.ClientIP(), c.Request.URL.Path)
}

// authRateKey keys the login limiter on IP plus the submitted email. The
// body is re-buffered so the handler can still bind it.
func authRateKey(c *gin.Context) string {
	email := "unknown"
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
			var payload struct {
				Email string `json:"email"`
			}
			if json.Unmarshal(body, &payload) == nil && payload.Email != "" {
				email = strings.ToLower(strings.TrimSpace(payload.Email))
			}
		}
	}
	return fmt.Sprintf("%sauth:%s:%s", rateLimitKeyPrefix, c.ClientIP(), email)
}

func setRateHeaders(c *gin.Context, limit, remaining int, reset time.Duration) {
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", time.Now().Add(reset).UTC().Format(time.RFC3339))
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
