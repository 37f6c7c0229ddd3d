package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
)

func newRateTestRouter(policy RatePolicy, st store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(st, nil, true)
	router := gin.New()
	router.POST("/limited", limiter.Limit(policy), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	policy := RatePolicy{Window: time.Minute, Max: 3, Message: "slow down"}
	router := newRateTestRouter(policy, store.NewMemoryStore(0))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "slow down")
	assert.Contains(t, w.Body.String(), "retryAfter")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiterSetsHeaders(t *testing.T) {
	policy := RatePolicy{Window: time.Minute, Max: 5, Message: "slow down"}
	router := newRateTestRouter(policy, store.NewMemoryStore(0))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	reset, err := time.Parse(time.RFC3339, w.Header().Get("X-RateLimit-Reset"))
	require.NoError(t, err)
	assert.True(t, reset.After(time.Now()))
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(store.NewMemoryStore(0), nil, false)
	router := gin.New()
	router.POST("/limited", limiter.Limit(RatePolicy{Window: time.Minute, Max: 1}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterSeparatesPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore(0)
	limiter := NewRateLimiter(st, nil, true)
	policy := RatePolicy{Window: time.Minute, Max: 1, Message: "slow down"}

	router := gin.New()
	router.POST("/a", limiter.Limit(policy), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/b", limiter.Limit(policy), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/a", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/a", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different path has its own counter.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/b", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRateKeyPerEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(store.NewMemoryStore(0), nil, true)
	policy := AuthRateLimit
	policy.Max = 2

	var boundEmail string
	router := gin.New()
	router.POST("/login", limiter.Limit(policy), func(c *gin.Context) {
		var payload struct {
			Email string `json:"email"`
		}
		// The limiter already consumed and re-buffered the body.
		require.NoError(t, c.ShouldBindJSON(&payload))
		boundEmail = payload.Email
		c.Status(http.StatusOK)
	})

	send := func(email string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"`+email+`"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, send("a@example.com"))
	require.Equal(t, http.StatusOK, send("a@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, send("a@example.com"))

	// Another account from the same IP is not locked out.
	assert.Equal(t, http.StatusOK, send("b@example.com"))
	assert.Equal(t, "b@example.com", boundEmail)
}

func TestRateLimiterFixedWindowAnchored(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore(0)
	limiter := NewRateLimiter(st, nil, true)
	policy := RatePolicy{Window: time.Minute, Max: 10, Message: "slow down"}

	router := gin.New()
	router.POST("/limited", limiter.Limit(policy), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	key := rateLimitKeyPrefix + "192.0.2.1:/limited"
	first, err := st.TTL(req.Context(), key)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// The second hit must not rearm the window.
	second, err := st.TTL(req.Context(), key)
	require.NoError(t, err)
	assert.LessOrEqual(t, second, first)
}
