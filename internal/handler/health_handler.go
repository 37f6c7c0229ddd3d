package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
)

// HealthHandler reports liveness and readiness, including the session
// store's failover state.
type HealthHandler struct {
	db       *sqlx.DB
	failover *store.FailoverStore
}

// NewHealthHandler creates a new handler.
func NewHealthHandler(db *sqlx.DB, failover *store.FailoverStore) *HealthHandler {
	return &HealthHandler{db: db, failover: failover}
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Reports database reachability and the session store state.
// The API stays ready on the in-memory fallback when Redis is down.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	status := "ready"
	dbStatus := "ok"
	httpStatus := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	}

	storeStatus := h.failover.Status()
	c.JSON(httpStatus, gin.H{
		"status":   status,
		"database": dbStatus,
		"store": gin.H{
			"state":         storeStatus.State.String(),
			"connected":     storeStatus.Connected,
			"usingFallback": storeStatus.UsingFallback,
			"fallbackKeys":  storeStatus.FallbackSize,
		},
	})
}
