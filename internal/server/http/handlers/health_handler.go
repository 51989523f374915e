package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.checker.HealthCheck(ctx); err != nil {
		_ = c.Error(err)
		middleware.Abort(c, http.StatusServiceUnavailable, middleware.CodeUnavailable, "storage unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
