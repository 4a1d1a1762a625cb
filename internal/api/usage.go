package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/service"
)

// AuthKeyHeader carries the shared secret on endpoints without a JSON body
const AuthKeyHeader = "X-Auth-Key"

const defaultSummaryWindow = 24 * time.Hour

// UsageHandler serves aggregated token usage
type UsageHandler struct {
	usage  service.UsageSummarizer
	auth   service.IAuthService
	logger *zap.Logger
}

// NewUsageHandler creates a new UsageHandler instance
func NewUsageHandler(usage service.UsageSummarizer, auth service.IAuthService, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{
		usage:  usage,
		auth:   auth,
		logger: logger,
	}
}

// RegisterRoutes mounts GET /usage/summary
func (h *UsageHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/usage/summary", h.Summary)
}

// Summary returns per-outcome counts and token totals for the window given by ?since=
// (a Go duration, default 24h)
func (h *UsageHandler) Summary(c *gin.Context) {
	if err := h.auth.Authorize(c.GetHeader(AuthKeyHeader)); err != nil {
		abortWithError(c, err)
		return
	}

	window := defaultSummaryWindow
	if v := c.Query("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "since must be a positive duration such as 24h"})
			return
		}
		window = d
	}

	since := time.Now().UTC().Add(-window)
	rows, err := h.usage.Summary(c.Request.Context(), since)
	if err != nil {
		h.logger.Error("failed to load usage summary", zap.Error(err))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"since":    since.Format(time.RFC3339),
		"outcomes": rows,
	})
}
