package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	apphttp "github.com/soldout/backend/internal/http"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"

	checkTimeout = 2 * time.Second
)

// Report is the health check payload
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Handler handles health check related endpoints
type Handler struct {
	checks          map[string]Pinger
	responseHandler ResponseHandler
	logger          Logger
}

// NewHandler creates a new health check handler. checks maps a dependency
// name to its check; nil checks are skipped.
func NewHandler(checks map[string]Pinger, responseHandler ResponseHandler, logger Logger) *Handler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &Handler{
		checks:          active,
		responseHandler: responseHandler,
		logger:          logger,
	}
}

// @Summary Health check endpoint
// @Description Reports datastore and cache reachability
// @Tags health
// @Produce json
// @Success 200 {object} http.Response{data=Report} "All dependencies reachable"
// @Failure 503 {object} http.Response{data=Report} "A dependency is unreachable"
// @Router /health [get]
func (h *Handler) HandleHealthCheck(c *gin.Context) {
	report := h.Check(c.Request.Context())
	if report.Status == statusOK {
		h.responseHandler.SuccessResponse(c, report, "Health check successful")
		return
	}
	c.JSON(http.StatusServiceUnavailable, apphttp.Response{
		Success: false,
		Data:    report,
		Error: &apphttp.Error{
			Code:    "SERVICE_UNAVAILABLE",
			Message: "One or more dependencies are unreachable",
		},
	})
}

// Check pings every dependency with a short timeout
func (h *Handler) Check(ctx context.Context) Report {
	report := Report{Status: statusOK, Checks: make(map[string]string, len(h.checks))}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := h.checks[name].Ping(checkCtx)
		cancel()
		if err != nil {
			report.Status = statusDegraded
			report.Checks[name] = statusDown
			h.logger.LogWarn("Health check failed", map[string]interface{}{"check": name, "error": err.Error()})
			continue
		}
		report.Checks[name] = statusOK
	}
	return report
}
