// internal/handlers/system/system_handler.go
package system

import (
	"context"
	"net/http"
	"time"

	"tourdesk-service/internal/domain/auth"
	"tourdesk-service/internal/domain/booking"
	"tourdesk-service/internal/domain/customer"
	"tourdesk-service/internal/domain/tour"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type SystemHandler struct {
	version string
	checks  map[string]Check
}

func NewSystemHandler(version string, checks map[string]Check) *SystemHandler {
	return &SystemHandler{version: version, checks: checks}
}

// Health pings every dependency and answers 503 if any is down.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "version": h.version, "dependencies": deps})
}

// Choices lists every enumerated field with its labels.
func (h *SystemHandler) Choices(c *gin.Context) {
	response.Success(c, http.StatusOK, "choices retrieved", gin.H{
		"gender":         customer.GenderChoices,
		"tour_status":    tour.StatusChoices,
		"payment_status": booking.PaymentStatusChoices,
		"profile_status": auth.ProfileStatusChoices,
	})
}
