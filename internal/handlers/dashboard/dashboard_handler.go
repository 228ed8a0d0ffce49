// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"context"
	"net/http"

	"tourdesk-service/internal/domain/dashboard"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Service interface {
	GetDashboard(ctx context.Context) (*dashboard.Dashboard, error)
}

type DashboardHandler struct {
	dashboardService Service
}

func NewDashboardHandler(dashboardService Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the headline stats and the customer breakdowns.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	result, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to build dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", result)
}
