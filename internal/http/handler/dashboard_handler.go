package handler

import (
	"net/http"

	"github.com/reproute/crm-api/internal/mapper"
	"github.com/reproute/crm-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetMetrics godoc
// @Summary Get dashboard metrics
// @Description Get the current week's visit totals, conversion rate, estimated revenue and the clients with no visit in the last 30 days. Metrics degrade to zero values if the underlying data cannot be loaded.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} domain.DashboardDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.dashboardService.GetMetrics(r.Context())
	respondJSON(w, http.StatusOK, mapper.ToDashboardDTO(metrics))
}
