package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// DashboardHandler handles front desk dashboard HTTP requests
type DashboardHandler struct {
	getSummaryUC getSummaryUseCase
	logger       logger.Interface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(getSummaryUC getSummaryUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		getSummaryUC: getSummaryUC,
		logger:       logger,
	}
}

// GetSummary handles GET /dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	result, err := h.getSummaryUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get dashboard summary", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
