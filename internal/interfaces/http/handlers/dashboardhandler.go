package handlers

import (
	"github.com/gin-gonic/gin"

	"pulsefit/internal/application/member/usecases"
	"pulsefit/internal/shared/logger"
	"pulsefit/internal/shared/utils"
)

type DashboardHandler struct {
	statsUC     *usecases.DashboardStatsUseCase
	reconcileUC *usecases.ReconcileTotalsUseCase
	logger      logger.Interface
}

func NewDashboardHandler(
	statsUC *usecases.DashboardStatsUseCase,
	reconcileUC *usecases.ReconcileTotalsUseCase,
) *DashboardHandler {
	return &DashboardHandler{
		statsUC:     statsUC,
		reconcileUC: reconcileUC,
		logger:      logger.NewLogger(),
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, stats)
}

// TotalPaidDrift compares each member's stored running total against the sum
// of their completed ledger entries.
func (h *DashboardHandler) TotalPaidDrift(c *gin.Context) {
	report, err := h.reconcileUC.Execute(c.Request.Context(), usecases.ReconcileTotalsCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, report)
}
