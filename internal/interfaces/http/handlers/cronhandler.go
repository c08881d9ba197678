package handlers

import (
	"github.com/gin-gonic/gin"

	"pulsefit/internal/application/member/usecases"
	"pulsefit/internal/shared/logger"
	"pulsefit/internal/shared/utils"
)

// CronHandler exposes maintenance jobs to external schedulers. Routes are
// guarded by the pre-shared cron secret, not by user auth.
type CronHandler struct {
	sweepUC *usecases.ExpirySweepUseCase
	logger  logger.Interface
}

func NewCronHandler(sweepUC *usecases.ExpirySweepUseCase) *CronHandler {
	return &CronHandler{
		sweepUC: sweepUC,
		logger:  logger.NewLogger(),
	}
}

// ExpirySweep flips stale Active rows and sends renewal reminders. Safe to
// call repeatedly; a concurrent run is skipped via the distributed lock.
func (h *CronHandler) ExpirySweep(c *gin.Context) {
	report, err := h.sweepUC.Execute(c.Request.Context(), usecases.ExpirySweepCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, report)
}
