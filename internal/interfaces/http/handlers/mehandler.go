package handlers

import (
	"github.com/gin-gonic/gin"

	memberUsecases "pulsefit/internal/application/member/usecases"
	paymentDto "pulsefit/internal/application/payment/dto"
	paymentUsecases "pulsefit/internal/application/payment/usecases"
	"pulsefit/internal/shared/constants"
	"pulsefit/internal/shared/logger"
	"pulsefit/internal/shared/utils"
)

const recentPaymentsLimit = 5

// MeHandler serves the member-facing self-service endpoints.
type MeHandler struct {
	checkAccessUC        *memberUsecases.CheckAccessUseCase
	listMemberPaymentsUC *paymentUsecases.ListMemberPaymentsUseCase
	logger               logger.Interface
}

func NewMeHandler(
	checkAccessUC *memberUsecases.CheckAccessUseCase,
	listMemberPaymentsUC *paymentUsecases.ListMemberPaymentsUseCase,
) *MeHandler {
	return &MeHandler{
		checkAccessUC:        checkAccessUC,
		listMemberPaymentsUC: listMemberPaymentsUC,
		logger:               logger.NewLogger(),
	}
}

// CheckAccess is the door gate: a single verdict plus the membership snapshot
// that produced it.
func (h *MeHandler) CheckAccess(c *gin.Context) {
	result, err := h.checkAccessUC.Execute(c.Request.Context(), memberUsecases.CheckAccessCommand{
		UserID: c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// Membership returns the dashboard summary: the evaluated membership state
// and the most recent ledger entries.
func (h *MeHandler) Membership(c *gin.Context) {
	access, err := h.checkAccessUC.Execute(c.Request.Context(), memberUsecases.CheckAccessCommand{
		UserID: c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payload := gin.H{
		"decision":   access.Decision,
		"membership": access.Membership,
		"member_id":  access.MemberID,
	}

	if access.MemberID != "" {
		payments, err := h.listMemberPaymentsUC.Execute(c.Request.Context(), paymentUsecases.ListMemberPaymentsCommand{
			MemberID: access.MemberID,
		})
		if err != nil {
			h.logger.Warnw("failed to load recent payments", "member_id", access.MemberID, "error", err)
		} else {
			if len(payments) > recentPaymentsLimit {
				payments = payments[:recentPaymentsLimit]
			}
			payload["recent_payments"] = paymentDto.PaymentsToDTO(payments)
		}
	}

	utils.OKResponse(c, payload)
}
