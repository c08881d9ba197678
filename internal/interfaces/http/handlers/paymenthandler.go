package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pulsefit/internal/application/payment/dto"
	"pulsefit/internal/application/payment/usecases"
	"pulsefit/internal/shared/logger"
	"pulsefit/internal/shared/utils"
)

type PaymentHandler struct {
	listPaymentsUC       *usecases.ListPaymentsUseCase
	listMemberPaymentsUC *usecases.ListMemberPaymentsUseCase
	bulkDeleteUC         *usecases.BulkDeletePaymentsUseCase
	logger               logger.Interface
}

func NewPaymentHandler(
	listPaymentsUC *usecases.ListPaymentsUseCase,
	listMemberPaymentsUC *usecases.ListMemberPaymentsUseCase,
	bulkDeleteUC *usecases.BulkDeletePaymentsUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		listPaymentsUC:       listPaymentsUC,
		listMemberPaymentsUC: listMemberPaymentsUC,
		bulkDeleteUC:         bulkDeleteUC,
		logger:               logger.NewLogger(),
	}
}

type BulkDeletePaymentsRequest struct {
	SIDs []string `json:"sids" binding:"required"`
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	cmd := usecases.ListPaymentsCommand{
		Status:   c.Query("status"),
		Method:   c.Query("method"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "member_id must be numeric")
			return
		}
		memberID := uint(id)
		cmd.MemberID = &memberID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		cmd.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		cmd.To = &to
	}

	result, err := h.listPaymentsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := dto.PaymentsToDTO(result.Payments)
	utils.OKResponse(c, utils.NewListResponse(items, result.Total, pagination.Page, pagination.PageSize))
}

// ListMemberPayments returns the full ledger of one member, newest first.
func (h *PaymentHandler) ListMemberPayments(c *gin.Context) {
	payments, err := h.listMemberPaymentsUC.Execute(c.Request.Context(), usecases.ListMemberPaymentsCommand{
		MemberID: c.Param("memberID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.PaymentsToDTO(payments))
}

// BulkDeletePayments removes ledger rows without touching member totals; the
// drift report surfaces the resulting gap.
func (h *PaymentHandler) BulkDeletePayments(c *gin.Context) {
	var req BulkDeletePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bulkDeleteUC.Execute(c.Request.Context(), usecases.BulkDeletePaymentsCommand{
		SIDs: req.SIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
