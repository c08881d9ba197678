package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pulsefit/internal/application/member/dto"
	"pulsefit/internal/application/member/usecases"
	"pulsefit/internal/domain/member"
	"pulsefit/internal/shared/biztime"
	"pulsefit/internal/shared/logger"
	"pulsefit/internal/shared/utils"
)

type MemberHandler struct {
	createMemberUC       *usecases.CreateMemberUseCase
	getMemberUC          *usecases.GetMemberUseCase
	listMembersUC        *usecases.ListMembersUseCase
	updateMemberUC       *usecases.UpdateMemberUseCase
	deleteMemberUC       *usecases.DeleteMemberUseCase
	evaluateMembershipUC *usecases.EvaluateMembershipUseCase
	renewMembershipUC    *usecases.RenewMembershipUseCase
	importMembersUC      *usecases.ImportMembersUseCase
	evalCfg              member.EvaluationConfig
	logger               logger.Interface
}

func NewMemberHandler(
	createMemberUC *usecases.CreateMemberUseCase,
	getMemberUC *usecases.GetMemberUseCase,
	listMembersUC *usecases.ListMembersUseCase,
	updateMemberUC *usecases.UpdateMemberUseCase,
	deleteMemberUC *usecases.DeleteMemberUseCase,
	evaluateMembershipUC *usecases.EvaluateMembershipUseCase,
	renewMembershipUC *usecases.RenewMembershipUseCase,
	importMembersUC *usecases.ImportMembersUseCase,
	evalCfg member.EvaluationConfig,
) *MemberHandler {
	return &MemberHandler{
		createMemberUC:       createMemberUC,
		getMemberUC:          getMemberUC,
		listMembersUC:        listMembersUC,
		updateMemberUC:       updateMemberUC,
		deleteMemberUC:       deleteMemberUC,
		evaluateMembershipUC: evaluateMembershipUC,
		renewMembershipUC:    renewMembershipUC,
		importMembersUC:      importMembersUC,
		evalCfg:              evalCfg,
		logger:               logger.NewLogger(),
	}
}

type CreateMemberRequest struct {
	MemberID      string `json:"member_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email"`
	PlanSID       string `json:"plan_sid" binding:"required"`
	StartDate     string `json:"start_date"`
	InitialAmount string `json:"initial_amount"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,paymentmethod"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type RenewMembershipRequest struct {
	PlanSID       string `json:"plan_sid" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,paymentmethod"`
	Amount        string `json:"amount"`
}

type ImportMembersRequest struct {
	Rows     []usecases.ImportRow `json:"rows" binding:"required"`
	BaseYear int                  `json:"base_year"`
}

// CreateMember godoc
// @Summary Enroll a new member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMemberRequest true "Member details"
// @Success 201 {object} utils.APIResponse
// @Router /api/v1/admin/members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create member", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	startDate := biztime.NowUTC()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		startDate = parsed
	}

	amount := decimal.Zero
	if req.InitialAmount != "" {
		parsed, err := decimal.NewFromString(req.InitialAmount)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "initial_amount must be a decimal number")
			return
		}
		amount = parsed
	}

	result, err := h.createMemberUC.Execute(c.Request.Context(), usecases.CreateMemberCommand{
		MemberID:      req.MemberID,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		PlanSID:       req.PlanSID,
		StartDate:     startDate,
		InitialAmount: amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payload := gin.H{
		"member": dto.MemberToDTO(result.Member, biztime.NowUTC(), h.evalCfg),
	}
	if result.AccountCreated {
		// Shown once so staff can hand it over in person.
		payload["temp_password"] = result.TempPassword
	}
	utils.CreatedResponse(c, payload)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	m, err := h.getMemberUC.Execute(c.Request.Context(), usecases.GetMemberCommand{
		MemberID: c.Param("memberID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.MemberToDTO(m, biztime.NowUTC(), h.evalCfg))
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listMembersUC.Execute(c.Request.Context(), usecases.ListMembersCommand{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := dto.MembersToDTO(result.Members, biztime.NowUTC(), h.evalCfg)
	utils.OKResponse(c, utils.NewListResponse(items, result.Total, pagination.Page, pagination.PageSize))
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.updateMemberUC.Execute(c.Request.Context(), usecases.UpdateMemberCommand{
		MemberID: c.Param("memberID"),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.MemberToDTO(m, biztime.NowUTC(), h.evalCfg))
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	err := h.deleteMemberUC.Execute(c.Request.Context(), usecases.DeleteMemberCommand{
		MemberID: c.Param("memberID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "member deleted", nil)
}

// EvaluateMembership returns the computed state as of now, ignoring the
// persisted status column.
func (h *MemberHandler) EvaluateMembership(c *gin.Context) {
	status, err := h.evaluateMembershipUC.Execute(c.Request.Context(), usecases.EvaluateMembershipCommand{
		MemberRef: c.Param("memberID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, status)
}

// RenewMembership godoc
// @Summary Renew a membership against a plan
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Business member ID"
// @Param request body RenewMembershipRequest true "Renewal details"
// @Success 200 {object} utils.APIResponse
// @Router /api/v1/admin/members/{memberID}/renew [post]
func (h *MemberHandler) RenewMembership(c *gin.Context) {
	var req RenewMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Empty amount means the plan's list price.
	amount := decimal.Zero
	if req.Amount != "" {
		parsed, err := decimal.NewFromString(req.Amount)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "amount must be a decimal number")
			return
		}
		amount = parsed
	}

	result, err := h.renewMembershipUC.Execute(c.Request.Context(), usecases.RenewMembershipCommand{
		MemberID:      c.Param("memberID"),
		PlanSID:       req.PlanSID,
		PaymentMethod: req.PaymentMethod,
		Amount:        amount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"member":      dto.MemberToDTO(result.Member, biztime.NowUTC(), h.evalCfg),
		"payment_sid": result.Payment.SID(),
	})
}

// ImportMembers godoc
// @Summary Bulk import members from spreadsheet rows
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImportMembersRequest true "Rows to import"
// @Success 200 {object} utils.APIResponse
// @Router /api/v1/admin/members/import [post]
func (h *MemberHandler) ImportMembers(c *gin.Context) {
	var req ImportMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.importMembersUC.Execute(c.Request.Context(), usecases.ImportMembersCommand{
		Rows:     req.Rows,
		BaseYear: req.BaseYear,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, report)
}
