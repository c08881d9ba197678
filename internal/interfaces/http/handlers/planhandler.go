package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pulsefit/internal/application/plan/dto"
	"pulsefit/internal/application/plan/usecases"
	"pulsefit/internal/shared/logger"
	"pulsefit/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC    *usecases.CreatePlanUseCase
	updatePlanUC    *usecases.UpdatePlanUseCase
	deletePlanUC    *usecases.DeletePlanUseCase
	listPlansUC     *usecases.ListPlansUseCase
	publicCatalogUC *usecases.PublicCatalogUseCase
	logger          logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	deletePlanUC *usecases.DeletePlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	publicCatalogUC *usecases.PublicCatalogUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:    createPlanUC,
		updatePlanUC:    updatePlanUC,
		deletePlanUC:    deletePlanUC,
		listPlansUC:     listPlansUC,
		publicCatalogUC: publicCatalogUC,
		logger:          logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
	Price        string `json:"price" binding:"required"`
}

type UpdatePlanRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
	Price        string `json:"price"`
	Active       *bool  `json:"active"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "price must be a decimal number")
		return
	}

	p, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        price,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.PlanToDTO(p))
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	price := decimal.Zero
	if req.Price != "" {
		parsed, err := decimal.NewFromString(req.Price)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "price must be a decimal number")
			return
		}
		price = parsed
	}

	p, err := h.updatePlanUC.Execute(c.Request.Context(), usecases.UpdatePlanCommand{
		PlanSID:      c.Param("planSID"),
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        price,
		Active:       req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.PlanToDTO(p))
}

// DeletePlan retires a plan. Existing members keep their snapshot of the plan
// name and dates.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.deletePlanUC.Execute(c.Request.Context(), c.Param("planSID")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan retired", nil)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlansCommand{
		IncludeInactive: c.Query("include_inactive") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto.PlansToDTO(plans))
}

// PublicCatalog serves the unauthenticated plan list with markdown
// descriptions rendered to sanitized HTML.
func (h *PlanHandler) PublicCatalog(c *gin.Context) {
	plans, err := h.publicCatalogUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, plans)
}
