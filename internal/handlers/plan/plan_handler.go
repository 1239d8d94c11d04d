package plan

import (
	"net/http"
	"strconv"

	"gymdesk-service/internal/domain/plan"
	"gymdesk-service/internal/pkg/response"
	plansvc "gymdesk-service/internal/service/plan"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService *plansvc.Service
}

func NewPlanHandler(planService *plansvc.Service) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// ListTypes returns the plan type catalog with monthly prices.
func (h *PlanHandler) ListTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, "plan types retrieved", plan.ListCatalog())
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req plan.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.planService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create plan", err)
		return
	}

	response.Success(c, http.StatusCreated, "plan created successfully", p.View())
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", plan.Views(plans))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	p, err := h.planService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "plan not found", err)
		return
	}

	response.Success(c, http.StatusOK, "plan retrieved", p.View())
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req plan.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.planService.Edit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan updated successfully", p.View())
}

func (h *PlanHandler) CancelPlan(c *gin.Context) {
	p, err := h.planService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to cancel plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan cancelled successfully", p.View())
}

func (h *PlanHandler) ReactivatePlan(c *gin.Context) {
	p, err := h.planService.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to reactivate plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan reactivated successfully", p.View())
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.planService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan deleted successfully", nil)
}

// SearchPlans dispatches on whichever query filter is present.
func (h *PlanHandler) SearchPlans(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		plans []*plan.Plan
		err   error
	)

	switch {
	case c.Query("name") != "":
		plans, err = h.planService.SearchByName(ctx, c.Query("name"))
	case c.Query("email") != "":
		plans, err = h.planService.SearchByEmail(ctx, c.Query("email"))
	case c.Query("type") != "":
		plans, err = h.planService.FilterByType(ctx, plan.PlanType(c.Query("type")))
	case c.Query("status") == "active":
		plans, err = h.planService.FilterActive(ctx)
	case c.Query("status") == "inactive":
		plans, err = h.planService.FilterInactive(ctx)
	case c.Query("duration") != "":
		months, convErr := strconv.Atoi(c.Query("duration"))
		if convErr != nil {
			response.Error(c, http.StatusBadRequest, "invalid duration", convErr)
			return
		}
		plans, err = h.planService.FilterByDuration(ctx, months)
	case c.Query("min_duration") != "" || c.Query("max_duration") != "":
		min, _ := strconv.Atoi(c.DefaultQuery("min_duration", "1"))
		max, _ := strconv.Atoi(c.DefaultQuery("max_duration", "120"))
		plans, err = h.planService.FilterByDurationRange(ctx, min, max)
	case c.Query("discounted") == "true":
		plans, err = h.planService.FilterDiscounted(ctx)
	default:
		plans, err = h.planService.List(ctx)
	}

	if err != nil {
		response.FromError(c, "failed to search plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", plan.Views(plans))
}

func (h *PlanHandler) RecentPlans(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	plans, err := h.planService.Recent(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, "failed to list recent plans", err)
		return
	}

	response.Success(c, http.StatusOK, "recent plans retrieved", plan.Views(plans))
}

func (h *PlanHandler) GetStats(c *gin.Context) {
	stats, err := h.planService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute plan stats", err)
		return
	}

	response.Success(c, http.StatusOK, "plan stats retrieved", stats)
}
