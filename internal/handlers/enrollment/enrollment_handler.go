package enrollment

import (
	"net/http"
	"time"

	"gymdesk-service/internal/domain/enrollment"
	"gymdesk-service/internal/pkg/response"
	enrollsvc "gymdesk-service/internal/service/enrollment"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollmentService *enrollsvc.Service
}

func NewEnrollmentHandler(enrollmentService *enrollsvc.Service) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req enrollment.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	e, err := h.enrollmentService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create enrollment", err)
		return
	}

	response.Success(c, http.StatusCreated, "enrollment created successfully", e.View(time.Now()))
}

func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	list, err := h.enrollmentService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list enrollments", err)
		return
	}

	response.Success(c, http.StatusOK, "enrollments retrieved", enrollment.Views(list, time.Now()))
}

func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	e, err := h.enrollmentService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "enrollment not found", err)
		return
	}

	response.Success(c, http.StatusOK, "enrollment retrieved", e.View(time.Now()))
}

func (h *EnrollmentHandler) CancelEnrollment(c *gin.Context) {
	e, err := h.enrollmentService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to cancel enrollment", err)
		return
	}

	response.Success(c, http.StatusOK, "enrollment cancelled successfully", e.View(time.Now()))
}

// SweepExpirations runs the expiry check across every enrollment.
func (h *EnrollmentHandler) SweepExpirations(c *gin.Context) {
	expired, err := h.enrollmentService.SweepExpirations(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to sweep expirations", err)
		return
	}

	response.Success(c, http.StatusOK, "expiration sweep completed", gin.H{"expired": expired})
}

// SearchEnrollments dispatches on whichever query filter is present.
func (h *EnrollmentHandler) SearchEnrollments(c *gin.Context) {
	ctx := c.Request.Context()

	var filters enrollment.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	var (
		list []*enrollment.Enrollment
		err  error
	)

	switch {
	case filters.StudentID != "":
		list, err = h.enrollmentService.FindByStudent(ctx, filters.StudentID)
	case filters.PlanID != "":
		list, err = h.enrollmentService.FindByPlan(ctx, filters.PlanID)
	case filters.Status != "":
		list, err = h.enrollmentService.FilterByStatus(ctx, filters.Status)
	case filters.PaymentMethod != "":
		list, err = h.enrollmentService.FilterByPaymentMethod(ctx, filters.PaymentMethod)
	case filters.ExpiringIn > 0:
		list, err = h.enrollmentService.ExpiringWithin(ctx, filters.ExpiringIn)
	default:
		list, err = h.enrollmentService.List(ctx)
	}

	if err != nil {
		response.FromError(c, "failed to search enrollments", err)
		return
	}

	response.Success(c, http.StatusOK, "enrollments retrieved", enrollment.Views(list, time.Now()))
}

// GetRevenue reports total active revenue, or period revenue when from/to
// are given (YYYY-MM-DD, inclusive).
func (h *EnrollmentHandler) GetRevenue(c *gin.Context) {
	ctx := c.Request.Context()

	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		total, err := h.enrollmentService.TotalRevenue(ctx)
		if err != nil {
			response.FromError(c, "failed to compute revenue", err)
			return
		}
		response.Success(c, http.StatusOK, "revenue computed", enrollment.RevenueReport{Total: total})
		return
	}

	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid from date", err)
		return
	}
	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid to date", err)
		return
	}

	total, err := h.enrollmentService.RevenueBetween(ctx, from, to)
	if err != nil {
		response.FromError(c, "failed to compute revenue", err)
		return
	}

	response.Success(c, http.StatusOK, "revenue computed", enrollment.RevenueReport{
		Total: total,
		From:  &from,
		To:    &to,
	})
}
