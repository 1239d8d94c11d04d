package enrollment_test

import (
	"context"
	"testing"
	"time"

	"gymdesk-service/internal/domain/enrollment"
	"gymdesk-service/internal/domain/plan"
	xerrors "gymdesk-service/internal/pkg/errors"
	"gymdesk-service/internal/repository/memory"
	enrollsvc "gymdesk-service/internal/service/enrollment"
	plansvc "gymdesk-service/internal/service/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService() (*enrollsvc.Service, *memory.EnrollmentRepository) {
	repo := memory.NewEnrollmentRepository()
	return enrollsvc.NewService(repo, zap.NewNop()), repo
}

func createReq(studentID string, start string, months int, amount float64) *enrollment.CreateEnrollmentRequest {
	return &enrollment.CreateEnrollmentRequest{
		StudentID:      studentID,
		PlanID:         "plan-1",
		StartDate:      start,
		DurationMonths: months,
		AmountPaid:     amount,
		PaymentMethod:  enrollment.PaymentPix,
	}
}

func TestCreate_Success(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, createReq("student-1", "2025-01-01", 12, 1440))
	require.NoError(t, err)

	assert.Equal(t, enrollment.StatusActive, e.Status)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), e.EndDate)

	got, err := svc.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Reference, got.Reference)
}

func TestCreate_BadStartDate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), createReq("student-1", "01/02/2025", 1, 100))
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = svc.Create(context.Background(), createReq("student-1", "", 1, 100))
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestCancel(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, createReq("student-1", "2025-01-01", 12, 1440))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, e.ID)
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)

	_, err = svc.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSweepExpirations_Idempotent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	pastStart := time.Now().AddDate(0, -3, 0).Format("2006-01-02")
	futureStart := time.Now().Format("2006-01-02")

	overdue, err := svc.Create(ctx, createReq("student-1", pastStart, 1, 100))
	require.NoError(t, err)
	current, err := svc.Create(ctx, createReq("student-2", futureStart, 12, 1440))
	require.NoError(t, err)
	cancelled, err := svc.Create(ctx, createReq("student-3", pastStart, 1, 100))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	expired, err := svc.SweepExpirations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	got, err := svc.FindByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusExpired, got.Status)

	got, err = svc.FindByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusActive, got.Status)

	got, err = svc.FindByID(ctx, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusCancelled, got.Status)

	// A second sweep over the same state changes nothing.
	expired, err = svc.SweepExpirations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}

func TestFilters(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	start := time.Now().Format("2006-01-02")

	e1, err := svc.Create(ctx, createReq("student-1", start, 12, 1440))
	require.NoError(t, err)

	req := createReq("student-2", start, 6, 800)
	req.PlanID = "plan-2"
	req.PaymentMethod = enrollment.PaymentBoleto
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	byStudent, err := svc.FindByStudent(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, e1.ID, byStudent[0].ID)

	byPlan, err := svc.FindByPlan(ctx, "plan-2")
	require.NoError(t, err)
	assert.Len(t, byPlan, 1)

	byStatus, err := svc.FilterByStatus(ctx, enrollment.StatusActive)
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byMethod, err := svc.FilterByPaymentMethod(ctx, enrollment.PaymentBoleto)
	require.NoError(t, err)
	assert.Len(t, byMethod, 1)
}

func TestExpiringWithin(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	start := time.Now().AddDate(0, -1, 0).Format("2006-01-02")

	soon, err := svc.Create(ctx, createReq("student-1", start, 2, 100))
	require.NoError(t, err)
	far, err := svc.Create(ctx, createReq("student-2", start, 12, 1440))
	require.NoError(t, err)

	// Pin the end dates so the filter boundaries are exact.
	now := time.Now()
	soon.EndDate = now.AddDate(0, 0, 5)
	require.NoError(t, repo.Update(ctx, soon))
	far.EndDate = now.AddDate(0, 0, 60)
	require.NoError(t, repo.Update(ctx, far))

	within, err := svc.ExpiringWithin(ctx, 7)
	require.NoError(t, err)
	require.Len(t, within, 1)
	assert.Equal(t, soon.ID, within[0].ID)

	within, err = svc.ExpiringWithin(ctx, 90)
	require.NoError(t, err)
	assert.Len(t, within, 2)

	// Cancelled enrollments never show up as expiring.
	_, err = svc.Cancel(ctx, soon.ID)
	require.NoError(t, err)

	within, err = svc.ExpiringWithin(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, within)
}

func TestRevenue(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	start := time.Now().Format("2006-01-02")

	_, err := svc.Create(ctx, createReq("student-1", start, 12, 1440))
	require.NoError(t, err)
	toCancel, err := svc.Create(ctx, createReq("student-2", start, 6, 800))
	require.NoError(t, err)

	total, err := svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2240.0, total, 1e-9)

	// Cancelling removes the amount from active revenue.
	_, err = svc.Cancel(ctx, toCancel.ID)
	require.NoError(t, err)

	total, err = svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1440.0, total, 1e-9)
}

func TestRevenueBetween(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("student-1", "2025-01-15", 12, 1440))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("student-2", "2025-03-10", 6, 800))
	require.NoError(t, err)
	cancelled, err := svc.Create(ctx, createReq("student-3", "2025-02-01", 1, 100))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)

	// Period revenue counts by start date regardless of status.
	total, err := svc.RevenueBetween(ctx, from, to)
	require.NoError(t, err)
	assert.InDelta(t, 1540.0, total, 1e-9)

	// Inclusive boundaries.
	from = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	to = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	total, err = svc.RevenueBetween(ctx, from, to)
	require.NoError(t, err)
	assert.InDelta(t, 2340.0, total, 1e-9)
}

// Full scenario: plan pricing feeds an enrollment that is later cancelled
// and survives the expiry sweep untouched.
func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	plans := plansvc.NewService(memory.NewPlanRepository(), zap.NewNop())
	enrollments, _ := newService()

	p, err := plans.Create(ctx, &plan.CreatePlanRequest{
		ClientName:     "Ana Silva",
		ClientEmail:    "ana@x.com",
		ClientPhone:    "11999999999",
		PlanType:       plan.TypeMusculacao,
		DurationMonths: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, p.MonthlyPrice())
	assert.Equal(t, 1800.0, p.TotalPrice())
	assert.Equal(t, 1440.0, p.DiscountedTotal())

	req := createReq("ana", "2025-01-01", 12, p.DiscountedTotal())
	req.PlanID = p.ID
	e, err := enrollments.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), e.EndDate)
	assert.Equal(t, enrollment.StatusActive, e.Status)

	cancelled, err := enrollments.Cancel(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusCancelled, cancelled.Status)

	_, err = enrollments.SweepExpirations(ctx)
	require.NoError(t, err)

	got, err := enrollments.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusCancelled, got.Status)
}
