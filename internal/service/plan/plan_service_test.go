package plan_test

import (
	"context"
	"testing"

	"gymdesk-service/internal/domain/plan"
	xerrors "gymdesk-service/internal/pkg/errors"
	"gymdesk-service/internal/repository/memory"
	plansvc "gymdesk-service/internal/service/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService() *plansvc.Service {
	return plansvc.NewService(memory.NewPlanRepository(), zap.NewNop())
}

func createReq(email string) *plan.CreatePlanRequest {
	return &plan.CreatePlanRequest{
		ClientName:     "Ana Silva",
		ClientEmail:    email,
		ClientPhone:    "11999999999",
		PlanType:       plan.TypeMusculacao,
		DurationMonths: 12,
	}
}

func TestCreate_Success(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	assert.True(t, p.Active)
	assert.Equal(t, 150.0, p.MonthlyPrice())
	assert.Equal(t, 1800.0, p.TotalPrice())
	assert.Equal(t, 1440.0, p.DiscountedTotal())

	got, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreate_DuplicateActivePlan(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq("ana@x.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrDuplicateActivePlan)

	// A different email is fine.
	_, err = svc.Create(ctx, createReq("bia@x.com"))
	require.NoError(t, err)

	// After cancelling the first plan the email is free again.
	_, err = svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newService()

	req := createReq("ana@x.com")
	req.ClientName = "An"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestEdit_Partial(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	newName := "Ana Souza"
	updated, err := svc.Edit(ctx, p.ID, &plan.UpdatePlanRequest{ClientName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", updated.ClientName)
	assert.Equal(t, p.ClientEmail, updated.ClientEmail)
}

func TestEdit_InvalidFieldLeavesPlanUntouched(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	newName := "Ana Souza"
	badDuration := 0
	_, err = svc.Edit(ctx, p.ID, &plan.UpdatePlanRequest{
		ClientName:     &newName,
		DurationMonths: &badDuration,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	// No partial application: the valid name edit must not have landed.
	got, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", got.ClientName)
	assert.Equal(t, 12, got.DurationMonths)
}

func TestEdit_NotFound(t *testing.T) {
	svc := newService()

	name := "Ana Souza"
	_, err := svc.Edit(context.Background(), "missing", &plan.UpdatePlanRequest{ClientName: &name})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCancelReactivate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.Active)

	_, err = svc.Cancel(ctx, p.ID)
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)

	reactivated, err := svc.Reactivate(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)

	_, err = svc.Reactivate(ctx, p.ID)
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
}

func TestDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), xerrors.ErrNotFound)
}

func TestFilters(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	mk := func(email string, planType plan.PlanType, months int) *plan.Plan {
		req := createReq(email)
		req.PlanType = planType
		req.DurationMonths = months
		p, err := svc.Create(ctx, req)
		require.NoError(t, err)
		return p
	}

	mk("ana@x.com", plan.TypeMusculacao, 12)
	mk("bia@x.com", plan.TypeZumba, 3)
	inactive := mk("carla@x.com", plan.TypePilates, 1)
	_, err := svc.Cancel(ctx, inactive.ID)
	require.NoError(t, err)

	active, err := svc.FilterActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	inactiveList, err := svc.FilterInactive(ctx)
	require.NoError(t, err)
	assert.Len(t, inactiveList, 1)

	byType, err := svc.FilterByType(ctx, plan.TypeZumba)
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	byDuration, err := svc.FilterByDuration(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, byDuration, 1)

	byRange, err := svc.FilterByDurationRange(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, byRange, 2)

	byName, err := svc.SearchByName(ctx, "ana sil")
	require.NoError(t, err)
	assert.Len(t, byName, 3, "all test plans share the client name")

	byEmail, err := svc.SearchByEmail(ctx, "BIA@")
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	discounted, err := svc.FilterDiscounted(ctx)
	require.NoError(t, err)
	assert.Len(t, discounted, 2, "12 and 3 month plans carry a discount")
}

func TestStats(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p1, err := svc.Create(ctx, createReq("ana@x.com")) // musculacao 12mo -> 1440
	require.NoError(t, err)

	req := createReq("bia@x.com") // zumba 1mo -> 120
	req.PlanType = plan.TypeZumba
	req.DurationMonths = 1
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(0), stats.Inactive)
	assert.Equal(t, int64(1), stats.ByType[plan.TypeMusculacao])
	assert.InDelta(t, 1560.0, stats.TotalRevenue, 1e-9)

	count, err := svc.CountByType(ctx, plan.TypeZumba)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.InDelta(t, 780.0, stats.AverageRevenue, 1e-9)

	// Cancelling removes a plan from the revenue figures.
	_, err = svc.Cancel(ctx, p1.ID)
	require.NoError(t, err)

	revenue, err := svc.ActiveRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, revenue, 1e-9)

	avg, err := svc.AverageDiscountedValue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, avg, 1e-9)
}

func TestRecent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.Create(ctx, createReq(email))
		require.NoError(t, err)
	}

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
