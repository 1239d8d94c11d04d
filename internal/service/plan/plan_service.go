package plan

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"gymdesk-service/internal/domain/plan"
	xerrors "gymdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the contract this service expects from the persistence
// layer (in-memory or postgres).
type Repository interface {
	Insert(ctx context.Context, p *plan.Plan) error
	FindByID(ctx context.Context, id string) (*plan.Plan, error)
	FindActiveByEmail(ctx context.Context, email string) (*plan.Plan, error)
	List(ctx context.Context) ([]*plan.Plan, error)
	Update(ctx context.Context, p *plan.Plan) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger

	// mu serializes the read-active-then-insert sequence so the
	// one-active-plan-per-email rule holds under concurrent creates.
	mu sync.Mutex
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create builds a new plan, rejecting a second active plan for the same
// client email.
func (s *Service) Create(ctx context.Context, req *plan.CreatePlanRequest) (*plan.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindActiveByEmail(ctx, req.ClientEmail)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(err, "failed to check existing plans")
	}
	if existing != nil {
		return nil, xerrors.ErrDuplicateActivePlan
	}

	p, err := plan.New(req.ClientName, req.ClientEmail, req.ClientPhone, req.PlanType, req.DurationMonths)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, xerrors.Wrap(err, "failed to store plan")
	}

	s.logger.Info("plan created",
		zap.String("plan_id", p.ID),
		zap.String("client_email", p.ClientEmail),
		zap.String("plan_type", string(p.PlanType)),
		zap.Int("duration_months", p.DurationMonths),
	)
	return p, nil
}

// Edit applies a partial update. Every provided field is validated before
// any of them is applied, so a failed edit leaves the plan untouched.
func (s *Service) Edit(ctx context.Context, id string, req *plan.UpdatePlanRequest) (*plan.Plan, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		if err := plan.ValidateClientName(*req.ClientName); err != nil {
			return nil, err
		}
	}
	if req.ClientEmail != nil {
		if err := plan.ValidateClientEmail(*req.ClientEmail); err != nil {
			return nil, err
		}
	}
	if req.ClientPhone != nil {
		if err := plan.ValidateClientPhone(*req.ClientPhone); err != nil {
			return nil, err
		}
	}
	if req.PlanType != nil {
		if err := plan.ValidatePlanType(*req.PlanType); err != nil {
			return nil, err
		}
	}
	if req.DurationMonths != nil {
		if err := plan.ValidateDuration(*req.DurationMonths); err != nil {
			return nil, err
		}
	}

	if req.ClientName != nil {
		_ = p.SetClientName(*req.ClientName)
	}
	if req.ClientEmail != nil {
		_ = p.SetClientEmail(*req.ClientEmail)
	}
	if req.ClientPhone != nil {
		_ = p.SetClientPhone(*req.ClientPhone)
	}
	if req.PlanType != nil {
		_ = p.SetPlanType(*req.PlanType)
	}
	if req.DurationMonths != nil {
		_ = p.SetDurationMonths(*req.DurationMonths)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, xerrors.Wrap(err, "failed to store plan update")
	}

	s.logger.Info("plan updated", zap.String("plan_id", p.ID))
	return p, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*plan.Plan, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*plan.Plan, error) {
	return s.repo.List(ctx)
}

// Cancel deactivates a plan. Already-inactive plans are rejected.
func (s *Service) Cancel(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, xerrors.Wrap(err, "failed to store plan update")
	}

	s.logger.Info("plan cancelled", zap.String("plan_id", p.ID))
	return p, nil
}

// Reactivate flips an inactive plan back to active.
func (s *Service) Reactivate(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Activate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, xerrors.Wrap(err, "failed to store plan update")
	}

	s.logger.Info("plan reactivated", zap.String("plan_id", p.ID))
	return p, nil
}

// Delete removes a plan outright, with no state checks.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("plan deleted", zap.String("plan_id", id))
	return nil
}

// ---- Filters. All are pure reads over the collection.

func (s *Service) FilterActive(ctx context.Context) ([]*plan.Plan, error) {
	return s.filter(ctx, func(p *plan.Plan) bool { return p.Active })
}

func (s *Service) FilterInactive(ctx context.Context) ([]*plan.Plan, error) {
	return s.filter(ctx, func(p *plan.Plan) bool { return !p.Active })
}

func (s *Service) FilterByType(ctx context.Context, t plan.PlanType) ([]*plan.Plan, error) {
	return s.filter(ctx, func(p *plan.Plan) bool { return p.PlanType == t })
}

func (s *Service) FilterByDuration(ctx context.Context, months int) ([]*plan.Plan, error) {
	return s.filter(ctx, func(p *plan.Plan) bool { return p.DurationMonths == months })
}

func (s *Service) FilterByDurationRange(ctx context.Context, min, max int) ([]*plan.Plan, error) {
	return s.filter(ctx, func(p *plan.Plan) bool {
		return p.DurationMonths >= min && p.DurationMonths <= max
	})
}

// SearchByName matches the client name case-insensitively by substring.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*plan.Plan, error) {
	needle := strings.ToLower(name)
	return s.filter(ctx, func(p *plan.Plan) bool {
		return strings.Contains(strings.ToLower(p.ClientName), needle)
	})
}

// SearchByEmail matches the client email case-insensitively by substring.
func (s *Service) SearchByEmail(ctx context.Context, email string) ([]*plan.Plan, error) {
	needle := strings.ToLower(email)
	return s.filter(ctx, func(p *plan.Plan) bool {
		return strings.Contains(strings.ToLower(p.ClientEmail), needle)
	})
}

// FilterDiscounted returns plans whose duration earns any discount.
func (s *Service) FilterDiscounted(ctx context.Context) ([]*plan.Plan, error) {
	return s.filter(ctx, func(p *plan.Plan) bool { return p.DiscountPercent() > 0 })
}

// Recent returns the newest n plans by creation time.
func (s *Service) Recent(ctx context.Context, n int) ([]*plan.Plan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	if n > 0 && n < len(plans) {
		plans = plans[:n]
	}
	return plans, nil
}

func (s *Service) filter(ctx context.Context, keep func(*plan.Plan) bool) ([]*plan.Plan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*plan.Plan, 0, len(plans))
	for _, p := range plans {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- Aggregates.

func (s *Service) CountByType(ctx context.Context, t plan.PlanType) (int64, error) {
	plans, err := s.FilterByType(ctx, t)
	if err != nil {
		return 0, err
	}
	return int64(len(plans)), nil
}

// ActiveRevenue sums the discounted total over active plans.
func (s *Service) ActiveRevenue(ctx context.Context) (float64, error) {
	plans, err := s.FilterActive(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range plans {
		total += p.DiscountedTotal()
	}
	return total, nil
}

// AverageDiscountedValue is the mean discounted total across active plans,
// zero when there are none.
func (s *Service) AverageDiscountedValue(ctx context.Context) (float64, error) {
	plans, err := s.FilterActive(ctx)
	if err != nil {
		return 0, err
	}
	if len(plans) == 0 {
		return 0, nil
	}
	var total float64
	for _, p := range plans {
		total += p.DiscountedTotal()
	}
	return total / float64(len(plans)), nil
}

// Stats builds the summary report over the whole collection.
func (s *Service) Stats(ctx context.Context) (*plan.Stats, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &plan.Stats{ByType: make(map[plan.PlanType]int64)}
	var activeTotal float64
	for _, p := range plans {
		stats.Total++
		stats.ByType[p.PlanType]++
		if p.Active {
			stats.Active++
			activeTotal += p.DiscountedTotal()
		} else {
			stats.Inactive++
		}
	}
	stats.TotalRevenue = activeTotal
	if stats.Active > 0 {
		stats.AverageRevenue = activeTotal / float64(stats.Active)
	}
	return stats, nil
}
