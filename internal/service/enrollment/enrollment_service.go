package enrollment

import (
	"context"
	"time"

	"gymdesk-service/internal/domain/enrollment"
	xerrors "gymdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the contract this service expects from the persistence
// layer. Enrollments are never deleted, only cancelled or expired.
type Repository interface {
	Insert(ctx context.Context, e *enrollment.Enrollment) error
	FindByID(ctx context.Context, id string) (*enrollment.Enrollment, error)
	List(ctx context.Context) ([]*enrollment.Enrollment, error)
	Update(ctx context.Context, e *enrollment.Enrollment) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// startDateLayouts accepted on the creation payload.
var startDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseStartDate(raw string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, xerrors.Validationf("start date %q must be YYYY-MM-DD or RFC 3339", raw)
}

// Create validates the payload and stores a new active enrollment. Student
// and plan ids are opaque references; resolving them belongs to callers.
func (s *Service) Create(ctx context.Context, req *enrollment.CreateEnrollmentRequest) (*enrollment.Enrollment, error) {
	if req.StartDate == "" {
		return nil, xerrors.Validationf("start date is required")
	}
	start, err := parseStartDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	e, err := enrollment.New(req.StudentID, req.PlanID, start, req.DurationMonths, req.AmountPaid, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, xerrors.Wrap(err, "failed to store enrollment")
	}

	s.logger.Info("enrollment created",
		zap.String("enrollment_id", e.ID),
		zap.String("reference", e.Reference),
		zap.String("student_id", e.StudentID),
		zap.String("plan_id", e.PlanID),
		zap.Float64("amount_paid", e.AmountPaid),
	)
	return e, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*enrollment.Enrollment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*enrollment.Enrollment, error) {
	return s.repo.List(ctx)
}

// Cancel marks an enrollment cancelled. Terminal statuses are rejected here;
// the entity itself does not guard the transition.
func (s *Service) Cancel(ctx context.Context, id string) (*enrollment.Enrollment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status != enrollment.StatusActive {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			"enrollment is already "+string(e.Status))
	}

	e.Cancel()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, xerrors.Wrap(err, "failed to store enrollment update")
	}

	s.logger.Info("enrollment cancelled", zap.String("enrollment_id", e.ID))
	return e, nil
}

// SweepExpirations flips every active, past-due enrollment to expired.
// Idempotent; safe to run periodically or before status-sensitive queries.
func (s *Service) SweepExpirations(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	expired := 0
	for _, e := range list {
		if !e.CheckExpiry(now) {
			continue
		}
		if err := s.repo.Update(ctx, e); err != nil {
			return expired, xerrors.Wrap(err, "failed to store expiry")
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("expiry sweep completed", zap.Int("expired", expired))
	}
	return expired, nil
}

// ---- Filters. Pure reads, insertion order preserved.

func (s *Service) FindByStudent(ctx context.Context, studentID string) ([]*enrollment.Enrollment, error) {
	return s.filter(ctx, func(e *enrollment.Enrollment) bool { return e.StudentID == studentID })
}

func (s *Service) FindByPlan(ctx context.Context, planID string) ([]*enrollment.Enrollment, error) {
	return s.filter(ctx, func(e *enrollment.Enrollment) bool { return e.PlanID == planID })
}

func (s *Service) FilterByStatus(ctx context.Context, status enrollment.Status) ([]*enrollment.Enrollment, error) {
	return s.filter(ctx, func(e *enrollment.Enrollment) bool { return e.Status == status })
}

func (s *Service) FilterByPaymentMethod(ctx context.Context, method enrollment.PaymentMethod) ([]*enrollment.Enrollment, error) {
	return s.filter(ctx, func(e *enrollment.Enrollment) bool { return e.PaymentMethod == method })
}

// ExpiringWithin returns active enrollments with 0 < remaining days <= n.
func (s *Service) ExpiringWithin(ctx context.Context, days int) ([]*enrollment.Enrollment, error) {
	now := time.Now()
	return s.filter(ctx, func(e *enrollment.Enrollment) bool {
		if e.Status != enrollment.StatusActive {
			return false
		}
		remaining := e.RemainingDays(now)
		return remaining > 0 && remaining <= days
	})
}

func (s *Service) filter(ctx context.Context, keep func(*enrollment.Enrollment) bool) ([]*enrollment.Enrollment, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*enrollment.Enrollment, 0, len(list))
	for _, e := range list {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ---- Aggregates.

// TotalRevenue sums the amount paid over active enrollments only.
func (s *Service) TotalRevenue(ctx context.Context) (float64, error) {
	list, err := s.FilterByStatus(ctx, enrollment.StatusActive)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range list {
		total += e.AmountPaid
	}
	return total, nil
}

// RevenueBetween sums the amount paid over enrollments whose start date
// falls in [from, to], regardless of status.
func (s *Service) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range list {
		if e.StartDate.Before(from) || e.StartDate.After(to) {
			continue
		}
		total += e.AmountPaid
	}
	return total, nil
}
