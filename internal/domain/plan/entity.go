package plan

import (
	"regexp"
	"strings"
	"time"

	xerrors "gymdesk-service/internal/pkg/errors"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Plan is a client's subscription offering. Pricing is derived from the
// catalog and the duration, never stored.
type Plan struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientEmail    string    `json:"client_email"`
	ClientPhone    string    `json:"client_phone"`
	PlanType       PlanType  `json:"plan_type"`
	DurationMonths int       `json:"duration_months"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// New validates every field and returns a fresh active plan.
func New(clientName, clientEmail, clientPhone string, planType PlanType, durationMonths int) (*Plan, error) {
	if err := ValidateClientName(clientName); err != nil {
		return nil, err
	}
	if err := ValidateClientEmail(clientEmail); err != nil {
		return nil, err
	}
	if err := ValidateClientPhone(clientPhone); err != nil {
		return nil, err
	}
	if err := ValidatePlanType(planType); err != nil {
		return nil, err
	}
	if err := ValidateDuration(durationMonths); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Plan{
		ID:             uuid.NewString(),
		ClientName:     clientName,
		ClientEmail:    clientEmail,
		ClientPhone:    clientPhone,
		PlanType:       planType,
		DurationMonths: durationMonths,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ---- Field validators. Shared by the constructor, the setters and the
// service's atomic multi-field edit.

func ValidateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return xerrors.Validationf("client name is required")
	}
	if len(name) < 3 {
		return xerrors.Validationf("client name must have at least 3 characters")
	}
	return nil
}

func ValidateClientEmail(email string) error {
	if email == "" {
		return xerrors.Validationf("client email is required")
	}
	if !emailPattern.MatchString(email) {
		return xerrors.Validationf("client email %q is not a valid address", email)
	}
	return nil
}

func ValidateClientPhone(phone string) error {
	if phone == "" {
		return xerrors.Validationf("client phone is required")
	}
	if len(phone) < 10 {
		return xerrors.Validationf("client phone must have at least 10 digits")
	}
	return nil
}

func ValidatePlanType(t PlanType) error {
	if t == "" {
		return xerrors.Validationf("plan type is required")
	}
	if !ValidType(t) {
		return xerrors.Wrap(xerrors.ErrUnknownPlanType, string(t))
	}
	return nil
}

func ValidateDuration(months int) error {
	if months <= 0 {
		return xerrors.Validationf("duration must be greater than zero months")
	}
	return nil
}

// ---- Setters. Each re-validates its own field and bumps UpdatedAt.

func (p *Plan) SetClientName(name string) error {
	if err := ValidateClientName(name); err != nil {
		return err
	}
	p.ClientName = name
	p.touch()
	return nil
}

func (p *Plan) SetClientEmail(email string) error {
	if err := ValidateClientEmail(email); err != nil {
		return err
	}
	p.ClientEmail = email
	p.touch()
	return nil
}

func (p *Plan) SetClientPhone(phone string) error {
	if err := ValidateClientPhone(phone); err != nil {
		return err
	}
	p.ClientPhone = phone
	p.touch()
	return nil
}

func (p *Plan) SetPlanType(t PlanType) error {
	if err := ValidatePlanType(t); err != nil {
		return err
	}
	p.PlanType = t
	p.touch()
	return nil
}

func (p *Plan) SetDurationMonths(months int) error {
	if err := ValidateDuration(months); err != nil {
		return err
	}
	p.DurationMonths = months
	p.touch()
	return nil
}

// Activate flips an inactive plan back to active.
func (p *Plan) Activate() error {
	if p.Active {
		return xerrors.Wrap(xerrors.ErrInvalidTransition, "plan is already active")
	}
	p.Active = true
	p.touch()
	return nil
}

// Deactivate cancels an active plan.
func (p *Plan) Deactivate() error {
	if !p.Active {
		return xerrors.Wrap(xerrors.ErrInvalidTransition, "plan is already inactive")
	}
	p.Active = false
	p.touch()
	return nil
}

func (p *Plan) touch() {
	p.UpdatedAt = time.Now().UTC()
}

// ---- Pure pricing derivations. Duration is always > 0 by invariant, so
// none of these can fail.

// MonthlyPrice is the catalog price for the plan's type.
func (p *Plan) MonthlyPrice() float64 {
	return catalog[p.PlanType]
}

// TotalPrice is the undiscounted price over the full duration.
func (p *Plan) TotalPrice() float64 {
	return p.MonthlyPrice() * float64(p.DurationMonths)
}

// DiscountPercent returns the duration-tier discount: 20% from 12 months,
// 10% from 6, 5% from 3, none below that.
func (p *Plan) DiscountPercent() float64 {
	switch {
	case p.DurationMonths >= 12:
		return 20
	case p.DurationMonths >= 6:
		return 10
	case p.DurationMonths >= 3:
		return 5
	default:
		return 0
	}
}

// DiscountedTotal applies the tier discount to the total price.
func (p *Plan) DiscountedTotal() float64 {
	return p.TotalPrice() * (1 - p.DiscountPercent()/100)
}
