package enrollment

import (
	"math"
	"time"

	xerrors "gymdesk-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBoleto:
		return true
	default:
		return false
	}
}

// Enrollment is a time-boxed purchase linking a student to a plan. EndDate is
// derived once at creation and never recomputed.
type Enrollment struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	StudentID     string        `json:"student_id"`
	PlanID        string        `json:"plan_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	AmountPaid    float64       `json:"amount_paid"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// New validates the payload and computes the end date as start plus the
// duration in calendar months. Month arithmetic follows time.AddDate
// normalization: Jan 31 + 1 month lands in early March.
func New(studentID, planID string, startDate time.Time, durationMonths int, amountPaid float64, method PaymentMethod) (*Enrollment, error) {
	if studentID == "" {
		return nil, xerrors.Validationf("student id is required")
	}
	if planID == "" {
		return nil, xerrors.Validationf("plan id is required")
	}
	if startDate.IsZero() {
		return nil, xerrors.Validationf("start date is required")
	}
	if durationMonths <= 0 {
		return nil, xerrors.Validationf("duration must be greater than zero months")
	}
	if amountPaid <= 0 {
		return nil, xerrors.Validationf("amount paid must be greater than zero")
	}
	if method == "" {
		return nil, xerrors.Validationf("payment method is required")
	}
	if !ValidPaymentMethod(method) {
		return nil, xerrors.Validationf("payment method %q is not accepted", method)
	}

	now := time.Now().UTC()
	return &Enrollment{
		ID:            uuid.NewString(),
		Reference:     "ENR-" + ulid.Make().String(),
		StudentID:     studentID,
		PlanID:        planID,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, durationMonths, 0),
		AmountPaid:    amountPaid,
		PaymentMethod: method,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Cancel marks the enrollment cancelled. Unconditional at the entity level;
// the service guards the transition.
func (e *Enrollment) Cancel() {
	e.Status = StatusCancelled
	e.UpdatedAt = time.Now().UTC()
}

// CheckExpiry flips an active, past-due enrollment to expired. Idempotent;
// expired and cancelled records are never touched. Reports whether the
// status changed.
func (e *Enrollment) CheckExpiry(now time.Time) bool {
	if e.Status == StatusActive && e.EndDate.Before(now) {
		e.Status = StatusExpired
		e.UpdatedAt = time.Now().UTC()
		return true
	}
	return false
}

// RemainingDays counts whole days until the end date, rounding partial days
// up. Negative once the enrollment is at least a day overdue.
func (e *Enrollment) RemainingDays(now time.Time) int {
	return int(math.Ceil(e.EndDate.Sub(now).Hours() / 24))
}
