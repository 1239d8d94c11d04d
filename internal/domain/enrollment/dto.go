package enrollment

import "time"

// CreateEnrollmentRequest is the creation payload. StartDate accepts
// YYYY-MM-DD or RFC 3339.
type CreateEnrollmentRequest struct {
	StudentID      string        `json:"student_id"`
	PlanID         string        `json:"plan_id"`
	StartDate      string        `json:"start_date"`
	DurationMonths int           `json:"duration_months"`
	AmountPaid     float64       `json:"amount_paid"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
}

// ListFilters narrows enrollment queries. Zero values mean "no filter".
type ListFilters struct {
	StudentID     string        `form:"student_id"`
	PlanID        string        `form:"plan_id"`
	Status        Status        `form:"status"`
	PaymentMethod PaymentMethod `form:"payment_method"`
	ExpiringIn    int           `form:"expiring_in"`
}

// View is the serialized shape of an enrollment, including remaining days.
type View struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	StudentID     string        `json:"student_id"`
	PlanID        string        `json:"plan_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	AmountPaid    float64       `json:"amount_paid"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        Status        `json:"status"`
	RemainingDays int           `json:"remaining_days"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// View builds the response shape, computing remaining days against now.
func (e *Enrollment) View(now time.Time) View {
	return View{
		ID:            e.ID,
		Reference:     e.Reference,
		StudentID:     e.StudentID,
		PlanID:        e.PlanID,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		AmountPaid:    e.AmountPaid,
		PaymentMethod: e.PaymentMethod,
		Status:        e.Status,
		RemainingDays: e.RemainingDays(now),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// Views maps a slice of enrollments to their response shapes.
func Views(list []*Enrollment, now time.Time) []View {
	out := make([]View, 0, len(list))
	for _, e := range list {
		out = append(out, e.View(now))
	}
	return out
}

// RevenueReport is the aggregate returned by the revenue endpoints.
type RevenueReport struct {
	Total float64    `json:"total"`
	From  *time.Time `json:"from,omitempty"`
	To    *time.Time `json:"to,omitempty"`
}
