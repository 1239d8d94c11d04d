package plan

import "time"

type CreatePlanRequest struct {
	ClientName     string   `json:"client_name"`
	ClientEmail    string   `json:"client_email"`
	ClientPhone    string   `json:"client_phone"`
	PlanType       PlanType `json:"plan_type"`
	DurationMonths int      `json:"duration_months"`
}

// UpdatePlanRequest carries a partial edit; only non-nil fields are applied.
type UpdatePlanRequest struct {
	ClientName     *string   `json:"client_name"`
	ClientEmail    *string   `json:"client_email"`
	ClientPhone    *string   `json:"client_phone"`
	PlanType       *PlanType `json:"plan_type"`
	DurationMonths *int      `json:"duration_months"`
}

// View is the serialized shape of a plan, entity fields plus the derived
// pricing.
type View struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email"`
	ClientPhone     string    `json:"client_phone"`
	PlanType        PlanType  `json:"plan_type"`
	DurationMonths  int       `json:"duration_months"`
	Active          bool      `json:"active"`
	MonthlyPrice    float64   `json:"monthly_price"`
	TotalPrice      float64   `json:"total_price"`
	DiscountPercent float64   `json:"discount_percent"`
	DiscountedTotal float64   `json:"discounted_total"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// View builds the response shape for a plan.
func (p *Plan) View() View {
	return View{
		ID:              p.ID,
		ClientName:      p.ClientName,
		ClientEmail:     p.ClientEmail,
		ClientPhone:     p.ClientPhone,
		PlanType:        p.PlanType,
		DurationMonths:  p.DurationMonths,
		Active:          p.Active,
		MonthlyPrice:    p.MonthlyPrice(),
		TotalPrice:      p.TotalPrice(),
		DiscountPercent: p.DiscountPercent(),
		DiscountedTotal: p.DiscountedTotal(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Views maps a slice of plans to their response shapes.
func Views(plans []*Plan) []View {
	out := make([]View, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.View())
	}
	return out
}

// Stats summarizes the plan collection.
type Stats struct {
	Total          int64              `json:"total"`
	Active         int64              `json:"active"`
	Inactive       int64              `json:"inactive"`
	ByType         map[PlanType]int64 `json:"by_type"`
	TotalRevenue   float64            `json:"total_revenue"`
	AverageRevenue float64            `json:"average_revenue"`
}
