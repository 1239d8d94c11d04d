package plan

import xerrors "gymdesk-service/internal/pkg/errors"

// PlanType identifies an offering in the price catalog.
type PlanType string

const (
	TypeMusculacao        PlanType = "musculacao"
	TypeZumba             PlanType = "zumba"
	TypePilates           PlanType = "pilates"
	TypeMusculacaoPilates PlanType = "musculacao+pilates"
	TypeZumbaPilates      PlanType = "zumba+pilates"
	TypeMusculacaoZumba   PlanType = "musculacao+zumba"
)

// catalog maps every valid plan type to its monthly price. Read-only after
// process start.
var catalog = map[PlanType]float64{
	TypeMusculacao:        150,
	TypeZumba:             120,
	TypePilates:           210,
	TypeMusculacaoPilates: 350,
	TypeZumbaPilates:      299.99,
	TypeMusculacaoZumba:   200,
}

// order keeps ListCatalog output stable.
var order = []PlanType{
	TypeMusculacao,
	TypeZumba,
	TypePilates,
	TypeMusculacaoPilates,
	TypeZumbaPilates,
	TypeMusculacaoZumba,
}

// CatalogEntry is one (type, monthly price) pair from the catalog.
type CatalogEntry struct {
	Type         PlanType `json:"type"`
	MonthlyPrice float64  `json:"monthly_price"`
}

// PriceOf returns the monthly price for a plan type.
func PriceOf(t PlanType) (float64, error) {
	price, ok := catalog[t]
	if !ok {
		return 0, xerrors.ErrUnknownPlanType
	}
	return price, nil
}

// ListCatalog returns every catalog entry in a stable order.
func ListCatalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(order))
	for _, t := range order {
		entries = append(entries, CatalogEntry{Type: t, MonthlyPrice: catalog[t]})
	}
	return entries
}

// ValidType reports whether t exists in the catalog.
func ValidType(t PlanType) bool {
	_, ok := catalog[t]
	return ok
}
