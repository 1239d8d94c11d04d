package memory

import (
	"context"
	"sync"

	"gymdesk-service/internal/domain/plan"
	xerrors "gymdesk-service/internal/pkg/errors"
)

// PlanRepository is an in-process store keyed by id, preserving insertion
// order for listings. Each instance owns its own state; nothing is shared
// between instances.
type PlanRepository struct {
	mu    sync.RWMutex
	items map[string]plan.Plan
	order []string
}

func NewPlanRepository() *PlanRepository {
	return &PlanRepository{items: make(map[string]plan.Plan)}
}

func (r *PlanRepository) Insert(ctx context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &p, nil
}

func (r *PlanRepository) FindActiveByEmail(ctx context.Context, email string) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		p := r.items[id]
		if p.Active && p.ClientEmail == email {
			return &p, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *PlanRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*plan.Plan, 0, len(r.order))
	for _, id := range r.order {
		p := r.items[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
