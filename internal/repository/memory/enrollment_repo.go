package memory

import (
	"context"
	"sync"

	"gymdesk-service/internal/domain/enrollment"
	xerrors "gymdesk-service/internal/pkg/errors"
)

// EnrollmentRepository is the in-process enrollment store, keyed by id with
// insertion-order listings.
type EnrollmentRepository struct {
	mu    sync.RWMutex
	items map[string]enrollment.Enrollment
	order []string
}

func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{items: make(map[string]enrollment.Enrollment)}
}

func (r *EnrollmentRepository) Insert(ctx context.Context, e *enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[e.ID] = *e
	r.order = append(r.order, e.ID)
	return nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*enrollment.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &e, nil
}

func (r *EnrollmentRepository) List(ctx context.Context) ([]*enrollment.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*enrollment.Enrollment, 0, len(r.order))
	for _, id := range r.order {
		e := r.items[id]
		out = append(out, &e)
	}
	return out, nil
}

func (r *EnrollmentRepository) Update(ctx context.Context, e *enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[e.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[e.ID] = *e
	return nil
}
