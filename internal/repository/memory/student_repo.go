package memory

import (
	"context"
	"sync"

	"gymdesk-service/internal/domain/student"
	xerrors "gymdesk-service/internal/pkg/errors"
)

// StudentRepository is the in-process student registry.
type StudentRepository struct {
	mu    sync.RWMutex
	items map[string]student.Student
	order []string
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{items: make(map[string]student.Student)}
}

func (r *StudentRepository) Insert(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.ID] = *s
	r.order = append(r.order, s.ID)
	return nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &s, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		s := r.items[id]
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *StudentRepository) List(ctx context.Context) ([]*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*student.Student, 0, len(r.order))
	for _, id := range r.order {
		s := r.items[id]
		out = append(out, &s)
	}
	return out, nil
}

func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[s.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[s.ID] = *s
	return nil
}
