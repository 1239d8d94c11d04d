package student

import (
	"context"
	"errors"
	"strings"

	"gymdesk-service/internal/domain/student"
	xerrors "gymdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the contract this service expects from the persistence layer.
type Repository interface {
	Insert(ctx context.Context, s *student.Student) error
	FindByID(ctx context.Context, id string) (*student.Student, error)
	FindByEmail(ctx context.Context, email string) (*student.Student, error)
	List(ctx context.Context) ([]*student.Student, error)
	Update(ctx context.Context, s *student.Student) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register creates a student, enforcing a unique email.
func (s *Service) Register(ctx context.Context, req *student.CreateStudentRequest) (*student.Student, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(err, "failed to check existing students")
	}
	if existing != nil {
		return nil, xerrors.ErrDuplicateEmail
	}

	st, err := student.New(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, st); err != nil {
		return nil, xerrors.Wrap(err, "failed to store student")
	}

	s.logger.Info("student registered",
		zap.String("student_id", st.ID),
		zap.String("email", st.Email),
	)
	return st, nil
}

// Authenticate verifies the credentials and returns the student.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*student.Student, error) {
	st, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if !st.VerifyPassword(password) {
		return nil, xerrors.ErrUnauthorized
	}
	return st, nil
}

// Edit applies a partial update; every provided field is validated before
// any of them is applied.
func (s *Service) Edit(ctx context.Context, id string, req *student.UpdateStudentRequest) (*student.Student, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := student.ValidateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil && *req.Phone == "" {
		return nil, xerrors.Validationf("phone is required")
	}
	if req.Password != nil {
		if err := student.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		_ = st.SetName(*req.Name)
	}
	if req.Phone != nil {
		_ = st.SetPhone(*req.Phone)
	}
	if req.Password != nil {
		if err := st.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, xerrors.Wrap(err, "failed to store student update")
	}

	s.logger.Info("student updated", zap.String("student_id", st.ID))
	return st, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*student.Student, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]*student.Student, error) {
	return s.repo.List(ctx)
}

// SearchByName matches student names case-insensitively by substring.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*student.Student, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	out := make([]*student.Student, 0, len(list))
	for _, st := range list {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			out = append(out, st)
		}
	}
	return out, nil
}
