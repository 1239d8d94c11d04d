package auth

import (
	"context"
	"crypto/subtle"

	"gymdesk-service/internal/pkg/token"
	studentsvc "gymdesk-service/internal/service/student"

	xerrors "gymdesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Service authenticates callers and issues tokens. Students authenticate
// against the registry; the single admin identity comes from configuration.
type Service struct {
	students      *studentsvc.Service
	tokens        *token.Manager
	adminEmail    string
	adminPassword string
	logger        *zap.Logger
}

func NewService(students *studentsvc.Service, tokens *token.Manager, adminEmail, adminPassword string, logger *zap.Logger) *Service {
	return &Service{
		students:      students,
		tokens:        tokens,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// LoginResult is returned to the handler on successful login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login checks the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, xerrors.Validationf("email and password are required")
	}

	if s.adminEmail != "" && email == s.adminEmail {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
			return nil, xerrors.ErrUnauthorized
		}
		signed, err := s.tokens.Generate(s.adminEmail, RoleAdmin)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to issue token")
		}
		s.logger.Info("admin logged in", zap.String("email", email))
		return &LoginResult{Token: signed, UserID: s.adminEmail, Role: RoleAdmin}, nil
	}

	st, err := s.students.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	signed, err := s.tokens.Generate(st.ID, RoleStudent)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to issue token")
	}
	s.logger.Info("student logged in", zap.String("student_id", st.ID))
	return &LoginResult{Token: signed, UserID: st.ID, Role: RoleStudent}, nil
}

// Verify validates a token string and returns its claims.
func (s *Service) Verify(tokenString string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	return claims, nil
}
