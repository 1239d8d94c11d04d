package student

import (
	"strings"
	"time"

	xerrors "gymdesk-service/internal/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Student is a registered gym member. The password is stored as a bcrypt
// hash and never serialized.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// New validates the fields, hashes the password and returns a fresh student.
func New(name, email, phone, password string) (*Student, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, xerrors.Validationf("email is required")
	}
	if phone == "" {
		return nil, xerrors.Validationf("phone is required")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	return &Student{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return xerrors.Validationf("name is required")
	}
	if len(name) < 3 {
		return xerrors.Validationf("name must have at least 3 characters")
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return xerrors.Validationf("password is required")
	}
	if len(password) < 6 {
		return xerrors.Validationf("password must have at least 6 characters")
	}
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *Student) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
}

func (s *Student) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.Name = name
	s.touch()
	return nil
}

func (s *Student) SetPhone(phone string) error {
	if phone == "" {
		return xerrors.Validationf("phone is required")
	}
	s.Phone = phone
	s.touch()
	return nil
}

func (s *Student) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return xerrors.Wrap(err, "failed to hash password")
	}
	s.PasswordHash = string(hash)
	s.touch()
	return nil
}

func (s *Student) touch() {
	s.UpdatedAt = time.Now().UTC()
}
