package postgres

import (
	"context"
	"errors"
	"fmt"

	"gymdesk-service/internal/domain/student"
	xerrors "gymdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, email, phone, password_hash, created_at, updated_at`

func scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.PasswordHash,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}
	return &s, nil
}

func (r *StudentRepository) Insert(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (id, name, email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Email, s.Phone, s.PasswordHash, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`
	return scanStudent(r.db.QueryRow(ctx, query, email))
}

func (r *StudentRepository) List(ctx context.Context) ([]*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var out []*student.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	query := `
		UPDATE students
		SET name = $2, phone = $3, password_hash = $4, updated_at = $5
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, s.ID, s.Name, s.Phone, s.PasswordHash, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
