package postgres

import (
	"context"
	"errors"
	"fmt"

	"gymdesk-service/internal/domain/plan"
	xerrors "gymdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, client_name, client_email, client_phone, plan_type,
	duration_months, active, created_at, updated_at`

func scanPlan(row pgx.Row) (*plan.Plan, error) {
	var p plan.Plan
	err := row.Scan(
		&p.ID, &p.ClientName, &p.ClientEmail, &p.ClientPhone, &p.PlanType,
		&p.DurationMonths, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}
	return &p, nil
}

func (r *PlanRepository) Insert(ctx context.Context, p *plan.Plan) error {
	query := `
		INSERT INTO plans (
			id, client_name, client_email, client_phone, plan_type,
			duration_months, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.ClientName, p.ClientEmail, p.ClientPhone, p.PlanType,
		p.DurationMonths, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	return scanPlan(r.db.QueryRow(ctx, query, id))
}

func (r *PlanRepository) FindActiveByEmail(ctx context.Context, email string) (*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE client_email = $1 AND active LIMIT 1`
	return scanPlan(r.db.QueryRow(ctx, query, email))
}

func (r *PlanRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var out []*plan.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	query := `
		UPDATE plans
		SET client_name = $2, client_email = $3, client_phone = $4,
		    plan_type = $5, duration_months = $6, active = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.ClientName, p.ClientEmail, p.ClientPhone,
		p.PlanType, p.DurationMonths, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
