package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// Create создаёт тарифный план
func (r *PlanRepository) Create(ctx context.Context, p *model.MembershipPlan) error {
	query := `
		INSERT INTO membership_plans
			(id, name, description, price, duration_months, features, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.DurationMonths,
		p.Features,
		p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}

	return nil
}

// GetByID получает план по ID
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MembershipPlan, error) {
	query := `
		SELECT id, name, description, price, duration_months, features,
		       is_active, created_at, updated_at
		FROM membership_plans
		WHERE id = $1
	`

	var p model.MembershipPlan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.DurationMonths,
		&p.Features,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan by id: %w", err)
	}

	return &p, nil
}

// GetActive получает активные планы по цене
func (r *PlanRepository) GetActive(ctx context.Context) ([]*model.MembershipPlan, error) {
	query := `
		SELECT id, name, description, price, duration_months, features,
		       is_active, created_at, updated_at
		FROM membership_plans
		WHERE is_active = TRUE
		ORDER BY price
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get active plans: %w", err)
	}
	defer rows.Close()

	var plans []*model.MembershipPlan
	for rows.Next() {
		var p model.MembershipPlan
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.DurationMonths,
			&p.Features,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, &p)
	}

	return plans, nil
}
