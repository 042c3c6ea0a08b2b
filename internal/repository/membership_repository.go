package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

const membershipColumns = `
	id, member_id, plan_id, status, start_date, end_date,
	freeze_start_date, freeze_end_date, freeze_reason, original_end_date,
	cancellation_reason, cancellation_date,
	payment_status, payment_reference, amount, created_at, updated_at`

// Create создаёт абонемент после назначения плана участнику
func (r *MembershipRepository) Create(ctx context.Context, m *model.MemberMembership) error {
	query := `
		INSERT INTO member_memberships
			(id, member_id, plan_id, status, start_date, end_date,
			 payment_status, payment_reference, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		m.ID,
		m.MemberID,
		m.PlanID,
		m.Status,
		m.StartDate,
		m.EndDate,
		m.PaymentStatus,
		m.PaymentReference,
		m.Amount,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}

	return nil
}

// GetByID получает абонемент по ID
func (r *MembershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MemberMembership, error) {
	query := `SELECT ` + membershipColumns + ` FROM member_memberships WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	m, err := scanMembership(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership by id: %w", err)
	}

	return m, nil
}

// GetByMemberID получает все абонементы участника, свежие первыми
func (r *MembershipRepository) GetByMemberID(ctx context.Context, memberID uuid.UUID) ([]*model.MemberMembership, error) {
	query := `SELECT ` + membershipColumns + `
		FROM member_memberships
		WHERE member_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("get memberships by member: %w", err)
	}
	defer rows.Close()

	var memberships []*model.MemberMembership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, nil
}

// Update сохраняет новый снимок абонемента после операции жизненного цикла
func (r *MembershipRepository) Update(ctx context.Context, m *model.MemberMembership) error {
	query := `
		UPDATE member_memberships
		SET status = $2, start_date = $3, end_date = $4,
		    freeze_start_date = $5, freeze_end_date = $6, freeze_reason = $7,
		    original_end_date = $8, cancellation_reason = $9,
		    cancellation_date = $10, payment_status = $11,
		    payment_reference = $12, amount = $13, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Status,
		m.StartDate,
		m.EndDate,
		m.FreezeStartDate,
		m.FreezeEndDate,
		m.FreezeReason,
		m.OriginalEndDate,
		m.CancellationReason,
		m.CancellationDate,
		m.PaymentStatus,
		m.PaymentReference,
		m.Amount,
	)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership not found")
	}

	return nil
}

// ExpireOverdue помечает протухшие активные абонементы как expired.
// Единственный источник статуса expired - этот обход, операции
// жизненного цикла его не производят.
func (r *MembershipRepository) ExpireOverdue(ctx context.Context, today time.Time) (int64, error) {
	query := `
		UPDATE member_memberships
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date < $1
	`

	result, err := r.pool.Exec(ctx, query, model.DateOnly(today))
	if err != nil {
		return 0, fmt.Errorf("expire overdue memberships: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanMembership(row pgx.Row) (*model.MemberMembership, error) {
	var m model.MemberMembership
	err := row.Scan(
		&m.ID,
		&m.MemberID,
		&m.PlanID,
		&m.Status,
		&m.StartDate,
		&m.EndDate,
		&m.FreezeStartDate,
		&m.FreezeEndDate,
		&m.FreezeReason,
		&m.OriginalEndDate,
		&m.CancellationReason,
		&m.CancellationDate,
		&m.PaymentStatus,
		&m.PaymentReference,
		&m.Amount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
