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

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create создаёт карточку участника
func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	query := `
		INSERT INTO members (id, first_name, last_name, phone, email, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		m.ID,
		m.FirstName,
		m.LastName,
		m.Phone,
		m.Email,
		m.JoinedAt,
	).Scan(&m.CreatedAt)

	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

// GetByID получает участника по ID
func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, joined_at, created_at
		FROM members
		WHERE id = $1
	`

	var m model.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Phone,
		&m.Email,
		&m.JoinedAt,
		&m.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member by id: %w", err)
	}

	return &m, nil
}

// GetAll получает всех участников по фамилии
func (r *MemberRepository) GetAll(ctx context.Context) ([]*model.Member, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, joined_at, created_at
		FROM members
		ORDER BY last_name, first_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		var m model.Member
		err := rows.Scan(
			&m.ID,
			&m.FirstName,
			&m.LastName,
			&m.Phone,
			&m.Email,
			&m.JoinedAt,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, &m)
	}

	return members, nil
}
