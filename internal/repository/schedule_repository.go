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

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Create создаёт новый шаблон занятия
func (r *ScheduleRepository) Create(ctx context.Context, s *model.ClassSchedule) error {
	query := `
		INSERT INTO class_schedules
			(id, name, class_type, instructor, location, capacity, duration_minutes,
			 start_date, start_hour, start_minute, schedule_type, days_of_week,
			 is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		s.ID,
		s.Name,
		s.ClassType,
		s.Instructor,
		s.Location,
		s.Capacity,
		s.DurationMinutes,
		s.StartDate,
		s.StartHour,
		s.StartMinute,
		s.Pattern.Type,
		s.Pattern.DaysOfWeek,
		s.IsActive,
		s.CreatedBy,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

// GetByID получает шаблон по ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassSchedule, error) {
	query := `
		SELECT id, name, class_type, instructor, location, capacity, duration_minutes,
		       start_date, start_hour, start_minute, schedule_type, days_of_week,
		       is_active, created_by, created_at, updated_at
		FROM class_schedules
		WHERE id = $1
	`

	var s model.ClassSchedule
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.ClassType,
		&s.Instructor,
		&s.Location,
		&s.Capacity,
		&s.DurationMinutes,
		&s.StartDate,
		&s.StartHour,
		&s.StartMinute,
		&s.Pattern.Type,
		&s.Pattern.DaysOfWeek,
		&s.IsActive,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	return &s, nil
}

// GetAllActive получает все активные шаблоны (вход материализатора)
func (r *ScheduleRepository) GetAllActive(ctx context.Context) ([]*model.ClassSchedule, error) {
	query := `
		SELECT id, name, class_type, instructor, location, capacity, duration_minutes,
		       start_date, start_hour, start_minute, schedule_type, days_of_week,
		       is_active, created_by, created_at, updated_at
		FROM class_schedules
		WHERE is_active = TRUE
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get active schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*model.ClassSchedule
	for rows.Next() {
		var s model.ClassSchedule
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.ClassType,
			&s.Instructor,
			&s.Location,
			&s.Capacity,
			&s.DurationMinutes,
			&s.StartDate,
			&s.StartHour,
			&s.StartMinute,
			&s.Pattern.Type,
			&s.Pattern.DaysOfWeek,
			&s.IsActive,
			&s.CreatedBy,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, &s)
	}

	return schedules, nil
}

// Update обновляет шаблон. Уже материализованные занятия не трогаются:
// правка меняет только целевое множество будущих материализаций.
func (r *ScheduleRepository) Update(ctx context.Context, s *model.ClassSchedule) error {
	query := `
		UPDATE class_schedules
		SET name = $2, class_type = $3, instructor = $4, location = $5,
		    capacity = $6, duration_minutes = $7, start_date = $8,
		    start_hour = $9, start_minute = $10, schedule_type = $11,
		    days_of_week = $12, is_active = $13, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Name,
		s.ClassType,
		s.Instructor,
		s.Location,
		s.Capacity,
		s.DurationMinutes,
		s.StartDate,
		s.StartHour,
		s.StartMinute,
		s.Pattern.Type,
		s.Pattern.DaysOfWeek,
		s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

// Deactivate выключает шаблон, не трогая его занятия
func (r *ScheduleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE class_schedules
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

// Delete удаляет шаблон. Занятия уходят каскадом по FK.
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM class_schedules WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}
