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

type InstanceRepository struct {
	pool *pgxpool.Pool
}

func NewInstanceRepository(pool *pgxpool.Pool) *InstanceRepository {
	return &InstanceRepository{pool: pool}
}

const instanceColumns = `
	id, schedule_id, name, class_type, instructor, location, capacity,
	duration_minutes, date, start_hour, start_minute, status,
	registered, waitlist, started_at, actual_duration_minutes,
	cancellation_reason, created_at, updated_at`

// Create создаёт занятие. Уникальность (schedule_id, date) держит БД.
func (r *InstanceRepository) Create(ctx context.Context, i *model.ClassInstance) error {
	query := `
		INSERT INTO class_instances
			(id, schedule_id, name, class_type, instructor, location, capacity,
			 duration_minutes, date, start_hour, start_minute, status,
			 registered, waitlist)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		i.ID,
		i.ScheduleID,
		i.Name,
		i.ClassType,
		i.Instructor,
		i.Location,
		i.Capacity,
		i.DurationMinutes,
		i.Date,
		i.StartHour,
		i.StartMinute,
		i.Status,
		uuidsToStrings(i.Registered),
		uuidsToStrings(i.Waitlist),
	).Scan(&i.CreatedAt, &i.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}

	return nil
}

// GetByID получает занятие по ID
func (r *InstanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM class_instances WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	instance, err := scanInstance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instance by id: %w", err)
	}

	return instance, nil
}

// GetByScheduleID получает все занятия шаблона по возрастанию даты
func (r *InstanceRepository) GetByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]*model.ClassInstance, error) {
	query := `SELECT ` + instanceColumns + `
		FROM class_instances
		WHERE schedule_id = $1
		ORDER BY date`

	return r.query(ctx, query, scheduleID)
}

// GetByDateRange получает занятия в диапазоне дат [from, to)
func (r *InstanceRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.ClassInstance, error) {
	query := `SELECT ` + instanceColumns + `
		FROM class_instances
		WHERE date >= $1 AND date < $2
		ORDER BY date, start_hour, start_minute`

	return r.query(ctx, query, from, to)
}

// ExistingDates возвращает даты, на которые у шаблона уже есть занятия.
// Материализатор строит по ним set-union, а не слепой append.
func (r *InstanceRepository) ExistingDates(ctx context.Context, scheduleID uuid.UUID) (map[time.Time]bool, error) {
	query := `SELECT date FROM class_instances WHERE schedule_id = $1`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get existing dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[time.Time]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates[model.DateOnly(d)] = true
	}

	return dates, nil
}

// Update сохраняет новый снимок занятия (статус, списки, маркеры)
func (r *InstanceRepository) Update(ctx context.Context, i *model.ClassInstance) error {
	query := `
		UPDATE class_instances
		SET status = $2, registered = $3, waitlist = $4, started_at = $5,
		    actual_duration_minutes = $6, cancellation_reason = $7,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		i.ID,
		i.Status,
		uuidsToStrings(i.Registered),
		uuidsToStrings(i.Waitlist),
		i.StartedAt,
		i.ActualDurationMinutes,
		i.CancellationReason,
	)
	if err != nil {
		return fmt.Errorf("update instance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("instance not found")
	}

	return nil
}

func (r *InstanceRepository) query(ctx context.Context, query string, args ...any) ([]*model.ClassInstance, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query instances: %w", err)
	}
	defer rows.Close()

	var instances []*model.ClassInstance
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instance: %w", err)
		}
		instances = append(instances, instance)
	}

	return instances, nil
}

func scanInstance(row pgx.Row) (*model.ClassInstance, error) {
	var (
		i          model.ClassInstance
		registered []string
		waitlist   []string
	)
	err := row.Scan(
		&i.ID,
		&i.ScheduleID,
		&i.Name,
		&i.ClassType,
		&i.Instructor,
		&i.Location,
		&i.Capacity,
		&i.DurationMinutes,
		&i.Date,
		&i.StartHour,
		&i.StartMinute,
		&i.Status,
		&registered,
		&waitlist,
		&i.StartedAt,
		&i.ActualDurationMinutes,
		&i.CancellationReason,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	i.Date = model.DateOnly(i.Date)

	if i.Registered, err = stringsToUUIDs(registered); err != nil {
		return nil, fmt.Errorf("parse registered: %w", err)
	}
	if i.Waitlist, err = stringsToUUIDs(waitlist); err != nil {
		return nil, fmt.Errorf("parse waitlist: %w", err)
	}

	return &i, nil
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for n, id := range ids {
		out[n] = id.String()
	}
	return out
}

func stringsToUUIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, len(values))
	for n, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out[n] = id
	}
	return out, nil
}
