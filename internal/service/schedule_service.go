package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitdesk/gym_admin/internal/metrics"
	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/fitdesk/gym_admin/internal/recurrence"
	"github.com/fitdesk/gym_admin/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	instanceRepo *repository.InstanceRepository
	horizonDays  int
	logger       *zap.Logger
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	instanceRepo *repository.InstanceRepository,
	horizonDays int,
	logger *zap.Logger,
) *ScheduleService {
	if horizonDays <= 0 {
		horizonDays = recurrence.DefaultHorizonDays
	}
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		instanceRepo: instanceRepo,
		horizonDays:  horizonDays,
		logger:       logger,
	}
}

// CreateSchedule создаёт шаблон занятия
func (s *ScheduleService) CreateSchedule(ctx context.Context, schedule model.ClassSchedule) (*model.ClassSchedule, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	schedule.ID = uuid.New()
	schedule.StartDate = model.DateOnly(schedule.StartDate)
	schedule.IsActive = true

	if err := s.scheduleRepo.Create(ctx, &schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.logger.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("name", schedule.Name),
		zap.String("type", string(schedule.Pattern.Type)),
		zap.Ints("days_of_week", schedule.Pattern.DaysOfWeek),
	)

	return &schedule, nil
}

// UpdateSchedule обновляет шаблон. Прошлые материализации не трогаем:
// меняется только целевое множество будущих запусков материализатора.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, schedule model.ClassSchedule) (*model.ClassSchedule, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.scheduleRepo.GetByID(ctx, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if existing == nil {
		return nil, model.ErrNotFound
	}

	schedule.StartDate = model.DateOnly(schedule.StartDate)
	if err := s.scheduleRepo.Update(ctx, &schedule); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	s.logger.Info("Schedule updated",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("name", schedule.Name),
	)

	return &schedule, nil
}

// GetSchedule получает шаблон по ID
func (s *ScheduleService) GetSchedule(ctx context.Context, id uuid.UUID) (*model.ClassSchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, model.ErrNotFound
	}
	return schedule, nil
}

// GetActiveSchedules получает все активные шаблоны
func (s *ScheduleService) GetActiveSchedules(ctx context.Context) ([]*model.ClassSchedule, error) {
	return s.scheduleRepo.GetAllActive(ctx)
}

// DeactivateSchedule выключает шаблон, его занятия остаются
func (s *ScheduleService) DeactivateSchedule(ctx context.Context, id uuid.UUID) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return model.ErrNotFound
	}
	return s.scheduleRepo.Deactivate(ctx, id)
}

// DeleteSchedule удаляет шаблон вместе с занятиями (каскад по FK)
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return model.ErrNotFound
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Schedule deleted with its instances",
		zap.String("schedule_id", id.String()),
	)
	return nil
}

// MaterializeSchedule разворачивает шаблон в занятия. Повторный запуск
// по неизменённому шаблону не создаёт ничего нового: цель считается как
// set-union с уже существующими парами (schedule_id, date).
func (s *ScheduleService) MaterializeSchedule(ctx context.Context, scheduleID uuid.UUID) (int, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return 0, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return 0, model.ErrNotFound
	}

	existing, err := s.instanceRepo.ExistingDates(ctx, scheduleID)
	if err != nil {
		return 0, fmt.Errorf("get existing dates: %w", err)
	}

	target, err := buildTargetInstances(*schedule, existing, s.horizonDays)
	if err != nil {
		return 0, err
	}

	created := 0
	for n := range target {
		if err := s.instanceRepo.Create(ctx, &target[n]); err != nil {
			if isUniqueViolation(err) {
				// Пара (schedule_id, date) уже есть, хотя в existing её не
				// было: параллельный писатель или баг коллаборатора.
				return created, fmt.Errorf("%w: schedule %s date %s",
					model.ErrDuplicateOccurrence, scheduleID, target[n].Date.Format("2006-01-02"))
			}
			return created, fmt.Errorf("create instance: %w", err)
		}
		created++
		metrics.InstancesMaterialized.Inc()
	}

	s.logger.Info("Schedule materialized",
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("created", created),
		zap.Int("already_existing", len(existing)),
	)

	return created, nil
}

// MaterializeAll прогоняет материализацию по всем активным шаблонам.
// Вызывается фоновым планировщиком раз в сутки.
func (s *ScheduleService) MaterializeAll(ctx context.Context) error {
	schedules, err := s.scheduleRepo.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("get active schedules: %w", err)
	}

	total := 0
	for _, schedule := range schedules {
		count, err := s.MaterializeSchedule(ctx, schedule.ID)
		if err != nil {
			s.logger.Error("Failed to materialize schedule",
				zap.Error(err),
				zap.String("schedule_id", schedule.ID.String()),
			)
			continue
		}
		total += count
	}

	s.logger.Info("Materialized all active schedules",
		zap.Int("total_schedules", len(schedules)),
		zap.Int("total_instances_created", total),
	)

	return nil
}

// buildTargetInstances - чистое вычисление целевого множества занятий:
// вхождения шаблона минус даты, на которые занятие уже существует.
func buildTargetInstances(schedule model.ClassSchedule, existing map[time.Time]bool, horizonDays int) ([]model.ClassInstance, error) {
	occurrences, err := recurrence.Expand(
		schedule.Pattern,
		schedule.StartDate,
		schedule.StartHour,
		schedule.StartMinute,
		horizonDays,
	)
	if err != nil {
		return nil, err
	}

	var target []model.ClassInstance
	for _, occ := range occurrences {
		if existing[occ.Date] {
			continue
		}
		target = append(target, model.NewClassInstance(schedule, occ.Date))
	}
	return target, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
