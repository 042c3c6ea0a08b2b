package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fitdesk/gym_admin/internal/metrics"
	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/fitdesk/gym_admin/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassService управляет жизненным циклом занятий и записью участников.
// Сами переходы - чистые методы model.ClassInstance; сервис добавляет
// загрузку, сохранение и журнал. Переход либо применяется целиком,
// либо состояние в БД не меняется вовсе.
type ClassService struct {
	instanceRepo *repository.InstanceRepository
	memberRepo   *repository.MemberRepository
	logger       *zap.Logger
}

func NewClassService(
	instanceRepo *repository.InstanceRepository,
	memberRepo *repository.MemberRepository,
	logger *zap.Logger,
) *ClassService {
	return &ClassService{
		instanceRepo: instanceRepo,
		memberRepo:   memberRepo,
		logger:       logger,
	}
}

// GetInstance получает занятие по ID
func (s *ClassService) GetInstance(ctx context.Context, id uuid.UUID) (*model.ClassInstance, error) {
	instance, err := s.instanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, model.ErrNotFound
	}
	return instance, nil
}

// GetInstancesByDateRange получает занятия в диапазоне дат [from, to)
func (s *ClassService) GetInstancesByDateRange(ctx context.Context, from, to time.Time) ([]*model.ClassInstance, error) {
	return s.instanceRepo.GetByDateRange(ctx, model.DateOnly(from), model.DateOnly(to))
}

// StartClass переводит занятие в ongoing
func (s *ClassService) StartClass(ctx context.Context, id uuid.UUID) (*model.ClassInstance, error) {
	return s.transition(ctx, id, "start", func(i model.ClassInstance) (model.ClassInstance, error) {
		return i.Start(time.Now())
	})
}

// EndClass завершает идущее занятие
func (s *ClassService) EndClass(ctx context.Context, id uuid.UUID) (*model.ClassInstance, error) {
	return s.transition(ctx, id, "end", func(i model.ClassInstance) (model.ClassInstance, error) {
		return i.End(time.Now())
	})
}

// CancelClass отменяет ещё не начатое занятие
func (s *ClassService) CancelClass(ctx context.Context, id uuid.UUID, reason string) (*model.ClassInstance, error) {
	return s.transition(ctx, id, "cancel", func(i model.ClassInstance) (model.ClassInstance, error) {
		return i.Cancel(reason)
	})
}

// RegisterMember записывает участника на занятие (или в лист ожидания)
func (s *ClassService) RegisterMember(ctx context.Context, instanceID, memberID uuid.UUID) (*model.ClassInstance, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %s", model.ErrNotFound, memberID)
	}

	updated, err := s.transition(ctx, instanceID, "register", func(i model.ClassInstance) (model.ClassInstance, error) {
		return i.Register(memberID)
	})
	if err != nil {
		return nil, err
	}

	outcome := "registered"
	for _, w := range updated.Waitlist {
		if w == memberID {
			outcome = "waitlisted"
			break
		}
	}
	metrics.Registrations.WithLabelValues(outcome).Inc()

	s.logger.Info("Member registered for class",
		zap.String("instance_id", instanceID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("outcome", outcome),
		zap.Int("registered", len(updated.Registered)),
		zap.Int("waitlist", len(updated.Waitlist)),
	)

	return updated, nil
}

// UnregisterMember снимает участника с занятия; первый из листа ожидания
// автоматически занимает освободившееся место
func (s *ClassService) UnregisterMember(ctx context.Context, instanceID, memberID uuid.UUID) (*model.ClassInstance, error) {
	updated, err := s.transition(ctx, instanceID, "unregister", func(i model.ClassInstance) (model.ClassInstance, error) {
		return i.Unregister(memberID)
	})
	if err != nil {
		return nil, err
	}

	metrics.Registrations.WithLabelValues("unregistered").Inc()

	s.logger.Info("Member unregistered from class",
		zap.String("instance_id", instanceID.String()),
		zap.String("member_id", memberID.String()),
		zap.Int("registered", len(updated.Registered)),
		zap.Int("waitlist", len(updated.Waitlist)),
	)

	return updated, nil
}

// transition - общий скелет: загрузить снимок, применить чистый переход,
// сохранить новый снимок. При ошибке перехода БД не трогаем.
func (s *ClassService) transition(ctx context.Context, id uuid.UUID, operation string, apply func(model.ClassInstance) (model.ClassInstance, error)) (*model.ClassInstance, error) {
	instance, err := s.instanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get instance: %w", err)
	}
	if instance == nil {
		return nil, model.ErrNotFound
	}

	updated, err := apply(*instance)
	if err != nil {
		return nil, err
	}

	if err := s.instanceRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update instance: %w", err)
	}

	metrics.LifecycleTransitions.WithLabelValues("class_instance", operation).Inc()

	s.logger.Info("Class instance transition applied",
		zap.String("instance_id", id.String()),
		zap.String("operation", operation),
		zap.String("status", string(updated.Status)),
	)

	return &updated, nil
}
