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

// MembershipService управляет жизненным циклом абонементов.
// Продуктовое правило (зафиксировано с бизнесом): досрочная разморозка
// не сжигает неиспользованные замороженные дни - продление, выданное
// при заморозке, остаётся за участником целиком.
type MembershipService struct {
	membershipRepo *repository.MembershipRepository
	memberRepo     *repository.MemberRepository
	planRepo       *repository.PlanRepository
	logger         *zap.Logger
}

func NewMembershipService(
	membershipRepo *repository.MembershipRepository,
	memberRepo *repository.MemberRepository,
	planRepo *repository.PlanRepository,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		logger:         logger,
	}
}

// AssignPlan выдаёт участнику абонемент по плану. Срок считается от
// startDate на длительность плана в месяцах. Платёж не проводится -
// записывается только ссылка.
func (s *MembershipService) AssignPlan(ctx context.Context, memberID, planID uuid.UUID, startDate time.Time, paymentRef string) (*model.MemberMembership, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %s", model.ErrNotFound, memberID)
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: plan %s", model.ErrNotFound, planID)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: plan %q is not active", model.ErrInvalidInput, plan.Name)
	}

	start := model.DateOnly(startDate)
	paymentStatus := model.PaymentStatusPending
	if paymentRef != "" {
		paymentStatus = model.PaymentStatusPaid
	}

	membership := model.MemberMembership{
		ID:               uuid.New(),
		MemberID:         memberID,
		PlanID:           planID,
		Status:           model.MembershipStatusActive,
		StartDate:        start,
		EndDate:          start.AddDate(0, plan.DurationMonths, 0),
		PaymentStatus:    paymentStatus,
		PaymentReference: paymentRef,
		Amount:           float64(plan.Price),
	}

	if err := s.membershipRepo.Create(ctx, &membership); err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}

	s.logger.Info("Plan assigned to member",
		zap.String("membership_id", membership.ID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("plan", plan.Name),
		zap.Time("end_date", membership.EndDate),
	)

	return &membership, nil
}

// GetActivePlans получает активные тарифные планы
func (s *MembershipService) GetActivePlans(ctx context.Context) ([]*model.MembershipPlan, error) {
	return s.planRepo.GetActive(ctx)
}

// GetMembership получает абонемент по ID
func (s *MembershipService) GetMembership(ctx context.Context, id uuid.UUID) (*model.MemberMembership, error) {
	m, err := s.membershipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, model.ErrNotFound
	}
	return m, nil
}

// GetMemberMemberships получает все абонементы участника
func (s *MembershipService) GetMemberMemberships(ctx context.Context, memberID uuid.UUID) ([]*model.MemberMembership, error) {
	return s.membershipRepo.GetByMemberID(ctx, memberID)
}

// Freeze замораживает абонемент на N дней либо до явной даты
func (s *MembershipService) Freeze(ctx context.Context, id uuid.UUID, reason string, durationDays int, until *time.Time) (*model.MemberMembership, error) {
	return s.transition(ctx, id, "freeze", func(m model.MemberMembership) (model.MemberMembership, error) {
		return m.Freeze(reason, durationDays, until, time.Now())
	})
}

// Unfreeze возвращает абонемент в active
func (s *MembershipService) Unfreeze(ctx context.Context, id uuid.UUID, reason string) (*model.MemberMembership, error) {
	return s.transition(ctx, id, "unfreeze", func(m model.MemberMembership) (model.MemberMembership, error) {
		return m.Unfreeze(reason)
	})
}

// Cancel закрывает абонемент
func (s *MembershipService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.MemberMembership, error) {
	return s.transition(ctx, id, "cancel", func(m model.MemberMembership) (model.MemberMembership, error) {
		return m.Cancel(reason, time.Now())
	})
}

// Reactivate возобновляет закрытый абонемент с новым концом срока
func (s *MembershipService) Reactivate(ctx context.Context, id uuid.UUID, reason string, newEndDate time.Time, amount float64, paymentRef string) (*model.MemberMembership, error) {
	return s.transition(ctx, id, "reactivate", func(m model.MemberMembership) (model.MemberMembership, error) {
		return m.Reactivate(reason, newEndDate, amount, paymentRef, time.Now())
	})
}

// ExpireOverdue - ночной обход: активные абонементы с end_date в прошлом
// переводятся в expired. Это внешний источник статуса expired,
// сами операции жизненного цикла его не производят.
func (s *MembershipService) ExpireOverdue(ctx context.Context) (int64, error) {
	count, err := s.membershipRepo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if count > 0 {
		metrics.ExpiredMemberships.Add(float64(count))
		s.logger.Info("Expired overdue memberships", zap.Int64("count", count))
	}

	return count, nil
}

// transition - общий скелет операции жизненного цикла: снимок из БД,
// чистый переход, сохранение. Ошибочный переход ничего не мутирует.
func (s *MembershipService) transition(ctx context.Context, id uuid.UUID, operation string, apply func(model.MemberMembership) (model.MemberMembership, error)) (*model.MemberMembership, error) {
	membership, err := s.membershipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if membership == nil {
		return nil, model.ErrNotFound
	}

	updated, err := apply(*membership)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update membership: %w", err)
	}

	metrics.LifecycleTransitions.WithLabelValues("membership", operation).Inc()

	s.logger.Info("Membership transition applied",
		zap.String("membership_id", id.String()),
		zap.String("operation", operation),
		zap.String("status", string(updated.Status)),
		zap.Time("end_date", updated.EndDate),
	)

	return &updated, nil
}
