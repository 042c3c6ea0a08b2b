package app

import (
	"context"
	"time"

	"github.com/fitdesk/gym_admin/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами: суточная материализация
// расписаний и перевод просроченных абонементов в expired
type Scheduler struct {
	scheduleService   *service.ScheduleService
	membershipService *service.MembershipService
	logger            *zap.Logger
	stopChan          chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	scheduleService *service.ScheduleService,
	membershipService *service.MembershipService,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		scheduleService:   scheduleService,
		membershipService: membershipService,
		logger:            logger,
		stopChan:          make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")
	go s.runDailyTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDailyTask выполняет суточный цикл: первый прогон сразу при старте,
// дальше раз в 24 часа
func (s *Scheduler) runDailyTask(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.stopChan:
			s.logger.Info("Daily task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Daily task cancelled")
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.logger.Info("Starting daily maintenance run")

	// Материализация идемпотентна: повторный прогон по неизменённым
	// шаблонам не создаёт дублей, поэтому суточный цикл безопасен
	if err := s.scheduleService.MaterializeAll(ctx); err != nil {
		s.logger.Error("Failed to materialize schedules", zap.Error(err))
	}

	if _, err := s.membershipService.ExpireOverdue(ctx); err != nil {
		s.logger.Error("Failed to expire overdue memberships", zap.Error(err))
	}

	s.logger.Info("Daily maintenance run completed")
}
