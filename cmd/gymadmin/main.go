package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitdesk/gym_admin/internal/app"
	"github.com/fitdesk/gym_admin/internal/config"
	"github.com/fitdesk/gym_admin/internal/controller"
	"github.com/fitdesk/gym_admin/internal/repository"
	"github.com/fitdesk/gym_admin/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting gym admin backend",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Int("horizon_days", cfg.HorizonDays),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	_ = migrator.Close()

	// Репозитории
	scheduleRepo := repository.NewScheduleRepository(pool)
	instanceRepo := repository.NewInstanceRepository(pool)
	membershipRepo := repository.NewMembershipRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	planRepo := repository.NewPlanRepository(pool)

	// Сервисы
	scheduleService := service.NewScheduleService(scheduleRepo, instanceRepo, cfg.HorizonDays, logger)
	classService := service.NewClassService(instanceRepo, memberRepo, logger)
	membershipService := service.NewMembershipService(membershipRepo, memberRepo, planRepo, logger)
	memberService := service.NewMemberService(memberRepo, logger)

	// Фоновый планировщик: суточная материализация + expiry-обход
	scheduler := app.NewScheduler(scheduleService, membershipService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := controller.NewServer(cfg.HTTPAddr, scheduleService, classService, membershipService, memberService, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
			stop()
		}
	}()
	logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}
	logger.Info("Graceful shutdown complete")
}
