package controller

import (
	"context"
	"net/http"

	"github.com/fitdesk/gym_admin/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server - HTTP-фасад над сервисами. Аутентификации здесь нет,
// предполагается доверенный периметр админки.
type Server struct {
	srv               *http.Server
	scheduleService   *service.ScheduleService
	classService      *service.ClassService
	membershipService *service.MembershipService
	memberService     *service.MemberService
	logger            *zap.Logger
}

func NewServer(
	addr string,
	scheduleService *service.ScheduleService,
	classService *service.ClassService,
	membershipService *service.MembershipService,
	memberService *service.MemberService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		scheduleService:   scheduleService,
		classService:      classService,
		membershipService: membershipService,
		memberService:     memberService,
		logger:            logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Шаблоны занятий и материализация
	mux.HandleFunc("POST /schedules", s.createSchedule)
	mux.HandleFunc("GET /schedules", s.listSchedules)
	mux.HandleFunc("GET /schedules/{id}", s.getSchedule)
	mux.HandleFunc("PUT /schedules/{id}", s.updateSchedule)
	mux.HandleFunc("DELETE /schedules/{id}", s.deleteSchedule)
	mux.HandleFunc("POST /schedules/{id}/deactivate", s.deactivateSchedule)
	mux.HandleFunc("POST /schedules/{id}/materialize", s.materializeSchedule)

	// Занятия: жизненный цикл и запись
	mux.HandleFunc("GET /instances", s.listInstances)
	mux.HandleFunc("GET /instances/{id}", s.getInstance)
	mux.HandleFunc("POST /instances/{id}/start", s.startInstance)
	mux.HandleFunc("POST /instances/{id}/end", s.endInstance)
	mux.HandleFunc("POST /instances/{id}/cancel", s.cancelInstance)
	mux.HandleFunc("POST /instances/{id}/register", s.registerMember)
	mux.HandleFunc("POST /instances/{id}/unregister", s.unregisterMember)

	// Участники, планы, абонементы
	mux.HandleFunc("POST /members", s.createMember)
	mux.HandleFunc("GET /members", s.listMembers)
	mux.HandleFunc("GET /members/{id}/memberships", s.listMemberMemberships)
	mux.HandleFunc("GET /plans", s.listPlans)
	mux.HandleFunc("POST /memberships", s.assignPlan)
	mux.HandleFunc("GET /memberships/{id}", s.getMembership)
	mux.HandleFunc("POST /memberships/{id}/freeze", s.freezeMembership)
	mux.HandleFunc("POST /memberships/{id}/unfreeze", s.unfreezeMembership)
	mux.HandleFunc("POST /memberships/{id}/cancel", s.cancelMembership)
	mux.HandleFunc("POST /memberships/{id}/reactivate", s.reactivateMembership)

	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
