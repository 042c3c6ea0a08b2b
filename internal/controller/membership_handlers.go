package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/google/uuid"
)

func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	member, err := s.memberService.CreateMember(r.Context(), model.Member{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, member)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.memberService.GetMembers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, members)
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.membershipService.GetActivePlans(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, plans)
}

func (s *Server) listMemberMemberships(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	memberships, err := s.membershipService.GetMemberMemberships(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, memberships)
}

func (s *Server) assignPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID         string `json:"member_id"`
		PlanID           string `json:"plan_id"`
		StartDate        string `json:"start_date"` // YYYY-MM-DD, пусто = сегодня
		PaymentReference string `json:"payment_reference"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid member_id", model.ErrInvalidInput))
		return
	}
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid plan_id", model.ErrInvalidInput))
		return
	}

	startDate := time.Now()
	if req.StartDate != "" {
		if startDate, err = parseDate(req.StartDate); err != nil {
			s.writeError(w, err)
			return
		}
	}

	membership, err := s.membershipService.AssignPlan(r.Context(), memberID, planID, startDate, req.PaymentReference)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, membership)
}

func (s *Server) getMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	membership, err := s.membershipService.GetMembership(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membership)
}

func (s *Server) freezeMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Ровно одно из двух: duration_days или end_date
	var req struct {
		Reason       string `json:"reason"`
		DurationDays int    `json:"duration_days"`
		EndDate      string `json:"end_date"` // YYYY-MM-DD
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var until *time.Time
	if req.EndDate != "" {
		d, err := parseDate(req.EndDate)
		if err != nil {
			s.writeError(w, err)
			return
		}
		until = &d
	}

	membership, err := s.membershipService.Freeze(r.Context(), id, req.Reason, req.DurationDays, until)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membership)
}

func (s *Server) unfreezeMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	membership, err := s.membershipService.Unfreeze(r.Context(), id, req.Reason)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membership)
}

func (s *Server) cancelMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	membership, err := s.membershipService.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membership)
}

func (s *Server) reactivateMembership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req struct {
		Reason           string  `json:"reason"`
		NewEndDate       string  `json:"new_end_date"` // YYYY-MM-DD, обязателен
		Amount           float64 `json:"amount"`
		PaymentReference string  `json:"payment_reference"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	newEndDate, err := parseDate(req.NewEndDate)
	if err != nil {
		s.writeError(w, err)
		return
	}

	membership, err := s.membershipService.Reactivate(r.Context(), id, req.Reason, newEndDate, req.Amount, req.PaymentReference)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, membership)
}
