package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/google/uuid"
)

func (s *Server) listInstances(w http.ResponseWriter, r *http.Request) {
	// Дефолтное окно - неделя от from (по умолчанию от сегодня)
	from := model.DateOnly(time.Now())

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			s.writeError(w, err)
			return
		}
	}
	to := from.AddDate(0, 0, 7)
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			s.writeError(w, err)
			return
		}
	}

	instances, err := s.classService.GetInstancesByDateRange(r.Context(), from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instances)
}

func (s *Server) getInstance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	instance, err := s.classService.GetInstance(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instance)
}

func (s *Server) startInstance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	instance, err := s.classService.StartClass(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instance)
}

func (s *Server) endInstance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	instance, err := s.classService.EndClass(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instance)
}

func (s *Server) cancelInstance(w http.ResponseWriter, r *http.Request) {
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

	instance, err := s.classService.CancelClass(r.Context(), id, req.Reason)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instance)
}

type registrationRequest struct {
	MemberID string `json:"member_id"`
}

func (req registrationRequest) memberID() (uuid.UUID, error) {
	id, err := uuid.Parse(req.MemberID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid member_id", model.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) registerMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req registrationRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	memberID, err := req.memberID()
	if err != nil {
		s.writeError(w, err)
		return
	}

	instance, err := s.classService.RegisterMember(r.Context(), id, memberID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instance)
}

func (s *Server) unregisterMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req registrationRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	memberID, err := req.memberID()
	if err != nil {
		s.writeError(w, err)
		return
	}

	instance, err := s.classService.UnregisterMember(r.Context(), id, memberID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, instance)
}
