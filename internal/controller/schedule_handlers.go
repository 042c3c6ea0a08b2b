package controller

import (
	"net/http"

	"github.com/fitdesk/gym_admin/internal/model"
)

type scheduleRequest struct {
	Name            string `json:"name"`
	ClassType       string `json:"class_type"`
	Instructor      string `json:"instructor"`
	Location        string `json:"location"`
	Capacity        int    `json:"capacity"`
	DurationMinutes int    `json:"duration_minutes"`
	StartDate       string `json:"start_date"` // YYYY-MM-DD
	StartTime       string `json:"start_time"` // HH:MM
	ScheduleType    string `json:"schedule_type"`
	DaysOfWeek      []int  `json:"days_of_week"`
	CreatedBy       string `json:"created_by"`
}

func (req scheduleRequest) toModel() (model.ClassSchedule, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return model.ClassSchedule{}, err
	}
	hour, minute, err := parseTimeOfDay(req.StartTime)
	if err != nil {
		return model.ClassSchedule{}, err
	}

	return model.ClassSchedule{
		Name:            req.Name,
		ClassType:       req.ClassType,
		Instructor:      req.Instructor,
		Location:        req.Location,
		Capacity:        req.Capacity,
		DurationMinutes: req.DurationMinutes,
		StartDate:       startDate,
		StartHour:       hour,
		StartMinute:     minute,
		Pattern: model.RecurrencePattern{
			Type:       model.ScheduleType(req.ScheduleType),
			DaysOfWeek: req.DaysOfWeek,
		},
		CreatedBy: req.CreatedBy,
	}, nil
}

func (s *Server) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	schedule, err := req.toModel()
	if err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.scheduleService.CreateSchedule(r.Context(), schedule)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.scheduleService.GetActiveSchedules(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, schedules)
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	schedule, err := s.scheduleService.GetSchedule(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, schedule)
}

func (s *Server) updateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req scheduleRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	schedule, err := req.toModel()
	if err != nil {
		s.writeError(w, err)
		return
	}
	schedule.ID = id
	schedule.IsActive = true

	updated, err := s.scheduleService.UpdateSchedule(r.Context(), schedule)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.scheduleService.DeleteSchedule(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deactivateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.scheduleService.DeactivateSchedule(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) materializeSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.scheduleService.MaterializeSchedule(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"instances_created": created})
}
