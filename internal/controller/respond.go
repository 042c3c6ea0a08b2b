package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("Failed to encode response", zap.Error(err))
		}
	}
}

// writeError мапит типизированные бизнес-ошибки на HTTP-статусы.
// Всё, что не распознано - 500 с записью в журнал.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrAlreadyRegistered),
		errors.Is(err, model.ErrNotRegistered),
		errors.Is(err, model.ErrDuplicateOccurrence):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		s.logger.Error("Request failed", zap.Error(err))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", model.ErrInvalidInput)
	}
	return nil
}

// pathID достаёт {id} из пути запроса
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id in path", model.ErrInvalidInput)
	}
	return id, nil
}

// parseDate разбирает календарную дату формата YYYY-MM-DD
func parseDate(value string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", model.ErrInvalidInput, value)
	}
	return d, nil
}

// parseTimeOfDay разбирает время формата HH:MM (24 часа)
func parseTimeOfDay(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid time %q, want HH:MM", model.ErrInvalidInput, value)
	}
	return t.Hour(), t.Minute(), nil
}
