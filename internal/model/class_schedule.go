package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleType string

const (
	ScheduleTypeSingle    ScheduleType = "single"
	ScheduleTypeRecurring ScheduleType = "recurring"
)

// RecurrencePattern описывает правило повторения расписания.
// DaysOfWeek трактуется как множество: 0 = воскресенье, 6 = суббота.
type RecurrencePattern struct {
	Type       ScheduleType `json:"type"`
	DaysOfWeek []int        `json:"days_of_week"` // обязателен и непуст для recurring
}

// ClassSchedule представляет шаблон занятия (разовый или регулярный).
// Экземпляры занятий снимают с него слепок полей при материализации,
// поэтому правка шаблона не трогает уже созданные экземпляры.
type ClassSchedule struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	ClassType       string            `json:"class_type"` // например "yoga", "crossfit"
	Instructor      string            `json:"instructor"`
	Location        string            `json:"location"`
	Capacity        int               `json:"capacity"`
	DurationMinutes int               `json:"duration_minutes"`
	StartDate       time.Time         `json:"start_date"`   // якорная дата (полночь UTC)
	StartHour       int               `json:"start_hour"`   // 0-23
	StartMinute     int               `json:"start_minute"` // 0-59
	Pattern         RecurrencePattern `json:"pattern"`
	IsActive        bool              `json:"is_active"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// DateOnly нормализует время к календарной дате (полночь UTC).
// Вся дата-арифметика ядра работает в этих терминах, без часовых поясов.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate проверяет шаблон перед созданием/обновлением
func (s ClassSchedule) Validate() error {
	if s.Name == "" {
		return invalidInputf("schedule name is required")
	}
	if s.Capacity <= 0 {
		return invalidInputf("capacity must be positive, got %d", s.Capacity)
	}
	if s.DurationMinutes <= 0 {
		return invalidInputf("duration must be positive, got %d", s.DurationMinutes)
	}
	if s.StartHour < 0 || s.StartHour > 23 {
		return invalidInputf("start hour out of range: %d", s.StartHour)
	}
	if s.StartMinute < 0 || s.StartMinute > 59 {
		return invalidInputf("start minute out of range: %d", s.StartMinute)
	}
	switch s.Pattern.Type {
	case ScheduleTypeSingle:
		// одиночное занятие: дни недели не используются
	case ScheduleTypeRecurring:
		if len(s.Pattern.DaysOfWeek) == 0 {
			return invalidInputf("recurring schedule requires at least one weekday")
		}
		for _, d := range s.Pattern.DaysOfWeek {
			if d < 0 || d > 6 {
				return invalidInputf("weekday out of range: %d", d)
			}
		}
	default:
		return invalidInputf("unknown schedule type %q", s.Pattern.Type)
	}
	return nil
}
