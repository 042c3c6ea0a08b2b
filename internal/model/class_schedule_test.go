package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleValidate(t *testing.T) {
	valid := ClassSchedule{
		Name:            "Boxing",
		Capacity:        12,
		DurationMinutes: 45,
		StartHour:       19,
		StartMinute:     0,
		StartDate:       time.Now(),
		Pattern:         RecurrencePattern{Type: ScheduleTypeRecurring, DaysOfWeek: []int{2, 4}},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*ClassSchedule)
	}{
		{"empty name", func(s *ClassSchedule) { s.Name = "" }},
		{"zero capacity", func(s *ClassSchedule) { s.Capacity = 0 }},
		{"negative duration", func(s *ClassSchedule) { s.DurationMinutes = -10 }},
		{"hour out of range", func(s *ClassSchedule) { s.StartHour = 24 }},
		{"minute out of range", func(s *ClassSchedule) { s.StartMinute = 60 }},
		{"recurring without weekdays", func(s *ClassSchedule) { s.Pattern.DaysOfWeek = nil }},
		{"weekday out of range", func(s *ClassSchedule) { s.Pattern.DaysOfWeek = []int{1, 9} }},
		{"unknown type", func(s *ClassSchedule) { s.Pattern.Type = "biweekly" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			require.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestScheduleValidateSingleIgnoresWeekdays(t *testing.T) {
	s := ClassSchedule{
		Name:            "Open Day",
		Capacity:        30,
		DurationMinutes: 120,
		StartHour:       11,
		Pattern:         RecurrencePattern{Type: ScheduleTypeSingle},
	}
	require.NoError(t, s.Validate())
}

func TestDateOnly(t *testing.T) {
	moment := time.Date(2024, time.March, 5, 18, 45, 12, 999, time.UTC)
	require.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), DateOnly(moment))
}
