package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandSingle(t *testing.T) {
	pattern := model.RecurrencePattern{Type: model.ScheduleTypeSingle}

	occs, err := Expand(pattern, date(2024, time.March, 15), 18, 30, 365)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	require.Equal(t, date(2024, time.March, 15), occs[0].Date)
	require.Equal(t, 18, occs[0].StartHour)
	require.Equal(t, 30, occs[0].StartMinute)
}

func TestExpandRecurring(t *testing.T) {
	// 2024-01-01 - понедельник; Mon+Wed на 14 дней вперёд
	pattern := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{1, 3},
	}

	occs, err := Expand(pattern, date(2024, time.January, 1), 9, 0, 14)
	require.NoError(t, err)

	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 8),
		date(2024, time.January, 10),
		date(2024, time.January, 15),
	}
	require.Len(t, occs, len(want))
	for n, occ := range occs {
		require.Equal(t, want[n], occ.Date)
		require.Equal(t, 9, occ.StartHour)
		require.Equal(t, 0, occ.StartMinute)
	}
}

func TestExpandEveryEmittedWeekdayMatches(t *testing.T) {
	pattern := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{0, 2, 5},
	}

	occs, err := Expand(pattern, date(2024, time.February, 7), 7, 0, 90)
	require.NoError(t, err)
	require.NotEmpty(t, occs)

	allowed := map[time.Weekday]bool{time.Sunday: true, time.Tuesday: true, time.Friday: true}
	prev := time.Time{}
	for _, occ := range occs {
		require.True(t, allowed[occ.Date.Weekday()], "unexpected weekday %s", occ.Date.Weekday())
		require.True(t, occ.Date.After(prev), "dates must be strictly ascending")
		prev = occ.Date
	}
}

func TestExpandDeterministic(t *testing.T) {
	pattern := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{6},
	}

	first, err := Expand(pattern, date(2024, time.May, 1), 10, 15, 60)
	require.NoError(t, err)
	second, err := Expand(pattern, date(2024, time.May, 1), 10, 15, 60)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExpandDuplicateWeekdaysAreASet(t *testing.T) {
	base := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{2, 4},
	}
	noisy := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{4, 2, 2, 4, 4},
	}

	want, err := Expand(base, date(2024, time.June, 3), 12, 0, 30)
	require.NoError(t, err)
	got, err := Expand(noisy, date(2024, time.June, 3), 12, 0, 30)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestExpandHorizonInclusive(t *testing.T) {
	// 2024-01-01 понедельник, горизонт 7 дней: 1-е и 8-е оба входят
	pattern := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{1},
	}

	occs, err := Expand(pattern, date(2024, time.January, 1), 9, 0, 7)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	require.Equal(t, date(2024, time.January, 8), occs[1].Date)
}

func TestExpandDefaultHorizon(t *testing.T) {
	pattern := model.RecurrencePattern{
		Type:       model.ScheduleTypeRecurring,
		DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6},
	}

	occs, err := Expand(pattern, date(2024, time.January, 1), 9, 0, 0)
	require.NoError(t, err)
	// каждый день в [anchor, anchor+365] включительно
	require.Len(t, occs, DefaultHorizonDays+1)
}

func TestExpandInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		pattern model.RecurrencePattern
	}{
		{"recurring without weekdays", model.RecurrencePattern{Type: model.ScheduleTypeRecurring}},
		{"weekday out of range", model.RecurrencePattern{Type: model.ScheduleTypeRecurring, DaysOfWeek: []int{7}}},
		{"negative weekday", model.RecurrencePattern{Type: model.ScheduleTypeRecurring, DaysOfWeek: []int{-1}}},
		{"unknown type", model.RecurrencePattern{Type: "weekly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.pattern, date(2024, time.January, 1), 9, 0, 30)
			require.True(t, errors.Is(err, model.ErrInvalidInput), "want ErrInvalidInput, got %v", err)
		})
	}
}
