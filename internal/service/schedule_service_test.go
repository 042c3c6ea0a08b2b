package service

import (
	"testing"
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringSchedule() model.ClassSchedule {
	return model.ClassSchedule{
		ID:              uuid.New(),
		Name:            "HIIT",
		ClassType:       "hiit",
		Instructor:      "Pavel",
		Location:        "Main hall",
		Capacity:        15,
		DurationMinutes: 45,
		StartDate:       date(2024, time.January, 1), // понедельник
		StartHour:       18,
		StartMinute:     0,
		Pattern: model.RecurrencePattern{
			Type:       model.ScheduleTypeRecurring,
			DaysOfWeek: []int{1, 3},
		},
		IsActive: true,
	}
}

func TestBuildTargetInstancesFreshSchedule(t *testing.T) {
	s := recurringSchedule()

	target, err := buildTargetInstances(s, map[time.Time]bool{}, 14)
	require.NoError(t, err)
	require.Len(t, target, 5)

	for _, i := range target {
		require.Equal(t, s.ID, i.ScheduleID)
		require.Equal(t, model.InstanceStatusScheduled, i.Status)
		require.Equal(t, s.Name, i.Name)
		require.Equal(t, s.Capacity, i.Capacity)
		require.Empty(t, i.Registered)
		require.Empty(t, i.Waitlist)
	}
	require.Equal(t, date(2024, time.January, 1), target[0].Date)
	require.Equal(t, date(2024, time.January, 15), target[4].Date)
}

func TestBuildTargetInstancesIsSetUnion(t *testing.T) {
	s := recurringSchedule()

	first, err := buildTargetInstances(s, map[time.Time]bool{}, 14)
	require.NoError(t, err)

	// повторный прогон против уже существующих дат - ноль новых занятий
	existing := make(map[time.Time]bool, len(first))
	for _, i := range first {
		existing[i.Date] = true
	}
	second, err := buildTargetInstances(s, existing, 14)
	require.NoError(t, err)
	require.Empty(t, second)
}

func TestBuildTargetInstancesFillsOnlyGaps(t *testing.T) {
	s := recurringSchedule()

	existing := map[time.Time]bool{
		date(2024, time.January, 1): true,
		date(2024, time.January, 8): true,
	}
	target, err := buildTargetInstances(s, existing, 14)
	require.NoError(t, err)

	var dates []time.Time
	for _, i := range target {
		dates = append(dates, i.Date)
	}
	require.Equal(t, []time.Time{
		date(2024, time.January, 3),
		date(2024, time.January, 10),
		date(2024, time.January, 15),
	}, dates)
}

func TestBuildTargetInstancesSingle(t *testing.T) {
	s := recurringSchedule()
	s.Pattern = model.RecurrencePattern{Type: model.ScheduleTypeSingle}

	target, err := buildTargetInstances(s, map[time.Time]bool{}, 365)
	require.NoError(t, err)
	require.Len(t, target, 1)
	require.Equal(t, s.StartDate, target[0].Date)

	// одиночное занятие тоже идемпотентно
	target, err = buildTargetInstances(s, map[time.Time]bool{s.StartDate: true}, 365)
	require.NoError(t, err)
	require.Empty(t, target)
}

func TestBuildTargetInstancesInvalidPattern(t *testing.T) {
	s := recurringSchedule()
	s.Pattern.DaysOfWeek = nil

	_, err := buildTargetInstances(s, map[time.Time]bool{}, 14)
	require.ErrorIs(t, err, model.ErrInvalidInput)
}
