package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testSchedule() ClassSchedule {
	return ClassSchedule{
		ID:              uuid.New(),
		Name:            "Morning Yoga",
		ClassType:       "yoga",
		Instructor:      "Anna",
		Location:        "Studio 2",
		Capacity:        2,
		DurationMinutes: 60,
		StartDate:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		StartHour:       9,
		StartMinute:     30,
		Pattern:         RecurrencePattern{Type: ScheduleTypeRecurring, DaysOfWeek: []int{1}},
		IsActive:        true,
	}
}

func TestNewClassInstanceSnapshotsSchedule(t *testing.T) {
	s := testSchedule()
	i := NewClassInstance(s, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC))

	require.Equal(t, s.ID, i.ScheduleID)
	require.Equal(t, s.Name, i.Name)
	require.Equal(t, s.Capacity, i.Capacity)
	require.Equal(t, InstanceStatusScheduled, i.Status)
	require.Empty(t, i.Registered)
	require.Empty(t, i.Waitlist)

	// endTime - производное: начало + длительность
	require.Equal(t, time.Date(2024, time.January, 8, 10, 30, 0, 0, time.UTC), i.EndsAt())

	// последующая правка шаблона не трогает снимок
	s.Name = "Evening Yoga"
	s.Capacity = 50
	require.Equal(t, "Morning Yoga", i.Name)
	require.Equal(t, 2, i.Capacity)
}

func TestInstanceLifecycleHappyPath(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())
	startedAt := time.Date(2024, time.January, 8, 9, 32, 0, 0, time.UTC)

	ongoing, err := i.Start(startedAt)
	require.NoError(t, err)
	require.Equal(t, InstanceStatusOngoing, ongoing.Status)
	require.NotNil(t, ongoing.StartedAt)

	done, err := ongoing.End(startedAt.Add(55 * time.Minute))
	require.NoError(t, err)
	require.Equal(t, InstanceStatusCompleted, done.Status)
	require.NotNil(t, done.ActualDurationMinutes)
	require.Equal(t, 55, *done.ActualDurationMinutes)
}

func TestInstanceCancel(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())

	cancelled, err := i.Cancel("instructor sick")
	require.NoError(t, err)
	require.Equal(t, InstanceStatusCancelled, cancelled.Status)
	require.Equal(t, "instructor sick", cancelled.CancellationReason)
}

func TestInstanceTransitionClosure(t *testing.T) {
	now := time.Now()
	scheduled := NewClassInstance(testSchedule(), now)
	ongoing, err := scheduled.Start(now)
	require.NoError(t, err)
	completed, err := ongoing.End(now)
	require.NoError(t, err)
	cancelled, err := scheduled.Cancel("x")
	require.NoError(t, err)

	tests := []struct {
		name string
		op   func() error
	}{
		{"start ongoing", func() error { _, err := ongoing.Start(now); return err }},
		{"start completed", func() error { _, err := completed.Start(now); return err }},
		{"start cancelled", func() error { _, err := cancelled.Start(now); return err }},
		{"end scheduled", func() error { _, err := scheduled.End(now); return err }},
		{"end completed", func() error { _, err := completed.End(now); return err }},
		{"end cancelled", func() error { _, err := cancelled.End(now); return err }},
		{"cancel ongoing", func() error { _, err := ongoing.Cancel("x"); return err }},
		{"cancel completed", func() error { _, err := completed.Cancel("x"); return err }},
		{"cancel cancelled", func() error { _, err := cancelled.Cancel("x"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.op(), ErrInvalidTransition)
		})
	}
}

func TestInstanceEndWithoutStartMarkerFallsBack(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())
	// руками собранный ongoing без метки старта
	i.Status = InstanceStatusOngoing
	i.StartedAt = nil

	done, err := i.End(time.Now())
	require.NoError(t, err)
	require.NotNil(t, done.ActualDurationMinutes)
	require.Equal(t, i.DurationMinutes, *done.ActualDurationMinutes)
}

func TestFailedTransitionDoesNotMutate(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())
	cancelled, err := i.Cancel("ok")
	require.NoError(t, err)

	snapshot := cancelled
	_, err = cancelled.Start(time.Now())
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, snapshot, cancelled)
}

func TestRegisterUntilCapacityThenWaitlist(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now()) // capacity 2
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	i, err := i.Register(a)
	require.NoError(t, err)
	i, err = i.Register(b)
	require.NoError(t, err)
	i, err = i.Register(c)
	require.NoError(t, err)

	require.Equal(t, []uuid.UUID{a, b}, i.Registered)
	require.Equal(t, []uuid.UUID{c}, i.Waitlist)
}

func TestRegisterDuplicateFails(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())
	a := uuid.New()

	i, err := i.Register(a)
	require.NoError(t, err)

	_, err = i.Register(a)
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	// дубликат из листа ожидания тоже отклоняется
	b, c := uuid.New(), uuid.New()
	i, err = i.Register(b)
	require.NoError(t, err)
	i, err = i.Register(c) // уходит в waitlist
	require.NoError(t, err)
	_, err = i.Register(c)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestUnregisterPromotesWaitlistFIFO(t *testing.T) {
	s := testSchedule()
	s.Capacity = 1
	i := NewClassInstance(s, time.Now())
	a, b := uuid.New(), uuid.New()

	i, err := i.Register(a)
	require.NoError(t, err)
	i, err = i.Register(b)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a}, i.Registered)
	require.Equal(t, []uuid.UUID{b}, i.Waitlist)

	i, err = i.Unregister(a)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b}, i.Registered)
	require.Empty(t, i.Waitlist)
}

func TestUnregisterFromWaitlistDoesNotPromote(t *testing.T) {
	s := testSchedule()
	s.Capacity = 1
	i := NewClassInstance(s, time.Now())
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{a, b, c} {
		var err error
		i, err = i.Register(id)
		require.NoError(t, err)
	}
	require.Equal(t, []uuid.UUID{b, c}, i.Waitlist)

	i, err := i.Unregister(b)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a}, i.Registered)
	require.Equal(t, []uuid.UUID{c}, i.Waitlist)
}

func TestUnregisterUnknownMemberFails(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())
	_, err := i.Unregister(uuid.New())
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestCapacityInvariantHolds(t *testing.T) {
	s := testSchedule()
	s.Capacity = 3
	i := NewClassInstance(s, time.Now())

	members := make([]uuid.UUID, 10)
	for n := range members {
		members[n] = uuid.New()
	}

	check := func() {
		require.LessOrEqual(t, len(i.Registered), i.Capacity)
		if len(i.Waitlist) > 0 {
			require.Equal(t, i.Capacity, len(i.Registered),
				"waitlist must be empty unless participants are at capacity")
		}
	}

	for _, id := range members {
		var err error
		i, err = i.Register(id)
		require.NoError(t, err)
		check()
	}
	for _, id := range members[:6] {
		var err error
		i, err = i.Unregister(id)
		require.NoError(t, err)
		check()
	}
}

func TestRegisterReturnsNewSnapshot(t *testing.T) {
	i := NewClassInstance(testSchedule(), time.Now())
	a := uuid.New()

	updated, err := i.Register(a)
	require.NoError(t, err)
	require.Empty(t, i.Registered, "original snapshot must stay untouched")
	require.Equal(t, []uuid.UUID{a}, updated.Registered)
}
