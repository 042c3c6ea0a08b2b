package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func activeMembership(endDate time.Time) MemberMembership {
	return MemberMembership{
		ID:            uuid.New(),
		MemberID:      uuid.New(),
		PlanID:        uuid.New(),
		Status:        MembershipStatusActive,
		StartDate:     endDate.AddDate(0, -1, 0),
		EndDate:       endDate,
		PaymentStatus: PaymentStatusPaid,
	}
}

func TestFreezeByDurationShiftsEndDate(t *testing.T) {
	today := time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	m := activeMembership(end)

	frozen, err := m.Freeze("vacation", 10, nil, today)
	require.NoError(t, err)

	require.Equal(t, MembershipStatusFrozen, frozen.Status)
	require.Equal(t, DateOnly(today), *frozen.FreezeStartDate)
	require.Equal(t, DateOnly(today).AddDate(0, 0, 10), *frozen.FreezeEndDate)
	require.Equal(t, end.AddDate(0, 0, 10), frozen.EndDate, "end date shifted by frozen span")
	require.Equal(t, end, *frozen.OriginalEndDate, "original end preserved")
}

func TestFreezeByExplicitEndDate(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	m := activeMembership(end)

	frozen, err := m.Freeze("injury", 0, &until, today)
	require.NoError(t, err)

	require.Equal(t, until, *frozen.FreezeEndDate)
	require.Equal(t, end.AddDate(0, 0, 14), frozen.EndDate)
}

func TestFreezeValidation(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -3)
	m := activeMembership(today.AddDate(0, 1, 0))

	t.Run("neither duration nor end date", func(t *testing.T) {
		_, err := m.Freeze("x", 0, nil, today)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("both duration and end date", func(t *testing.T) {
		until := today.AddDate(0, 0, 5)
		_, err := m.Freeze("x", 5, &until, today)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end date not in the future", func(t *testing.T) {
		_, err := m.Freeze("x", 0, &past, today)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = m.Freeze("x", 0, &today, today)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestFreezeOnlyFromActive(t *testing.T) {
	today := time.Now()
	for _, status := range []MembershipStatus{
		MembershipStatusFrozen,
		MembershipStatusCancelled,
		MembershipStatusExpired,
		MembershipStatusSuspended,
	} {
		m := activeMembership(today.AddDate(0, 1, 0))
		m.Status = status
		_, err := m.Freeze("x", 7, nil, today)
		require.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestFreezeUnfreezeRoundTripKeepsShift(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	m := activeMembership(end)

	frozen, err := m.Freeze("trip", 10, nil, today)
	require.NoError(t, err)

	active, err := frozen.Unfreeze("came back early")
	require.NoError(t, err)

	// заморозка+разморозка - не тождество по EndDate, только по статусу:
	// сдвиг на 10 дней остаётся даже при досрочном возврате
	require.Equal(t, MembershipStatusActive, active.Status)
	require.Equal(t, end.AddDate(0, 0, 10), active.EndDate)
	require.Nil(t, active.FreezeStartDate)
	require.Nil(t, active.FreezeEndDate)
	require.Empty(t, active.FreezeReason)
}

func TestSecondFreezeKeepsFirstOriginalEndDate(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	m := activeMembership(end)

	frozen, err := m.Freeze("first", 10, nil, today)
	require.NoError(t, err)
	active, err := frozen.Unfreeze("back")
	require.NoError(t, err)

	frozen2, err := active.Freeze("second", 5, nil, today.AddDate(0, 0, 20))
	require.NoError(t, err)

	// OriginalEndDate сохранён с первого цикла, не перезаписан
	require.Equal(t, end, *frozen2.OriginalEndDate)
	require.Equal(t, end.AddDate(0, 0, 15), frozen2.EndDate)
}

func TestUnfreezeOnlyFromFrozen(t *testing.T) {
	m := activeMembership(time.Now().AddDate(0, 1, 0))
	_, err := m.Unfreeze("x")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelFromActiveAndFrozen(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	m := activeMembership(today.AddDate(0, 2, 0))

	cancelled, err := m.Cancel("moving away", today)
	require.NoError(t, err)
	require.Equal(t, MembershipStatusCancelled, cancelled.Status)
	require.Equal(t, "moving away", cancelled.CancellationReason)
	require.Equal(t, DateOnly(today), *cancelled.CancellationDate)

	frozen, err := m.Freeze("trip", 7, nil, today)
	require.NoError(t, err)
	cancelled2, err := frozen.Cancel("gave up", today)
	require.NoError(t, err)
	require.Equal(t, MembershipStatusCancelled, cancelled2.Status)
}

func TestCancelFromTerminalFails(t *testing.T) {
	today := time.Now()
	for _, status := range []MembershipStatus{
		MembershipStatusCancelled,
		MembershipStatusExpired,
		MembershipStatusSuspended,
	} {
		m := activeMembership(today.AddDate(0, 1, 0))
		m.Status = status
		_, err := m.Cancel("x", today)
		require.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestReactivateFromTerminalStates(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	newEnd := today.AddDate(0, 3, 0)

	for _, status := range []MembershipStatus{
		MembershipStatusCancelled,
		MembershipStatusExpired,
		MembershipStatusSuspended,
	} {
		m := activeMembership(today.AddDate(0, -1, 0))
		m.Status = status
		startDate := m.StartDate

		active, err := m.Reactivate("comeback", newEnd, 1999, "pay-42", today)
		require.NoError(t, err, "status %s", status)
		require.Equal(t, MembershipStatusActive, active.Status)
		require.Equal(t, DateOnly(newEnd), active.EndDate)
		require.Equal(t, startDate, active.StartDate, "history is preserved")
		require.Equal(t, "pay-42", active.PaymentReference)
		require.Empty(t, active.CancellationReason)
	}
}

func TestReactivateFromActiveOrFrozenFails(t *testing.T) {
	today := time.Now()
	newEnd := today.AddDate(0, 1, 0)

	m := activeMembership(today.AddDate(0, 1, 0))
	_, err := m.Reactivate("x", newEnd, 0, "", today)
	require.ErrorIs(t, err, ErrInvalidTransition)

	frozen, err := m.Freeze("trip", 7, nil, today)
	require.NoError(t, err)
	_, err = frozen.Reactivate("x", newEnd, 0, "", today)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReactivateRequiresFutureEndDate(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	m := activeMembership(today.AddDate(0, -1, 0))
	m.Status = MembershipStatusExpired

	_, err := m.Reactivate("x", today, 0, "", today)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = m.Reactivate("x", today.AddDate(0, 0, -1), 0, "", today)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFailedMembershipOperationDoesNotMutate(t *testing.T) {
	today := time.Now()
	m := activeMembership(today.AddDate(0, 1, 0))
	snapshot := m

	_, err := m.Unfreeze("x")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, snapshot, m)

	_, err = m.Freeze("x", 0, nil, today)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, snapshot, m)
}
