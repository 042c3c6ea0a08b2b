package model

import (
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusFrozen    MembershipStatus = "frozen"
	MembershipStatusCancelled MembershipStatus = "cancelled"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusSuspended MembershipStatus = "suspended"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// MemberMembership - абонемент участника по конкретному плану.
// Запись никогда не удаляется физически: это аудиторский след,
// статус меняется только через четыре операции жизненного цикла.
// Статус expired ядро само не выставляет - его проставляет внешний
// ночной обход по end_date.
type MemberMembership struct {
	ID       uuid.UUID        `json:"id"`
	MemberID uuid.UUID        `json:"member_id"`
	PlanID   uuid.UUID        `json:"plan_id"`
	Status   MembershipStatus `json:"status"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// Окно заморозки. OriginalEndDate сохраняет конец срока до первой
	// заморозки, чтобы unfreeze/reactivate могли рассуждать об исходном сроке.
	FreezeStartDate *time.Time `json:"freeze_start_date,omitempty"`
	FreezeEndDate   *time.Time `json:"freeze_end_date,omitempty"`
	FreezeReason    string     `json:"freeze_reason,omitempty"`
	OriginalEndDate *time.Time `json:"original_end_date,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancellationDate   *time.Time `json:"cancellation_date,omitempty"`

	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	Amount           float64       `json:"amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Freeze замораживает активный абонемент. Задаётся ровно одно из двух:
// количество дней (durationDays > 0) или явная дата окончания (until).
// Конец срока сдвигается ровно на замороженный интервал - оставшийся
// срок участника никогда не сгорает.
func (m MemberMembership) Freeze(reason string, durationDays int, until *time.Time, today time.Time) (MemberMembership, error) {
	if m.Status != MembershipStatusActive {
		return m, invalidTransitionf("cannot freeze membership in status %q", m.Status)
	}
	if durationDays > 0 && until != nil {
		return m, invalidInputf("freeze takes either a duration or an end date, not both")
	}
	if durationDays <= 0 && until == nil {
		return m, invalidInputf("freeze requires a duration in days or an explicit end date")
	}

	start := DateOnly(today)
	var end time.Time
	if durationDays > 0 {
		end = start.AddDate(0, 0, durationDays)
	} else {
		end = DateOnly(*until)
	}
	if !end.After(start) {
		return m, invalidInputf("freeze end date must be after %s", start.Format("2006-01-02"))
	}

	frozenDays := int(end.Sub(start).Hours() / 24)

	out := m
	out.Status = MembershipStatusFrozen
	out.FreezeStartDate = &start
	out.FreezeEndDate = &end
	out.FreezeReason = reason
	if m.OriginalEndDate == nil {
		orig := m.EndDate
		out.OriginalEndDate = &orig
	}
	out.EndDate = m.EndDate.AddDate(0, 0, frozenDays)
	return out, nil
}

// Unfreeze возвращает абонемент в active и очищает окно заморозки.
// Досрочная разморозка разрешена и НЕ откатывает сдвиг EndDate:
// уже предоставленное продление остаётся за участником.
func (m MemberMembership) Unfreeze(reason string) (MemberMembership, error) {
	if m.Status != MembershipStatusFrozen {
		return m, invalidTransitionf("cannot unfreeze membership in status %q", m.Status)
	}
	_ = reason // причина уходит в журнал сервиса, на состояние не влияет
	out := m
	out.Status = MembershipStatusActive
	out.FreezeStartDate = nil
	out.FreezeEndDate = nil
	out.FreezeReason = ""
	return out, nil
}

// Cancel закрывает активный или замороженный абонемент
func (m MemberMembership) Cancel(reason string, today time.Time) (MemberMembership, error) {
	if m.Status != MembershipStatusActive && m.Status != MembershipStatusFrozen {
		return m, invalidTransitionf("cannot cancel membership in status %q", m.Status)
	}
	when := DateOnly(today)
	out := m
	out.Status = MembershipStatusCancelled
	out.CancellationReason = reason
	out.CancellationDate = &when
	return out, nil
}

// Reactivate возобновляет закрытый абонемент (cancelled/expired/suspended).
// StartDate не трогаем - история сохраняется, переносится только конец
// срока. Платёжные поля записываются как есть: ядро платежи не проводит.
func (m MemberMembership) Reactivate(reason string, newEndDate time.Time, amount float64, paymentRef string, today time.Time) (MemberMembership, error) {
	switch m.Status {
	case MembershipStatusCancelled, MembershipStatusExpired, MembershipStatusSuspended:
	default:
		return m, invalidTransitionf("cannot reactivate membership in status %q", m.Status)
	}
	end := DateOnly(newEndDate)
	if !end.After(DateOnly(today)) {
		return m, invalidInputf("new end date must be in the future")
	}
	_ = reason
	out := m
	out.Status = MembershipStatusActive
	out.EndDate = end
	out.CancellationReason = ""
	out.CancellationDate = nil
	out.FreezeStartDate = nil
	out.FreezeEndDate = nil
	out.FreezeReason = ""
	out.OriginalEndDate = nil
	if amount > 0 {
		out.Amount = amount
	}
	if paymentRef != "" {
		out.PaymentReference = paymentRef
		out.PaymentStatus = PaymentStatusPaid
	}
	return out, nil
}
