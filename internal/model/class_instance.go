package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type InstanceStatus string

const (
	InstanceStatusScheduled InstanceStatus = "scheduled"
	InstanceStatusOngoing   InstanceStatus = "ongoing"
	InstanceStatusCompleted InstanceStatus = "completed"
	InstanceStatusCancelled InstanceStatus = "cancelled"
)

// ClassInstance - одно конкретное занятие в конкретную дату.
// Несёт собственную копию полей шаблона: шаблон могут править после
// материализации, на уже созданные занятия это влиять не должно.
type ClassInstance struct {
	ID              uuid.UUID      `json:"id"`
	ScheduleID      uuid.UUID      `json:"schedule_id"`
	Name            string         `json:"name"`
	ClassType       string         `json:"class_type"`
	Instructor      string         `json:"instructor"`
	Location        string         `json:"location"`
	Capacity        int            `json:"capacity"`
	DurationMinutes int            `json:"duration_minutes"`
	Date            time.Time      `json:"date"` // календарная дата (полночь UTC)
	StartHour       int            `json:"start_hour"`
	StartMinute     int            `json:"start_minute"`
	Status          InstanceStatus `json:"status"`

	// Registered хранит участников в порядке записи (FIFO),
	// Waitlist - очередь сверх вместимости, тоже FIFO.
	Registered []uuid.UUID `json:"registered_participants"`
	Waitlist   []uuid.UUID `json:"waitlist"`

	StartedAt             *time.Time `json:"started_at,omitempty"` // фактическое начало, ставится Start
	ActualDurationMinutes *int       `json:"actual_duration_minutes,omitempty"`
	CancellationReason    string     `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClassInstance снимает слепок шаблона для одной даты.
// Время занятия у всех экземпляров одно - из шаблона.
func NewClassInstance(s ClassSchedule, date time.Time) ClassInstance {
	return ClassInstance{
		ID:              uuid.New(),
		ScheduleID:      s.ID,
		Name:            s.Name,
		ClassType:       s.ClassType,
		Instructor:      s.Instructor,
		Location:        s.Location,
		Capacity:        s.Capacity,
		DurationMinutes: s.DurationMinutes,
		Date:            DateOnly(date),
		StartHour:       s.StartHour,
		StartMinute:     s.StartMinute,
		Status:          InstanceStatusScheduled,
	}
}

// StartsAt возвращает полный момент начала занятия
func (i ClassInstance) StartsAt() time.Time {
	return time.Date(i.Date.Year(), i.Date.Month(), i.Date.Day(),
		i.StartHour, i.StartMinute, 0, 0, time.UTC)
}

// EndsAt - производное время окончания: начало + длительность
func (i ClassInstance) EndsAt() time.Time {
	return i.StartsAt().Add(time.Duration(i.DurationMinutes) * time.Minute)
}

// CanStart/CanEnd/CanCancel - единая точка правды для "что можно сделать
// с занятием". И ядро, и HTTP-слой должны спрашивать только здесь.

func (i ClassInstance) CanStart() bool  { return i.Status == InstanceStatusScheduled }
func (i ClassInstance) CanEnd() bool    { return i.Status == InstanceStatusOngoing }
func (i ClassInstance) CanCancel() bool { return i.Status == InstanceStatusScheduled }

// Start переводит занятие scheduled -> ongoing и запоминает фактическое
// время начала для последующего расчёта длительности в End.
func (i ClassInstance) Start(now time.Time) (ClassInstance, error) {
	if !i.CanStart() {
		return i, invalidTransitionf("cannot start class in status %q", i.Status)
	}
	out := i
	out.Status = InstanceStatusOngoing
	started := now
	out.StartedAt = &started
	return out, nil
}

// End переводит занятие ongoing -> completed и считает фактическую
// длительность от метки Start. Если метки нет - берём плановую длительность.
func (i ClassInstance) End(now time.Time) (ClassInstance, error) {
	if !i.CanEnd() {
		return i, invalidTransitionf("cannot end class in status %q", i.Status)
	}
	out := i
	out.Status = InstanceStatusCompleted
	actual := i.DurationMinutes
	if i.StartedAt != nil {
		actual = int(now.Sub(*i.StartedAt).Minutes())
		if actual < 0 {
			actual = 0
		}
	}
	out.ActualDurationMinutes = &actual
	return out, nil
}

// Cancel отменяет ещё не начатое занятие. Идущее занятие отменить нельзя:
// из ongoing единственный выход - End.
func (i ClassInstance) Cancel(reason string) (ClassInstance, error) {
	if !i.CanCancel() {
		return i, invalidTransitionf("cannot cancel class in status %q", i.Status)
	}
	out := i
	out.Status = InstanceStatusCancelled
	out.CancellationReason = reason
	return out, nil
}

// IsRegistered проверяет наличие участника в любом из двух списков
func (i ClassInstance) IsRegistered(memberID uuid.UUID) bool {
	return slices.Contains(i.Registered, memberID) || slices.Contains(i.Waitlist, memberID)
}

// Register записывает участника: в основной список, пока есть места,
// дальше - в лист ожидания. Порядок обоих списков - порядок прихода.
func (i ClassInstance) Register(memberID uuid.UUID) (ClassInstance, error) {
	if i.IsRegistered(memberID) {
		return i, ErrAlreadyRegistered
	}
	out := i
	if len(i.Registered) < i.Capacity {
		out.Registered = append(slices.Clone(i.Registered), memberID)
	} else {
		out.Waitlist = append(slices.Clone(i.Waitlist), memberID)
	}
	return out, nil
}

// Unregister убирает участника из того списка, где он есть. Если
// освободилось место в основном списке - продвигаем первого из очереди.
func (i ClassInstance) Unregister(memberID uuid.UUID) (ClassInstance, error) {
	out := i
	if idx := slices.Index(i.Registered, memberID); idx >= 0 {
		out.Registered = slices.Delete(slices.Clone(i.Registered), idx, idx+1)
		if len(i.Waitlist) > 0 {
			// FIFO-продвижение: единственная автоматическая миграция между списками
			out.Registered = append(out.Registered, i.Waitlist[0])
			out.Waitlist = slices.Clone(i.Waitlist[1:])
		}
		return out, nil
	}
	if idx := slices.Index(i.Waitlist, memberID); idx >= 0 {
		out.Waitlist = slices.Delete(slices.Clone(i.Waitlist), idx, idx+1)
		return out, nil
	}
	return i, ErrNotRegistered
}
