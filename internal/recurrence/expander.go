package recurrence

import (
	"time"

	"github.com/fitdesk/gym_admin/internal/model"
)

// DefaultHorizonDays - дефолтный горизонт разворачивания шаблона.
// Ограничивает размер выдачи, продакшен-значение - год вперёд.
const DefaultHorizonDays = 365

// Occurrence - одно конкретное вхождение шаблона: календарная дата
// плюс время начала (у всех вхождений шаблона время одно).
type Occurrence struct {
	Date        time.Time
	StartHour   int
	StartMinute int
}

// Expand разворачивает паттерн повторения в упорядоченный список вхождений.
//
// Семантика:
//   - single: ровно одно вхождение - якорная дата;
//   - recurring: каждый календарный день из [anchor, anchor+horizon]
//     включительно, чей день недели (0 = воскресенье) входит в DaysOfWeek.
//
// Функция чистая: одинаковые входы всегда дают одинаковую выдачу,
// скрытой зависимости от часов нет. DaysOfWeek трактуется как множество -
// дубликаты и порядок элементов на выдачу не влияют, выдача всегда
// хронологическая.
func Expand(p model.RecurrencePattern, anchorDate time.Time, startHour, startMinute, horizonDays int) ([]Occurrence, error) {
	anchor := model.DateOnly(anchorDate)
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	switch p.Type {
	case model.ScheduleTypeSingle:
		return []Occurrence{{Date: anchor, StartHour: startHour, StartMinute: startMinute}}, nil
	case model.ScheduleTypeRecurring:
	default:
		return nil, invalidPattern("unknown schedule type %q", p.Type)
	}

	// Пустое множество дней у recurring - ошибка вызывающего,
	// а не "ноль вхождений".
	if len(p.DaysOfWeek) == 0 {
		return nil, invalidPattern("recurring pattern requires at least one weekday")
	}
	weekdays := make(map[time.Weekday]struct{}, len(p.DaysOfWeek))
	for _, d := range p.DaysOfWeek {
		if d < 0 || d > 6 {
			return nil, invalidPattern("weekday out of range: %d", d)
		}
		weekdays[time.Weekday(d)] = struct{}{}
	}

	var out []Occurrence
	for i := 0; i <= horizonDays; i++ {
		date := anchor.AddDate(0, 0, i)
		if _, ok := weekdays[date.Weekday()]; ok {
			out = append(out, Occurrence{Date: date, StartHour: startHour, StartMinute: startMinute})
		}
	}
	return out, nil
}
