package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DefaultHorizonDays — горизонт генерации слотов по умолчанию.
// Ограничивает объём вычислений; для дальнего просмотра вызывающий
// повторяет запрос с более поздним диапазоном.
const DefaultHorizonDays = 14

var ErrClockFormat = errors.New("clock must be in HH:MM format")

// WeeklyRule — еженедельное окно доступности: день недели плюс
// времена "HH:MM" (0 = воскресенье, как в time.Weekday).
type WeeklyRule struct {
	Weekday   time.Weekday
	StartTime string
	EndTime   string
}

// DateException — точечное переопределение доступности на дату.
// Если Available=false, дата закрыта целиком независимо от правил.
// Если Available=true, дата считается открытой [00:00, 24:00) даже
// без еженедельного правила.
type DateException struct {
	Date      time.Time
	Available bool
}

// GenerateParams — вход генератора слотов.
type GenerateParams struct {
	// Полуинтервал дат [From, To): дата From включается, дата To — нет.
	From time.Time
	To   time.Time
	// Момент запроса: слоты, начинающиеся не строго в будущем, отбрасываются.
	Now time.Time
	// Длина слота = длительность услуги.
	Duration time.Duration
	// Буфер на подготовку между записями. При проверке конфликтов
	// кандидат расширяется на буфер с обеих сторон, длина самого слота
	// при этом не меняется. 0 — без буфера.
	Buffer time.Duration
	// Горизонт в днях; <=0 — DefaultHorizonDays.
	HorizonDays int

	Rules      []WeeklyRule
	Exceptions []DateException
	// Интервалы существующих блокирующих записей мастера.
	Busy []TimeRange
}

// Generate вычисляет упорядоченный по возрастанию список свободных
// слотов [start, end) для мастера и услуги.
func Generate(p GenerateParams) ([]TimeRange, error) {
	if p.Duration <= 0 {
		return nil, ErrSlotDuration
	}
	if p.From.IsZero() || p.To.IsZero() || !p.To.After(p.From) {
		return nil, ErrInvalidTimeRange
	}

	horizon := p.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	fromDate := dateOnly(p.From)
	toDate := dateOnly(p.To)
	if capDate := fromDate.AddDate(0, 0, horizon); toDate.After(capDate) {
		toDate = capDate
	}

	exceptions := make(map[time.Time]bool, len(p.Exceptions))
	for _, exc := range p.Exceptions {
		exceptions[dateOnly(exc.Date)] = exc.Available
	}

	rulesByDay := make(map[time.Weekday][]WeeklyRule, len(p.Rules))
	for _, r := range p.Rules {
		rulesByDay[r.Weekday] = append(rulesByDay[r.Weekday], r)
	}

	var slots []TimeRange
	for day := fromDate; day.Before(toDate); day = day.AddDate(0, 0, 1) {
		open, err := openIntervals(day, rulesByDay, exceptions)
		if err != nil {
			return nil, err
		}
		for _, interval := range open {
			candidates, err := SplitToTimeSlots(interval, p.Duration)
			if err != nil {
				return nil, err
			}
			for _, c := range candidates {
				if !c.Start.After(p.Now) {
					continue
				}
				if busy, _ := HasOverlap(c.Pad(p.Buffer), p.Busy); busy {
					continue
				}
				slots = append(slots, c)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots, nil
}

// openIntervals возвращает открытые интервалы даты day с учётом
// исключений и еженедельных правил.
func openIntervals(
	day time.Time,
	rulesByDay map[time.Weekday][]WeeklyRule,
	exceptions map[time.Time]bool,
) ([]TimeRange, error) {
	if available, ok := exceptions[day]; ok {
		if !available {
			return nil, nil
		}
		// Исключение "доступен" открывает дату целиком.
		return []TimeRange{{Start: day, End: day.AddDate(0, 0, 1)}}, nil
	}

	var intervals []TimeRange
	for _, rule := range rulesByDay[day.Weekday()] {
		start, err := clockOnDate(day, rule.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := clockOnDate(day, rule.EndTime)
		if err != nil {
			return nil, err
		}
		if !end.After(start) {
			continue
		}
		intervals = append(intervals, TimeRange{Start: start, End: end})
	}
	return intervals, nil
}

// ParseClock разбирает строго "HH:MM" (обе части двузначные) в часы и минуты.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrClockFormat, s)
	}
	return t.Hour(), t.Minute(), nil
}

func clockOnDate(day time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), nil
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
