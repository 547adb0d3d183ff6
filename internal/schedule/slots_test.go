package schedule

import (
	"errors"
	"testing"
	"time"
)

// 2 марта 2026 — понедельник.
func monday(t *testing.T) time.Time {
	t.Helper()
	return mustTime(t, 2026, 3, 2, 0, 0)
}

func baseParams(t *testing.T) GenerateParams {
	t.Helper()
	return GenerateParams{
		From:     monday(t),
		To:       monday(t).AddDate(0, 0, 1),
		Now:      mustTime(t, 2026, 3, 1, 12, 0),
		Duration: time.Hour,
		Rules: []WeeklyRule{
			{Weekday: time.Monday, StartTime: "09:00", EndTime: "18:00"},
		},
	}
}

func TestGenerate_FullWorkingDay(t *testing.T) {
	slots, err := Generate(baseParams(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(slots) != 9 {
		t.Fatalf("expected 9 hourly slots in 09:00-18:00, got %d: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(mustTime(t, 2026, 3, 2, 9, 0)) {
		t.Fatalf("expected first slot at 09:00, got %v", slots[0].Start)
	}
	if !slots[8].End.Equal(mustTime(t, 2026, 3, 2, 18, 0)) {
		t.Fatalf("expected last slot to end at 18:00, got %v", slots[8].End)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Fatalf("slots must be sorted ascending: %v", slots)
		}
	}
}

func TestGenerate_SlotLengthEqualsDuration(t *testing.T) {
	p := baseParams(t)
	p.Duration = 45 * time.Minute

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, s := range slots {
		if s.Duration() != 45*time.Minute {
			t.Fatalf("every slot must be exactly 45m long, got %v", s)
		}
	}
}

func TestGenerate_BusyIntervalRemovesSlot(t *testing.T) {
	p := baseParams(t)
	p.Busy = []TimeRange{
		{Start: mustTime(t, 2026, 3, 2, 12, 0), End: mustTime(t, 2026, 3, 2, 13, 0)},
	}

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots with one busy hour, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Start.Equal(mustTime(t, 2026, 3, 2, 12, 0)) {
			t.Fatalf("busy slot must be excluded, got %v", slots)
		}
	}
}

func TestGenerate_BufferPadsConflictCheck(t *testing.T) {
	// Занят час 12:00–13:00, буфер 15 минут: соседние слоты 11:00 и 13:00
	// тоже уходят, а длина остальных не меняется.
	p := baseParams(t)
	p.Buffer = 15 * time.Minute
	p.Busy = []TimeRange{
		{Start: mustTime(t, 2026, 3, 2, 12, 0), End: mustTime(t, 2026, 3, 2, 13, 0)},
	}

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots with buffered busy hour, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s.Duration() != time.Hour {
			t.Fatalf("buffer must not change slot length, got %v", s)
		}
		switch {
		case s.Start.Equal(mustTime(t, 2026, 3, 2, 11, 0)),
			s.Start.Equal(mustTime(t, 2026, 3, 2, 12, 0)),
			s.Start.Equal(mustTime(t, 2026, 3, 2, 13, 0)):
			t.Fatalf("slot %v conflicts with buffered busy interval", s)
		}
	}
}

func TestGenerate_UnavailableExceptionClosesDay(t *testing.T) {
	p := baseParams(t)
	p.Exceptions = []DateException{{Date: monday(t), Available: false}}

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed date, got %v", slots)
	}
}

func TestGenerate_AvailableExceptionOpensWholeDay(t *testing.T) {
	// Вторник без еженедельного правила, но с исключением "доступен":
	// открыт весь день [00:00, 24:00).
	tuesday := monday(t).AddDate(0, 0, 1)
	p := GenerateParams{
		From:       tuesday,
		To:         tuesday.AddDate(0, 0, 1),
		Now:        mustTime(t, 2026, 3, 1, 12, 0),
		Duration:   time.Hour,
		Exceptions: []DateException{{Date: tuesday, Available: true}},
	}

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 24 {
		t.Fatalf("expected 24 hourly slots on a fully open date, got %d", len(slots))
	}
}

func TestGenerate_PastSlotsFiltered(t *testing.T) {
	p := baseParams(t)
	// Запрос в середине дня: слот 13:00 начинается ровно в Now и отбрасывается.
	p.Now = mustTime(t, 2026, 3, 2, 13, 0)

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected 4 future slots (14:00..17:00), got %d: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(mustTime(t, 2026, 3, 2, 14, 0)) {
		t.Fatalf("expected first future slot at 14:00, got %v", slots[0].Start)
	}
}

func TestGenerate_HorizonCapsRange(t *testing.T) {
	p := baseParams(t)
	p.To = monday(t).AddDate(0, 0, 60)
	p.HorizonDays = 7

	slots, err := Generate(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Одно правило на понедельник, горизонт 7 дней — только один понедельник.
	if len(slots) != 9 {
		t.Fatalf("expected a single Monday within the horizon, got %d slots", len(slots))
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	p := baseParams(t)
	p.Duration = 0
	if _, err := Generate(p); !errors.Is(err, ErrSlotDuration) {
		t.Fatalf("expected ErrSlotDuration, got %v", err)
	}

	p = baseParams(t)
	p.To = p.From
	if _, err := Generate(p); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}

	p = baseParams(t)
	p.Rules = []WeeklyRule{{Weekday: time.Monday, StartTime: "9am", EndTime: "18:00"}}
	if _, err := Generate(p); !errors.Is(err, ErrClockFormat) {
		t.Fatalf("expected ErrClockFormat, got %v", err)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	if err != nil || h != 9 || m != 30 {
		t.Fatalf("expected 9:30, got %d:%d err=%v", h, m, err)
	}

	for _, bad := range []string{"24:00", "12:60", "9:00", "12-30", "12:3a", "+1:30", "noon", ""} {
		if _, _, err := ParseClock(bad); !errors.Is(err, ErrClockFormat) {
			t.Fatalf("expected ErrClockFormat for %q, got %v", bad, err)
		}
	}
}
