package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/repository"
	"github.com/Leganyst/beauty-platform/internal/schedule"
)

// SlotService вычисляет свободные слоты мастера по услуге: еженедельные
// правила плюс исключения минус существующие блокирующие записи.
// Слоты нигде не хранятся — это чистая проекция на момент запроса,
// окончательная проверка конфликта всё равно выполняется при создании
// записи.
type SlotService struct {
	availRepo   repository.AvailabilityRepository
	serviceRepo repository.ServiceRepository
	bookingRepo repository.BookingRepository

	horizonDays int
	now         func() time.Time
}

func NewSlotService(
	availRepo repository.AvailabilityRepository,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
	horizonDays int,
) *SlotService {
	return &SlotService{
		availRepo:   availRepo,
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
		horizonDays: horizonDays,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListSlots возвращает свободные слоты [start, end) длиной в услугу,
// по возрастанию начала. bufferMin расширяет проверку конфликтов,
// не меняя длину слота.
func (s *SlotService) ListSlots(
	ctx context.Context,
	proID, serviceID uuid.UUID,
	from, to time.Time,
	bufferMin int,
) ([]schedule.TimeRange, error) {
	if !to.After(from) {
		return nil, invalid("to", "must be after from")
	}
	if bufferMin < 0 {
		return nil, invalid("buffer_min", "must not be negative")
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	if svc.ProID != proID || !svc.IsActive {
		return nil, ErrNotFound
	}

	rules, err := s.availRepo.ListRules(ctx, proID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	// Колонка date привязана к полуночи: запрос исключений идёт от начала
	// дня from, иначе исключение текущей даты выпадает при from внутри дня.
	dayFrom := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	excs, err := s.availRepo.ListExceptions(ctx, proID, dayFrom, to)
	if err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	busy, err := s.bookingRepo.ListBlockingInRange(ctx, proID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	params := schedule.GenerateParams{
		From:        from,
		To:          to,
		Now:         s.now(),
		Duration:    time.Duration(svc.DurationMin) * time.Minute,
		Buffer:      time.Duration(bufferMin) * time.Minute,
		HorizonDays: s.horizonDays,
	}
	for _, r := range rules {
		params.Rules = append(params.Rules, schedule.WeeklyRule{
			Weekday:   time.Weekday(r.Weekday),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	for _, exc := range excs {
		params.Exceptions = append(params.Exceptions, schedule.DateException{
			Date:      time.Time(exc.Date),
			Available: exc.IsAvailable,
		})
	}
	for _, b := range busy {
		params.Busy = append(params.Busy, schedule.TimeRange{Start: b.StartAt, End: b.EndAt})
	}

	return schedule.Generate(params)
}
