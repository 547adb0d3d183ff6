package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

// BookingService — машина состояний записи:
//
//	pending → confirmed → {processing_payment, paid, failed} → completed,
//
// из pending/confirmed достижимы canceled и rejected. Все проверки окон
// и статусов живут здесь; представление только отображает решения ядра.
type BookingService struct {
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
	proRepo     repository.ProfessionalRepository

	now func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	proRepo repository.ProfessionalRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		proRepo:     proRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create создаёт запись клиента к мастеру на startAt.
// Конец вычисляется из длительности услуги, сумма фиксируется из прайса.
// Конфликт интервалов перепроверяется атомарно на записи в хранилище:
// между показом слотов и бронированием интервал мог занять другой клиент.
func (s *BookingService) Create(
	ctx context.Context,
	clientID, proID, serviceID uuid.UUID,
	startAt time.Time,
) (uuid.UUID, error) {
	if startAt.IsZero() {
		return uuid.Nil, invalid("start_at", "is required")
	}
	if !startAt.After(s.now()) {
		return uuid.Nil, invalid("start_at", "must be in the future")
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return uuid.Nil, mapStorageErr(err)
	}
	if svc.ProID != proID || !svc.IsActive {
		return uuid.Nil, ErrNotFound
	}
	if _, err := s.proRepo.GetByID(ctx, proID); err != nil {
		return uuid.Nil, mapStorageErr(err)
	}

	startAt = startAt.UTC()
	endAt := startAt.Add(time.Duration(svc.DurationMin) * time.Minute)

	booking := &model.Booking{
		ID:         uuid.New(),
		ProID:      proID,
		ClientID:   clientID,
		ServiceID:  serviceID,
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     model.BookingStatusPending,
		TotalCents: svc.PriceCents,
	}

	if err := s.bookingRepo.CreateConflictChecked(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return uuid.Nil, &ConflictError{Start: startAt, End: endAt}
		}
		return uuid.Nil, fmt.Errorf("create booking: %w", mapStorageErr(err))
	}
	return booking.ID, nil
}

// Accept — мастер подтверждает запись. Только владелец, только из pending.
func (s *BookingService) Accept(ctx context.Context, proID, bookingID uuid.UUID) error {
	return s.proTransition(ctx, proID, bookingID, model.BookingStatusConfirmed,
		[]model.BookingStatus{model.BookingStatusPending})
}

// Reject — мастер отклоняет запись. Только владелец, только из pending.
func (s *BookingService) Reject(ctx context.Context, proID, bookingID uuid.UUID) error {
	return s.proTransition(ctx, proID, bookingID, model.BookingStatusRejected,
		[]model.BookingStatus{model.BookingStatusPending})
}

// Complete — мастер закрывает оплаченную запись после оказания услуги.
func (s *BookingService) Complete(ctx context.Context, proID, bookingID uuid.UUID) error {
	return s.proTransition(ctx, proID, bookingID, model.BookingStatusCompleted,
		[]model.BookingStatus{model.BookingStatusPaid})
}

func (s *BookingService) proTransition(
	ctx context.Context,
	proID, bookingID uuid.UUID,
	to model.BookingStatus,
	allowed []model.BookingStatus,
) error {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return mapStorageErr(err)
	}
	if b.ProID != proID {
		return ErrForbidden
	}
	if err := s.bookingRepo.UpdateStatusIf(ctx, bookingID, to, allowed); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return ErrInvalidState
		}
		return err
	}
	return nil
}

// Cancel — клиент или мастер отменяет запись из pending/confirmed.
// Разрешено строго раньше, чем за окно отмены до начала.
func (s *BookingService) Cancel(ctx context.Context, actorID, bookingID uuid.UUID) error {
	b, svc, err := s.bookingWithService(ctx, bookingID)
	if err != nil {
		return err
	}
	if actorID != b.ClientID && actorID != b.ProID {
		return ErrForbidden
	}
	if b.Status != model.BookingStatusPending && b.Status != model.BookingStatusConfirmed {
		return ErrInvalidState
	}

	window := svc.EffectiveCancelWindow()
	if !windowOpen(b.StartAt, s.now(), window) {
		return &OutsideCancelWindowError{WindowHours: window}
	}

	err = s.bookingRepo.UpdateStatusIf(ctx, bookingID, model.BookingStatusCanceled,
		[]model.BookingStatus{model.BookingStatusPending, model.BookingStatusConfirmed})
	if errors.Is(err, repository.ErrStale) {
		return ErrInvalidState
	}
	return err
}

// Reschedule переносит запись на newStart, сохраняя id и статус.
// Окно переноса считается от текущего начала записи; новый интервал
// проверяется на конфликты без учёта собственного текущего интервала.
func (s *BookingService) Reschedule(ctx context.Context, actorID, bookingID uuid.UUID, newStart time.Time) error {
	if newStart.IsZero() {
		return invalid("new_start_at", "is required")
	}
	if !newStart.After(s.now()) {
		return invalid("new_start_at", "must be in the future")
	}

	b, svc, err := s.bookingWithService(ctx, bookingID)
	if err != nil {
		return err
	}
	if actorID != b.ClientID && actorID != b.ProID {
		return ErrForbidden
	}
	if b.Status != model.BookingStatusPending && b.Status != model.BookingStatusConfirmed {
		return ErrInvalidState
	}

	window := svc.EffectiveRescheduleWindow()
	if !windowOpen(b.StartAt, s.now(), window) {
		return &OutsideRescheduleWindowError{WindowHours: window}
	}

	newStart = newStart.UTC()
	newEnd := newStart.Add(time.Duration(svc.DurationMin) * time.Minute)

	err = s.bookingRepo.RescheduleConflictChecked(ctx, bookingID, newStart, newEnd,
		[]model.BookingStatus{model.BookingStatusPending, model.BookingStatusConfirmed})
	switch {
	case errors.Is(err, repository.ErrOverlap):
		return &ConflictError{Start: newStart, End: newEnd}
	case errors.Is(err, repository.ErrStale):
		return ErrInvalidState
	}
	return err
}

// Get возвращает запись участнику (клиенту или мастеру).
func (s *BookingService) Get(ctx context.Context, actorID, bookingID uuid.UUID) (*model.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	if actorID != b.ClientID && actorID != b.ProID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *BookingService) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]model.Booking, int64, error) {
	return s.bookingRepo.ListByClient(ctx, clientID, limit, offset)
}

func (s *BookingService) ListByPro(
	ctx context.Context,
	proID uuid.UUID,
	status model.BookingStatus,
	limit, offset int,
) ([]model.Booking, int64, error) {
	return s.bookingRepo.ListByPro(ctx, proID, status, limit, offset)
}

func (s *BookingService) bookingWithService(ctx context.Context, bookingID uuid.UUID) (*model.Booking, *model.Service, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, mapStorageErr(err)
	}
	svc, err := s.serviceRepo.GetByID(ctx, b.ServiceID)
	if err != nil {
		return nil, nil, mapStorageErr(err)
	}
	return b, svc, nil
}

// windowOpen: действие разрешено, пока (start − now) строго больше окна.
// Окно 0 означает "до момента начала".
func windowOpen(start, now time.Time, windowHours int64) bool {
	return start.Sub(now) > time.Duration(windowHours)*time.Hour
}
