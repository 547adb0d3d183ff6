package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Доменные ошибки ядра. Все отдаются вызывающему синхронно;
// транспортный слой переводит их в коды ответа.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrForbidden       = errors.New("actor has no rights over the entity")
	ErrInvalidState    = errors.New("operation is not allowed in the current booking status")
	ErrDuplicateReview = errors.New("review already exists for this booking")
)

// ValidationError — некорректный вход: битое время, рейтинг вне 1–5,
// неположительная цена или длительность и т.п.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// ConflictError — интервал пересёкся с существующей блокирующей записью
// в момент записи в хранилище.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("interval [%s, %s) overlaps an existing booking",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// OutsideCancelWindowError — отмена запрошена позже, чем за окно отмены
// до начала записи. WindowHours отдаётся клиенту для объяснения отказа.
type OutsideCancelWindowError struct {
	WindowHours int64
}

func (e *OutsideCancelWindowError) Error() string {
	return fmt.Sprintf("cancellation is allowed no later than %d hour(s) before the start", e.WindowHours)
}

// OutsideRescheduleWindowError — перенос запрошен позже, чем за окно
// переноса до начала записи.
type OutsideRescheduleWindowError struct {
	WindowHours int64
}

func (e *OutsideRescheduleWindowError) Error() string {
	return fmt.Sprintf("reschedule is allowed no later than %d hour(s) before the start", e.WindowHours)
}

// ExternalServiceError — платёжный провайдер не готов принять операцию
// (например, аккаунт мастера не может принимать платежи).
type ExternalServiceError struct {
	Reason string
	Err    error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment provider: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payment provider: %s", e.Reason)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// mapStorageErr переводит "не найдено" из GORM в доменную ошибку.
func mapStorageErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
