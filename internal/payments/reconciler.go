package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

// Тип платёжного события после перевода из формата провайдера.
type EventType string

const (
	EventSucceeded  EventType = "succeeded"
	EventFailed     EventType = "failed"
	EventProcessing EventType = "processing"
)

// Event — платёжное событие в терминах ядра: тип, референс интента
// и запись, к которой он привязан.
type Event struct {
	// Идентификатор события у провайдера; ключ дедупликации.
	ID        string
	Type      EventType
	IntentID  string
	BookingID uuid.UUID
	Raw       json.RawMessage
}

// Reconciler переводит асинхронные события платёжного провайдера
// в статусы записей. Доставка — минимум один раз и без гарантии
// порядка, поэтому обновления условные (CAS): paid — поглощающий,
// failed не перекрывает paid, processing не перекрывает paid и failed.
// Повторная доставка фиксируется журналом payment_events и применяется
// заново: поверх условных обновлений это no-op.
type Reconciler struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.PaymentEventRepository

	now func() time.Time
}

func NewReconciler(
	bookingRepo repository.BookingRepository,
	eventRepo repository.PaymentEventRepository,
) *Reconciler {
	return &Reconciler{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// HandleEvent применяет событие к записи. Возвращает ошибку только при
// сбое хранилища: событие без записи, повтор или неизвестный тип —
// это успех для доставившего (иначе провайдер будет слать его вечно).
func (r *Reconciler) HandleEvent(ctx context.Context, ev Event) error {
	if ev.ID == "" || ev.BookingID == uuid.Nil {
		log.Printf("payments: event %q without booking reference, ignored", ev.ID)
		return nil
	}

	rec := &model.PaymentEvent{
		ID:              uuid.New(),
		EventID:         ev.ID,
		EventType:       string(ev.Type),
		PaymentIntentID: ev.IntentID,
		BookingID:       &ev.BookingID,
		Payload:         datatypes.JSON(ev.Raw),
	}
	duplicate, err := r.eventRepo.Insert(ctx, rec)
	if err != nil {
		return fmt.Errorf("record payment event %s: %w", ev.ID, err)
	}
	if duplicate {
		// Журнальная строка могла остаться от доставки, применение которой
		// оборвалось после вставки. Mark*-обновления условные, повторное
		// применение ничего не ломает — поэтому не выходим, а применяем.
		log.Printf("payments: event %s redelivered, re-applying", ev.ID)
	}

	var applied bool
	switch ev.Type {
	case EventSucceeded:
		applied, err = r.bookingRepo.MarkPaid(ctx, ev.BookingID, ev.IntentID, r.now())
	case EventFailed:
		applied, err = r.bookingRepo.MarkFailed(ctx, ev.BookingID, ev.IntentID)
	case EventProcessing:
		applied, err = r.bookingRepo.MarkProcessing(ctx, ev.BookingID, ev.IntentID)
	default:
		log.Printf("payments: unknown event type %q (event %s), ignored", ev.Type, ev.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply %s to booking %s: %w", ev.Type, ev.BookingID, err)
	}
	if !applied {
		// Запись уже в статусе, который событие не вправе менять
		// (например, failed пришёл после paid).
		log.Printf("payments: event %s (%s) not applied to booking %s: status forbids transition",
			ev.ID, ev.Type, ev.BookingID)
	}
	return nil
}
