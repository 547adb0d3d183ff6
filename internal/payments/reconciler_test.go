package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

type reconcilerFixture struct {
	db  *gorm.DB
	rec *Reconciler

	proID    uuid.UUID
	clientID uuid.UUID
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			pro_id TEXT NOT NULL,
			client_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			start_at DATETIME NOT NULL,
			end_at DATETIME NOT NULL,
			status TEXT NOT NULL,
			total_cents INTEGER NOT NULL,
			payment_intent_id TEXT,
			paid_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE payment_events (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL UNIQUE,
			event_type TEXT NOT NULL,
			payment_intent_id TEXT,
			booking_id TEXT,
			payload TEXT,
			received_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	rec := NewReconciler(
		repository.NewGormBookingRepository(db),
		repository.NewGormPaymentEventRepository(db),
	)
	rec.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	return &reconcilerFixture{
		db:       db,
		rec:      rec,
		proID:    uuid.New(),
		clientID: uuid.New(),
	}
}

func (f *reconcilerFixture) seedBooking(t *testing.T, status model.BookingStatus) uuid.UUID {
	t.Helper()

	start := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	b := &model.Booking{
		ID:         uuid.New(),
		ProID:      f.proID,
		ClientID:   f.clientID,
		ServiceID:  uuid.New(),
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     status,
		TotalCents: 5000,
	}
	if err := f.db.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b.ID
}

func (f *reconcilerFixture) booking(t *testing.T, id uuid.UUID) model.Booking {
	t.Helper()

	var b model.Booking
	if err := f.db.First(&b, "id = ?", id).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	return b
}

func TestReconciler_SucceededMarksPaid(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)

	err := f.rec.HandleEvent(context.Background(), Event{
		ID:        "evt_1",
		Type:      EventSucceeded,
		IntentID:  "pi_1",
		BookingID: id,
	})
	if err != nil {
		t.Fatalf("handle succeeded: %v", err)
	}

	b := f.booking(t, id)
	if b.Status != model.BookingStatusPaid {
		t.Fatalf("expected paid, got %s", b.Status)
	}
	if b.PaymentIntentID != "pi_1" || b.PaidAt == nil {
		t.Fatalf("expected intent reference and paid_at, got %+v", b)
	}
}

func TestReconciler_DuplicateEventJournaledOnce(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	ctx := context.Background()

	ev := Event{ID: "evt_dup", Type: EventSucceeded, IntentID: "pi_1", BookingID: id}
	if err := f.rec.HandleEvent(ctx, ev); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	// Redelivery is acknowledged; the journal keeps a single row and
	// re-applying on top of paid changes nothing.
	if err := f.rec.HandleEvent(ctx, ev); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	var events int64
	if err := f.db.Model(&model.PaymentEvent{}).Count(&events).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if events != 1 {
		t.Fatalf("expected single recorded event, got %d", events)
	}
	if b := f.booking(t, id); b.Status != model.BookingStatusPaid {
		t.Fatalf("expected paid, got %s", b.Status)
	}
}

func TestReconciler_RedeliveryAfterPartialApply(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	ctx := context.Background()

	// Journal row exists but the status update never landed — the state a
	// crash between the insert and the CAS leaves behind.
	if err := f.db.Create(&model.PaymentEvent{
		ID:              uuid.New(),
		EventID:         "evt_partial",
		EventType:       string(EventSucceeded),
		PaymentIntentID: "pi_1",
		BookingID:       &id,
	}).Error; err != nil {
		t.Fatalf("seed journal row: %v", err)
	}

	err := f.rec.HandleEvent(ctx, Event{
		ID:        "evt_partial",
		Type:      EventSucceeded,
		IntentID:  "pi_1",
		BookingID: id,
	})
	if err != nil {
		t.Fatalf("redelivery: %v", err)
	}

	if b := f.booking(t, id); b.Status != model.BookingStatusPaid {
		t.Fatalf("redelivery must finish the interrupted apply, got %s", b.Status)
	}
}

func TestReconciler_FailedDoesNotOverridePaid(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	ctx := context.Background()

	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_ok", Type: EventSucceeded, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("succeeded: %v", err)
	}
	// Out-of-order failed event arrives after the payment went through.
	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_late_fail", Type: EventFailed, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("late failed: %v", err)
	}

	if b := f.booking(t, id); b.Status != model.BookingStatusPaid {
		t.Fatalf("paid is absorbing, got %s", b.Status)
	}
}

func TestReconciler_SucceededRecoversFailed(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	ctx := context.Background()

	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_fail", Type: EventFailed, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("failed: %v", err)
	}
	if b := f.booking(t, id); b.Status != model.BookingStatusFailed {
		t.Fatalf("expected failed, got %s", b.Status)
	}

	// A later attempt succeeds: failed is not terminal for payments.
	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_retry_ok", Type: EventSucceeded, IntentID: "pi_2", BookingID: id}); err != nil {
		t.Fatalf("retry succeeded: %v", err)
	}
	if b := f.booking(t, id); b.Status != model.BookingStatusPaid {
		t.Fatalf("expected paid after retry, got %s", b.Status)
	}
}

func TestReconciler_ProcessingAfterPaidIgnored(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	ctx := context.Background()

	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_ok", Type: EventSucceeded, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("succeeded: %v", err)
	}
	// processing delivered after succeeded must not downgrade the status.
	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_proc", Type: EventProcessing, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("processing: %v", err)
	}

	if b := f.booking(t, id); b.Status != model.BookingStatusPaid {
		t.Fatalf("expected paid, got %s", b.Status)
	}
}

func TestReconciler_ProcessingThenSucceeded(t *testing.T) {
	f := newReconcilerFixture(t)
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	ctx := context.Background()

	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_proc", Type: EventProcessing, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("processing: %v", err)
	}
	if b := f.booking(t, id); b.Status != model.BookingStatusProcessingPayment {
		t.Fatalf("expected processing_payment, got %s", b.Status)
	}

	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_ok", Type: EventSucceeded, IntentID: "pi_1", BookingID: id}); err != nil {
		t.Fatalf("succeeded: %v", err)
	}
	if b := f.booking(t, id); b.Status != model.BookingStatusPaid {
		t.Fatalf("expected paid, got %s", b.Status)
	}
}

func TestReconciler_EventWithoutBookingIgnored(t *testing.T) {
	f := newReconcilerFixture(t)
	ctx := context.Background()

	// No booking reference: acknowledged, nothing recorded.
	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_orphan", Type: EventSucceeded, IntentID: "pi_x"}); err != nil {
		t.Fatalf("orphan event: %v", err)
	}
	// Unknown type with a booking: recorded for forensics, status untouched.
	id := f.seedBooking(t, model.BookingStatusConfirmed)
	if err := f.rec.HandleEvent(ctx, Event{ID: "evt_weird", Type: "refund.created", BookingID: id}); err != nil {
		t.Fatalf("unknown type: %v", err)
	}
	if b := f.booking(t, id); b.Status != model.BookingStatusConfirmed {
		t.Fatalf("unknown event must not change status, got %s", b.Status)
	}
}
