package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

// newTestDB opens an in-memory sqlite with an sqlite-friendly version
// of the schema. TranslateError must stay on: duplicate-key detection
// in reviews and payment events depend on gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE professionals (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			bio TEXT,
			avatar_url TEXT,
			stripe_account_id TEXT,
			charges_enabled INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE services (
			id TEXT PRIMARY KEY,
			pro_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			price_cents INTEGER NOT NULL,
			duration_min INTEGER NOT NULL,
			is_active INTEGER NOT NULL,
			reschedule_window_hours INTEGER,
			cancel_window_hours INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE availability_rules (
			id TEXT PRIMARY KEY,
			pro_id TEXT NOT NULL,
			weekday INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at DATETIME
		);`,
		`CREATE TABLE availability_exceptions (
			id TEXT PRIMARY KEY,
			pro_id TEXT NOT NULL,
			date DATE NOT NULL,
			is_available INTEGER NOT NULL,
			note TEXT,
			created_at DATETIME
		);`,
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
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL UNIQUE,
			client_id TEXT NOT NULL,
			pro_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

// fixture wires repositories and seeds one professional with one
// 60-minute active service priced at 5000 cents.
type fixture struct {
	db *gorm.DB

	availRepo   repository.AvailabilityRepository
	serviceRepo repository.ServiceRepository
	proRepo     repository.ProfessionalRepository
	bookingRepo repository.BookingRepository
	reviewRepo  repository.ReviewRepository

	proID     uuid.UUID
	clientID  uuid.UUID
	serviceID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		db:          db,
		availRepo:   repository.NewGormAvailabilityRepository(db),
		serviceRepo: repository.NewGormServiceRepository(db),
		proRepo:     repository.NewGormProfessionalRepository(db),
		bookingRepo: repository.NewGormBookingRepository(db),
		reviewRepo:  repository.NewGormReviewRepository(db),
		proID:       uuid.New(),
		clientID:    uuid.New(),
		serviceID:   uuid.New(),
	}

	if err := db.Create(&model.Professional{
		ID:          f.proID,
		DisplayName: "Anna",
	}).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}
	if err := db.Create(&model.Service{
		ID:          f.serviceID,
		ProID:       f.proID,
		Name:        "Relax massage",
		PriceCents:  5000,
		DurationMin: 60,
		IsActive:    true,
	}).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return f
}

// seedBooking inserts a booking directly, bypassing the state machine.
func (f *fixture) seedBooking(t *testing.T, status model.BookingStatus, start time.Time) uuid.UUID {
	t.Helper()

	b := &model.Booking{
		ID:         uuid.New(),
		ProID:      f.proID,
		ClientID:   f.clientID,
		ServiceID:  f.serviceID,
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

func (f *fixture) bookingStatus(t *testing.T, id uuid.UUID) model.BookingStatus {
	t.Helper()

	var b model.Booking
	if err := f.db.First(&b, "id = ?", id).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	return b.Status
}
