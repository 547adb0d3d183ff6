package model

import (
	"time"

	"github.com/google/uuid"
)

// Статус записи. Закрытое множество, каноническое написание — "canceled"
// (в ранних версиях встречалось и "cancelled", все сравнения сведены сюда).
type BookingStatus string

const (
	BookingStatusPending           BookingStatus = "pending"
	BookingStatusConfirmed         BookingStatus = "confirmed"
	BookingStatusProcessingPayment BookingStatus = "processing_payment"
	BookingStatusPaid              BookingStatus = "paid"
	BookingStatusFailed            BookingStatus = "failed"
	BookingStatusCompleted         BookingStatus = "completed"
	BookingStatusCanceled          BookingStatus = "canceled"
	BookingStatusRejected          BookingStatus = "rejected"
)

// BlockingStatuses — статусы, в которых запись удерживает интервал
// против новых пересекающихся записей.
var BlockingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusPaid,
	BookingStatusProcessingPayment,
}

// bookings — записи клиентов к мастерам.
// Запись никогда не удаляется физически: отмена и отклонение
// выражаются статусом.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ProID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Полуинтервал [StartAt, EndAt), EndAt = StartAt + длительность услуги.
	StartAt time.Time `gorm:"type:timestamp with time zone;not null;index"`
	EndAt   time.Time `gorm:"type:timestamp with time zone;not null"`

	Status BookingStatus `gorm:"type:varchar(32);not null;index"`

	// Сумма в центах, фиксируется из прайса услуги на момент создания.
	TotalCents int64 `gorm:"not null"`

	// Референс платёжного интента провайдера и момент оплаты.
	PaymentIntentID string     `gorm:"type:varchar(64);index"`
	PaidAt          *time.Time `gorm:"type:timestamp with time zone"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Professional *Professional `gorm:"foreignKey:ProID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Service      *Service      `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// IsBlocking сообщает, удерживает ли запись свой интервал.
func (b *Booking) IsBlocking() bool {
	for _, st := range BlockingStatuses {
		if b.Status == st {
			return true
		}
	}
	return false
}
