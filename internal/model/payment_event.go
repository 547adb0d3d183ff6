package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// payment_events — журнал обработанных событий платёжного провайдера.
// Провайдер доставляет события минимум один раз и без гарантии порядка;
// уникальный индекс по EventID отсекает повторную доставку.
type PaymentEvent struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// Идентификатор события у провайдера (evt_...).
	EventID string `gorm:"type:varchar(128);not null;uniqueIndex"`

	EventType       string     `gorm:"type:varchar(64);not null;index"`
	PaymentIntentID string     `gorm:"type:varchar(64);index"`
	BookingID       *uuid.UUID `gorm:"type:uuid;index"`

	// Сырой payload — для разбора инцидентов.
	Payload datatypes.JSON `gorm:"type:jsonb"`

	ReceivedAt time.Time `gorm:"not null;default:now()"`
}
