package model

import (
	"time"

	"github.com/google/uuid"
)

// reviews — отзыв клиента по завершённой записи.
// Уникальный индекс по BookingID гарантирует не более одного отзыва
// на запись на уровне хранилища.
type Review struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProID     uuid.UUID `gorm:"type:uuid;not null;index"`

	// 1–5 звёзд.
	Rating  int    `gorm:"not null"`
	Comment string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
