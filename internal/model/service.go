package model

import (
	"time"

	"github.com/google/uuid"
)

// Дефолтное окно отмены/переноса, часов до начала записи.
// Применяется, когда у услуги окно не задано явно.
const DefaultWindowHours int64 = 24

// services — прайс-лист мастера.
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ProID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"type:varchar(64);index"`

	// Цена в минимальных единицах валюты (центы). Никаких float.
	PriceCents int64 `gorm:"not null"`
	// Длительность в минутах, минимум 10.
	DurationMin int64 `gorm:"not null"`

	IsActive bool `gorm:"not null;default:true;index"`

	// Окна переноса и отмены в часах. NULL — действует DefaultWindowHours,
	// явный 0 — действие разрешено вплоть до момента начала.
	RescheduleWindowHours *int64 `gorm:"type:bigint"`
	CancelWindowHours     *int64 `gorm:"type:bigint"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Professional *Professional `gorm:"foreignKey:ProID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// EffectiveRescheduleWindow возвращает окно переноса с учётом дефолта.
func (s *Service) EffectiveRescheduleWindow() int64 {
	if s.RescheduleWindowHours == nil {
		return DefaultWindowHours
	}
	return *s.RescheduleWindowHours
}

// EffectiveCancelWindow возвращает окно отмены с учётом дефолта.
func (s *Service) EffectiveCancelWindow() int64 {
	if s.CancelWindowHours == nil {
		return DefaultWindowHours
	}
	return *s.CancelWindowHours
}
