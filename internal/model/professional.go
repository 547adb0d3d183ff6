package model

import (
	"time"

	"github.com/google/uuid"
)

// Professional — мастер (массаж, косметология, ногтевой сервис и т.п.).
// ID совпадает с идентификатором пользователя во внешнем identity-сервисе:
// аутентификацию ядро не делает, actor id приходит уже проверенным.
type Professional struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	DisplayName string `gorm:"type:varchar(255);not null"`
	Bio         string `gorm:"type:text"`
	AvatarURL   string `gorm:"type:varchar(512)"`

	// Подключённый аккаунт платёжного провайдера (Stripe Connect).
	// Пустая строка — мастер ещё не прошёл онбординг.
	StripeAccountID string `gorm:"type:varchar(64);index"`
	// Снимок флага charges_enabled; актуальное значение
	// перепроверяется у провайдера перед созданием платежа.
	ChargesEnabled bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Services []Service          `gorm:"foreignKey:ProID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rules    []AvailabilityRule `gorm:"foreignKey:ProID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
