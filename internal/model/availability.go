package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// availability_rules — еженедельное расписание мастера.
// Weekday: 0–6, 0 = воскресенье (совпадает с time.Weekday).
// Времена храним строками "HH:MM" — так их отдаёт и принимает клиент,
// интерпретация в конкретную дату происходит в генераторе слотов.
// Правило не редактируется на месте: удаление + создание нового.
type AvailabilityRule struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ProID uuid.UUID `gorm:"type:uuid;not null;index"`

	Weekday   int    `gorm:"not null"`
	StartTime string `gorm:"type:varchar(5);not null"`
	EndTime   string `gorm:"type:varchar(5);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Professional *Professional `gorm:"foreignKey:ProID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// availability_exceptions — точечные исключения по датам
// (праздники, отгулы, разовый рабочий день).
// Исключение перекрывает все еженедельные правила на свою дату.
type AvailabilityException struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ProID uuid.UUID `gorm:"type:uuid;not null;index"`

	Date        datatypes.Date `gorm:"type:date;not null;index"`
	IsAvailable bool           `gorm:"not null"`
	Note        string         `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Professional *Professional `gorm:"foreignKey:ProID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
