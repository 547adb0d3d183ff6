package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type PaymentEventRepository interface {
	// Insert записывает событие провайдера. Возвращает true, если событие
	// уже было обработано раньше (дубликат по event_id) — без ошибки.
	Insert(ctx context.Context, event *model.PaymentEvent) (duplicate bool, err error)
}

type GormPaymentEventRepository struct {
	db *gorm.DB
}

func NewGormPaymentEventRepository(db *gorm.DB) *GormPaymentEventRepository {
	return &GormPaymentEventRepository{db: db}
}

func (r *GormPaymentEventRepository) Insert(ctx context.Context, event *model.PaymentEvent) (bool, error) {
	err := r.db.WithContext(ctx).Create(event).Error
	if err == nil {
		return false, nil
	}
	// Требует TranslateError в конфиге GORM (включено в db.NewGormDB).
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	return false, err
}
