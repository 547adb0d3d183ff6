package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, service *model.Service) error
	// List возвращает услуги (опционально только активные) с пагинацией.
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Service, int64, error)
	ListByPro(ctx context.Context, proID uuid.UUID) ([]model.Service, error)
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var s model.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *GormServiceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).
		Model(&model.Service{}).
		Where("id = ?", service.ID).
		Updates(map[string]any{
			"name":                    service.Name,
			"description":             service.Description,
			"category":                service.Category,
			"price_cents":             service.PriceCents,
			"duration_min":            service.DurationMin,
			"is_active":               service.IsActive,
			"reschedule_window_hours": service.RescheduleWindowHours,
			"cancel_window_hours":     service.CancelWindowHours,
		}).Error
}

func (r *GormServiceRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Service{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var services []model.Service
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *GormServiceRepository) ListByPro(ctx context.Context, proID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}
