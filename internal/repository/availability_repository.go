package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type AvailabilityRepository interface {
	// Еженедельные правила мастера, отсортированные по дню недели и началу.
	ListRules(ctx context.Context, proID uuid.UUID) ([]model.AvailabilityRule, error)
	GetRule(ctx context.Context, id uuid.UUID) (*model.AvailabilityRule, error)
	AddRule(ctx context.Context, rule *model.AvailabilityRule) error
	RemoveRule(ctx context.Context, id uuid.UUID) error

	// Исключения мастера, попадающие в диапазон дат [from, to).
	ListExceptions(ctx context.Context, proID uuid.UUID, from, to time.Time) ([]model.AvailabilityException, error)
	GetException(ctx context.Context, id uuid.UUID) (*model.AvailabilityException, error)
	AddException(ctx context.Context, exc *model.AvailabilityException) error
	RemoveException(ctx context.Context, id uuid.UUID) error
}

// Реализация на GORM.
type GormAvailabilityRepository struct {
	db *gorm.DB
}

func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

func (r *GormAvailabilityRepository) ListRules(ctx context.Context, proID uuid.UUID) ([]model.AvailabilityRule, error) {
	var rules []model.AvailabilityRule
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormAvailabilityRepository) GetRule(ctx context.Context, id uuid.UUID) (*model.AvailabilityRule, error) {
	var rule model.AvailabilityRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *GormAvailabilityRepository) AddRule(ctx context.Context, rule *model.AvailabilityRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *GormAvailabilityRepository) RemoveRule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AvailabilityRule{}, "id = ?", id).Error
}

func (r *GormAvailabilityRepository) ListExceptions(
	ctx context.Context,
	proID uuid.UUID,
	from, to time.Time,
) ([]model.AvailabilityException, error) {
	var excs []model.AvailabilityException
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&excs).Error
	if err != nil {
		return nil, err
	}
	return excs, nil
}

func (r *GormAvailabilityRepository) GetException(ctx context.Context, id uuid.UUID) (*model.AvailabilityException, error) {
	var exc model.AvailabilityException
	if err := r.db.WithContext(ctx).First(&exc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exc, nil
}

func (r *GormAvailabilityRepository) AddException(ctx context.Context, exc *model.AvailabilityException) error {
	return r.db.WithContext(ctx).Create(exc).Error
}

func (r *GormAvailabilityRepository) RemoveException(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AvailabilityException{}, "id = ?", id).Error
}
