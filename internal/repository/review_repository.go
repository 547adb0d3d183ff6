package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type ReviewRepository interface {
	// Create вставляет отзыв; при существующем отзыве на ту же запись
	// возвращает gorm.ErrDuplicatedKey (уникальный индекс по booking_id).
	Create(ctx context.Context, review *model.Review) error
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*model.Review, error)
	// Последние отзывы мастера.
	ListByPro(ctx context.Context, proID uuid.UUID, limit int) ([]model.Review, error)
	// Агрегированный рейтинг мастера.
	ProRating(ctx context.Context, proID uuid.UUID) (avg float64, count int64, err error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*model.Review, error) {
	var rev model.Review
	if err := r.db.WithContext(ctx).First(&rev, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *GormReviewRepository) ListByPro(ctx context.Context, proID uuid.UUID, limit int) ([]model.Review, error) {
	if limit <= 0 {
		limit = 10
	}
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) ProRating(ctx context.Context, proID uuid.UUID) (float64, int64, error) {
	var agg struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("pro_id = ?", proID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	if agg.Avg == nil {
		return 0, agg.Count, nil
	}
	return *agg.Avg, agg.Count, nil
}
