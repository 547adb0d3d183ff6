package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

// ReviewService — не более одного отзыва на запись, автор — только
// клиент записи, запись должна быть доведена до paid/completed.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo}
}

func (s *ReviewService) Submit(
	ctx context.Context,
	clientID, bookingID uuid.UUID,
	rating int,
	comment string,
) (uuid.UUID, error) {
	if rating < 1 || rating > 5 {
		return uuid.Nil, invalid("rating", "must be in 1..5")
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return uuid.Nil, mapStorageErr(err)
	}
	if b.ClientID != clientID {
		return uuid.Nil, ErrForbidden
	}
	if b.Status != model.BookingStatusCompleted && b.Status != model.BookingStatusPaid {
		return uuid.Nil, ErrInvalidState
	}

	review := &model.Review{
		ID:        uuid.New(),
		BookingID: bookingID,
		ClientID:  clientID,
		ProID:     b.ProID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// Гонку двух одновременных отзывов закрывает уникальный
		// индекс по booking_id.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, ErrDuplicateReview
		}
		return uuid.Nil, fmt.Errorf("create review: %w", err)
	}
	return review.ID, nil
}

func (s *ReviewService) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*model.Review, error) {
	rev, err := s.reviewRepo.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return rev, nil
}

func (s *ReviewService) ListByPro(ctx context.Context, proID uuid.UUID, limit int) ([]model.Review, error) {
	return s.reviewRepo.ListByPro(ctx, proID, limit)
}

// ProRating — агрегированный рейтинг мастера (среднее и количество).
func (s *ReviewService) ProRating(ctx context.Context, proID uuid.UUID) (float64, int64, error) {
	return s.reviewRepo.ProRating(ctx, proID)
}
