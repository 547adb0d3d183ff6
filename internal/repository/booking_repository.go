package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type BookingRepository interface {
	// CreateConflictChecked атомарно проверяет пересечения с блокирующими
	// записями мастера и вставляет запись. При пересечении — ErrOverlap.
	CreateConflictChecked(ctx context.Context, booking *model.Booking) error
	// RescheduleConflictChecked атомарно переносит запись на новый интервал,
	// исключая её собственный текущий интервал из проверки. Обновление
	// условное: запись должна оставаться в одном из статусов allowed,
	// иначе — ErrStale.
	RescheduleConflictChecked(ctx context.Context, id uuid.UUID, newStart, newEnd time.Time, allowed []model.BookingStatus) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// ListBlockingInRange — блокирующие записи мастера, пересекающие [from, to).
	ListBlockingInRange(ctx context.Context, proID uuid.UUID, from, to time.Time) ([]model.Booking, error)
	// Список записей клиента с пагинацией, свежие сверху.
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]model.Booking, int64, error)
	// Список записей мастера, опционально по статусу, по возрастанию начала.
	ListByPro(ctx context.Context, proID uuid.UUID, status model.BookingStatus, limit, offset int) ([]model.Booking, int64, error)

	// UpdateStatusIf — compare-and-swap смена статуса: применяется только
	// если текущий статус входит в allowed, иначе ErrStale.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, to model.BookingStatus, allowed []model.BookingStatus) error

	// CAS-обновления для reconciler'а платежей. Возвращают false без ошибки,
	// если запись не находилась в допускающем переход статусе.
	MarkPaid(ctx context.Context, id uuid.UUID, intentID string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, intentID string) (bool, error)
	MarkProcessing(ctx context.Context, id uuid.UUID, intentID string) (bool, error)
	// SetPaymentIntent привязывает референс интента к записи.
	SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) CreateConflictChecked(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Блокировка строки мастера сериализует конкурентные попытки
		// занять один и тот же интервал.
		var pro model.Professional
		if err := lockForUpdate(tx).First(&pro, "id = ?", booking.ProID).Error; err != nil {
			return err
		}

		var conflicts int64
		err := tx.Model(&model.Booking{}).
			Where("pro_id = ?", booking.ProID).
			Where("status IN ?", model.BlockingStatuses).
			Where("start_at < ? AND end_at > ?", booking.EndAt, booking.StartAt).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrOverlap
		}

		return tx.Create(booking).Error
	})
}

func (r *GormBookingRepository) RescheduleConflictChecked(
	ctx context.Context,
	id uuid.UUID,
	newStart, newEnd time.Time,
	allowed []model.BookingStatus,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Booking
		if err := lockForUpdate(tx).First(&current, "id = ?", id).Error; err != nil {
			return err
		}

		var pro model.Professional
		if err := lockForUpdate(tx).First(&pro, "id = ?", current.ProID).Error; err != nil {
			return err
		}

		var conflicts int64
		err := tx.Model(&model.Booking{}).
			Where("pro_id = ?", current.ProID).
			Where("id <> ?", id).
			Where("status IN ?", model.BlockingStatuses).
			Where("start_at < ? AND end_at > ?", newEnd, newStart).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrOverlap
		}

		res := tx.Model(&model.Booking{}).
			Where("id = ?", id).
			Where("status IN ?", allowed).
			Updates(map[string]any{
				"start_at": newStart,
				"end_at":   newEnd,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStale
		}
		return nil
	})
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) ListBlockingInRange(
	ctx context.Context,
	proID uuid.UUID,
	from, to time.Time,
) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("pro_id = ?", proID).
		Where("status IN ?", model.BlockingStatuses).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
	limit, offset int,
) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("client_id = ?", clientID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("start_at DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *GormBookingRepository) ListByPro(
	ctx context.Context,
	proID uuid.UUID,
	status model.BookingStatus,
	limit, offset int,
) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("pro_id = ?", proID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("start_at ASC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *GormBookingRepository) UpdateStatusIf(
	ctx context.Context,
	id uuid.UUID,
	to model.BookingStatus,
	allowed []model.BookingStatus,
) error {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Where("status IN ?", allowed).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

// Статусы, из которых платёж может дойти до paid: paid поглощающий,
// failed и processing_payment провайдер может ещё подтвердить.
var paidReachableFrom = []model.BookingStatus{
	model.BookingStatusPending,
	model.BookingStatusConfirmed,
	model.BookingStatusProcessingPayment,
	model.BookingStatusFailed,
}

func (r *GormBookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, intentID string, paidAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Where("status IN ?", paidReachableFrom).
		Updates(map[string]any{
			"status":            model.BookingStatusPaid,
			"payment_intent_id": intentID,
			"paid_at":           paidAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *GormBookingRepository) MarkFailed(ctx context.Context, id uuid.UUID, intentID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Where("status IN ?", []model.BookingStatus{
			model.BookingStatusPending,
			model.BookingStatusConfirmed,
			model.BookingStatusProcessingPayment,
		}).
		Updates(map[string]any{
			"status":            model.BookingStatusFailed,
			"payment_intent_id": intentID,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *GormBookingRepository) MarkProcessing(ctx context.Context, id uuid.UUID, intentID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Where("status IN ?", []model.BookingStatus{
			model.BookingStatusPending,
			model.BookingStatusConfirmed,
		}).
		Updates(map[string]any{
			"status":            model.BookingStatusProcessingPayment,
			"payment_intent_id": intentID,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *GormBookingRepository) SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("payment_intent_id", intentID).
		Error
}
