package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/beauty-platform/internal/model"
)

type ProfessionalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Professional, error)
	// Upsert создаёт профиль мастера или обновляет отображаемые поля.
	Upsert(ctx context.Context, pro *model.Professional) error
	// UpdateStripeStatus фиксирует привязанный аккаунт провайдера
	// и снимок флага charges_enabled.
	UpdateStripeStatus(ctx context.Context, id uuid.UUID, accountID string, chargesEnabled bool) error
}

type GormProfessionalRepository struct {
	db *gorm.DB
}

func NewGormProfessionalRepository(db *gorm.DB) *GormProfessionalRepository {
	return &GormProfessionalRepository{db: db}
}

func (r *GormProfessionalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	var p model.Professional
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProfessionalRepository) Upsert(ctx context.Context, pro *model.Professional) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "bio", "avatar_url", "updated_at"}),
		}).
		Create(pro).Error
}

func (r *GormProfessionalRepository) UpdateStripeStatus(
	ctx context.Context,
	id uuid.UUID,
	accountID string,
	chargesEnabled bool,
) error {
	return r.db.WithContext(ctx).
		Model(&model.Professional{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stripe_account_id": accountID,
			"charges_enabled":   chargesEnabled,
		}).Error
}
