package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

// ProfessionalService управляет публичным профилем мастера.
// Аккаунты и аутентификация живут во внешнем identity-сервисе,
// здесь хранится только витринная часть: имя, описание, аватар.
type ProfessionalService struct {
	proRepo repository.ProfessionalRepository
}

func NewProfessionalService(proRepo repository.ProfessionalRepository) *ProfessionalService {
	return &ProfessionalService{proRepo: proRepo}
}

// ProfileInput — отображаемые поля профиля.
type ProfileInput struct {
	DisplayName string
	Bio         string
	AvatarURL   string
}

func (s *ProfessionalService) GetProfile(ctx context.Context, proID uuid.UUID) (*model.Professional, error) {
	pro, err := s.proRepo.GetByID(ctx, proID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return pro, nil
}

// UpdateProfile создаёт профиль при первом обращении мастера
// или обновляет отображаемые поля. id профиля равен subject токена.
func (s *ProfessionalService) UpdateProfile(ctx context.Context, proID uuid.UUID, in ProfileInput) error {
	if strings.TrimSpace(in.DisplayName) == "" {
		return invalid("display_name", "is required")
	}

	return s.proRepo.Upsert(ctx, &model.Professional{
		ID:          proID,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
	})
}
