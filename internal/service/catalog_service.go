package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
)

// ServiceInput — параметры создания/обновления услуги.
type ServiceInput struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
	DurationMin int64
	IsActive    bool
	// nil — дефолтное окно (24 часа), 0 — действие до момента начала.
	RescheduleWindowHours *int64
	CancelWindowHours     *int64
}

// CatalogService — прайс-лист мастеров: услуги с ценой, длительностью
// и окнами отмены/переноса.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	proRepo     repository.ProfessionalRepository
}

func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	proRepo repository.ProfessionalRepository,
) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, proRepo: proRepo}
}

func validateServiceInput(in ServiceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if in.PriceCents < 1 {
		return invalid("price_cents", "must be at least 1")
	}
	if in.DurationMin < 10 {
		return invalid("duration_min", "must be at least 10")
	}
	if in.RescheduleWindowHours != nil && *in.RescheduleWindowHours < 0 {
		return invalid("reschedule_window_hours", "must not be negative")
	}
	if in.CancelWindowHours != nil && *in.CancelWindowHours < 0 {
		return invalid("cancel_window_hours", "must not be negative")
	}
	return nil
}

func (s *CatalogService) CreateService(ctx context.Context, proID uuid.UUID, in ServiceInput) (uuid.UUID, error) {
	if err := validateServiceInput(in); err != nil {
		return uuid.Nil, err
	}
	if _, err := s.proRepo.GetByID(ctx, proID); err != nil {
		return uuid.Nil, mapStorageErr(err)
	}

	svc := &model.Service{
		ID:                    uuid.New(),
		ProID:                 proID,
		Name:                  in.Name,
		Description:           in.Description,
		Category:              in.Category,
		PriceCents:            in.PriceCents,
		DurationMin:           in.DurationMin,
		IsActive:              in.IsActive,
		RescheduleWindowHours: in.RescheduleWindowHours,
		CancelWindowHours:     in.CancelWindowHours,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return uuid.Nil, fmt.Errorf("create service: %w", err)
	}
	return svc.ID, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, actorID, serviceID uuid.UUID, in ServiceInput) error {
	if err := validateServiceInput(in); err != nil {
		return err
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return mapStorageErr(err)
	}
	if svc.ProID != actorID {
		return ErrForbidden
	}

	svc.Name = in.Name
	svc.Description = in.Description
	svc.Category = in.Category
	svc.PriceCents = in.PriceCents
	svc.DurationMin = in.DurationMin
	svc.IsActive = in.IsActive
	svc.RescheduleWindowHours = in.RescheduleWindowHours
	svc.CancelWindowHours = in.CancelWindowHours

	return s.serviceRepo.Update(ctx, svc)
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Service, int64, error) {
	return s.serviceRepo.List(ctx, onlyActive, limit, offset)
}

func (s *CatalogService) ListByPro(ctx context.Context, proID uuid.UUID) ([]model.Service, error) {
	return s.serviceRepo.ListByPro(ctx, proID)
}
