package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Leganyst/beauty-platform/internal/model"
	"github.com/Leganyst/beauty-platform/internal/repository"
	"github.com/Leganyst/beauty-platform/internal/schedule"
)

// AvailabilityService — CRUD-граница еженедельных правил и исключений.
// Владелец данных — мастер; actor id приходит уже аутентифицированным.
type AvailabilityService struct {
	availRepo repository.AvailabilityRepository
}

func NewAvailabilityService(availRepo repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{availRepo: availRepo}
}

func (s *AvailabilityService) ListRules(ctx context.Context, proID uuid.UUID) ([]model.AvailabilityRule, error) {
	return s.availRepo.ListRules(ctx, proID)
}

// AddRule создаёт еженедельное правило. Правила не редактируются
// на месте: изменение — это удаление плюс создание нового.
func (s *AvailabilityService) AddRule(
	ctx context.Context,
	proID uuid.UUID,
	weekday int,
	startTime, endTime string,
) (uuid.UUID, error) {
	if weekday < 0 || weekday > 6 {
		return uuid.Nil, invalid("weekday", "must be in 0..6 (0 = Sunday)")
	}

	startH, startM, err := schedule.ParseClock(startTime)
	if err != nil {
		return uuid.Nil, invalid("start_time", err.Error())
	}
	endH, endM, err := schedule.ParseClock(endTime)
	if err != nil {
		return uuid.Nil, invalid("end_time", err.Error())
	}
	if endH*60+endM <= startH*60+startM {
		return uuid.Nil, invalid("end_time", "must be after start_time")
	}

	rule := &model.AvailabilityRule{
		ID:        uuid.New(),
		ProID:     proID,
		Weekday:   weekday,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.availRepo.AddRule(ctx, rule); err != nil {
		return uuid.Nil, fmt.Errorf("add rule: %w", err)
	}
	return rule.ID, nil
}

func (s *AvailabilityService) RemoveRule(ctx context.Context, actorID, ruleID uuid.UUID) error {
	rule, err := s.availRepo.GetRule(ctx, ruleID)
	if err != nil {
		return mapStorageErr(err)
	}
	if rule.ProID != actorID {
		return ErrForbidden
	}
	return s.availRepo.RemoveRule(ctx, ruleID)
}

func (s *AvailabilityService) ListExceptions(
	ctx context.Context,
	proID uuid.UUID,
	from, to time.Time,
) ([]model.AvailabilityException, error) {
	return s.availRepo.ListExceptions(ctx, proID, from, to)
}

// AddException создаёт точечное исключение на дату в формате "2006-01-02".
func (s *AvailabilityService) AddException(
	ctx context.Context,
	proID uuid.UUID,
	date string,
	available bool,
	note string,
) (uuid.UUID, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return uuid.Nil, invalid("date", "must be in YYYY-MM-DD format")
	}

	exc := &model.AvailabilityException{
		ID:          uuid.New(),
		ProID:       proID,
		Date:        datatypes.Date(day),
		IsAvailable: available,
		Note:        note,
	}
	if err := s.availRepo.AddException(ctx, exc); err != nil {
		return uuid.Nil, fmt.Errorf("add exception: %w", err)
	}
	return exc.ID, nil
}

func (s *AvailabilityService) RemoveException(ctx context.Context, actorID, excID uuid.UUID) error {
	exc, err := s.availRepo.GetException(ctx, excID)
	if err != nil {
		return mapStorageErr(err)
	}
	if exc.ProID != actorID {
		return ErrForbidden
	}
	return s.availRepo.RemoveException(ctx, excID)
}
