package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/mapper"
	"github.com/reproute/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	logger       *zap.Logger
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Upsert sets the planned cities for a week, replacing any existing
// entry for that week. The week is identified by its start date, which
// is normalized to the Sunday of the week it falls in.
func (s *ScheduleService) Upsert(ctx context.Context, req *domain.UpsertScheduleRequest) (*domain.WeeklyScheduleDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	weekStart, err := time.ParseInLocation("2006-01-02", req.WeekStart, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: weekStart must be YYYY-MM-DD", ErrInvalidInput)
	}

	entry := &domain.WeeklySchedule{
		UserID:    userCtx.UserID,
		WeekStart: StartOfWeek(weekStart),
		Cities:    req.Cities,
	}

	if err := s.scheduleRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save schedule entry: %w", err)
	}

	dto := mapper.ToWeeklyScheduleDTO(entry)
	return &dto, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]domain.WeeklyScheduleDTO, error) {
	entries, err := s.scheduleRepo.ListByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}

	dtos := make([]domain.WeeklyScheduleDTO, len(entries))
	for i := range entries {
		dtos[i] = mapper.ToWeeklyScheduleDTO(&entries[i])
	}
	return dtos, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get schedule entry: %w", err)
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	return nil
}
