package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Upsert creates the schedule entry for a week, or replaces its cities
// when the owner already has one for that week start.
func (r *ScheduleRepository) Upsert(ctx context.Context, entry *domain.WeeklySchedule) error {
	var existing domain.WeeklySchedule
	query := r.db.WithContext(ctx).Where("week_start = ?", entry.WeekStart)
	query = ApplyOwnerFilter(ctx, query)
	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(entry).Error
	}
	if err != nil {
		return err
	}
	existing.Cities = entry.Cities
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*entry = existing
	return nil
}

func (r *ScheduleRepository) ListByOwner(ctx context.Context) ([]domain.WeeklySchedule, error) {
	var entries []domain.WeeklySchedule
	query := r.db.WithContext(ctx).Model(&domain.WeeklySchedule{})
	query = ApplyOwnerFilter(ctx, query)
	err := query.Order("week_start DESC").Find(&entries).Error
	return entries, err
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WeeklySchedule, error) {
	var entry domain.WeeklySchedule
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)
	err := query.First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.WithContext(ctx)
	query = ApplyOwnerFilter(ctx, query)
	return query.Delete(&domain.WeeklySchedule{}, "id = ?", id).Error
}
