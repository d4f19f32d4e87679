package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"gorm.io/gorm"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, visit *domain.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *VisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visit, error) {
	var visit domain.Visit
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)
	err := query.First(&visit).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *VisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.WithContext(ctx)
	query = ApplyOwnerFilter(ctx, query)
	return query.Delete(&domain.Visit{}, "id = ?", id).Error
}

// ListByClient returns a client's visits, newest first
func (r *VisitRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Visit, error) {
	var visits []domain.Visit
	query := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	query = ApplyOwnerFilter(ctx, query)
	err := query.Order("visit_date DESC").Find(&visits).Error
	return visits, err
}

// ListSince returns the owner's visits with visit_date on or after the
// given boundary. Backs the weekly dashboard numbers.
func (r *VisitRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Visit, error) {
	var visits []domain.Visit
	query := r.db.WithContext(ctx).Where("visit_date >= ?", since)
	query = ApplyOwnerFilter(ctx, query)
	err := query.Find(&visits).Error
	return visits, err
}

// ClientIDsWithVisitSince returns the set of the owner's client ids that
// have at least one visit on or after the boundary, in a single query.
func (r *VisitRepository) ClientIDsWithVisitSince(ctx context.Context, since time.Time) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	query := r.db.WithContext(ctx).Model(&domain.Visit{}).Where("visit_date >= ?", since)
	query = ApplyOwnerFilter(ctx, query)
	if err := query.Distinct("client_id").Pluck("client_id", &ids).Error; err != nil {
		return nil, err
	}
	visited := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		visited[id] = true
	}
	return visited, nil
}
