package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)
	err := query.First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.WithContext(ctx)
	query = ApplyOwnerFilter(ctx, query)
	return query.Delete(&domain.Client{}, "id = ?", id).Error
}

// ListByOwner returns the full owned portfolio ordered by company name.
// Search filtering happens in the service layer over this list.
func (r *ClientRepository) ListByOwner(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	query := r.db.WithContext(ctx).Model(&domain.Client{})
	query = ApplyOwnerFilter(ctx, query)
	err := query.Order("company_name ASC").Find(&clients).Error
	return clients, err
}

// ExistsByCNPJ reports whether the owner already has a client with the
// given tax id. Used by the warehouse import to skip duplicates.
func (r *ClientRepository) ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Client{}).Where("cnpj = ?", cnpj)
	query = ApplyOwnerFilter(ctx, query)
	err := query.Count(&count).Error
	return count > 0, err
}

// ListOwnerIDs returns the distinct user ids present in the clients
// table. Used by background jobs that iterate over all reps.
func (r *ClientRepository) ListOwnerIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Client{}).
		Distinct("user_id").Pluck("user_id", &ids).Error
	return ids, err
}
