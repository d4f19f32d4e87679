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

type VisitService struct {
	visitRepo  *repository.VisitRepository
	clientRepo *repository.ClientRepository
	logger     *zap.Logger
}

func NewVisitService(
	visitRepo *repository.VisitRepository,
	clientRepo *repository.ClientRepository,
	logger *zap.Logger,
) *VisitService {
	return &VisitService{
		visitRepo:  visitRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create records a visit. The client must belong to the authenticated
// rep; a foreign or missing client id yields ErrClientNotFound.
func (s *VisitService) Create(ctx context.Context, req *domain.CreateVisitRequest) (*domain.VisitDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if !req.Result.IsValid() {
		return nil, fmt.Errorf("%w: result must be purchased or not_purchased", ErrInvalidInput)
	}

	visitDate, err := time.ParseInLocation("2006-01-02", req.VisitDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: visitDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	visit := &domain.Visit{
		UserID:      userCtx.UserID,
		ClientID:    client.ID,
		VisitDate:   visitDate,
		Result:      req.Result,
		Product:     req.Product,
		Price:       ParsePrice(req.Price),
		Notes:       req.Notes,
		Attachments: req.Attachments,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}

	visit.Client = client
	dto := mapper.ToVisitDTO(visit)
	return &dto, nil
}

// ListByClient returns an owned client's visits, newest first
func (s *VisitService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.VisitDTO, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	visits, err := s.visitRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return mapper.ToVisitDTOs(visits), nil
}

func (s *VisitService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.visitRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVisitNotFound
		}
		return fmt.Errorf("failed to get visit: %w", err)
	}

	if err := s.visitRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	return nil
}
