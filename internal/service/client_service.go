package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/datawarehouse"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/mapper"
	"github.com/reproute/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo *repository.ClientRepository
	visitRepo  *repository.VisitRepository
	warehouse  *datawarehouse.Client
	logger     *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	visitRepo *repository.VisitRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		visitRepo:  visitRepo,
		logger:     logger,
	}
}

// SetWarehouseClient wires the optional ERP warehouse connection used
// by Import. A nil client leaves the import endpoint unavailable.
func (s *ClientService) SetWarehouseClient(client *datawarehouse.Client) {
	s.warehouse = client
}

func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	client := &domain.Client{
		UserID:        userCtx.UserID,
		CompanyName:   req.CompanyName,
		CNPJ:          req.CNPJ,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Notes:         req.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

// List returns the rep's portfolio ordered by company name, filtered in
// memory when a search term is present.
func (s *ClientService) List(ctx context.Context, search string) ([]domain.ClientDTO, error) {
	clients, err := s.clientRepo.ListByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients = FilterClients(clients, search)
	return mapper.ToClientDTOs(clients), nil
}

// GetWithDetails returns a client together with its visit history
// (newest first) and the aggregates computed from it.
func (s *ClientService) GetWithDetails(ctx context.Context, id uuid.UUID) (*domain.ClientWithDetailsDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	visits, err := s.visitRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}

	stats := ClientVisitStats(visits)
	return &domain.ClientWithDetailsDTO{
		ClientDTO: mapper.ToClientDTO(client),
		Stats:     &stats,
		Visits:    mapper.ToVisitDTOs(visits),
	}, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	client.CompanyName = req.CompanyName
	client.CNPJ = req.CNPJ
	client.ContactPerson = req.ContactPerson
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	client.City = req.City
	client.State = req.State
	client.Latitude = req.Latitude
	client.Longitude = req.Longitude
	client.Notes = req.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// Import pulls company records from the ERP warehouse into the rep's
// portfolio. Records whose tax id the rep already has are skipped.
func (s *ClientService) Import(ctx context.Context, city string, limit int) (*domain.ImportResultDTO, error) {
	if !s.warehouse.IsEnabled() {
		return nil, ErrWarehouseUnavailable
	}

	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	records, err := s.warehouse.GetCompanies(ctx, city, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouse records: %w", err)
	}

	result := &domain.ImportResultDTO{}
	for _, rec := range records {
		if rec.CNPJ != "" {
			exists, err := s.clientRepo.ExistsByCNPJ(ctx, rec.CNPJ)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing client: %w", err)
			}
			if exists {
				result.Skipped++
				continue
			}
		}

		client := &domain.Client{
			UserID:        userCtx.UserID,
			CompanyName:   rec.CompanyName,
			CNPJ:          rec.CNPJ,
			ContactPerson: rec.ContactPerson,
			Phone:         rec.Phone,
			Email:         rec.Email,
			Address:       rec.Address,
			City:          rec.City,
			State:         rec.State,
		}
		if err := s.clientRepo.Create(ctx, client); err != nil {
			return nil, fmt.Errorf("failed to import client: %w", err)
		}
		result.Imported++
	}

	s.logger.Info("warehouse import completed",
		zap.String("user_id", userCtx.UserID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}
