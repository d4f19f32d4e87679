package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"go.uber.org/zap"
)

// DashboardClientSource provides the owner-scoped client list walked by
// the inactivity check.
type DashboardClientSource interface {
	ListByOwner(ctx context.Context) ([]domain.Client, error)
}

// DashboardVisitSource provides the owner-scoped visit queries behind
// the weekly numbers and the inactivity check.
type DashboardVisitSource interface {
	ListSince(ctx context.Context, since time.Time) ([]domain.Visit, error)
	ClientIDsWithVisitSince(ctx context.Context, since time.Time) (map[uuid.UUID]bool, error)
}

type DashboardService struct {
	clientRepo DashboardClientSource
	visitRepo  DashboardVisitSource
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(
	clientRepo DashboardClientSource,
	visitRepo DashboardVisitSource,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		clientRepo: clientRepo,
		visitRepo:  visitRepo,
		logger:     logger,
		now:        time.Now,
	}
}

const inactiveWindow = 30 * 24 * time.Hour

// GetMetrics computes the weekly dashboard numbers for the
// authenticated rep. Metrics are always recomputed from current data.
// A failed fetch degrades to zero-valued metrics rather than an error:
// the dashboard must render even when a query fails.
func (s *DashboardService) GetMetrics(ctx context.Context) *domain.DashboardMetrics {
	now := s.now()
	metrics := &domain.DashboardMetrics{InactiveClients: []domain.Client{}}

	weekVisits, err := s.visitRepo.ListSince(ctx, StartOfWeek(now))
	if err != nil {
		s.logger.Error("failed to load weekly visits, returning zero metrics", zap.Error(err))
		return metrics
	}

	totals := WeeklyMetrics(weekVisits)
	metrics.VisitsThisWeek = totals.TotalVisits
	metrics.Purchases = totals.Purchases
	metrics.ConversionRate = totals.ConversionRate
	metrics.EstimatedRevenue = totals.EstimatedRevenue

	metrics.InactiveClients = s.inactiveClients(ctx, now)
	return metrics
}

// inactiveClients returns the rep's clients with no visit in the
// trailing 30 days, using one batched existence query instead of a
// per-client lookup.
func (s *DashboardService) inactiveClients(ctx context.Context, now time.Time) []domain.Client {
	clients, err := s.clientRepo.ListByOwner(ctx)
	if err != nil {
		s.logger.Error("failed to load clients for inactivity check", zap.Error(err))
		return []domain.Client{}
	}

	visited, err := s.visitRepo.ClientIDsWithVisitSince(ctx, now.Add(-inactiveWindow))
	if err != nil {
		s.logger.Error("failed to load recent visit activity", zap.Error(err))
		visited = map[uuid.UUID]bool{}
	}

	inactive := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if !visited[c.ID] {
			inactive = append(inactive, c)
		}
	}
	return inactive
}
