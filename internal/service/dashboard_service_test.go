package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDashboardClients struct {
	clients []domain.Client
	err     error
}

func (f *fakeDashboardClients) ListByOwner(ctx context.Context) ([]domain.Client, error) {
	return f.clients, f.err
}

type fakeDashboardVisits struct {
	visits     []domain.Visit
	listErr    error
	visited    map[uuid.UUID]bool
	visitedErr error

	listSinceArg time.Time
	visitedArg   time.Time
}

func (f *fakeDashboardVisits) ListSince(ctx context.Context, since time.Time) ([]domain.Visit, error) {
	f.listSinceArg = since
	return f.visits, f.listErr
}

func (f *fakeDashboardVisits) ClientIDsWithVisitSince(ctx context.Context, since time.Time) (map[uuid.UUID]bool, error) {
	f.visitedArg = since
	if f.visitedErr != nil {
		return nil, f.visitedErr
	}
	return f.visited, nil
}

func dashboardClient(name string) domain.Client {
	c := domain.Client{CompanyName: name}
	c.ID = uuid.New()
	return c
}

func TestDashboardService_GetMetrics(t *testing.T) {
	active := dashboardClient("Padaria Central")
	inactive := dashboardClient("Distribuidora Sul")

	priceA := 100.0
	priceB := 50.0
	clients := &fakeDashboardClients{clients: []domain.Client{active, inactive}}
	visits := &fakeDashboardVisits{
		visits: []domain.Visit{
			{Result: domain.VisitResultPurchased, Price: &priceA},
			{Result: domain.VisitResultPurchased, Price: &priceB},
			{Result: domain.VisitResultNotPurchased},
		},
		visited: map[uuid.UUID]bool{active.ID: true},
	}

	svc := NewDashboardService(clients, visits, zap.NewNop())
	now := time.Date(2024, 5, 8, 15, 0, 0, 0, time.Local) // a Wednesday
	svc.now = func() time.Time { return now }

	metrics := svc.GetMetrics(context.Background())

	assert.Equal(t, 3, metrics.VisitsThisWeek)
	assert.Equal(t, 2, metrics.Purchases)
	assert.Equal(t, 67, metrics.ConversionRate)
	assert.Equal(t, 150.0, metrics.EstimatedRevenue)
	require.Len(t, metrics.InactiveClients, 1)
	assert.Equal(t, inactive.ID, metrics.InactiveClients[0].ID)

	assert.Equal(t, StartOfWeek(now), visits.listSinceArg)
	assert.Equal(t, now.Add(-inactiveWindow), visits.visitedArg)
}

func TestDashboardService_WeeklyFetchFailureDegradesToZero(t *testing.T) {
	clients := &fakeDashboardClients{clients: []domain.Client{dashboardClient("Padaria Central")}}
	visits := &fakeDashboardVisits{listErr: errors.New("connection refused")}

	svc := NewDashboardService(clients, visits, zap.NewNop())
	metrics := svc.GetMetrics(context.Background())

	assert.Zero(t, metrics.VisitsThisWeek)
	assert.Zero(t, metrics.Purchases)
	assert.Zero(t, metrics.ConversionRate)
	assert.Zero(t, metrics.EstimatedRevenue)
	assert.NotNil(t, metrics.InactiveClients)
	assert.Empty(t, metrics.InactiveClients)
}

func TestDashboardService_ClientFetchFailureLeavesWeeklyNumbers(t *testing.T) {
	clients := &fakeDashboardClients{err: errors.New("connection refused")}
	visits := &fakeDashboardVisits{
		visits:  []domain.Visit{{Result: domain.VisitResultPurchased}},
		visited: map[uuid.UUID]bool{},
	}

	svc := NewDashboardService(clients, visits, zap.NewNop())
	metrics := svc.GetMetrics(context.Background())

	assert.Equal(t, 1, metrics.VisitsThisWeek)
	assert.NotNil(t, metrics.InactiveClients)
	assert.Empty(t, metrics.InactiveClients)
}

func TestDashboardService_ActivityFetchFailureMarksAllInactive(t *testing.T) {
	a := dashboardClient("Padaria Central")
	b := dashboardClient("Distribuidora Sul")
	clients := &fakeDashboardClients{clients: []domain.Client{a, b}}
	visits := &fakeDashboardVisits{visitedErr: errors.New("connection refused")}

	svc := NewDashboardService(clients, visits, zap.NewNop())
	metrics := svc.GetMetrics(context.Background())

	assert.Len(t, metrics.InactiveClients, 2)
}
