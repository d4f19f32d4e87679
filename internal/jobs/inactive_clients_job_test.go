package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeClientSource serves per-rep portfolios keyed by owner id
type fakeClientSource struct {
	portfolios map[uuid.UUID][]domain.Client
	listedFor  []uuid.UUID
}

func (f *fakeClientSource) ListOwnerIDs(ctx context.Context) ([]uuid.UUID, error) {
	owners := make([]uuid.UUID, 0, len(f.portfolios))
	for id := range f.portfolios {
		owners = append(owners, id)
	}
	return owners, nil
}

func (f *fakeClientSource) ListByOwner(ctx context.Context) ([]domain.Client, error) {
	ownerID := auth.UserIDFromContext(ctx)
	f.listedFor = append(f.listedFor, ownerID)
	return f.portfolios[ownerID], nil
}

// fakeVisitActivity reports a fixed set of recently visited client ids
type fakeVisitActivity struct {
	visited map[uuid.UUID]bool
	since   time.Time
}

func (f *fakeVisitActivity) ClientIDsWithVisitSince(ctx context.Context, since time.Time) (map[uuid.UUID]bool, error) {
	f.since = since
	return f.visited, nil
}

func newClient(id uuid.UUID) domain.Client {
	c := domain.Client{}
	c.ID = id
	return c
}

func TestInactiveClientsJob_ImpersonatesEachRep(t *testing.T) {
	repA := uuid.New()
	repB := uuid.New()

	clients := &fakeClientSource{
		portfolios: map[uuid.UUID][]domain.Client{
			repA: {newClient(uuid.New())},
			repB: {newClient(uuid.New()), newClient(uuid.New())},
		},
	}
	visits := &fakeVisitActivity{visited: map[uuid.UUID]bool{}}

	job := jobs.NewInactiveClientsJob(clients, visits, zap.NewNop(), time.Minute)
	job.Run()

	assert.ElementsMatch(t, []uuid.UUID{repA, repB}, clients.listedFor,
		"digest should list each rep's portfolio under that rep's identity")
}

func TestInactiveClientsJob_CutoffUsesInactiveWindow(t *testing.T) {
	rep := uuid.New()
	clients := &fakeClientSource{
		portfolios: map[uuid.UUID][]domain.Client{rep: {newClient(uuid.New())}},
	}
	visits := &fakeVisitActivity{visited: map[uuid.UUID]bool{}}

	before := time.Now()
	job := jobs.NewInactiveClientsJob(clients, visits, zap.NewNop(), time.Minute)
	job.Run()
	after := time.Now()

	expectedEarliest := before.Add(-jobs.InactiveWindow)
	expectedLatest := after.Add(-jobs.InactiveWindow)
	assert.False(t, visits.since.Before(expectedEarliest), "cutoff should be 30 days back")
	assert.False(t, visits.since.After(expectedLatest), "cutoff should be 30 days back")
}

func TestInactiveClientsJob_NoReps(t *testing.T) {
	clients := &fakeClientSource{portfolios: map[uuid.UUID][]domain.Client{}}
	visits := &fakeVisitActivity{visited: map[uuid.UUID]bool{}}

	job := jobs.NewInactiveClientsJob(clients, visits, zap.NewNop(), time.Minute)

	assert.NotPanics(t, func() { job.Run() })
	assert.Empty(t, clients.listedFor)
}
