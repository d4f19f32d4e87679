package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/domain"
	"go.uber.org/zap"
)

// InactiveDigestJobName is the name of the nightly inactive clients digest job
const InactiveDigestJobName = "inactive_clients_digest"

// InactiveWindow is how long a client can go unvisited before it counts
// as inactive in the digest
const InactiveWindow = 30 * 24 * time.Hour

// ClientSource provides the client data needed by the digest.
// This interface allows the job to use the repository without importing
// the service package directly.
type ClientSource interface {
	// ListOwnerIDs returns the distinct rep ids that own at least one client.
	ListOwnerIDs(ctx context.Context) ([]uuid.UUID, error)

	// ListByOwner returns the clients owned by the rep in the context.
	ListByOwner(ctx context.Context) ([]domain.Client, error)
}

// VisitActivitySource provides recent visit activity for the digest.
type VisitActivitySource interface {
	// ClientIDsWithVisitSince returns the set of client ids visited since the given time.
	ClientIDsWithVisitSince(ctx context.Context, since time.Time) (map[uuid.UUID]bool, error)
}

// InactiveClientsJob walks every rep's portfolio and logs how many
// clients have gone without a visit for the inactive window. The log
// lines feed the ops alerting pipeline.
type InactiveClientsJob struct {
	clients ClientSource
	visits  VisitActivitySource
	logger  *zap.Logger
	timeout time.Duration
}

// NewInactiveClientsJob creates a new inactive clients digest job.
// The timeout controls how long the digest is allowed to run.
func NewInactiveClientsJob(clients ClientSource, visits VisitActivitySource, logger *zap.Logger, timeout time.Duration) *InactiveClientsJob {
	return &InactiveClientsJob{
		clients: clients,
		visits:  visits,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the digest. This is called by the scheduler according to
// the cron expression.
func (j *InactiveClientsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	owners, err := j.clients.ListOwnerIDs(ctx)
	if err != nil {
		j.logger.Error("inactive clients digest failed to list reps",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	cutoff := start.Add(-InactiveWindow)
	var totalInactive int

	for _, ownerID := range owners {
		// Repositories filter by the rep in the context, so the digest
		// impersonates each rep in turn.
		repCtx := auth.WithUserContext(ctx, &auth.UserContext{UserID: ownerID})

		clients, err := j.clients.ListByOwner(repCtx)
		if err != nil {
			j.logger.Error("inactive clients digest failed to list clients",
				zap.Error(err),
				zap.String("user_id", ownerID.String()))
			continue
		}

		visited, err := j.visits.ClientIDsWithVisitSince(repCtx, cutoff)
		if err != nil {
			j.logger.Error("inactive clients digest failed to load visit activity",
				zap.Error(err),
				zap.String("user_id", ownerID.String()))
			continue
		}

		var inactive int
		for _, c := range clients {
			if !visited[c.ID] {
				inactive++
			}
		}
		totalInactive += inactive

		if inactive > 0 {
			j.logger.Info("rep has clients needing a visit",
				zap.String("user_id", ownerID.String()),
				zap.Int("inactive_clients", inactive),
				zap.Int("total_clients", len(clients)))
		}
	}

	j.logger.Info("inactive clients digest completed",
		zap.Int("reps", len(owners)),
		zap.Int("inactive_clients_total", totalInactive),
		zap.Duration("duration", time.Since(start)))
}

// RegisterInactiveClientsJob registers the digest with the scheduler.
// The cronExpr should be a valid cron expression with seconds field
// (e.g., "0 0 6 * * *" for 06:00 every day).
func RegisterInactiveClientsJob(scheduler *Scheduler, clients ClientSource, visits VisitActivitySource, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewInactiveClientsJob(clients, visits, logger, timeout)
	return scheduler.AddJob(InactiveDigestJobName, cronExpr, job.Run)
}
