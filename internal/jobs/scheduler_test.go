package jobs_test

import (
	"testing"

	"github.com/reproute/crm-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("digest", "0 0 6 * * *", func() {})
	require.NoError(t, err)
	assert.Equal(t, []string{"digest"}, s.GetJobNames())

	require.NoError(t, s.RemoveJob("digest"))
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_DuplicateJobNameRejected(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("digest", "0 0 6 * * *", func() {}))
	err := s.AddJob("digest", "0 0 7 * * *", func() {})
	assert.Error(t, err)
}

func TestScheduler_InvalidCronExpression(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("broken", "not a cron expr", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.GetJobNames())
}

func TestScheduler_RemoveUnknownJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	assert.Error(t, s.RemoveJob("missing"))
}

func TestScheduler_StopReturnsDoneContext(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	s.Start()

	ctx := s.Stop()
	<-ctx.Done()
}
