package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/developer-overheid-nl/bottles-api/pkg/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestScheduleImageSweep_InvalidSchedule(t *testing.T) {
	c, err := jobs.ScheduleImageSweep(context.Background(), "every now and then", &countingSweeper{})
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestScheduleImageSweep_Runs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := &countingSweeper{}
	c, err := jobs.ScheduleImageSweep(ctx, "@every 1s", sweeper)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)

	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
