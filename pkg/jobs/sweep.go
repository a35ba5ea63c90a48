package jobs

import (
	"context"
	"log"

	"github.com/developer-overheid-nl/bottles-api/pkg/tools"
	"github.com/robfig/cron/v3"
)

// Sweeper is implemented by services.SweepService.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// ScheduleImageSweep sets up a cron job that removes orphaned message images.
// The job stops when ctx is done.
func ScheduleImageSweep(ctx context.Context, schedule string, svc Sweeper) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		tools.Dispatch(ctx, "sweep", func(ctx context.Context) error {
			n, err := svc.Sweep(ctx)
			if err == nil {
				log.Printf("[sweep] removed %d orphaned images", n)
			}
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c, nil
}
