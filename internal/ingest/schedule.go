package ingest

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Schedule runs job on the cron spec until ctx is cancelled. Runs never
// overlap; a tick that fires while the previous run is busy is skipped.
func Schedule(ctx context.Context, spec string, job *Job) error {
	c := cron.New(
		cron.WithLocation(job.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := c.AddFunc(spec, func() {
		res, err := job.Run(ctx)
		if err != nil {
			slog.Error("error running ingest", "bucket", res.Bucket, "error", err)
			return
		}
		slog.Info("ingest complete", "bucket", res.Bucket, "saved", res.Saved, "failed", res.Failed)
	})
	if err != nil {
		return err
	}

	c.Start()
	slog.Info("ingest scheduled", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}
