package pipelineimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ScheduleRuns starts an interval job executing the pipeline in daemon mode.
// The first run fires immediately; subsequent runs wait out the configured
// interval. The scheduler shuts down when ctx is cancelled.
func (p *PipelineImpl) ScheduleRuns(ctx context.Context) error {
	interval := time.Duration(p.Config.Scraper.IntervalMinutes) * time.Minute

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				p.Logger.Info("Context cancelled, skipping scheduled run")
				return
			}

			runCtx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()

			if _, err := p.Run(runCtx); err != nil {
				p.Logger.Error("Scheduled run failed", "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule pipeline runs: %w", err)
	}

	scheduler.Start()
	p.Logger.Info("Pipeline scheduler started", "interval", interval.String())

	go func() {
		<-ctx.Done()
		p.Logger.Info("Stopping pipeline scheduler")
		if err := scheduler.Shutdown(); err != nil {
			p.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}
