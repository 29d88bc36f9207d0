package reaper

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the sweep on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
}

func NewScheduler(svc *Service, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))
	return &Scheduler{cron: c, svc: svc}
}

// Start registers the sweep job and starts the scheduler.
// schedule accepts cron specs and descriptors like "@every 1h".
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.svc.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("scheduled expiry sweep", "schedule", schedule)
	return nil
}

// Stop stops the scheduler and returns a context that is done once any
// in-flight sweep finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
