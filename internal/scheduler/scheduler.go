// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher reloads the company directory from its source.
type Refresher interface {
	Reload(ctx context.Context) error
	Size() int
}

// Scheduler owns the cron runner and the registered jobs.
type Scheduler struct {
	cron      *cron.Cron
	log       zerolog.Logger
	directory Refresher
	schedule  string
}

// New creates a scheduler with the directory refresh job registered.
func New(log zerolog.Logger, dir Refresher, schedule string) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		log:       log.With().Str("component", "scheduler").Logger(),
		directory: dir,
		schedule:  schedule,
	}

	if _, err := s.cron.AddFunc(schedule, s.runDirectoryRefresh); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.log.Info().Str("schedule", s.schedule).Msg("Scheduler starting")
	s.cron.Start()
}

// Stop halts the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// runDirectoryRefresh reloads the company directory. Reload degrades to
// the last-good universe internally, so a failure here is logged and the
// process keeps serving.
func (s *Scheduler) runDirectoryRefresh() {
	start := time.Now()
	log := s.log.With().Str("job", "directory_refresh").Logger()
	log.Info().Msg("Job starting")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.directory.Reload(ctx); err != nil {
		log.Warn().Err(err).Dur("duration_ms", time.Since(start)).Msg("Job finished with degraded result")
		return
	}

	log.Info().
		Int("companies", s.directory.Size()).
		Dur("duration_ms", time.Since(start)).
		Msg("Job finished")
}
