package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/mi-caja/internal/metrics"
)

// Scheduler runs session housekeeping on a fixed interval.
type Scheduler struct {
	cron    *cron.Cron
	manager *Manager
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that reaps idle sessions every interval.
func NewScheduler(m *Manager, reapInterval time.Duration, log *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		manager: m,
		log:     log,
	}

	if _, err := c.AddFunc(
		"@every "+reapInterval.String(),
		s.runReap,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("session scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("session scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runReap() {
	if n := s.manager.Reap(); n > 0 {
		s.log.Info("idle sessions reaped", "count", n)
	}
	metrics.SessionsActive.Set(float64(s.manager.Count()))
}
