// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scheduler runs a recurring job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

// DefaultCron runs the digest every morning at 08:00.
const DefaultCron = "0 8 * * *"

// Scheduler runs one job on a standard five-field cron expression or a
// descriptor such as "@daily". Runs never overlap: a run that is due while
// the previous one is still going is skipped.
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
	spec     string

	mu      sync.Mutex
	entryID cron.EntryID
}

// New returns a scheduler for cfg. Empty fields use DefaultCron and the
// local time zone.
func New(cfg types.ScheduleConfig) (*Scheduler, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = "Local"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	spec := cfg.Cron
	if spec == "" {
		spec = DefaultCron
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	logger := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &Scheduler{cron: c, location: loc, spec: spec}, nil
}

// Schedule registers job, replacing any previously registered job. Each
// run receives ctx.
func (s *Scheduler) Schedule(ctx context.Context, job func(context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}
	id, err := s.cron.AddFunc(s.spec, func() {
		start := time.Now()
		log.WithField("cron", s.spec).Info("scheduled run starting")
		job(ctx)
		log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("scheduled run finished")
	})
	if err != nil {
		return fmt.Errorf("adding cron entry: %w", err)
	}
	s.entryID = id
	log.WithFields(log.Fields{
		"cron":     s.spec,
		"timezone": s.location.String(),
	}).Info("digest scheduled")
	return nil
}

// Next returns the next time the job will run, or the zero time if no job
// is scheduled.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return time.Time{}
	}
	sched, err := cron.ParseStandard(s.spec)
	if err != nil {
		return time.Time{}
	}
	return sched.Next(time.Now().In(s.location))
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	return nil
}
