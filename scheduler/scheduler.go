// Package scheduler runs the pipeline on a cron schedule. A firing that
// lands while the previous invocation is still running is skipped, so at
// most one invocation is in flight at any time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"snippet-bot/logger"
)

// Job is one scheduled task. The context carries the per-invocation
// deadline.
type Job func(ctx context.Context) error

// JobInfo describes a registered job.
type JobInfo struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run,omitempty"`
}

type Scheduler struct {
	cron     *cron.Cron
	jobs     map[string]cron.EntryID
	timezone *time.Location
	timeout  time.Duration
}

// New builds a scheduler evaluating cron expressions in the given
// timezone, with timeout bounding each invocation.
func New(timezone string, timeout time.Duration) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid timezone %q: %w", timezone, err)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)

	return &Scheduler{
		cron:     c,
		jobs:     make(map[string]cron.EntryID),
		timezone: loc,
		timeout:  timeout,
	}, nil
}

// AddJob registers job under name with a five-field cron expression,
// e.g. "0 9 * * *" for 09:00 daily.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		logger.InfoWithFields("job started", logger.Fields{"job": name})
		start := time.Now()

		if err := job(ctx); err != nil {
			logger.Log.Errorf("job %s failed: %v", name, err)
			return
		}
		logger.InfoWithFields("job finished", logger.Fields{
			"job":      name,
			"duration": time.Since(start).String(),
		})
	})
	if err != nil {
		return fmt.Errorf("scheduler: cannot schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	logger.InfoWithFields("job registered", logger.Fields{
		"job":      name,
		"schedule": schedule,
		"timezone": s.timezone.String(),
	})
	return nil
}

// Start begins firing registered jobs. It does not block.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling. The returned context is done once any running
// invocation has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// ListJobs reports each registered job with its next and last fire time.
func (s *Scheduler) ListJobs() []JobInfo {
	infos := make([]JobInfo, 0, len(s.jobs))
	for name, entryID := range s.jobs {
		entry := s.cron.Entry(entryID)
		infos = append(infos, JobInfo{
			Name:    name,
			NextRun: entry.Next,
			LastRun: entry.Prev,
		})
	}
	return infos
}

// cronLogger routes the cron library's skip notices into the structured
// logger. Info is only emitted for skipped overlapping firings.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Log.Infof("scheduler: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Log.Errorf("scheduler: %s: %v %v", msg, err, keysAndValues)
}
