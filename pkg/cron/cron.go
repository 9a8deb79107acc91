// Package cron runs periodic background jobs.
package cron

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	c      *cron.Cron
	ctx    context.Context
	logger *log.Logger
}

// cronLogger adapts a *log.Logger to cron.Logger. Routine messages are
// logged at debug level.
type cronLogger struct {
	logger *log.Logger
}

// Info implements cron.Logger.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Error implements cron.Logger.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// NewScheduler returns a new Scheduler. Jobs receive ctx when they run.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := log.FromContext(ctx).WithPrefix("cron")
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(cronLogger{logger}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
		ctx:    ctx,
		logger: logger,
	}
}

// Add schedules fn under name. Errors returned by fn are logged.
func (s *Scheduler) Add(name, spec string, fn func(context.Context) error) (cron.EntryID, error) {
	return s.c.AddFunc(spec, func() {
		start := time.Now()
		if err := fn(s.ctx); err != nil {
			s.logger.Error("job failed", "job", name, "err", err)
			return
		}
		s.logger.Debug("job done", "job", name, "time", time.Since(start))
	})
}

// Remove unschedules a job.
func (s *Scheduler) Remove(id cron.EntryID) {
	s.c.Remove(id)
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.c.Entries())
}

// Start starts running jobs in the background.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Shutdown stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	select {
	case <-s.c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
