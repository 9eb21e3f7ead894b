package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	coreport "github.com/nepalipay/settlement-service/internal/domain/port/core"
)

// Job is a named background task run on a cron spec
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler runs background jobs. A job never overlaps with itself and a panic
// in one run is logged instead of crashing the process.
type Scheduler struct {
	cron         *cron.Cron
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	jobTimeout   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler. Each run gets its own context bounded by jobTimeout.
func New(logger coreport.Logger, timeProvider coreport.TimeProvider, jobTimeout time.Duration) *Scheduler {
	cronLog := &cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger:       logger,
		timeProvider: timeProvider,
		jobTimeout:   jobTimeout,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Register adds job to the schedule. An empty spec disables the job.
func (s *Scheduler) Register(job Job) error {
	if job.Spec == "" {
		s.logger.Info("Background job disabled", map[string]any{"job": job.Name})
		return nil
	}

	if _, err := s.cron.AddFunc(job.Spec, s.wrap(job)); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", job.Spec, job.Name, err)
	}

	s.logger.Info("Background job scheduled", map[string]any{
		"job":  job.Name,
		"spec": job.Spec,
	})
	return nil
}

// Start runs the schedule in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them until ctx expires
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) wrap(job Job) func() {
	return func() {
		ctx := s.ctx
		if s.jobTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
			defer cancel()
		}

		start := s.timeProvider.Now()
		err := job.Run(ctx)
		fields := map[string]any{
			"job":         job.Name,
			"duration_ms": s.timeProvider.Since(start).Std().Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
			s.logger.Error("Background job failed", fields)
			return
		}
		s.logger.Debug("Background job finished", fields)
	}
}

// cronLogger adapts the core logger to cron.Logger
type cronLogger struct {
	logger coreport.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, toFields(keysAndValues))
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := toFields(keysAndValues)
	fields["error"] = err.Error()
	l.logger.Error("cron: "+msg, fields)
}

func toFields(keysAndValues []interface{}) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
