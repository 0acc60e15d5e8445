// Package scheduler runs the digest and ingest jobs on cron specs evaluated in UTC.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jackwardell/partypeople/internal/platform/logging"
	"github.com/jackwardell/partypeople/internal/usecase"
)

const defaultJobTimeout = 10 * time.Minute

type Runner interface {
	Run(ctx context.Context, job usecase.JobName) (usecase.JobResult, error)
}

type Config struct {
	MorningSpec string
	EveningSpec string
	// IngestSpec is optional; empty disables the periodic ingest.
	IngestSpec string
	JobTimeout time.Duration
	Debug      bool
}

type Entry struct {
	Spec string
	Job  usecase.JobName

	id cron.EntryID
}

type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	timeout time.Duration
	entries []Entry
	logger  *logging.Logger
}

func New(runner Runner, cfg Config, logger *logging.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("%w: job runner is required", usecase.ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = defaultJobTimeout
	}

	adapter := cronLogger{logger: logger.Named("cron"), debug: cfg.Debug}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		runner:  runner,
		timeout: cfg.JobTimeout,
		logger:  logger,
	}

	for _, e := range []Entry{
		{Spec: cfg.MorningSpec, Job: usecase.JobMorningDigest},
		{Spec: cfg.EveningSpec, Job: usecase.JobEveningDigest},
		{Spec: cfg.IngestSpec, Job: usecase.JobIngest},
	} {
		e.Spec = strings.TrimSpace(e.Spec)
		if e.Spec == "" {
			continue
		}
		job := e.Job
		id, err := s.cron.AddFunc(e.Spec, func() { s.run(job) })
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %s spec=%q: %v", usecase.ErrInvalidInput, job, e.Spec, err)
		}
		e.id = id
		s.entries = append(s.entries, e)
	}

	return s, nil
}

func (s *Scheduler) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Next reports when job fires after t. ok is false for unscheduled jobs.
func (s *Scheduler) Next(job usecase.JobName, t time.Time) (time.Time, bool) {
	for _, e := range s.entries {
		if e.Job != job {
			continue
		}
		entry := s.cron.Entry(e.id)
		if !entry.Valid() {
			return time.Time{}, false
		}
		return entry.Schedule.Next(t.In(time.UTC)), true
	}
	return time.Time{}, false
}

func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	for _, e := range s.entries {
		next, _ := s.Next(e.Job, time.Now())
		s.logger.InfoContext(ctx, "job scheduled", "job", e.Job, "spec", e.Spec, "next_run", next)
	}
}

// Stop halts scheduling and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

func (s *Scheduler) run(job usecase.JobName) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.runner.Run(ctx, job)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled job failed", "job", job, "duration", time.Since(start), "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled job finished", "job", job, "duration", time.Since(start), "messages", len(result.MessageIDs))
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
	debug  bool
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	if l.debug {
		l.logger.Debug(msg, keysAndValues...)
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
