package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"puzzle-leaderboard/core/logger"
	"puzzle-leaderboard/core/metrics"

	"go.uber.org/zap"
)

// Task is one pass of the job. The returned summary may be nil.
type Task func(ctx context.Context) (*metrics.Pass, error)

// Reporter delivers job failures to operators.
type Reporter interface {
	Report(ctx context.Context, err error) error
}

// Scheduler drives a Task on a fixed interval.
type Scheduler struct {
	cfg      Config
	interval time.Duration
	task     Task
	reporter Reporter
	metrics  *metrics.Metrics
	logger   *zap.Logger
	ticks    atomic.Uint64
}

// New creates a scheduler. reporter and m may be nil.
func New(cfg Config, task Task, reporter Reporter, m *metrics.Metrics, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cfg:      cfg,
		interval: cfg.Interval(),
		task:     task,
		reporter: reporter,
		metrics:  m,
		logger:   log,
	}
}

// Run executes the task immediately and then every interval until ctx is cancelled.
// It returns nil on cancellation and the failing pass's error when ContinueOnError is off.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))

	if err := s.RunOnce(ctx); err != nil && !s.cfg.ContinueOnError {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil && !s.cfg.ContinueOnError {
				return err
			}
		}
	}
}

// RunOnce executes a single pass and returns its error after logging and reporting it.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.Execute(ctx, s.task)
}

// Execute runs task with the same logging, metrics and error reporting as a scheduled
// pass. It is safe to call while Run is active.
func (s *Scheduler) Execute(ctx context.Context, task Task) error {
	l := logger.WithTick(s.logger, s.ticks.Add(1))

	start := time.Now()
	out, err := task(ctx)
	took := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveTick(out, err, took)
	}

	if err == nil {
		fields := []zap.Field{zap.Duration("took", took)}
		if out != nil {
			fields = append(fields, zap.String("action", out.Action), zap.String("tick_id", out.ID))
		}
		l.Debug("Pass completed", fields...)
		return nil
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		l.Info("Pass interrupted by shutdown", zap.Error(err))
		return nil
	}

	l.Error("Pass failed", zap.Error(err), zap.String("kind", metrics.ErrorKind(err)), zap.Duration("took", took))
	s.report(ctx, l, err)
	return err
}

func (s *Scheduler) report(ctx context.Context, l *zap.Logger, err error) {
	if s.reporter == nil {
		return
	}
	if rErr := s.reporter.Report(ctx, err); rErr != nil {
		l.Warn("Failed to report error", zap.Error(rErr), zap.NamedError("original", err))
	}
}
