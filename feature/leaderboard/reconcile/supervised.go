package reconcile

import (
	"context"

	"puzzle-leaderboard/core/metrics"
	"puzzle-leaderboard/core/scheduler"
)

// Runner executes a task at the job boundary, where failures are logged, counted and
// reported. *scheduler.Scheduler implements it.
type Runner interface {
	Execute(ctx context.Context, task scheduler.Task) error
}

var _ Runner = (*scheduler.Scheduler)(nil)

// Task adapts Tick to a scheduler task.
func (e *Engine) Task(ctx context.Context) (*metrics.Pass, error) {
	out, err := e.Tick(ctx)
	return out.Pass(), err
}

// Supervised runs engine passes through a Runner so passes triggered outside the
// schedule get the same bookkeeping as scheduled ones.
type Supervised struct {
	engine *Engine
	runner Runner
}

// NewSupervised wraps engine with runner.
func NewSupervised(engine *Engine, runner Runner) *Supervised {
	return &Supervised{engine: engine, runner: runner}
}

// Tick runs one pass through the runner and returns the engine's outcome and error.
func (s *Supervised) Tick(ctx context.Context) (*Outcome, error) {
	var (
		out *Outcome
		err error
	)
	_ = s.runner.Execute(ctx, func(ctx context.Context) (*metrics.Pass, error) {
		out, err = s.engine.Tick(ctx)
		return out.Pass(), err
	})
	return out, err
}
