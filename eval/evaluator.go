// Package eval executes syntax trees built by parser package.
//
// Evaluator walks the tree recursively on the calling goroutine, all state
// (variables and output) belongs to one Evaluator instance.
// Execution time is limited by an optional budget and by context:
// both are checked before each statement and expression node and at the start of each loop iteration.
package eval

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/ava12/pseudo/tree"
)

// Option configures Evaluator.
type Option func(*Evaluator)

// WithBudget limits execution time to limit counting from start.
func WithBudget(start time.Time, limit time.Duration) Option {
	return func(ev *Evaluator) {
		ev.start = start
		ev.limit = limit
		ev.startAtRun = false
	}
}

// WithTimeout limits execution time to limit counting from the start of each Run call.
// Non-positive limit means no limit.
func WithTimeout(limit time.Duration) Option {
	return func(ev *Evaluator) {
		ev.limit = limit
		ev.startAtRun = true
	}
}

// WithOutput mirrors program output to w as it is produced.
func WithOutput(w io.Writer) Option {
	return func(ev *Evaluator) {
		ev.mirror = w
	}
}

// WithLogger sets logger for debug messages.
func WithLogger(l *slog.Logger) Option {
	return func(ev *Evaluator) {
		if l != nil {
			ev.logger = l
		}
	}
}

// WithClock replaces time source used for budget checks.
func WithClock(now func() time.Time) Option {
	return func(ev *Evaluator) {
		if now != nil {
			ev.now = now
		}
	}
}

// WithVariables sets initial variable values.
func WithVariables(vars Environment) Option {
	return func(ev *Evaluator) {
		maps.Copy(ev.env, vars)
	}
}

// Evaluator executes a program and accumulates its output.
type Evaluator struct {
	ctx        context.Context
	env        Environment
	out        strings.Builder
	mirror     io.Writer
	start      time.Time
	limit      time.Duration
	startAtRun bool
	now        func() time.Time
	logger     *slog.Logger
}

// New creates an evaluator with empty environment.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{
		env:    make(Environment),
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Evaluate creates an evaluator and runs the program.
func Evaluate(ctx context.Context, root *tree.NonTermNode, opts ...Option) (string, Environment, error) {
	ev := New(opts...)
	out, e := ev.Run(ctx, root)
	return out, ev.Env(), e
}

// Run executes Program node. Returns complete output accumulated so far, even on failure.
func (ev *Evaluator) Run(ctx context.Context, root *tree.NonTermNode) (string, error) {
	ev.ctx = ctx
	if ev.startAtRun {
		ev.start = ev.now()
	}

	ev.logger.Debug("evaluation started", "limit", ev.limit, "statements", root.Len())
	e := ev.execute(root)
	if e != nil {
		ev.logger.Debug("evaluation failed", "error", e)
	} else {
		ev.logger.Debug("evaluation finished", "variables", len(ev.env), "output_bytes", ev.out.Len())
	}
	return ev.out.String(), e
}

// Output returns output accumulated by all Run calls.
func (ev *Evaluator) Output() string {
	return ev.out.String()
}

// Env returns a copy of current environment.
func (ev *Evaluator) Env() Environment {
	return maps.Clone(ev.env)
}

func (ev *Evaluator) checkBudget(n tree.Node) error {
	if ev.ctx != nil {
		if e := ev.ctx.Err(); e != nil {
			if errors.Is(e, context.DeadlineExceeded) {
				return deadlineError(n)
			}
			return canceledError(n, e)
		}
	}

	if ev.limit > 0 && ev.now().Sub(ev.start) > ev.limit {
		ev.logger.Debug("time limit exceeded", "node", n.TypeName(), "line", n.Line())
		return timeLimitError(n, ev.limit)
	}
	return nil
}

func (ev *Evaluator) write(s string) error {
	ev.out.WriteString(s)
	if ev.mirror != nil {
		if _, e := io.WriteString(ev.mirror, s); e != nil {
			return outputError(e)
		}
	}
	return nil
}
