package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/backstack"
	"github.com/BrandonKowalski/navigator/pkg/pokedex"
)

// StepReport is the outcome of one step.
type StepReport struct {
	Index   int
	Command string
	Stack   []string       // labels, bottom first
	Results map[string]any // results held by the top entry
	Err     error          // expectation failure, nil when the step matched
}

type Report struct {
	Name  string
	Steps []StepReport
	Stats navigator.Stats
}

// Failed reports whether any step missed its expectation.
func (r *Report) Failed() bool {
	return slices.ContainsFunc(r.Steps, func(s StepReport) bool { return s.Err != nil })
}

// Err joins every step failure.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", s.Index, s.Command, s.Err))
		}
	}
	return errors.Join(errs...)
}

// Runner plays scenarios on a navigator whose commands are consumed by ctrl.
// The caller owns the HandleCommands loop.
type Runner struct {
	nav     *pokedex.Navigator
	ctrl    *backstack.Controller[pokedex.Screen]
	catalog *pokedex.Catalog
	logger  *slog.Logger
}

func NewRunner(nav *pokedex.Navigator, ctrl *backstack.Controller[pokedex.Screen], catalog *pokedex.Catalog, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = navigator.GetLogger()
	}
	return &Runner{nav: nav, ctrl: ctrl, catalog: catalog, logger: logger}
}

// Run emits each step's command, waits for it to be handled, and checks the
// step's expectations. A failed expectation is recorded in the report and the
// run continues; an invalid scenario or a cancelled ctx aborts it.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	cmds, err := sc.Compile(r.catalog)
	if err != nil {
		return nil, err
	}

	report := &Report{Name: sc.Name}
	r.logger.Info("scenario started", "scenario", sc.Name, "steps", len(cmds))

	for i, cmd := range cmds {
		r.nav.Emit(cmd)
		if err := r.nav.Flush(ctx); err != nil {
			return report, fmt.Errorf("scenario %s step %d: %w", sc.Name, i+1, err)
		}

		step := StepReport{
			Index:   i + 1,
			Command: cmd.String(),
			Stack:   Labels(r.ctrl.Snapshot().Routes),
			Results: r.topResults(),
		}
		step.Err = check(sc.Steps[i], step)
		if step.Err != nil {
			r.logger.Warn("scenario step failed", "scenario", sc.Name, "step", step.Index, "error", step.Err)
		} else {
			r.logger.Debug("scenario step", "scenario", sc.Name, "step", step.Index, "stack", step.Stack)
		}
		report.Steps = append(report.Steps, step)
	}

	report.Stats = r.nav.Stats()
	r.logger.Info("scenario finished", "scenario", sc.Name, "failed", report.Failed(),
		"applied", report.Stats.Applied, "dropped", report.Stats.Dropped)
	return report, nil
}

func (r *Runner) topResults() map[string]any {
	top, ok := r.ctrl.Current()
	if !ok {
		return nil
	}
	keys := top.State.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := backstack.Result[any](top.State, k); ok {
			out[k] = v
		}
	}
	return out
}

func check(step Step, got StepReport) error {
	if step.Expect != nil && !slices.Equal(step.Expect, got.Stack) {
		return fmt.Errorf("%w: stack %v, want %v", ErrExpectationFailed, got.Stack, step.Expect)
	}
	for _, key := range slices.Sorted(maps.Keys(step.ExpectResult)) {
		want := step.ExpectResult[key]
		v, ok := got.Results[key]
		if !ok {
			return fmt.Errorf("%w: no result %q on top entry", ErrExpectationFailed, key)
		}
		// YAML and TOML decode integers to different widths.
		if fmt.Sprint(v) != fmt.Sprint(want) {
			return fmt.Errorf("%w: result %q = %v, want %v", ErrExpectationFailed, key, v, want)
		}
	}
	return nil
}

// Play runs sc on a fresh navigator and controller. listeners observe every
// back-stack transition.
func Play(ctx context.Context, sc *Scenario, catalog *pokedex.Catalog, logger *slog.Logger, listeners ...backstack.TransitionFunc[pokedex.Screen]) (*Report, error) {
	nav := pokedex.NewNavigator()
	ctrl := pokedex.NewController()
	if logger != nil {
		ctrl.WithLogger(logger)
	}
	for _, fn := range listeners {
		ctrl.OnTransition(fn)
	}

	hostCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- nav.HandleCommands(hostCtx, ctrl) }()

	report, err := NewRunner(nav, ctrl, catalog, logger).Run(ctx, sc)

	nav.Close()
	if herr := <-done; herr != nil && !errors.Is(herr, navigator.ErrClosed) && !errors.Is(herr, context.Canceled) {
		err = errors.Join(err, herr)
	}
	return report, err
}
