package navigator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Dispatcher owns the command queue. Any number of goroutines may emit; one
// host at a time consumes.
type Dispatcher struct {
	queue  *commandQueue
	logger *slog.Logger

	emitted *atomic.Int64
	applied *atomic.Int64
	dropped *atomic.Int64

	progressMu sync.Mutex
	progress   chan struct{} // closed and replaced each time a command is handled
}

// Stats is a point-in-time view of the dispatcher's counters.
type Stats struct {
	Emitted int64 // Commands accepted by Emit
	Applied int64 // Commands the interpreter applied to a host
	Dropped int64 // Commands the interpreter dropped (route absent, stack at root)
	Pending int   // Commands waiting for a host
}

func newDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:    newCommandQueue(),
		logger:   logger,
		emitted:  atomic.NewInt64(0),
		applied:  atomic.NewInt64(0),
		dropped:  atomic.NewInt64(0),
		progress: make(chan struct{}),
	}
}

// Emit enqueues cmd for the current or next subscribed host. It never blocks
// and never fails; with no host subscribed the command waits in the queue.
// Commands emitted after Close are dropped and logged.
func (d *Dispatcher) Emit(cmd Command) {
	if cmd == nil {
		d.logger.Warn("nil command ignored")
		return
	}

	env := envelope{id: uuid.New(), cmd: cmd, emittedAt: time.Now()}
	if !d.queue.push(env) {
		d.logger.Warn("command emitted after close dropped", "command", cmd.String(), "command_id", env.id)
		return
	}
	d.emitted.Inc()
	d.logger.Debug("command emitted", "command", cmd.String(), "command_id", env.id)
}

// NavigateUp emits NavigateUp.
func (d *Dispatcher) NavigateUp() {
	d.Emit(NavigateUp{})
}

// Pending returns the number of commands waiting for a host.
func (d *Dispatcher) Pending() int {
	return d.queue.len()
}

// Stats returns the dispatcher's counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Emitted: d.emitted.Load(),
		Applied: d.applied.Load(),
		Dropped: d.dropped.Load(),
		Pending: d.queue.len(),
	}
}

// Flush blocks until every command emitted before the call has been applied
// or dropped by a host, or ctx is done.
func (d *Dispatcher) Flush(ctx context.Context) error {
	target := d.emitted.Load()
	for {
		d.progressMu.Lock()
		ch := d.progress
		d.progressMu.Unlock()

		if d.applied.Load()+d.dropped.Load() >= target {
			return nil
		}

		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-ch:
		}
	}
}

// Close stops accepting commands. Hosts drain what is already queued and then
// return ErrClosed from HandleCommands.
func (d *Dispatcher) Close() {
	d.queue.close()
	d.logger.Debug("dispatcher closed", "pending", d.queue.len())
}

// Closed reports whether Close has been called.
func (d *Dispatcher) Closed() bool {
	return d.queue.isClosed()
}

func (d *Dispatcher) markHandled(applied bool) {
	if applied {
		d.applied.Inc()
	} else {
		d.dropped.Inc()
	}

	d.progressMu.Lock()
	close(d.progress)
	d.progress = make(chan struct{})
	d.progressMu.Unlock()
}

// Option configures a Navigator.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger routes navigator logs to logger instead of the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Navigator is the typed dispatcher callers use to request navigation over
// routes of type T. It is created once per navigation scope and outlives the
// hosts that subscribe to it.
type Navigator[T Route] struct {
	*Dispatcher

	subscribeMu sync.Mutex // serializes host hand-over

	mu      sync.Mutex
	current *session[T]

	everSubscribed *atomic.Bool
}

type session[T Route] struct {
	id     uuid.UUID
	host   Host[T]
	cancel context.CancelCauseFunc
	done   chan struct{}
}

// New creates a Navigator.
func New[T Route](opts ...Option) *Navigator[T] {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		if constants.IsDebug() {
			internal.SetInternalLogLevel(slog.LevelDebug)
		}
		cfg.logger = internal.GetInternalLogger()
	}

	return &Navigator[T]{
		Dispatcher:     newDispatcher(cfg.logger),
		everSubscribed: atomic.NewBool(false),
	}
}

// Navigate emits NavigateToRoute for route. Option builders, if any, are
// evaluated before emission in the order given.
func (n *Navigator[T]) Navigate(route T, build ...func(*OptionsBuilder[T])) {
	var opts *Options[T]
	if len(build) > 0 {
		opts = BuildOptions(func(b *OptionsBuilder[T]) {
			for _, fn := range build {
				if fn != nil {
					fn(b)
				}
			}
		})
	}
	n.Emit(NavigateToRoute[T]{Route: route, Options: opts})
}

// NavigateAndClearBackStack lands on route with every other entry removed.
func (n *Navigator[T]) NavigateAndClearBackStack(route T) {
	n.Navigate(route, func(b *OptionsBuilder[T]) {
		b.PopUpToRoot()
	})
}

// PopUpTo emits PopUpToRoute.
func (n *Navigator[T]) PopUpTo(route T, inclusive bool) {
	n.Emit(PopUpToRoute[T]{Route: route, Inclusive: inclusive})
}

// NavigateBackWithResult hands result to the previous entry under key and pops
// the current one.
func (n *Navigator[T]) NavigateBackWithResult(key string, result any) {
	n.Emit(NavigateUpWithResult[T]{Key: key, Result: result})
}

// NavigateBackWithResultTo hands result to the entry for route under key and
// pops everything above it.
func (n *Navigator[T]) NavigateBackWithResultTo(key string, result any, route T) {
	n.Emit(NavigateUpWithResult[T]{Key: key, Result: result, Route: route, HasRoute: true})
}

// ActiveHost returns the host currently consuming commands. It panics with
// ErrNoHostSubscribed if no host has ever subscribed, which indicates the UI
// layer was not wired to call HandleCommands.
func (n *Navigator[T]) ActiveHost() (Host[T], bool) {
	if !n.everSubscribed.Load() {
		panic(ErrNoHostSubscribed)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil, false
	}
	return n.current.host, true
}
