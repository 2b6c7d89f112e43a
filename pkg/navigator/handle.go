package navigator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// HandleCommands consumes commands and applies them to host until ctx is done,
// a newer host subscribes, or the navigator is closed and drained.
//
// On entry host becomes the active host; any previous host's loop is cancelled
// with ErrHostReplaced and awaited first, so exactly one host is active at a
// time. On every exit path the active host is cleared.
//
// The returned error is the cancellation cause of ctx, ErrHostReplaced, or
// ErrClosed. A ctx that is already done returns its cause without touching
// the active host.
func (n *Navigator[T]) HandleCommands(ctx context.Context, host Host[T]) error {
	if host == nil {
		return ErrNilHost
	}
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}

	s, sctx := n.subscribe(ctx, host)
	defer n.unsubscribe(s)

	for {
		env, err := n.queue.next(sctx)
		if err != nil {
			if errors.Is(err, errQueueClosed) {
				return ErrClosed
			}
			return err
		}
		n.apply(host, env)
	}
}

func (n *Navigator[T]) subscribe(parent context.Context, host Host[T]) (*session[T], context.Context) {
	n.subscribeMu.Lock()
	defer n.subscribeMu.Unlock()

	n.mu.Lock()
	prev := n.current
	n.mu.Unlock()

	if prev != nil {
		prev.cancel(ErrHostReplaced)
		<-prev.done
		n.logger.Debug("previous host replaced", "session", prev.id)
	}

	ctx, cancel := context.WithCancelCause(parent)
	s := &session[T]{
		id:     uuid.New(),
		host:   host,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	n.mu.Lock()
	n.current = s
	n.mu.Unlock()
	n.everSubscribed.Store(true)

	n.logger.Debug("host subscribed", "session", s.id, "pending", n.queue.len())
	return s, ctx
}

func (n *Navigator[T]) unsubscribe(s *session[T]) {
	s.cancel(nil)

	n.mu.Lock()
	if n.current == s {
		n.current = nil
	}
	n.mu.Unlock()

	close(s.done)
	n.logger.Debug("host unsubscribed", "session", s.id)
}

// apply interprets one command against host.
func (n *Navigator[T]) apply(host Host[T], env envelope) {
	err := n.interpret(host, env.cmd)
	if err != nil {
		n.logger.Warn("navigation command dropped",
			"command", env.cmd.String(),
			"command_id", env.id,
			"error", err,
		)
		n.markHandled(false)
		return
	}

	n.logger.Debug("navigation command applied",
		"command", env.cmd.String(),
		"command_id", env.id,
		"latency", time.Since(env.emittedAt),
	)
	n.markHandled(true)
}

func (n *Navigator[T]) interpret(host Host[T], cmd Command) error {
	switch c := cmd.(type) {
	case NavigateToRoute[T]:
		host.Push(c.Route, c.Options)
		return nil

	case NavigateUp:
		if !host.Pop() {
			return NewCommandError("navigate_up", "", ErrStackRoot)
		}
		return nil

	case PopUpToRoute[T]:
		if !host.PopTo(c.Route, c.Inclusive) {
			return NewCommandError("pop_up_to", c.Route.Path(), ErrRouteNotFound)
		}
		return nil

	case NavigateUpWithResult[T]:
		return n.navigateUpWithResult(host, c)

	default:
		return NewCommandError(cmd.String(), "", errors.New("command not supported by this navigator's route type"))
	}
}

func (n *Navigator[T]) navigateUpWithResult(host Host[T], c NavigateUpWithResult[T]) error {
	if c.HasRoute {
		entry, ok := host.StackEntry(c.Route)
		if !ok {
			return NewCommandError("navigate_up_with_result", c.Route.Path(), ErrRouteNotFound)
		}
		entry.SetResult(c.Key, c.Result)
		host.PopTo(c.Route, false)
		return nil
	}

	entry, ok := host.PreviousStackEntry()
	if !ok {
		return NewCommandError("navigate_up_with_result", "", ErrStackRoot)
	}
	entry.SetResult(c.Key, c.Result)
	host.Pop()
	return nil
}
