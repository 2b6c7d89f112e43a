package backstack

import (
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
)

// Op names the stack operation that produced a Snapshot.
type Op string

const (
	OpPush      Op = "push"
	OpSingleTop Op = "single_top"
	OpPop       Op = "pop"
	OpPopTo     Op = "pop_to"
)

// Snapshot is the state of the back stack after a transition.
type Snapshot[T navigator.Route] struct {
	Op     Op
	Routes []T // bottom to top
}

// Paths returns the route paths bottom to top.
func (s Snapshot[T]) Paths() []string {
	paths := make([]string, len(s.Routes))
	for i, r := range s.Routes {
		paths[i] = r.Path()
	}
	return paths
}

// Top returns the route on top of the stack.
func (s Snapshot[T]) Top() (T, bool) {
	if len(s.Routes) == 0 {
		var zero T
		return zero, false
	}
	return s.Routes[len(s.Routes)-1], true
}

// TransitionFunc is called after each change to the back stack.
// It must not block; it runs on the goroutine applying commands.
type TransitionFunc[T navigator.Route] func(snapshot Snapshot[T])

// Controller is an in-memory navigation host. It owns a Stack, applies
// navigation options the way a UI navigation controller does, and reports every
// transition to registered listeners. Safe for concurrent use.
type Controller[T navigator.Route] struct {
	mu        sync.Mutex
	stack     *Stack[T]
	listeners []TransitionFunc[T]
	logger    *slog.Logger
}

var _ navigator.Host[navigator.Route] = (*Controller[navigator.Route])(nil)

// NewController creates a Controller whose stack holds initial, bottom to top.
func NewController[T navigator.Route](initial ...T) *Controller[T] {
	c := &Controller[T]{
		stack:  NewStack[T](),
		logger: internal.GetInternalLogger(),
	}
	for _, r := range initial {
		c.stack.Push(r)
	}
	return c
}

// WithLogger replaces the controller's logger.
func (c *Controller[T]) WithLogger(logger *slog.Logger) *Controller[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
	return c
}

// OnTransition registers fn to run after every stack change.
func (c *Controller[T]) OnTransition(fn TransitionFunc[T]) *Controller[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
	return c
}

// Push lands on route. With options, the stack is first cleared (PopUpToRoot)
// or truncated to the pop-up-to route; an absent pop-up-to route is ignored.
// With LaunchSingleTop, a route already on top is not pushed again.
func (c *Controller[T]) Push(route T, opts *navigator.Options[T]) {
	c.mu.Lock()

	if opts != nil {
		if opts.PopsToRoot() {
			c.stack.Clear()
		} else if target, ok := opts.PopUpToRoute(); ok {
			if i := c.stack.IndexOf(target); i < 0 {
				c.logger.Warn("pop-up-to route not in back stack, navigating without popping",
					"route", target.Path())
			} else if opts.Inclusive() {
				c.stack.TruncateAt(i)
			} else {
				c.stack.TruncateAt(i + 1)
			}
		}

		if opts.SingleTop() {
			if top := c.stack.Peek(); top != nil && top.Route.Path() == route.Path() {
				top.Route = route
				c.unlockAndNotify(OpSingleTop)
				return
			}
		}
	}

	c.stack.Push(route)
	c.unlockAndNotify(OpPush)
}

// Pop removes the top entry. The root entry is never popped.
func (c *Controller[T]) Pop() bool {
	c.mu.Lock()
	if c.stack.Len() <= 1 {
		c.mu.Unlock()
		return false
	}
	c.stack.Pop()
	c.unlockAndNotify(OpPop)
	return true
}

// PopTo removes entries above the topmost entry for route, and that entry too
// when inclusive. An inclusive pop to the root leaves the stack empty.
func (c *Controller[T]) PopTo(route T, inclusive bool) bool {
	c.mu.Lock()
	i := c.stack.IndexOf(route)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	if inclusive {
		c.stack.TruncateAt(i)
	} else {
		c.stack.TruncateAt(i + 1)
	}
	c.unlockAndNotify(OpPopTo)
	return true
}

// StackEntry returns the result slot of the topmost entry for route.
func (c *Controller[T]) StackEntry(route T) (navigator.ResultSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.stack.IndexOf(route)
	if i < 0 {
		return nil, false
	}
	return c.stack.entries[i].State, true
}

// PreviousStackEntry returns the result slot of the entry below the top.
func (c *Controller[T]) PreviousStackEntry() (navigator.ResultSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.stack.Previous()
	if prev == nil {
		return nil, false
	}
	return prev.State, true
}

// Current returns the top entry.
func (c *Controller[T]) Current() (*Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	top := c.stack.Peek()
	return top, top != nil
}

// Entry returns the topmost entry for route.
func (c *Controller[T]) Entry(route T) (*Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.stack.IndexOf(route)
	if i < 0 {
		return nil, false
	}
	return c.stack.entries[i], true
}

// Len returns the number of entries in the stack.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.Len()
}

// Snapshot returns the current routes, bottom to top.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{Routes: c.stack.Routes()}
}

// unlockAndNotify must be called with mu held. Listeners run after the lock
// is released so they may read the controller.
func (c *Controller[T]) unlockAndNotify(op Op) {
	snap := Snapshot[T]{Op: op, Routes: c.stack.Routes()}
	listeners := make([]TransitionFunc[T], len(c.listeners))
	copy(listeners, c.listeners)
	logger := c.logger
	c.mu.Unlock()

	logger.Debug("back stack changed", "op", string(op), "depth", len(snap.Routes))
	for _, fn := range listeners {
		fn(snap)
	}
}
