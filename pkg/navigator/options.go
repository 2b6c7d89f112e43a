package navigator

import (
	"fmt"
	"strings"
)

// Options configures how a host lands on a route. Options are immutable once
// built; construct them with BuildOptions.
type Options[T Route] struct {
	popUpTo     T
	hasPopUpTo  bool
	popUpToRoot bool
	inclusive   bool
	singleTop   bool
}

// PopUpToRoute returns the route to pop back to before navigating.
func (o *Options[T]) PopUpToRoute() (T, bool) {
	return o.popUpTo, o.hasPopUpTo
}

// PopsToRoot reports whether the entire stack is cleared before navigating.
func (o *Options[T]) PopsToRoot() bool {
	return o.popUpToRoot
}

// Inclusive reports whether the pop-up-to route itself is removed.
func (o *Options[T]) Inclusive() bool {
	return o.inclusive
}

// SingleTop reports whether navigating to the route already on top is a no-op.
func (o *Options[T]) SingleTop() bool {
	return o.singleTop
}

func (o *Options[T]) String() string {
	var parts []string
	switch {
	case o.popUpToRoot:
		parts = append(parts, "pop_up_to=root")
	case o.hasPopUpTo:
		parts = append(parts, fmt.Sprintf("pop_up_to=%s inclusive=%t", o.popUpTo.Path(), o.inclusive))
	}
	if o.singleTop {
		parts = append(parts, "single_top")
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// OptionsBuilder collects options inside a BuildOptions callback.
type OptionsBuilder[T Route] struct {
	opts Options[T]
}

// PopUpTo pops entries above route before navigating, and route itself when
// inclusive. Replaces any earlier PopUpTo or PopUpToRoot.
func (b *OptionsBuilder[T]) PopUpTo(route T, inclusive bool) *OptionsBuilder[T] {
	b.opts.popUpTo = route
	b.opts.hasPopUpTo = true
	b.opts.popUpToRoot = false
	b.opts.inclusive = inclusive
	return b
}

// PopUpToRoot clears the whole back stack before navigating.
func (b *OptionsBuilder[T]) PopUpToRoot() *OptionsBuilder[T] {
	var zero T
	b.opts.popUpTo = zero
	b.opts.hasPopUpTo = false
	b.opts.popUpToRoot = true
	b.opts.inclusive = true
	return b
}

// LaunchSingleTop skips the push when the route is already on top.
func (b *OptionsBuilder[T]) LaunchSingleTop() *OptionsBuilder[T] {
	b.opts.singleTop = true
	return b
}

// BuildOptions evaluates fn eagerly and returns the resulting options.
// A nil fn yields nil options.
func BuildOptions[T Route](fn func(*OptionsBuilder[T])) *Options[T] {
	if fn == nil {
		return nil
	}
	b := &OptionsBuilder[T]{}
	fn(b)
	opts := b.opts
	return &opts
}
