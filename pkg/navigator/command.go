package navigator

import "fmt"

// Command is an immutable navigation intent. The set of commands is closed:
// NavigateUp, NavigateToRoute, NavigateUpWithResult and PopUpToRoute.
type Command interface {
	fmt.Stringer
	command()
}

// NavigateUp pops the top of the back stack.
type NavigateUp struct{}

func (NavigateUp) command() {}

func (NavigateUp) String() string { return "navigate_up" }

// NavigateToRoute pushes Route, applying Options first when non-nil.
type NavigateToRoute[T Route] struct {
	Route   T
	Options *Options[T]
}

func (NavigateToRoute[T]) command() {}

func (c NavigateToRoute[T]) String() string {
	if c.Options != nil {
		return fmt.Sprintf("navigate %s %s", c.Route.Path(), c.Options)
	}
	return "navigate " + c.Route.Path()
}

// NavigateUpWithResult stores Result under Key in the receiving entry's result
// slot, then pops back to it. The receiving entry is Route when HasRoute is set,
// otherwise the entry immediately below the top.
type NavigateUpWithResult[T Route] struct {
	Key      string
	Result   any
	Route    T
	HasRoute bool
}

func (NavigateUpWithResult[T]) command() {}

func (c NavigateUpWithResult[T]) String() string {
	if c.HasRoute {
		return fmt.Sprintf("navigate_up_with_result %s -> %s", c.Key, c.Route.Path())
	}
	return "navigate_up_with_result " + c.Key
}

// PopUpToRoute pops entries above Route, and Route itself when Inclusive.
type PopUpToRoute[T Route] struct {
	Route     T
	Inclusive bool
}

func (PopUpToRoute[T]) command() {}

func (c PopUpToRoute[T]) String() string {
	return fmt.Sprintf("pop_up_to %s inclusive=%t", c.Route.Path(), c.Inclusive)
}
