package navigator

import "context"

// ComposeNavigator is the navigation surface handed to screens and view models.
// *Navigator implements it. Wire one at the composition root and pass it down
// explicitly; use Provide so that missing wiring fails on first use.
type ComposeNavigator[T Route] interface {
	NavigateUp()
	Navigate(route T, build ...func(*OptionsBuilder[T]))
	NavigateAndClearBackStack(route T)
	PopUpTo(route T, inclusive bool)
	NavigateBackWithResult(key string, result any)
	NavigateBackWithResultTo(key string, result any, route T)
	HandleCommands(ctx context.Context, host Host[T]) error
	ActiveHost() (Host[T], bool)
}

var _ ComposeNavigator[Route] = (*Navigator[Route])(nil)

// Provide returns n, or the Unprovided guard when n is nil.
func Provide[T Route](n *Navigator[T]) ComposeNavigator[T] {
	if n == nil {
		return Unprovided[T]()
	}
	return n
}

// Unprovided returns a ComposeNavigator whose every method panics with
// ErrNoNavigatorProvided.
func Unprovided[T Route]() ComposeNavigator[T] {
	return unprovided[T]{}
}

type unprovided[T Route] struct{}

func (unprovided[T]) NavigateUp() { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) Navigate(T, ...func(*OptionsBuilder[T])) { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) NavigateAndClearBackStack(T) { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) PopUpTo(T, bool) { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) NavigateBackWithResult(string, any) { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) NavigateBackWithResultTo(string, any, T) { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) HandleCommands(context.Context, Host[T]) error { panic(ErrNoNavigatorProvided) }
func (unprovided[T]) ActiveHost() (Host[T], bool) { panic(ErrNoNavigatorProvided) }
