// Package backstack provides an in-memory navigation host for the navigator
// package.
//
// A Controller owns a Stack of entries. Each Entry holds the route it was
// pushed with and a SavedState result slot that later screens write into when
// they navigate back with a result. Routes are compared by path.
//
// # Basic Usage
//
//	nav := navigator.New[Screen]()
//	host := backstack.NewController[Screen](Home{})
//
//	host.OnTransition(func(s backstack.Snapshot[Screen]) {
//	    render(s.Top())
//	})
//
//	go nav.HandleCommands(ctx, host)
//
//	nav.Navigate(Picker{})
//	// ... the picker screen finishes:
//	nav.NavigateBackWithResult("color", "teal")
//
//	// Home is on top again and reads its result once.
//	entry, _ := host.Current()
//	color, ok := backstack.ConsumeResult[string](entry.State, "color")
//
// # Root Behaviour
//
// Pop never removes the last entry, matching a UI "up" action on the start
// destination. PopTo with inclusive set may empty the stack; a later Push
// starts a new root.
package backstack
