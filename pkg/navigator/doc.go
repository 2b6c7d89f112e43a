// Package navigator lets application logic request screen transitions without
// holding a reference to the UI's navigation controller.
//
// Callers emit commands on a Navigator; a live UI host subscribes with
// HandleCommands and applies them to its back stack. Commands emitted while no
// host is subscribed are buffered and delivered, in order, to the next host.
//
// # Basic Usage
//
//	// Routes are any type with a URL-safe Path.
//	type Screen interface{ navigator.Route }
//
//	nav := navigator.New[Screen]()
//
//	// UI side: one consumption loop per host lifetime.
//	go nav.HandleCommands(ctx, host)
//
//	// View-model side: fire and forget.
//	nav.Navigate(Details{ID: 7})
//	nav.NavigateBackWithResult("picked", 7)
//	nav.NavigateAndClearBackStack(Home{})
//
// # Hosts
//
// A host implements Host. The backstack package provides an in-memory
// Controller suitable for tests, headless tools and as a reference for UI
// bindings.
//
// Only one host consumes at a time. A host that subscribes while another is
// active takes over: the previous loop is cancelled with ErrHostReplaced and
// the active host reference is cleared before the new host is published.
//
// # Results
//
// NavigateBackWithResult stores a value in the receiving entry's result slot
// before popping. The receiving screen reads it from its entry, for example
// with backstack.ConsumeResult.
//
// # Wiring
//
// Pass the Navigator explicitly to the code that needs it. Provide wraps a
// possibly nil navigator so that a screen rendered without one panics with
// ErrNoNavigatorProvided at first use instead of silently dropping navigation.
package navigator
