package navigator

import "github.com/BrandonKowalski/navigator/pkg/navigator/bundle"

// Route identifies a navigable destination.
//
// Path returns the URL-safe route string. Two routes with equal paths are the
// same destination; hosts compare routes by path, never by identity.
type Route interface {
	Path() string
}

// SamePath reports whether two routes name the same destination.
func SamePath[T Route](a, b T) bool {
	return a.Path() == b.Path()
}

// ResultSlot is the keyed store a back-stack entry exposes for results handed
// back from later screens.
type ResultSlot interface {
	SetResult(key string, value any)
}

// Host is the live navigation controller that owns the back stack.
// The interpreter drives it from a single goroutine at a time.
type Host[T Route] interface {
	// Push lands on route, applying opts first when non-nil.
	Push(route T, opts *Options[T])
	// Pop removes the top entry. Returns false when only the root entry remains.
	Pop() bool
	// PopTo removes entries above route, and route itself when inclusive.
	// Returns false, leaving the stack unchanged, when route is not in the stack.
	PopTo(route T, inclusive bool) bool
	// StackEntry returns the topmost entry for route.
	StackEntry(route T) (ResultSlot, bool)
	// PreviousStackEntry returns the entry immediately below the top.
	PreviousStackEntry() (ResultSlot, bool)
}

// NavType converts a route payload to and from its URL-safe string form and a
// bundle.Bundle transfer container.
type NavType[V any] interface {
	SerializeAsValue(value V) string
	ParseValue(value string) (V, error)
	Put(b *bundle.Bundle, key string, value V)
	Get(b *bundle.Bundle, key string) (V, error)
}
