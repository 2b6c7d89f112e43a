package navigator

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoNavigatorProvided indicates a navigator was used before one was wired at the
	// composition root. The guard returned by Unprovided panics with this error.
	ErrNoNavigatorProvided = errors.New("navigator: no navigator provided; wire a *navigator.Navigator at the composition root and pass it to every screen that navigates")

	// ErrNoHostSubscribed indicates the active host was read before any host ever
	// called HandleCommands. This is a programmer error and panics.
	ErrNoHostSubscribed = errors.New("navigator: active host read before any host subscribed; call HandleCommands from the UI host first")

	// ErrHostReplaced is the cancellation cause handed to a host whose consumption
	// loop was superseded by a newer host.
	ErrHostReplaced = errors.New("navigator: host replaced by a newer subscriber")

	// ErrClosed is returned by HandleCommands once the navigator is closed and drained.
	ErrClosed = errors.New("navigator: closed")

	// ErrNilHost is returned by HandleCommands when called without a host.
	ErrNilHost = errors.New("navigator: nil host")

	// ErrRouteNotFound indicates a command referenced a route absent from the live stack.
	ErrRouteNotFound = errors.New("route not in back stack")

	// ErrStackRoot indicates a pop was requested while only the root entry remained.
	ErrStackRoot = errors.New("back stack at root")
)

// CommandError describes a command the interpreter dropped. Dropped commands are
// logged, never returned to emitters.
type CommandError struct {
	Op    string // Command that was dropped (e.g., "pop_up_to", "navigate_up")
	Route string // Path of the route involved, empty when none
	Err   error  // Underlying reason
}

func (e *CommandError) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("navigator: %s %q: %v", e.Op, e.Route, e.Err)
	}
	return fmt.Sprintf("navigator: %s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new command error.
func NewCommandError(op, route string, err error) *CommandError {
	return &CommandError{Op: op, Route: route, Err: err}
}

// IsCommandError checks if an error is a dropped-command error.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// IsHostReplaced checks if a consumption loop ended because a newer host subscribed.
func IsHostReplaced(err error) bool {
	return errors.Is(err, ErrHostReplaced)
}
