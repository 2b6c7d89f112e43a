package backstack_test

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/backstack"
)

// Screen identifiers for a small game library.
type Screen string

func (s Screen) Path() string { return string(s) }

const (
	ScreenGameList   Screen = "games"
	ScreenGameDetail Screen = "games/detail"
	ScreenSettings   Screen = "settings"
)

// Example demonstrates a navigator driving a Controller: list -> detail ->
// back with a result -> settings with the stack cleared.
func Example() {
	nav := navigator.New[Screen]()
	ctrl := backstack.NewController(ScreenGameList).
		OnTransition(func(s backstack.Snapshot[Screen]) {
			fmt.Println(s.Op, s.Paths())
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- nav.HandleCommands(ctx, ctrl) }()

	nav.Navigate(ScreenGameDetail)
	nav.NavigateBackWithResult("played", "Tetris")
	nav.Flush(ctx)

	list, _ := ctrl.Current()
	if game, ok := backstack.ConsumeResult[string](list.State, "played"); ok {
		fmt.Println("List: last played", game)
	}

	nav.NavigateAndClearBackStack(ScreenSettings)
	nav.Flush(ctx)

	cancel()
	<-done

	// Output:
	// push [games games/detail]
	// pop [games]
	// List: last played Tetris
	// push [settings]
}

// Example_popUpTo shows inclusive and exclusive truncation.
func Example_popUpTo() {
	ctrl := backstack.NewController[Screen](ScreenGameList, ScreenGameDetail, ScreenSettings)

	ctrl.PopTo(ScreenGameDetail, false)
	fmt.Println(ctrl.Snapshot().Paths())

	ctrl.PopTo(ScreenGameList, true)
	fmt.Println(ctrl.Snapshot().Paths())

	// Output:
	// [games games/detail]
	// []
}
