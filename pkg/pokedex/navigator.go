package pokedex

import (
	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/backstack"
)

// Navigator is the pokedex app's navigator.
type Navigator = navigator.Navigator[Screen]

// NewNavigator creates the app-scoped navigator.
func NewNavigator(opts ...navigator.Option) *Navigator {
	return navigator.New[Screen](opts...)
}

// NewController creates an in-memory host starting on Home.
func NewController() *backstack.Controller[Screen] {
	return backstack.NewController[Screen](Home{})
}
