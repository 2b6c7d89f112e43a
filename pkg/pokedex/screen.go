// Package pokedex defines the pokedex app's routes: the Home list and the
// Details page for one pokemon.
//
// A Screen's Path is its deep-link form. ParseScreen reverses it, and
// WriteScreen/ReadScreen move a screen through a bundle.Bundle.
package pokedex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/bundle"
	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
)

// ErrMalformedRoute is wrapped by every deep-link decode failure.
var ErrMalformedRoute = errors.New("pokedex: malformed route")

// Screen kinds, the first path segment of every route.
const (
	KindHome    = "home"
	KindDetails = "details"
)

// Screen is a pokedex destination. The set is closed: Home and Details.
type Screen interface {
	navigator.Route
	Kind() string
	screen()
}

// Home is the pokemon list.
type Home struct{}

func (Home) Kind() string { return KindHome }
func (Home) Path() string { return KindHome }
func (Home) screen() {}

// Details shows one pokemon.
type Details struct {
	Pokemon model.PokemonInfo
}

func (Details) Kind() string { return KindDetails }

// Path returns "details/" followed by the percent-encoded pokemon JSON.
func (d Details) Path() string {
	return KindDetails + "/" + PokemonType.SerializeAsValue(d.Pokemon)
}

func (Details) screen() {}

// ParseScreen decodes a path produced by Screen.Path. A leading slash is
// ignored. Failures wrap ErrMalformedRoute.
func ParseScreen(path string) (Screen, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimPrefix(path, "/"), "/")

	switch kind {
	case KindHome:
		if hasArg && arg != "" {
			return nil, fmt.Errorf("%w: %s takes no argument", ErrMalformedRoute, KindHome)
		}
		return Home{}, nil

	case KindDetails:
		if arg == "" {
			return nil, fmt.Errorf("%w: %s requires a pokemon argument", ErrMalformedRoute, KindDetails)
		}
		p, err := PokemonType.ParseValue(arg)
		if err != nil {
			return nil, err
		}
		return Details{Pokemon: p}, nil

	default:
		return nil, fmt.Errorf("%w: unknown screen %q", ErrMalformedRoute, kind)
	}
}

const (
	keyKind    = "kind"
	keyPokemon = "pokemon"
)

// WriteScreen stores s in b under key.
func WriteScreen(b *bundle.Bundle, key string, s Screen) {
	nested := bundle.New()
	nested.PutString(keyKind, s.Kind())
	if d, ok := s.(Details); ok {
		PokemonType.Put(nested, keyPokemon, d.Pokemon)
	}
	b.PutBundle(key, nested)
}

// ReadScreen reads a screen written by WriteScreen.
func ReadScreen(b *bundle.Bundle, key string) (Screen, error) {
	nested, ok := b.GetBundle(key)
	if !ok {
		return nil, fmt.Errorf("pokedex: no screen under %q", key)
	}
	kind, _ := nested.GetString(keyKind)

	switch kind {
	case KindHome:
		return Home{}, nil
	case KindDetails:
		p, err := PokemonType.Get(nested, keyPokemon)
		if err != nil {
			return nil, fmt.Errorf("pokedex: read %s screen: %w", KindDetails, err)
		}
		return Details{Pokemon: p}, nil
	default:
		return nil, fmt.Errorf("pokedex: unknown screen kind %q under %q", kind, key)
	}
}

// ScreensEqual reports whether a and b are the same destination with equal
// payloads.
func ScreensEqual(a, b Screen) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	da, ok := a.(Details)
	if !ok {
		return true
	}
	db, _ := b.(Details)
	return da.Pokemon.Equal(db.Pokemon)
}
