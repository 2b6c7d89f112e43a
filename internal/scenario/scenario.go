// Package scenario loads scripted navigation scenarios and plays them against
// a pokedex navigator.
//
// A scenario is a list of steps in YAML or TOML. Each step emits one
// navigation command and may state the back stack (and the results held by
// the top entry) expected once the command has been applied:
//
//	name: pick a starter
//	steps:
//	  - op: navigate
//	    route: details:4
//	    expect: [home, details:4]
//	  - op: back_with_result
//	    key: picked
//	    result: 4
//	    expect: [home]
//	    expect_result: {picked: 4}
//
// Routes are written as labels: "home" or "details:<pokedex number>".
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/pokedex"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpNavigate       = "navigate"
	OpNavigateClear  = "navigate_clear"
	OpUp             = "up"
	OpPopUpTo        = "pop_up_to"
	OpBackWithResult = "back_with_result"
)

var (
	ErrUnknownFormat     = errors.New("scenario: unknown file format")
	ErrInvalidStep       = errors.New("scenario: invalid step")
	ErrUnknownPokemon    = errors.New("scenario: unknown pokemon")
	ErrExpectationFailed = errors.New("scenario: expectation failed")
)

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: .yaml, .yml, .toml)", ErrUnknownFormat, filepath.Ext(path))
	}
}

type Scenario struct {
	Name  string `yaml:"name" toml:"name"`
	Steps []Step `yaml:"steps" toml:"steps"`
}

type Step struct {
	Op        string `yaml:"op" toml:"op"`
	Route     string `yaml:"route,omitempty" toml:"route,omitempty"`
	Inclusive bool   `yaml:"inclusive,omitempty" toml:"inclusive,omitempty"`

	// navigate only
	SingleTop bool   `yaml:"single_top,omitempty" toml:"single_top,omitempty"`
	PopUpTo   string `yaml:"pop_up_to,omitempty" toml:"pop_up_to,omitempty"`

	// back_with_result only; Route names the receiving entry when set
	Key    string `yaml:"key,omitempty" toml:"key,omitempty"`
	Result any    `yaml:"result,omitempty" toml:"result,omitempty"`

	Expect       []string       `yaml:"expect,omitempty" toml:"expect,omitempty"`
	ExpectResult map[string]any `yaml:"expect_result,omitempty" toml:"expect_result,omitempty"`
}

// Load reads and decodes the scenario file at path.
func Load(path string) (*Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes a scenario. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Scenario, error) {
	var sc Scenario

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("scenario: decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &sc)
		if err != nil {
			return nil, fmt.Errorf("scenario: decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("scenario: decode toml: unknown field %s", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &sc, nil
}

// Label returns the scenario form of a screen: "home" or "details:<id>".
func Label(s pokedex.Screen) string {
	if d, ok := s.(pokedex.Details); ok {
		return fmt.Sprintf("%s:%d", pokedex.KindDetails, d.Pokemon.ID)
	}
	return s.Kind()
}

// Labels returns the label of every screen in order.
func Labels(screens []pokedex.Screen) []string {
	out := make([]string, len(screens))
	for i, s := range screens {
		out[i] = Label(s)
	}
	return out
}

// ResolveRoute turns a label into a screen, looking details up in catalog.
func ResolveRoute(catalog *pokedex.Catalog, label string) (pokedex.Screen, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(label), ":")

	switch kind {
	case pokedex.KindHome:
		if arg != "" {
			return nil, fmt.Errorf("%w: %q: home takes no argument", ErrInvalidStep, label)
		}
		return pokedex.Home{}, nil

	case pokedex.KindDetails:
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: pokedex number required", ErrInvalidStep, label)
		}
		p, ok := catalog.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: #%d", ErrUnknownPokemon, id)
		}
		return pokedex.Details{Pokemon: p}, nil

	default:
		return nil, fmt.Errorf("%w: unknown route %q", ErrInvalidStep, label)
	}
}

// Command converts the step into the navigation command it emits.
func (s Step) Command(catalog *pokedex.Catalog) (navigator.Command, error) {
	switch s.Op {
	case OpNavigate:
		route, err := s.route(catalog)
		if err != nil {
			return nil, err
		}
		var popUpTo pokedex.Screen
		if s.PopUpTo != "" {
			if popUpTo, err = ResolveRoute(catalog, s.PopUpTo); err != nil {
				return nil, err
			}
		}
		opts := navigator.BuildOptions(func(b *navigator.OptionsBuilder[pokedex.Screen]) {
			if popUpTo != nil {
				b.PopUpTo(popUpTo, s.Inclusive)
			}
			if s.SingleTop {
				b.LaunchSingleTop()
			}
		})
		if popUpTo == nil && !s.SingleTop {
			opts = nil
		}
		return navigator.NavigateToRoute[pokedex.Screen]{Route: route, Options: opts}, nil

	case OpNavigateClear:
		route, err := s.route(catalog)
		if err != nil {
			return nil, err
		}
		opts := navigator.BuildOptions(func(b *navigator.OptionsBuilder[pokedex.Screen]) {
			b.PopUpToRoot()
		})
		return navigator.NavigateToRoute[pokedex.Screen]{Route: route, Options: opts}, nil

	case OpUp:
		return navigator.NavigateUp{}, nil

	case OpPopUpTo:
		route, err := s.route(catalog)
		if err != nil {
			return nil, err
		}
		return navigator.PopUpToRoute[pokedex.Screen]{Route: route, Inclusive: s.Inclusive}, nil

	case OpBackWithResult:
		if s.Key == "" {
			return nil, fmt.Errorf("%w: %s requires a key", ErrInvalidStep, s.Op)
		}
		cmd := navigator.NavigateUpWithResult[pokedex.Screen]{Key: s.Key, Result: s.Result}
		if s.Route != "" {
			route, err := ResolveRoute(catalog, s.Route)
			if err != nil {
				return nil, err
			}
			cmd.Route, cmd.HasRoute = route, true
		}
		return cmd, nil

	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidStep, s.Op)
	}
}

func (s Step) route(catalog *pokedex.Catalog) (pokedex.Screen, error) {
	if s.Route == "" {
		return nil, fmt.Errorf("%w: %s requires a route", ErrInvalidStep, s.Op)
	}
	return ResolveRoute(catalog, s.Route)
}

// Compile converts every step, reporting the first invalid one.
func (sc *Scenario) Compile(catalog *pokedex.Catalog) ([]navigator.Command, error) {
	cmds := make([]navigator.Command, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		cmd, err := step.Command(catalog)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
