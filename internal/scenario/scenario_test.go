package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/pokedex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pickYAML = `name: pick a starter
steps:
  - op: navigate
    route: details:4
    expect: [home, details:4]
  - op: back_with_result
    key: picked
    result: 4
    expect: [home]
    expect_result: {picked: 4}
`

const pickTOML = `name = "pick a starter"

[[steps]]
op = "navigate"
route = "details:4"
expect = ["home", "details:4"]

[[steps]]
op = "back_with_result"
key = "picked"
result = 4
expect = ["home"]
expect_result = { picked = 4 }
`

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{name: "yaml", data: pickYAML, format: FormatYAML},
		{name: "toml", data: pickTOML, format: FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, "pick a starter", sc.Name)
			require.Len(t, sc.Steps, 2)
			assert.Equal(t, OpNavigate, sc.Steps[0].Op)
			assert.Equal(t, "details:4", sc.Steps[0].Route)
			assert.Equal(t, []string{"home", "details:4"}, sc.Steps[0].Expect)
			assert.Equal(t, "picked", sc.Steps[1].Key)
			assert.EqualValues(t, 4, sc.Steps[1].Result)
			assert.Contains(t, sc.Steps[1].ExpectResult, "picked")
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - op: up\n    rout: home\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte("[[steps]]\nop = \"up\"\nrout = \"home\"\n"), FormatTOML)
	assert.Error(t, err)

	_, err = Parse([]byte("{}"), Format("json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "starter.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[steps]]\nop = \"up\"\n"), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "starter", sc.Name, "name defaults to the file name")

	_, err = Load(filepath.Join(dir, "starter.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.toml": FormatTOML,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("noext")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestResolveRoute(t *testing.T) {
	catalog := pokedex.StarterCatalog()

	s, err := ResolveRoute(catalog, "home")
	require.NoError(t, err)
	assert.Equal(t, pokedex.Home{}, s)

	s, err = ResolveRoute(catalog, "details:7")
	require.NoError(t, err)
	assert.Equal(t, "squirtle", s.(pokedex.Details).Pokemon.Name)
	assert.Equal(t, "details:7", Label(s))

	tests := []struct {
		label string
		err   error
	}{
		{"home:1", ErrInvalidStep},
		{"details", ErrInvalidStep},
		{"details:x", ErrInvalidStep},
		{"details:151", ErrUnknownPokemon},
		{"settings", ErrInvalidStep},
	}
	for _, tt := range tests {
		_, err := ResolveRoute(catalog, tt.label)
		assert.ErrorIs(t, err, tt.err, tt.label)
	}
}

func TestStepCommand(t *testing.T) {
	catalog := pokedex.StarterCatalog()
	charmander, _ := catalog.Lookup(4)

	cmd, err := Step{Op: OpNavigate, Route: "details:4"}.Command(catalog)
	require.NoError(t, err)
	nav := cmd.(navigator.NavigateToRoute[pokedex.Screen])
	assert.Equal(t, pokedex.Details{Pokemon: charmander}, nav.Route)
	assert.Nil(t, nav.Options)

	cmd, err = Step{Op: OpNavigate, Route: "home", PopUpTo: "home", Inclusive: true, SingleTop: true}.Command(catalog)
	require.NoError(t, err)
	opts := cmd.(navigator.NavigateToRoute[pokedex.Screen]).Options
	require.NotNil(t, opts)
	route, ok := opts.PopUpToRoute()
	assert.True(t, ok)
	assert.Equal(t, pokedex.Home{}, route)
	assert.True(t, opts.Inclusive())
	assert.True(t, opts.SingleTop())

	cmd, err = Step{Op: OpNavigateClear, Route: "home"}.Command(catalog)
	require.NoError(t, err)
	assert.True(t, cmd.(navigator.NavigateToRoute[pokedex.Screen]).Options.PopsToRoot())

	cmd, err = Step{Op: OpUp}.Command(catalog)
	require.NoError(t, err)
	assert.Equal(t, navigator.NavigateUp{}, cmd)

	cmd, err = Step{Op: OpPopUpTo, Route: "home", Inclusive: true}.Command(catalog)
	require.NoError(t, err)
	assert.Equal(t, navigator.PopUpToRoute[pokedex.Screen]{Route: pokedex.Home{}, Inclusive: true}, cmd)

	cmd, err = Step{Op: OpBackWithResult, Key: "picked", Result: 4, Route: "home"}.Command(catalog)
	require.NoError(t, err)
	back := cmd.(navigator.NavigateUpWithResult[pokedex.Screen])
	assert.True(t, back.HasRoute)
	assert.Equal(t, 4, back.Result)

	for _, step := range []Step{
		{Op: "fly"},
		{Op: OpNavigate},
		{Op: OpPopUpTo},
		{Op: OpBackWithResult},
		{Op: OpNavigate, Route: "home", PopUpTo: "details:999"},
	} {
		_, err := step.Command(catalog)
		assert.Error(t, err, step.Op)
	}
}

func TestCompileReportsStep(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Op: OpUp}, {Op: OpNavigate}}}
	_, err := sc.Compile(pokedex.StarterCatalog())
	require.ErrorIs(t, err, ErrInvalidStep)
	assert.Contains(t, err.Error(), "step 2")
}
