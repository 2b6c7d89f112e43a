package backstack

import (
	"testing"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(fn func(b *navigator.OptionsBuilder[route])) *navigator.Options[route] {
	return navigator.BuildOptions(fn)
}

func TestControllerPush(t *testing.T) {
	tests := []struct {
		name    string
		initial []route
		push    route
		opts    *navigator.Options[route]
		want    []string
		op      Op
	}{
		{
			name: "plain push onto empty",
			push: "a", want: []string{"a"}, op: OpPush,
		},
		{
			name:    "plain push",
			initial: []route{"a"}, push: "b",
			want: []string{"a", "b"}, op: OpPush,
		},
		{
			name:    "pop to root clears",
			initial: []route{"a", "b", "c"}, push: "d",
			opts: opts(func(b *navigator.OptionsBuilder[route]) { b.PopUpToRoot() }),
			want: []string{"d"}, op: OpPush,
		},
		{
			name:    "pop up to exclusive",
			initial: []route{"a", "b", "c"}, push: "d",
			opts: opts(func(b *navigator.OptionsBuilder[route]) { b.PopUpTo("a", false) }),
			want: []string{"a", "d"}, op: OpPush,
		},
		{
			name:    "pop up to inclusive",
			initial: []route{"a", "b", "c"}, push: "d",
			opts: opts(func(b *navigator.OptionsBuilder[route]) { b.PopUpTo("b", true) }),
			want: []string{"a", "d"}, op: OpPush,
		},
		{
			name:    "pop up to absent route still pushes",
			initial: []route{"a", "b"}, push: "c",
			opts: opts(func(b *navigator.OptionsBuilder[route]) { b.PopUpTo("z", true) }),
			want: []string{"a", "b", "c"}, op: OpPush,
		},
		{
			name:    "single top on same route",
			initial: []route{"a", "b"}, push: "b",
			opts: opts(func(b *navigator.OptionsBuilder[route]) { b.LaunchSingleTop() }),
			want: []string{"a", "b"}, op: OpSingleTop,
		},
		{
			name:    "single top on different route",
			initial: []route{"a", "b"}, push: "c",
			opts: opts(func(b *navigator.OptionsBuilder[route]) { b.LaunchSingleTop() }),
			want: []string{"a", "b", "c"}, op: OpPush,
		},
		{
			name:    "duplicate without single top",
			initial: []route{"a", "b"}, push: "b",
			want: []string{"a", "b", "b"}, op: OpPush,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Snapshot[route]
			c := NewController(tt.initial...).OnTransition(func(s Snapshot[route]) {
				got = append(got, s)
			})

			c.Push(tt.push, tt.opts)

			assert.Equal(t, tt.want, c.Snapshot().Paths())
			require.Len(t, got, 1)
			assert.Equal(t, tt.op, got[0].Op)
			assert.Equal(t, tt.want, got[0].Paths())
		})
	}
}

func TestControllerPopKeepsRoot(t *testing.T) {
	c := NewController[route]("a", "b")

	assert.True(t, c.Pop())
	assert.False(t, c.Pop())
	assert.Equal(t, 1, c.Len())

	empty := NewController[route]()
	assert.False(t, empty.Pop())
}

func TestControllerPopTo(t *testing.T) {
	c := NewController[route]("a", "b", "c")

	assert.False(t, c.PopTo("z", false))
	assert.Equal(t, []string{"a", "b", "c"}, c.Snapshot().Paths())

	assert.True(t, c.PopTo("b", false))
	assert.Equal(t, []string{"a", "b"}, c.Snapshot().Paths())

	assert.True(t, c.PopTo("a", true))
	assert.Empty(t, c.Snapshot().Paths())
}

func TestControllerStackEntries(t *testing.T) {
	c := NewController[route]("a", "b", "c")

	slot, ok := c.PreviousStackEntry()
	require.True(t, ok)
	slot.SetResult("k", 1)

	entry, ok := c.Entry("b")
	require.True(t, ok)
	v, ok := Result[int](entry.State, "k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	slot, ok = c.StackEntry("a")
	require.True(t, ok)
	slot.SetResult("k", 2)
	entry, _ = c.Entry("a")
	assert.True(t, entry.State.Contains("k"))

	_, ok = c.StackEntry("z")
	assert.False(t, ok)

	top, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, route("c"), top.Route)

	single := NewController[route]("a")
	_, ok = single.PreviousStackEntry()
	assert.False(t, ok)
	_, ok = NewController[route]().Current()
	assert.False(t, ok)
}

func TestListenerMayReadController(t *testing.T) {
	c := NewController[route]("a")
	var depth int
	c.OnTransition(func(Snapshot[route]) {
		depth = c.Len()
	})

	c.Push("b", nil)
	assert.Equal(t, 2, depth)
}

func TestSnapshotTop(t *testing.T) {
	top, ok := Snapshot[route]{Routes: []route{"a", "b"}}.Top()
	assert.True(t, ok)
	assert.Equal(t, route("b"), top)

	_, ok = Snapshot[route]{}.Top()
	assert.False(t, ok)
}
