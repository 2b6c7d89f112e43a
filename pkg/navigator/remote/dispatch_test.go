package remote

import (
	"testing"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/stretchr/testify/assert"
)

type page string

func (p page) Path() string { return string(p) }

func parsePage(path string) (page, error) { return page(path), nil }

func TestDispatchWithoutNavigatorPanics(t *testing.T) {
	s := NewServer[page](nil, parsePage)

	assert.PanicsWithValue(t, navigator.ErrNoNavigatorProvided, func() {
		_ = s.dispatch(Request{Op: OpUp})
	})
	assert.ErrorIs(t, s.dispatch(Request{Op: OpNavigate}), ErrMissingRoute)
	assert.ErrorIs(t, s.dispatch(Request{Op: "jump"}), ErrUnknownOp)
}

func TestDispatchBackWithResultTo(t *testing.T) {
	nav := navigator.New[page]()
	s := NewServer(navigator.Provide(nav), parsePage)

	err := s.dispatch(Request{Op: OpBackWithResult, Key: "k", Result: []byte(`{"a":1}`), Route: "list"})
	assert.NoError(t, err)
	assert.Equal(t, 1, nav.Pending())
	assert.ErrorIs(t, s.dispatch(Request{Op: OpBackWithResult}), ErrMissingKey)
}

func TestDispatchRejectsUndecodableResult(t *testing.T) {
	nav := navigator.New[page]()
	s := NewServer(navigator.Provide(nav), parsePage)

	err := s.dispatch(Request{Op: OpBackWithResult, Key: "k", Result: []byte(`{`)})
	assert.ErrorContains(t, err, "decode result")
	assert.Zero(t, nav.Pending())
}
