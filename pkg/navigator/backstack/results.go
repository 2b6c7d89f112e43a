package backstack

// Result returns the value stored under key as an R.
// Reports false if the key is missing or holds a value of another type.
func Result[R any](state *SavedState, key string) (R, bool) {
	var zero R
	if state == nil {
		return zero, false
	}
	v, ok := state.Get(key)
	if !ok {
		return zero, false
	}
	r, ok := v.(R)
	return r, ok
}

// ConsumeResult is Result followed by removal of key, so a result is handled
// once even if the screen is shown again.
func ConsumeResult[R any](state *SavedState, key string) (R, bool) {
	r, ok := Result[R](state, key)
	if ok {
		state.Remove(key)
	}
	return r, ok
}
