// Package testutil provides shared test helpers for deterministic rolling.
package testutil

import "fmt"

// Script is a dice.Source that replays a fixed sequence of die face values.
// Each call to Intn(n) consumes the next scripted value v and returns v-1,
// so a script of face values maps directly onto expected roll results.
//
// Precondition per call: the next scripted value must be in [1, n].
// Panics when the script is exhausted or a value is out of range, so a test
// that consumes the wrong number of draws fails loudly.
type Script struct {
	values []int
	next   int
}

// NewScript returns a Script replaying the given die face values in order.
func NewScript(values ...int) *Script {
	return &Script{values: values}
}

// Intn consumes the next scripted face value and returns it zero-based.
func (s *Script) Intn(n int) int {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("testutil: script exhausted after %d draws (Intn(%d) requested)", len(s.values), n))
	}
	v := s.values[s.next]
	s.next++
	if v < 1 || v > n {
		panic(fmt.Sprintf("testutil: scripted value %d out of range for Intn(%d)", v, n))
	}
	return v - 1
}

// Remaining reports how many scripted values have not been consumed yet.
func (s *Script) Remaining() int {
	return len(s.values) - s.next
}

// Fixed is a dice.Source that always returns the same face value, clamped to
// the requested range. Useful where the draw count is irrelevant.
type Fixed struct {
	// Value is the face value to return from every draw.
	Value int
}

// Intn returns Value-1 clamped into [0, n).
func (f Fixed) Intn(n int) int {
	v := f.Value
	if v > n {
		v = n
	}
	if v < 1 {
		v = 1
	}
	return v - 1
}
