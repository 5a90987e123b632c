// Package oracle implements the d100 yes/no oracle and the fixed d6 narrative
// helper rolls.
package oracle

import (
	"fmt"
	"strings"

	"github.com/hollowvale/sparkroll/internal/dice"
)

// Answer is the oracle's binary verdict.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
)

func (a Answer) String() string {
	if a == AnswerYes {
		return "YES"
	}
	return "NO"
}

// Spec is one likelihood preset: a named threshold triple over a d100 draw.
//
// Invariant: 1 <= Left < Center < Right <= 99.
type Spec struct {
	Name   string
	Left   int // exceptional-yes boundary (inclusive)
	Center int // yes/no pivot
	Right  int // exceptional-no boundary (inclusive)
}

// presets is the fixed likelihood ladder, most to least likely.
var presets = []Spec{
	{Name: "certain", Left: 18, Center: 90, Right: 99},
	{Name: "nearly_certain", Left: 17, Center: 85, Right: 98},
	{Name: "very_likely", Left: 15, Center: 75, Right: 96},
	{Name: "likely", Left: 13, Center: 65, Right: 94},
	{Name: "fifty_fifty", Left: 10, Center: 50, Right: 91},
	{Name: "unlikely", Left: 7, Center: 35, Right: 88},
	{Name: "very_unlikely", Left: 5, Center: 25, Right: 86},
	{Name: "nearly_impossible", Left: 3, Center: 15, Right: 84},
	{Name: "impossible", Left: 2, Center: 10, Right: 83},
}

// Presets returns the likelihood presets in ladder order, most likely first.
func Presets() []Spec {
	out := make([]Spec, len(presets))
	copy(out, presets)
	return out
}

// PresetByName looks up a preset, tolerating case and '-'/'_'/' ' separators.
//
// Postcondition: Returns (spec, true) on a match, or (Spec{}, false).
func PresetByName(name string) (Spec, bool) {
	key := presetKey(name)
	for _, p := range presets {
		if presetKey(p.Name) == key {
			return p, true
		}
	}
	return Spec{}, false
}

func presetKey(name string) string {
	key := strings.ToLower(name)
	for _, sep := range []string{"_", "-", " "} {
		key = strings.ReplaceAll(key, sep, "")
	}
	return key
}

// Verdict is the classified outcome of a single oracle draw.
type Verdict struct {
	Roll        int // the raw d100 draw, 1..100
	Spec        Spec
	Answer      Answer
	Exceptional bool // the draw crossed the outer left/right threshold
	RandomEvent bool // the draw was a double (11, 22, ..., 99)
}

// String renders the verdict for display, e.g.
//
//	"likely d100 → 12: EXCEPTIONAL YES"
func (v Verdict) String() string {
	answer := v.Answer.String()
	if v.Exceptional {
		answer = "EXCEPTIONAL " + answer
	}
	if v.RandomEvent {
		answer += " + RANDOM EVENT"
	}
	return fmt.Sprintf("%s d100 → %d: %s", v.Spec.Name, v.Roll, answer)
}

// Resolve draws one d100 via src and classifies it against spec.
//
// Doubles (tens digit equals ones digit: 11, 22, ..., 99) flag a random event
// regardless of the answer; 100 is not a double. Draws below the center are
// YES, exceptional at or below the left threshold. Draws above the center are
// NO, exceptional at or above the right threshold. The center itself is a
// plain YES.
//
// Precondition: spec must satisfy 1 <= Left < Center < Right <= 99; src must
// be non-nil.
func Resolve(spec Spec, src dice.Source) Verdict {
	roll := src.Intn(100) + 1

	v := Verdict{
		Roll:        roll,
		Spec:        spec,
		RandomEvent: roll < 100 && roll%11 == 0,
	}

	switch {
	case roll < spec.Center:
		v.Answer = AnswerYes
		v.Exceptional = roll <= spec.Left
	case roll > spec.Center:
		v.Answer = AnswerNo
		v.Exceptional = roll >= spec.Right
	default:
		v.Answer = AnswerYes
	}
	return v
}
