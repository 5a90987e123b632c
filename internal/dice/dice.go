// Package dice provides the core randomness abstraction, the dice expression
// grammar, and roll-result types shared by every roller in sparkroll.
package dice

import (
	"fmt"
	"strings"
)

// Term is a single signed element of a dice expression: either a dice term
// such as "2d6" or an integer constant such as "3".
//
// Invariant after Parse: Sign is +1 or -1; for dice terms Count >= 1 and
// Sides >= 1; for constant terms Count == 0 and Sides == 0.
type Term struct {
	Sign  int // +1 or -1
	Count int // number of dice; 0 marks a constant term
	Sides int // faces per die; 0 marks a constant term
	Value int // constant value; meaningful only when Count == 0
}

// IsDice reports whether the term rolls dice (as opposed to a flat constant).
func (t Term) IsDice() bool {
	return t.Count > 0
}

// String renders the term without its sign, e.g. "2d6" or "3".
func (t Term) String() string {
	if t.IsDice() {
		return fmt.Sprintf("%dd%d", t.Count, t.Sides)
	}
	return fmt.Sprintf("%d", t.Value)
}

// Expression represents a parsed dice expression ready to be rolled.
//
// Invariant after Parse: len(Terms) >= 1.
type Expression struct {
	Raw   string // original input string
	Terms []Term
}

// TermResult holds the outcome of evaluating one term of an expression.
type TermResult struct {
	Term Term
	Dice []int // individual die values in roll order; nil for constant terms
}

// Subtotal returns the term's signed contribution to the expression total.
func (r TermResult) Subtotal() int {
	if !r.Term.IsDice() {
		return r.Term.Sign * r.Term.Value
	}
	sum := 0
	for _, d := range r.Dice {
		sum += d
	}
	return r.Term.Sign * sum
}

// RollResult holds the full audit trail for a single expression evaluation.
// Terms appear in the same left-to-right order as the input expression.
//
// Postcondition: Total() == sum of Subtotal() over Terms.
type RollResult struct {
	Expression string
	Terms      []TermResult
}

// Total returns the signed sum of all term subtotals.
func (r RollResult) Total() int {
	total := 0
	for _, t := range r.Terms {
		total += t.Subtotal()
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6 + d4 - 1 → +2d6 [3 5] +1d4 [2] -1 = 9"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	var b strings.Builder
	b.WriteString(r.Expression)
	b.WriteString(" →")
	for _, t := range r.Terms {
		sign := "+"
		if t.Term.Sign < 0 {
			sign = "-"
		}
		b.WriteString(" ")
		b.WriteString(sign)
		b.WriteString(t.Term.String())
		if t.Term.IsDice() {
			b.WriteString(fmt.Sprintf(" %v", t.Dice))
		}
	}
	b.WriteString(fmt.Sprintf(" = %d", r.Total()))
	return b.String()
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
