package dice

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: result.Terms is in expression order; for every dice term
// len(result.Terms[i].Dice) == expr.Terms[i].Count; result.Total() equals the
// signed sum of all subtotals.
func Roll(expr Expression, src Source) RollResult {
	results := make([]TermResult, len(expr.Terms))
	for i, term := range expr.Terms {
		tr := TermResult{Term: term}
		if term.IsDice() {
			tr.Dice = make([]int, term.Count)
			for d := range tr.Dice {
				tr.Dice[d] = src.Intn(term.Sides) + 1
			}
		}
		results[i] = tr
	}
	return RollResult{Expression: expr.Raw, Terms: results}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a RollResult or a parse error wrapping ErrInvalidExpression.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
