package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidExpression is the sentinel for any malformed dice expression.
// All Parse errors wrap it, so callers can classify failures with errors.Is.
var ErrInvalidExpression = errors.New("invalid dice expression")

// MaxDice caps both the die count and the face count of a single term.
// Digit runs past the cap are rejected rather than clamped.
const MaxDice = 10000

// Parse parses a dice expression string into an Expression.
//
// Grammar: signed terms joined by '+'/'-', each term either "[N]dM" (count
// defaults to 1) or an integer constant. The 'd' is case-insensitive and
// whitespace between tokens is ignored. A bare unsigned integer "N" standing
// alone denotes "dN", not the constant N.
//
// Postcondition: Returns an Expression with at least one term, or an error
// wrapping ErrInvalidExpression.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	if s == "" {
		return Expression{}, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	for _, r := range s {
		if r != 'd' && r != '+' && r != '-' && (r < '0' || r > '9') {
			return Expression{}, fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidExpression, r, raw)
		}
	}

	// Bare-integer shortcut: a lone unsigned integer means "roll one die with
	// that many faces" rather than the constant itself.
	if isDigits(s) {
		sides, err := parseBounded(s, raw)
		if err != nil {
			return Expression{}, err
		}
		if sides < 1 {
			return Expression{}, fmt.Errorf("%w: die faces must be >= 1 in %q", ErrInvalidExpression, raw)
		}
		return Expression{
			Raw:   raw,
			Terms: []Term{{Sign: 1, Count: 1, Sides: sides}},
		}, nil
	}

	var terms []Term
	i := 0
	for i < len(s) {
		sign := 1
		switch s[i] {
		case '+':
			i++
		case '-':
			sign = -1
			i++
		default:
			if len(terms) > 0 {
				// Terms after the first must be introduced by a sign.
				return Expression{}, fmt.Errorf("%w: missing '+' or '-' before term in %q", ErrInvalidExpression, raw)
			}
		}

		j := i
		for j < len(s) && s[j] != '+' && s[j] != '-' {
			j++
		}
		token := s[i:j]
		if token == "" {
			return Expression{}, fmt.Errorf("%w: dangling sign in %q", ErrInvalidExpression, raw)
		}

		term, err := parseTerm(token, sign, raw)
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, term)
		i = j
	}

	return Expression{Raw: raw, Terms: terms}, nil
}

// parseTerm parses a single unsigned token: "[N]dM" or an integer constant.
func parseTerm(token string, sign int, raw string) (Term, error) {
	dIdx := strings.IndexByte(token, 'd')
	if dIdx < 0 {
		value, err := parseBounded(token, raw)
		if err != nil {
			return Term{}, err
		}
		return Term{Sign: sign, Value: value}, nil
	}

	if strings.IndexByte(token[dIdx+1:], 'd') >= 0 {
		return Term{}, fmt.Errorf("%w: repeated 'd' in term %q of %q", ErrInvalidExpression, token, raw)
	}

	count := 1
	if countStr := token[:dIdx]; countStr != "" {
		var err error
		count, err = parseBounded(countStr, raw)
		if err != nil {
			return Term{}, err
		}
		if count < 1 {
			return Term{}, fmt.Errorf("%w: die count must be >= 1 in term %q of %q", ErrInvalidExpression, token, raw)
		}
	}

	sidesStr := token[dIdx+1:]
	if sidesStr == "" {
		return Term{}, fmt.Errorf("%w: missing face count after 'd' in term %q of %q", ErrInvalidExpression, token, raw)
	}
	sides, err := parseBounded(sidesStr, raw)
	if err != nil {
		return Term{}, err
	}
	if sides < 1 {
		return Term{}, fmt.Errorf("%w: die faces must be >= 1 in term %q of %q", ErrInvalidExpression, token, raw)
	}

	return Term{Sign: sign, Count: count, Sides: sides}, nil
}

// parseBounded parses a digit run and enforces the MaxDice cap.
func parseBounded(digits, raw string) (int, error) {
	if !isDigits(digits) {
		return 0, fmt.Errorf("%w: malformed number %q in %q", ErrInvalidExpression, digits, raw)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n > MaxDice {
		return 0, fmt.Errorf("%w: number %q exceeds maximum %d in %q", ErrInvalidExpression, digits, MaxDice, raw)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
