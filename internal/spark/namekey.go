package spark

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes characters and removes combining marks, so
// "Ą" becomes "A" and "é" becomes "e".
var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// baseLatin maps letters that survive NFKD decomposition intact but still
// have an obvious base Latin form. The source tables are Polish exports, so
// the stroked L matters in practice.
var baseLatin = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
)

// NameKey normalizes a sheet or table name for lookup: lowercases, strips
// diacritics down to base Latin letters, and removes all whitespace.
//
// Postcondition: NameKey is idempotent: NameKey(NameKey(s)) == NameKey(s).
func NameKey(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		// Transform only fails on malformed input; fall back to the raw
		// string so lookup still degrades to case/space insensitivity.
		stripped = s
	}
	stripped = baseLatin.Replace(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
