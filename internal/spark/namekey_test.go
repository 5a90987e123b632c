package spark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/hollowvale/sparkroll/internal/spark"
)

func TestNameKey_CaseDiacriticsSpacing(t *testing.T) {
	want := spark.NameKey("lad")
	assert.Equal(t, want, spark.NameKey("LĄD"))
	assert.Equal(t, want, spark.NameKey(" L A D "))
	assert.Equal(t, want, spark.NameKey("Lad\t"))
}

func TestNameKey_PolishLetters(t *testing.T) {
	assert.Equal(t, "zoladz", spark.NameKey("ŻOŁĄDŹ"))
	assert.Equal(t, "swieto", spark.NameKey("Święto"))
}

func TestNameKey_AccentedLatin(t *testing.T) {
	assert.Equal(t, "cafe", spark.NameKey("Café"))
	assert.Equal(t, "uber", spark.NameKey("ÜBER"))
}

func TestNameKey_EmptyAndWhitespaceOnly(t *testing.T) {
	assert.Equal(t, "", spark.NameKey(""))
	assert.Equal(t, "", spark.NameKey("   \t "))
}

// NameKey must be idempotent for arbitrary input, including strings that are
// already normalized.
func TestNameKey_IdempotentProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "name")
		once := spark.NameKey(s)
		assert.Equal(rt, once, spark.NameKey(once))
	})
}
