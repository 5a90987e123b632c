package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowvale/sparkroll/internal/dice"
	"github.com/hollowvale/sparkroll/internal/oracle"
	"github.com/hollowvale/sparkroll/internal/testutil"
)

func TestWilderness_Brackets(t *testing.T) {
	cases := []struct {
		roll int
		want string
	}{
		{1, "Encounter the next Omen from a random Myth."},
		{2, "Encounter the next Omen from the nearest Myth."},
		{3, "Encounter the next Omen from the nearest Myth."},
		{4, "Encounter the Hex's Landmark. Otherwise all clear."},
		{6, "Encounter the Hex's Landmark. Otherwise all clear."},
	}
	for _, tc := range cases {
		got := oracle.Wilderness(testutil.NewScript(tc.roll))
		assert.Equal(t, tc.roll, got.Roll)
		assert.Equal(t, tc.want, got.Text, "roll %d", tc.roll)
	}
}

func TestLuck_Brackets(t *testing.T) {
	assert.Contains(t, oracle.Luck(testutil.NewScript(1)).Text, "Crisis")
	assert.Contains(t, oracle.Luck(testutil.NewScript(2)).Text, "Problem")
	assert.Contains(t, oracle.Luck(testutil.NewScript(3)).Text, "Problem")
	assert.Contains(t, oracle.Luck(testutil.NewScript(4)).Text, "Blessing")
	assert.Contains(t, oracle.Luck(testutil.NewScript(6)).Text, "Blessing")
}

func TestUnresolved_Brackets(t *testing.T) {
	assert.Contains(t, oracle.Unresolved(testutil.NewScript(1)).Text, "as bad as it could possibly go")
	for roll := 2; roll <= 6; roll++ {
		assert.Contains(t, oracle.Unresolved(testutil.NewScript(roll)).Text, "unpredictable", "roll %d", roll)
	}
}

func TestLocalMood_Brackets(t *testing.T) {
	assert.Contains(t, oracle.LocalMood(testutil.NewScript(1)).Text, "woe")
	assert.Contains(t, oracle.LocalMood(testutil.NewScript(3)).Text, "decline")
	assert.Contains(t, oracle.LocalMood(testutil.NewScript(5)).Text, "fine mood")
}

// A constant source lands every helper in the same bracket regardless of how
// many draws the sequence makes.
func TestNarrative_ConstantSource(t *testing.T) {
	src := testutil.Fixed{Value: 6}
	assert.Equal(t, 6, oracle.Wilderness(src).Roll)
	assert.Contains(t, oracle.Wilderness(src).Text, "Landmark")
	assert.Contains(t, oracle.Luck(src).Text, "Blessing")
	assert.Equal(t, 6, oracle.LocalMood(src).Roll)
}

// Every helper draws exactly one d6 from the shared source.
func TestNarrative_SingleDraw(t *testing.T) {
	helpers := []func(dice.Source) oracle.NarrativeResult{
		oracle.Wilderness, oracle.Luck, oracle.Unresolved, oracle.LocalMood,
	}
	for _, helper := range helpers {
		script := testutil.NewScript(4)
		got := helper(script)
		assert.Equal(t, 4, got.Roll)
		assert.Zero(t, script.Remaining())
		assert.NotEmpty(t, got.Name)
	}
}
