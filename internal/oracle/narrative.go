package oracle

import "github.com/hollowvale/sparkroll/internal/dice"

// NarrativeResult is the outcome of one fixed d6 narrative helper roll.
type NarrativeResult struct {
	Name string // which helper produced the result
	Roll int    // the raw d6 value, 1..6
	Text string // the bracket text for the roll
}

// Wilderness rolls the wilderness travel check: 1 random Myth, 2-3 nearest
// Myth, 4-6 all clear.
func Wilderness(src dice.Source) NarrativeResult {
	r := src.Intn(6) + 1
	var text string
	switch {
	case r == 1:
		text = "Encounter the next Omen from a random Myth."
	case r <= 3:
		text = "Encounter the next Omen from the nearest Myth."
	default:
		text = "Encounter the Hex's Landmark. Otherwise all clear."
	}
	return NarrativeResult{Name: "wilderness", Roll: r, Text: text}
}

// Luck rolls the luck check: 1 crisis, 2-3 problem, 4-6 blessing.
func Luck(src dice.Source) NarrativeResult {
	r := src.Intn(6) + 1
	var text string
	switch {
	case r == 1:
		text = "Crisis: Something immediately bad."
	case r <= 3:
		text = "Problem: Something potentially bad."
	default:
		text = "Blessing: A welcome result."
	}
	return NarrativeResult{Name: "luck", Roll: r, Text: text}
}

// Unresolved rolls the unresolved-situation check: 1 worst case, 2-6
// unpredictable.
func Unresolved(src dice.Source) NarrativeResult {
	r := src.Intn(6) + 1
	text := "It unfolds in an unpredictable way."
	if r == 1 {
		text = "It goes as bad as it could possibly go."
	}
	return NarrativeResult{Name: "unresolved", Roll: r, Text: text}
}

// LocalMood rolls the local mood check: 1 woe, 2-3 decline, 4-6 fine.
func LocalMood(src dice.Source) NarrativeResult {
	r := src.Intn(6) + 1
	var text string
	switch {
	case r == 1:
		text = "Occupied by a looming or recent woe."
	case r <= 3:
		text = "There is a sense of things in decline."
	default:
		text = "A fine mood and all seems well enough."
	}
	return NarrativeResult{Name: "mood", Roll: r, Text: text}
}
