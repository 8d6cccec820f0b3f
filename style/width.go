package style

import (
	"github.com/mattn/go-runewidth"
)

// Ambiguous-width runes count as narrow, matching most western terminal fonts
var narrowCondition = newNarrowCondition()

func newNarrowCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}

// RuneWidth returns the terminal column count of r, clamped to 1 or 2
// Zero-width and control runes occupy one cell once placed in the grid
func RuneWidth(r rune) int {
	return clampWidth(narrowCondition.RuneWidth(r))
}

// StringWidth returns the column count of s
func StringWidth(s string) int {
	return narrowCondition.StringWidth(s)
}

func clampWidth(w int) int {
	if w >= 2 {
		return 2
	}
	return 1
}
