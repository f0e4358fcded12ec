package game

import "github.com/abhisek/adaptiquiz/internal/difficulty"

var tierPoints = map[difficulty.Tier]int{
	difficulty.Easy:   10,
	difficulty.Medium: 15,
	difficulty.Hard:   20,
}

// Points returns the score for a correct answer at t.
func Points(t difficulty.Tier) int {
	return tierPoints[t]
}
