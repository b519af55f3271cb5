package engine

import "math"

// Score is a White-positive evaluation. A pawn is worth 10.
type Score float64

var (
	WhiteWins = Score(math.Inf(1))
	BlackWins = Score(math.Inf(-1))
)

const DrawScore Score = 0

// mateCentipawns stands in for a won or lost game in centipawn output.
const mateCentipawns = 32000

// IsMate reports whether s is one of the two win sentinels.
func (s Score) IsMate() bool { return math.IsInf(float64(s), 0) }

// Centipawns converts s to hundredths of a pawn, as UCI expects.
func (s Score) Centipawns() int {
	switch {
	case s == WhiteWins:
		return mateCentipawns
	case s == BlackWins:
		return -mateCentipawns
	}
	return int(math.Round(float64(s) * 10))
}

// maxScore returns the larger of x or y.
func maxScore(x, y Score) Score {
	if x > y {
		return x
	}
	return y
}

// minScore returns the smaller of x or y.
func minScore(x, y Score) Score {
	if x < y {
		return x
	}
	return y
}
