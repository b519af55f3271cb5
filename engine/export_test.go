package engine

// ExhaustiveSearch is plain minimax without pruning, selecting the root move
// the same way Searcher does. Tests compare it against the pruned search.
func ExhaustiveSearch[M comparable](pos Position[M], eval Evaluator[M], depth int) (M, Score) {
	var best M
	bestValue := BlackWins
	selected := false
	for _, m := range pos.LegalMoves() {
		pos.Make(m)
		v := exhaustive(pos, eval, depth-1, false)
		pos.Unmake()
		if !selected || v > bestValue {
			best, bestValue = m, v
			selected = true
		}
	}
	return best, bestValue
}

func exhaustive[M comparable](pos Position[M], eval Evaluator[M], depth int, maximizing bool) Score {
	if depth == 0 || pos.Outcome() != Ongoing {
		return eval(pos)
	}
	value := WhiteWins
	if maximizing {
		value = BlackWins
	}
	for _, m := range pos.LegalMoves() {
		pos.Make(m)
		v := exhaustive(pos, eval, depth-1, !maximizing)
		pos.Unmake()
		if maximizing {
			value = maxScore(value, v)
		} else {
			value = minScore(value, v)
		}
	}
	return value
}
