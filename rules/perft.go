package rules

import "minimax-chess/engine"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Game-ending draw rules are ignored, as is customary for move generator
// checks.
func Perft[M comparable](pos engine.Position[M], depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		pos.Make(m)
		nodes += Perft(pos, depth-1)
		pos.Unmake()
	}
	return nodes
}

// PerftDivide returns the node count below each legal root move, in
// enumeration order.
func PerftDivide[M comparable](pos engine.Position[M], depth int) ([]M, []uint64) {
	moves := pos.LegalMoves()
	counts := make([]uint64, len(moves))
	for i, m := range moves {
		pos.Make(m)
		counts[i] = Perft(pos, depth-1)
		pos.Unmake()
	}
	return moves, counts
}
