package rules

import "minimax-chess/engine"

// fivefold is the number of occurrences of a position that ends the game.
const fivefold = 5

// seventyFiveMoves is the halfmove clock value that ends the game.
const seventyFiveMoves = 150

// state captures the information needed to reason about repetitions and draws.
type state struct {
	key    uint64
	rule50 int
}

// history is the stack of position states from the root position to the
// current one. The root position's predecessors are unknown and never count.
type history struct {
	states []state
}

func (h *history) reset(key uint64, rule50 int) {
	h.states = h.states[:0]
	h.push(key, rule50)
}

func (h *history) push(key uint64, rule50 int) {
	h.states = append(h.states, state{key: key, rule50: rule50})
}

func (h *history) pop() {
	if len(h.states) <= 1 {
		panic("rules: unmake past the root position")
	}
	h.states = h.states[:len(h.states)-1]
}

func (h *history) current() state { return h.states[len(h.states)-1] }

// repetitions counts how often the current position has occurred, itself
// included. Only positions since the last capture or pawn move can repeat it.
func (h *history) repetitions() int {
	curr := h.current()
	start := len(h.states) - 1 - curr.rule50
	if start < 0 {
		start = 0
	}
	count := 0
	for i := start; i < len(h.states); i++ {
		if h.states[i].key == curr.key {
			count++
		}
	}
	return count
}

// played is one entry of a position's move stack.
type played[M comparable] struct {
	move     M
	captured engine.Piece
}

func (p played[M]) capture() (engine.Piece, bool) {
	return p.captured, p.captured.Type != engine.NoPieceType
}

// classify applies the game-ending rules in the order checkmate, insufficient
// material, stalemate, seventy-five moves, fivefold repetition.
func classify(inCheck, hasMoves bool, insufficient func() bool, h *history) engine.Outcome {
	switch {
	case inCheck && !hasMoves:
		return engine.Checkmate
	case insufficient():
		return engine.InsufficientMaterial
	case !hasMoves:
		return engine.Stalemate
	case h.current().rule50 >= seventyFiveMoves:
		return engine.SeventyFiveMoves
	case h.repetitions() >= fivefold:
		return engine.FivefoldRepetition
	}
	return engine.Ongoing
}

// fingerprint folds a position key with the counters a key may leave out.
func fingerprint(key uint64, rule50, plies int) uint64 {
	return key ^ uint64(rule50)<<56 ^ uint64(plies)*0x9e3779b97f4a7c15
}
