package rules

import (
	"testing"

	"minimax-chess/engine"
)

func TestRepetitionsStopAtIrreversibleMoves(t *testing.T) {
	var h history
	h.reset(1, 0)
	h.push(2, 1)
	h.push(1, 2)
	if got := h.repetitions(); got != 2 {
		t.Fatalf("expected 2 occurrences, got %d", got)
	}

	// A pawn move resets the clock; key 1 before it can no longer repeat.
	h.push(3, 0)
	h.push(1, 1)
	if got := h.repetitions(); got != 1 {
		t.Fatalf("expected 1 occurrence after a pawn move, got %d", got)
	}

	h.pop()
	h.pop()
	if got := h.repetitions(); got != 2 {
		t.Fatalf("expected 2 occurrences after popping, got %d", got)
	}
}

func TestHistoryPopPastRootPanics(t *testing.T) {
	var h history
	h.reset(1, 0)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	h.pop()
}

func TestInsufficientMaterial(t *testing.T) {
	board := func(pieces map[engine.Square]engine.Piece) func(engine.Square) (engine.Piece, bool) {
		return func(sq engine.Square) (engine.Piece, bool) {
			p, ok := pieces[sq]
			return p, ok
		}
	}
	wk := engine.Piece{Type: engine.King, Color: engine.White}
	bk := engine.Piece{Type: engine.King, Color: engine.Black}
	wn := engine.Piece{Type: engine.Knight, Color: engine.White}
	bn := engine.Piece{Type: engine.Knight, Color: engine.Black}
	wb := engine.Piece{Type: engine.Bishop, Color: engine.White}
	bb := engine.Piece{Type: engine.Bishop, Color: engine.Black}

	cases := []struct {
		name   string
		pieces map[engine.Square]engine.Piece
		want   bool
	}{
		{"bare kings", map[engine.Square]engine.Piece{0: wk, 63: bk}, true},
		{"knight each", map[engine.Square]engine.Piece{0: wk, 63: bk, 10: wn, 50: bn}, false},
		{"two knights", map[engine.Square]engine.Piece{0: wk, 63: bk, 10: wn, 12: wn}, false},
		// b1 (1) and c2 (10) are both light squares.
		{"same colored bishops", map[engine.Square]engine.Piece{0: wk, 63: bk, 1: wb, 10: bb}, true},
		// b1 (1) is light, a3 (16) is dark.
		{"opposite colored bishops", map[engine.Square]engine.Piece{0: wk, 63: bk, 1: wb, 16: bb}, false},
		{"bishop and knight", map[engine.Square]engine.Piece{0: wk, 63: bk, 1: wb, 50: bn}, false},
	}
	for _, tc := range cases {
		if got := insufficientMaterial(board(tc.pieces)); got != tc.want {
			t.Errorf("%s: insufficient material %v, want %v", tc.name, got, tc.want)
		}
	}
}
