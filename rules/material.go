package rules

import "minimax-chess/engine"

// tally counts one side's pieces.
type tally struct {
	pawns, knights, rooks, queens int
	lightBishops, darkBishops     int
	pieces                        int
}

func (t tally) bishops() int { return t.lightBishops + t.darkBishops }

// countMaterial tallies both sides' pieces as seen through pieceAt.
func countMaterial(pieceAt func(engine.Square) (engine.Piece, bool)) [2]tally {
	var sides [2]tally
	for sq := engine.Square(0); sq < 64; sq++ {
		p, ok := pieceAt(sq)
		if !ok {
			continue
		}
		t := &sides[p.Color]
		t.pieces++
		switch p.Type {
		case engine.Pawn:
			t.pawns++
		case engine.Knight:
			t.knights++
		case engine.Bishop:
			if (sq.File()+sq.Rank())%2 == 1 {
				t.lightBishops++
			} else {
				t.darkBishops++
			}
		case engine.Rook:
			t.rooks++
		case engine.Queen:
			t.queens++
		}
	}
	return sides
}

// cannotMate reports whether side could never deliver mate, whatever the
// opponent plays.
func cannotMate(sides [2]tally, side engine.Color) bool {
	us, them := sides[side], sides[side.Other()]
	if us.pawns > 0 || us.rooks > 0 || us.queens > 0 {
		return false
	}
	if us.knights > 0 {
		// King and knight against a king with nothing but queens.
		return us.pieces <= 2 && them.pieces-1 == them.queens
	}
	if us.bishops() > 0 {
		// Every bishop on the board, either side's, must share a square color.
		light := us.lightBishops + them.lightBishops
		dark := us.darkBishops + them.darkBishops
		return (light == 0 || dark == 0) && them.pawns == 0 && them.knights == 0
	}
	return true
}

// insufficientMaterial reports whether neither side can ever mate.
func insufficientMaterial(pieceAt func(engine.Square) (engine.Piece, bool)) bool {
	sides := countMaterial(pieceAt)
	return cannotMate(sides, engine.White) && cannotMate(sides, engine.Black)
}
