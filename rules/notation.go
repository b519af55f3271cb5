package rules

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"golang.org/x/exp/slices"
)

// findMove resolves input, in UCI or SAN, to a legal move of pos.
func findMove(pos *chess.Position, input string) (*chess.Move, error) {
	input = strings.TrimSpace(input)
	decoded, err := chess.UCINotation{}.Decode(pos, input)
	if err != nil {
		decoded, err = chess.AlgebraicNotation{}.Decode(pos, input)
	}
	if err != nil || decoded == nil {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, input)
	}
	valid := pos.ValidMoves()
	i := slices.IndexFunc(valid, func(m *chess.Move) bool {
		return m.S1() == decoded.S1() && m.S2() == decoded.S2() && m.Promo() == decoded.Promo()
	})
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, input)
	}
	return valid[i], nil
}

// ToUCI converts a move written in UCI or SAN (e2e4, Nf3, O-O, exd8=Q) to UCI
// notation, checking that it is legal in the position given by fen.
func ToUCI(fen, input string) (string, error) {
	pos, err := notnilFromFEN(fen)
	if err != nil {
		return "", err
	}
	m, err := findMove(pos, input)
	if err != nil {
		return "", err
	}
	return chess.UCINotation{}.Encode(pos, m), nil
}

// ToSAN converts a legal move in UCI notation to SAN.
func ToSAN(fen, uci string) (string, error) {
	pos, err := notnilFromFEN(fen)
	if err != nil {
		return "", err
	}
	m, err := findMove(pos, uci)
	if err != nil {
		return "", err
	}
	return chess.AlgebraicNotation{}.Encode(pos, m), nil
}
