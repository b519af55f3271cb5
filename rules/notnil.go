package rules

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"minimax-chess/engine"
)

// NotnilPosition is a rules backend on github.com/notnil/chess. Positions in
// that library are immutable, so making a move pushes the updated position and
// unmaking pops it.
type NotnilPosition struct {
	positions []*chess.Position
	line      []played[chess.Move]
	hist      history
}

// NewNotnilPosition sets up a position from FEN.
func NewNotnilPosition(fen string) (*NotnilPosition, error) {
	pos, err := notnilFromFEN(fen)
	if err != nil {
		return nil, err
	}
	p := &NotnilPosition{positions: []*chess.Position{pos}}
	key, rule50 := notnilState(pos)
	p.hist.reset(key, rule50)
	return p, nil
}

func notnilFromFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("rules: parse fen %q: %w", fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}

// notnilState derives the repetition key from the placement, side, castling and
// en passant fields of the FEN, and reads the halfmove clock.
func notnilState(pos *chess.Position) (key uint64, rule50 int) {
	fields := strings.Fields(pos.String())
	h := fnv.New64a()
	for i := 0; i < 4 && i < len(fields); i++ {
		h.Write([]byte(fields[i]))
		h.Write([]byte{' '})
	}
	if len(fields) > 4 {
		rule50, _ = strconv.Atoi(fields[4])
	}
	return h.Sum64(), rule50
}

func notnilPieceType(t chess.PieceType) engine.PieceType {
	switch t {
	case chess.Pawn:
		return engine.Pawn
	case chess.Knight:
		return engine.Knight
	case chess.Bishop:
		return engine.Bishop
	case chess.Rook:
		return engine.Rook
	case chess.Queen:
		return engine.Queen
	case chess.King:
		return engine.King
	}
	return engine.NoPieceType
}

func notnilColor(c chess.Color) engine.Color {
	if c == chess.Black {
		return engine.Black
	}
	return engine.White
}

func (p *NotnilPosition) current() *chess.Position { return p.positions[len(p.positions)-1] }

func (p *NotnilPosition) SideToMove() engine.Color { return notnilColor(p.current().Turn()) }

func (p *NotnilPosition) PieceAt(sq engine.Square) (engine.Piece, bool) {
	piece := p.current().Board().Piece(chess.Square(sq))
	if piece == chess.NoPiece {
		return engine.Piece{}, false
	}
	return engine.Piece{Type: notnilPieceType(piece.Type()), Color: notnilColor(piece.Color())}, true
}

func (p *NotnilPosition) LegalMoves() []chess.Move {
	valid := p.current().ValidMoves()
	moves := make([]chess.Move, len(valid))
	for i, m := range valid {
		moves[i] = *m
	}
	return moves
}

func (p *NotnilPosition) Outcome() engine.Outcome {
	var inCheck, hasMoves bool
	switch p.current().Status() {
	case chess.Checkmate:
		inCheck = true
	case chess.Stalemate:
	default:
		hasMoves = true
	}
	return classify(inCheck, hasMoves, func() bool {
		return insufficientMaterial(p.PieceAt)
	}, &p.hist)
}

func (p *NotnilPosition) Make(m chess.Move) {
	captured, _ := p.CapturedPiece(m)
	if m.HasTag(chess.EnPassant) {
		captured = engine.Piece{Type: engine.Pawn, Color: p.SideToMove().Other()}
	}
	next := p.current().Update(&m)
	p.positions = append(p.positions, next)
	p.line = append(p.line, played[chess.Move]{move: m, captured: captured})
	p.hist.push(notnilState(next))
}

func (p *NotnilPosition) Unmake() {
	n := len(p.line)
	if n == 0 {
		panic("rules: unmake with no move made")
	}
	p.positions = p.positions[:n]
	p.line = p.line[:n-1]
	p.hist.pop()
}

func (p *NotnilPosition) LastMove() (chess.Move, bool) {
	if len(p.line) == 0 {
		return chess.Move{}, false
	}
	return p.line[len(p.line)-1].move, true
}

func (p *NotnilPosition) LastCapture() (engine.Piece, bool) {
	if len(p.line) == 0 {
		return engine.Piece{}, false
	}
	return p.line[len(p.line)-1].capture()
}

func (p *NotnilPosition) IsCapture(m chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

func (p *NotnilPosition) CapturedPiece(m chess.Move) (engine.Piece, bool) {
	if !m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant) {
		return engine.Piece{}, false
	}
	piece, ok := p.PieceAt(engine.Square(m.S2()))
	return piece, ok
}

func (p *NotnilPosition) Fingerprint() uint64 {
	h := p.current().Hash()
	var key uint64
	for _, b := range h[:8] {
		key = key<<8 | uint64(b)
	}
	_, rule50 := notnilState(p.current())
	return fingerprint(key, rule50, len(p.line))
}

func (p *NotnilPosition) FEN() string { return p.current().String() }

func (p *NotnilPosition) UCI(m chess.Move) string {
	return chess.UCINotation{}.Encode(p.current(), &m)
}
