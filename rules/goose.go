package rules

import (
	"fmt"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"

	"minimax-chess/engine"
)

// GoosePosition is the default rules backend, built on the goosemg bitboard
// move generator.
type GoosePosition struct {
	board  *gm.Board
	states []gm.MoveState
	line   []played[gm.Move]
	hist   history
}

// NewGoosePosition sets up a position from FEN.
func NewGoosePosition(fen string) (*GoosePosition, error) {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("rules: parse fen %q: %w", fen, err)
	}
	p := &GoosePosition{board: b}
	p.hist.reset(b.Hash(), b.HalfmoveClock())
	return p, nil
}

func goosePiece(p gm.Piece) engine.Piece {
	return engine.Piece{Type: engine.PieceType(p.Type()), Color: engine.Color(p.Color())}
}

func (p *GoosePosition) SideToMove() engine.Color { return engine.Color(p.board.SideToMove()) }

func (p *GoosePosition) PieceAt(sq engine.Square) (engine.Piece, bool) {
	piece := p.board.PieceAt(gm.Square(sq))
	if piece == gm.NoPiece {
		return engine.Piece{}, false
	}
	return goosePiece(piece), true
}

func (p *GoosePosition) LegalMoves() []gm.Move { return p.board.GenerateMoves() }

func (p *GoosePosition) Outcome() engine.Outcome {
	inCheck := p.board.InCheck(p.board.SideToMove())
	return classify(inCheck, p.board.HasLegalMoves(), func() bool {
		return insufficientMaterial(p.PieceAt)
	}, &p.hist)
}

func (p *GoosePosition) Make(m gm.Move) {
	ok, st := p.board.MakeMove(m)
	if !ok {
		panic(fmt.Sprintf("rules: illegal move %v in %s", m, p.board.ToFEN()))
	}
	var captured engine.Piece
	if c := m.CapturedPiece(); c != gm.NoPiece {
		captured = goosePiece(c)
	}
	p.states = append(p.states, st)
	p.line = append(p.line, played[gm.Move]{move: m, captured: captured})
	p.hist.push(p.board.Hash(), p.board.HalfmoveClock())
}

func (p *GoosePosition) Unmake() {
	n := len(p.states)
	if n == 0 {
		panic("rules: unmake with no move made")
	}
	p.board.UnmakeMove(p.line[n-1].move, p.states[n-1])
	p.states = p.states[:n-1]
	p.line = p.line[:n-1]
	p.hist.pop()
}

func (p *GoosePosition) LastMove() (gm.Move, bool) {
	if len(p.line) == 0 {
		return 0, false
	}
	return p.line[len(p.line)-1].move, true
}

func (p *GoosePosition) LastCapture() (engine.Piece, bool) {
	if len(p.line) == 0 {
		return engine.Piece{}, false
	}
	return p.line[len(p.line)-1].capture()
}

// IsCapture includes en passant, whose captured pawn goosemg encodes in the move.
func (p *GoosePosition) IsCapture(m gm.Move) bool { return m.CapturedPiece() != gm.NoPiece }

func (p *GoosePosition) CapturedPiece(m gm.Move) (engine.Piece, bool) {
	return p.PieceAt(engine.Square(m.To()))
}

func (p *GoosePosition) Fingerprint() uint64 {
	return fingerprint(p.board.Hash(), p.board.HalfmoveClock(), len(p.line))
}

func (p *GoosePosition) FEN() string { return p.board.ToFEN() }

func (p *GoosePosition) UCI(m gm.Move) string { return m.String() }
