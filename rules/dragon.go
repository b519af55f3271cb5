package rules

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"minimax-chess/engine"
)

// DragonPosition is a rules backend on the dragontoothmg move generator.
type DragonPosition struct {
	board dragontoothmg.Board
	undo  []func()
	line  []played[dragontoothmg.Move]
	hist  history
}

// NewDragonPosition sets up a position from FEN.
func NewDragonPosition(fen string) (p *DragonPosition, err error) {
	if _, err := notnilFromFEN(fen); err != nil {
		return nil, err
	}
	defer func() {
		// dragontoothmg panics on malformed FEN.
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("rules: parse fen %q: %v", fen, r)
		}
	}()
	p = &DragonPosition{board: dragontoothmg.ParseFen(fen)}
	p.hist.reset(p.board.Hash(), int(p.board.Halfmoveclock))
	return p, nil
}

// pieceTypeAt finds the piece on square among one side's bitboards.
func pieceTypeAt(square uint8, bitboards *dragontoothmg.Bitboards) (engine.PieceType, bool) {
	mask := uint64(1) << square
	switch {
	case bitboards.Pawns&mask != 0:
		return engine.Pawn, true
	case bitboards.Knights&mask != 0:
		return engine.Knight, true
	case bitboards.Bishops&mask != 0:
		return engine.Bishop, true
	case bitboards.Rooks&mask != 0:
		return engine.Rook, true
	case bitboards.Queens&mask != 0:
		return engine.Queen, true
	case bitboards.Kings&mask != 0:
		return engine.King, true
	}
	return engine.NoPieceType, false
}

func (p *DragonPosition) sides() (own, opponent *dragontoothmg.Bitboards) {
	if p.board.Wtomove {
		return &p.board.White, &p.board.Black
	}
	return &p.board.Black, &p.board.White
}

func (p *DragonPosition) SideToMove() engine.Color {
	if p.board.Wtomove {
		return engine.White
	}
	return engine.Black
}

func (p *DragonPosition) PieceAt(sq engine.Square) (engine.Piece, bool) {
	if t, ok := pieceTypeAt(uint8(sq), &p.board.White); ok {
		return engine.Piece{Type: t, Color: engine.White}, true
	}
	if t, ok := pieceTypeAt(uint8(sq), &p.board.Black); ok {
		return engine.Piece{Type: t, Color: engine.Black}, true
	}
	return engine.Piece{}, false
}

func (p *DragonPosition) LegalMoves() []dragontoothmg.Move { return p.board.GenerateLegalMoves() }

func (p *DragonPosition) Outcome() engine.Outcome {
	hasMoves := len(p.board.GenerateLegalMoves()) > 0
	return classify(p.board.OurKingInCheck(), hasMoves, func() bool {
		return insufficientMaterial(p.PieceAt)
	}, &p.hist)
}

func (p *DragonPosition) Make(m dragontoothmg.Move) {
	captured, _ := p.removedPiece(m)
	p.undo = append(p.undo, p.board.Apply(m))
	p.line = append(p.line, played[dragontoothmg.Move]{move: m, captured: captured})
	p.hist.push(p.board.Hash(), int(p.board.Halfmoveclock))
}

func (p *DragonPosition) Unmake() {
	n := len(p.undo)
	if n == 0 {
		panic("rules: unmake with no move made")
	}
	p.undo[n-1]()
	p.undo = p.undo[:n-1]
	p.line = p.line[:n-1]
	p.hist.pop()
}

func (p *DragonPosition) LastMove() (dragontoothmg.Move, bool) {
	if len(p.line) == 0 {
		return 0, false
	}
	return p.line[len(p.line)-1].move, true
}

func (p *DragonPosition) LastCapture() (engine.Piece, bool) {
	if len(p.line) == 0 {
		return engine.Piece{}, false
	}
	return p.line[len(p.line)-1].capture()
}

func (p *DragonPosition) IsCapture(m dragontoothmg.Move) bool {
	_, ok := p.removedPiece(m)
	return ok
}

func (p *DragonPosition) CapturedPiece(m dragontoothmg.Move) (engine.Piece, bool) {
	_, opponent := p.sides()
	if t, ok := pieceTypeAt(m.To(), opponent); ok {
		return engine.Piece{Type: t, Color: p.SideToMove().Other()}, true
	}
	return engine.Piece{}, false
}

// removedPiece also recognizes en passant, which dragontoothmg.IsCapture
// does not: a pawn moving diagonally onto an empty square.
func (p *DragonPosition) removedPiece(m dragontoothmg.Move) (engine.Piece, bool) {
	if piece, ok := p.CapturedPiece(m); ok {
		return piece, true
	}
	own, _ := p.sides()
	if t, _ := pieceTypeAt(m.From(), own); t == engine.Pawn && m.From()%8 != m.To()%8 {
		return engine.Piece{Type: engine.Pawn, Color: p.SideToMove().Other()}, true
	}
	return engine.Piece{}, false
}

func (p *DragonPosition) Fingerprint() uint64 {
	return fingerprint(p.board.Hash(), int(p.board.Halfmoveclock), len(p.line))
}

func (p *DragonPosition) FEN() string { return p.board.ToFen() }

func (p *DragonPosition) UCI(m dragontoothmg.Move) string { return m.String() }
