package engine

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return 1 - c }

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType is a colorless piece kind. The zero value means no piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a piece kind owned by a side.
type Piece struct {
	Type  PieceType
	Color Color
}

// Square is a board index, a1 = 0, b1 = 1, ..., h8 = 63.
type Square uint8

const (
	D4 Square = 3*8 + 3
	E4 Square = 3*8 + 4
	D5 Square = 4*8 + 3
	E5 Square = 4*8 + 4
)

// File returns 0 for the a-file through 7 for the h-file.
func (s Square) File() int { return int(s) % 8 }

// Rank returns 0 for the first rank through 7 for the eighth.
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// Outcome classifies a position as still in play or finished by one of the
// game-ending rules.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
)

// IsDraw reports whether the outcome ends the game without a winner.
func (o Outcome) IsDraw() bool {
	return o == Stalemate || o == InsufficientMaterial || o == SeventyFiveMoves || o == FivefoldRepetition
}

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case SeventyFiveMoves:
		return "75-move rule"
	case FivefoldRepetition:
		return "fivefold repetition"
	}
	return "unknown"
}

// Position is the rules collaborator the search runs against. Implementations
// own board representation and legality; the search only enumerates, applies
// and takes back moves.
//
// LegalMoves must return a fresh slice in an order that is stable for a given
// position: the search keeps the first of several equally scored moves.
// Unmake must restore every observable property of the position before the
// matching Make.
type Position[M comparable] interface {
	SideToMove() Color
	PieceAt(sq Square) (Piece, bool)
	LegalMoves() []M
	Outcome() Outcome
	Make(m M)
	Unmake()

	// LastMove is the most recently made move, if any.
	LastMove() (M, bool)
	// LastCapture is the piece removed by the most recently made move.
	LastCapture() (Piece, bool)
	// IsCapture and CapturedPiece describe a move legal in the current position.
	// CapturedPiece is the piece standing on the move's destination square, so
	// an en passant capture reports none.
	IsCapture(m M) bool
	CapturedPiece(m M) (Piece, bool)
}

// Fingerprinter is implemented by positions that can summarize their state in
// a single key. Searchers use it to verify Make/Unmake symmetry when asked to.
type Fingerprinter interface {
	Fingerprint() uint64
}

// IsGameOver reports whether pos is finished by any game-ending rule.
func IsGameOver[M comparable](pos Position[M]) bool {
	return pos.Outcome() != Ongoing
}
