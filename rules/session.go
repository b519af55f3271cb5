package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"minimax-chess/engine"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Backend names accepted by NewSession.
const (
	Goose  = "goose"
	Dragon = "dragon"
	Notnil = "notnil"
)

var (
	ErrUnknownBackend = errors.New("rules: unknown backend")
	ErrIllegalMove    = errors.New("rules: illegal move")
	ErrGameOver       = errors.New("rules: game is over")
	ErrNothingToUndo  = errors.New("rules: no move to take back")
)

// Backends lists the backend names in order of preference.
func Backends() []string { return []string{Goose, Dragon, Notnil} }

// Options tune the searcher behind a Session.
type Options struct {
	Log          zerolog.Logger
	VerifyUnmake bool
}

// SearchResult is engine.Result with the move in UCI notation. Move is empty
// when the search was cancelled before any root move was searched.
type SearchResult struct {
	Move     string
	Score    engine.Score
	Depth    int
	Complete bool
	Stats    engine.SearchStats
	Elapsed  time.Duration
}

// board is what a backend offers on top of the search contract.
type board[M comparable] interface {
	engine.Position[M]
	engine.Fingerprinter
	FEN() string
	UCI(m M) string
}

// driver erases the move type of a game so callers need no type parameters.
type driver interface {
	fen() string
	outcome() engine.Outcome
	sideToMove() engine.Color
	pieceAt(sq engine.Square) (engine.Piece, bool)
	legalMoves() []string
	play(uci string) error
	undo() error
	moves() []string
	search(ctx context.Context, depth int) (SearchResult, error)
	evaluate() engine.Terms
	perft(depth int) uint64
	divide(depth int) ([]string, []uint64)
}

// Session is a game in progress on one backend. Not safe for concurrent use.
type Session struct {
	backend string
	d       driver
}

// NewSession starts a game from fen on the named backend. An empty fen or
// "startpos" selects the initial position.
func NewSession(backend, fen string, opts Options) (*Session, error) {
	if fen == "" || fen == "startpos" {
		fen = StartFEN
	}
	opts.Log = opts.Log.With().Str("backend", backend).Logger()

	var d driver
	switch backend {
	case Goose:
		pos, err := NewGoosePosition(fen)
		if err != nil {
			return nil, err
		}
		d = newGame[gm.Move](pos, opts)
	case Dragon:
		pos, err := NewDragonPosition(fen)
		if err != nil {
			return nil, err
		}
		d = newGame[dragontoothmg.Move](pos, opts)
	case Notnil:
		pos, err := NewNotnilPosition(fen)
		if err != nil {
			return nil, err
		}
		d = newGame[chess.Move](pos, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return &Session{backend: backend, d: d}, nil
}

func (s *Session) Backend() string { return s.backend }

func (s *Session) FEN() string { return s.d.fen() }

func (s *Session) Outcome() engine.Outcome { return s.d.outcome() }

func (s *Session) SideToMove() engine.Color { return s.d.sideToMove() }

func (s *Session) PieceAt(sq engine.Square) (engine.Piece, bool) { return s.d.pieceAt(sq) }

// LegalMoves lists the legal moves in UCI notation, in the order the search
// considers them.
func (s *Session) LegalMoves() []string { return s.d.legalMoves() }

// Moves lists the moves played so far in UCI notation.
func (s *Session) Moves() []string { return s.d.moves() }

// Play makes the legal move written in UCI notation.
func (s *Session) Play(uci string) error { return s.d.play(uci) }

// Undo takes back the last move played.
func (s *Session) Undo() error { return s.d.undo() }

// Search finds the best move to the given depth. It returns ErrGameOver on a
// finished game instead of panicking.
func (s *Session) Search(ctx context.Context, depth int) (SearchResult, error) {
	return s.d.search(ctx, depth)
}

// Evaluate breaks down the static evaluation of the current position.
func (s *Session) Evaluate() engine.Terms { return s.d.evaluate() }

func (s *Session) Perft(depth int) uint64 { return s.d.perft(depth) }

// Divide is Perft split by root move.
func (s *Session) Divide(depth int) ([]string, []uint64) { return s.d.divide(depth) }

type game[M comparable] struct {
	pos      board[M]
	searcher *engine.Searcher[M]
	played   []string
}

func newGame[M comparable](pos board[M], opts Options) *game[M] {
	s := engine.NewSearcher[M]()
	s.Log = opts.Log
	s.VerifyUnmake = opts.VerifyUnmake
	return &game[M]{pos: pos, searcher: s}
}

func (g *game[M]) fen() string { return g.pos.FEN() }

func (g *game[M]) outcome() engine.Outcome { return g.pos.Outcome() }

func (g *game[M]) sideToMove() engine.Color { return g.pos.SideToMove() }

func (g *game[M]) pieceAt(sq engine.Square) (engine.Piece, bool) { return g.pos.PieceAt(sq) }

func (g *game[M]) uciMoves(moves []M) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = g.pos.UCI(m)
	}
	return out
}

func (g *game[M]) legalMoves() []string { return g.uciMoves(g.pos.LegalMoves()) }

func (g *game[M]) moves() []string { return slices.Clone(g.played) }

func (g *game[M]) play(uci string) error {
	moves := g.pos.LegalMoves()
	i := slices.IndexFunc(moves, func(m M) bool { return g.pos.UCI(m) == uci })
	if i < 0 {
		return fmt.Errorf("%w: %q in %s", ErrIllegalMove, uci, g.pos.FEN())
	}
	g.pos.Make(moves[i])
	g.played = append(g.played, uci)
	return nil
}

func (g *game[M]) undo() error {
	if len(g.played) == 0 {
		return ErrNothingToUndo
	}
	g.pos.Unmake()
	g.played = g.played[:len(g.played)-1]
	return nil
}

func (g *game[M]) search(ctx context.Context, depth int) (SearchResult, error) {
	if depth < 1 {
		return SearchResult{}, fmt.Errorf("rules: search depth must be at least 1, got %d", depth)
	}
	if o := g.pos.Outcome(); o != engine.Ongoing {
		return SearchResult{}, fmt.Errorf("%w: %s", ErrGameOver, o)
	}
	res, err := g.searcher.Search(ctx, g.pos, depth)
	out := SearchResult{
		Score:    res.Score,
		Depth:    res.Depth,
		Complete: res.Complete,
		Stats:    res.Stats,
		Elapsed:  res.Elapsed,
	}
	if res.Searched > 0 {
		out.Move = g.pos.UCI(res.Move)
	}
	return out, err
}

func (g *game[M]) evaluate() engine.Terms { return engine.EvaluateTerms[M](g.pos) }

func (g *game[M]) perft(depth int) uint64 { return Perft[M](g.pos, depth) }

func (g *game[M]) divide(depth int) ([]string, []uint64) {
	moves, counts := PerftDivide[M](g.pos, depth)
	return g.uciMoves(moves), counts
}
