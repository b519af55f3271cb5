package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDepth is the search depth in plies used when the caller has no
// preference.
const DefaultDepth = 3

// Evaluator scores a position from White's point of view.
type Evaluator[M comparable] func(Position[M]) Score

// Searcher runs fixed-depth minimax with alpha-beta pruning. A Searcher is not
// safe for concurrent use; give each goroutine its own Searcher and Position.
type Searcher[M comparable] struct {
	Evaluate Evaluator[M]
	Log      zerolog.Logger

	// VerifyUnmake checks, for positions implementing Fingerprinter, that every
	// Unmake restores the fingerprint seen before the matching Make.
	VerifyUnmake bool

	stats SearchStats
}

// Result is the outcome of a root search.
type Result[M comparable] struct {
	Move  M
	Score Score
	Depth int
	// Complete is false when the search was cancelled before every root move
	// was searched. Move is then the best of the moves searched so far, or the
	// zero value if none were.
	Complete bool
	// Searched is the number of root moves searched.
	Searched int
	Stats    SearchStats
	Elapsed  time.Duration
}

// NewSearcher returns a Searcher using Evaluate and discarding logs.
func NewSearcher[M comparable]() *Searcher[M] {
	return &Searcher[M]{
		Evaluate: Evaluate[M],
		Log:      zerolog.Nop(),
	}
}

// Stats returns the counters of the last search.
func (s *Searcher[M]) Stats() SearchStats { return s.stats }

// BestMove searches pos to depth plies and returns the chosen move. Among
// equally scored moves the one enumerated first wins.
//
// pos must have legal moves and must not be finished; depth must be at least
// one. Violations panic. pos is restored before BestMove returns.
func (s *Searcher[M]) BestMove(pos Position[M], depth int) M {
	res, _ := s.Search(context.Background(), pos, depth)
	return res.Move
}

// Search is BestMove with the score and statistics. ctx is only consulted
// between root moves; a cancelled search returns ctx.Err() together with a
// Result whose Complete field is false.
func (s *Searcher[M]) Search(ctx context.Context, pos Position[M], depth int) (Result[M], error) {
	if depth < 1 {
		panic(fmt.Sprintf("engine: search depth must be at least 1, got %d", depth))
	}
	if outcome := pos.Outcome(); outcome != Ongoing {
		panic(fmt.Sprintf("engine: search called on a finished game (%s)", outcome))
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		panic("engine: search called on a position without legal moves")
	}

	s.stats = SearchStats{}
	start := time.Now()
	res := Result[M]{Score: BlackWins, Depth: depth}
	alpha, beta := BlackWins, WhiteWins
	selected := false

	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			res.Stats = s.stats
			res.Elapsed = time.Since(start)
			s.Log.Warn().Err(err).Int("searched", res.Searched).Int("moves", len(moves)).Msg("search-cancelled")
			return res, err
		}

		value := s.child(pos, m, depth-1, alpha, beta, false)
		res.Searched++
		if e := s.Log.Debug(); e.Enabled() {
			e.Str("move", fmt.Sprint(m)).Float64("score", float64(value)).Msg("root-move")
		}

		if !selected || value > res.Score {
			res.Move, res.Score = m, value
			selected = true
		}
		alpha = maxScore(alpha, res.Score)
		// Only reachable once a forced win is found; nothing can beat it.
		if beta <= alpha {
			break
		}
	}

	res.Complete = true
	res.Stats = s.stats
	res.Elapsed = time.Since(start)
	if e := s.Log.Info(); e.Enabled() {
		e.Int("depth", depth).
			Str("move", fmt.Sprint(res.Move)).
			Float64("score", float64(res.Score)).
			Object("stats", s.stats).
			Dur("elapsed", res.Elapsed).
			Msg("search-done")
	}
	return res, nil
}

func (s *Searcher[M]) minimax(pos Position[M], depth int, alpha, beta Score, maximizing bool) Score {
	s.stats.Nodes++
	if depth == 0 || pos.Outcome() != Ongoing {
		s.stats.Evaluations++
		return s.evaluate(pos)
	}

	if maximizing {
		value := BlackWins
		for _, m := range pos.LegalMoves() {
			value = maxScore(value, s.child(pos, m, depth-1, alpha, beta, false))
			alpha = maxScore(alpha, value)
			if beta <= alpha {
				s.stats.BetaCutoffs++
				break
			}
		}
		return value
	}

	value := WhiteWins
	for _, m := range pos.LegalMoves() {
		value = minScore(value, s.child(pos, m, depth-1, alpha, beta, true))
		beta = minScore(beta, value)
		if beta <= alpha {
			s.stats.AlphaCutoffs++
			break
		}
	}
	return value
}

// child makes m, searches the resulting position and takes m back.
func (s *Searcher[M]) child(pos Position[M], m M, depth int, alpha, beta Score, maximizing bool) Score {
	var before uint64
	fp, verify := pos.(Fingerprinter)
	verify = verify && s.VerifyUnmake
	if verify {
		before = fp.Fingerprint()
	}

	pos.Make(m)
	value := s.minimax(pos, depth, alpha, beta, maximizing)
	pos.Unmake()

	if verify && fp.Fingerprint() != before {
		panic(fmt.Sprintf("engine: position not restored after unmaking %v", m))
	}
	return value
}

func (s *Searcher[M]) evaluate(pos Position[M]) Score {
	if s.Evaluate == nil {
		return Evaluate(pos)
	}
	return s.Evaluate(pos)
}
