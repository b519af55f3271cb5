package engine

import (
	"fmt"
	"strings"
)

// Piece values used by every material term.
var PieceValue = [7]Score{
	NoPieceType: 0,
	Pawn:        10,
	Knight:      30,
	Bishop:      30,
	Rook:        50,
	Queen:       90,
	King:        0,
}

const (
	LastCaptureWeight   Score = 0.5
	CaptureThreatWeight Score = 0.1
	MobilityWeight      Score = 0.1
	CenterControlBonus  Score = 2
)

var CenterSquares = [4]Square{E4, D4, E5, D5}

// Terms is the evaluation broken down by component. Total is the value
// Evaluate returns.
//
// LastCapture, CaptureThreats and Center are not sign-adjusted by color: they
// raise the score whichever side they belong to.
type Terms struct {
	Outcome        Outcome
	Material       Score
	LastCapture    Score
	CaptureThreats Score
	Mobility       Score
	Center         Score
	Total          Score
}

func (t Terms) String() string {
	var sb strings.Builder
	if t.Outcome != Ongoing {
		fmt.Fprintf(&sb, "outcome: %s\n", t.Outcome)
	}
	fmt.Fprintf(&sb, "material: %.2f\n", float64(t.Material))
	fmt.Fprintf(&sb, "last capture: %.2f\n", float64(t.LastCapture))
	fmt.Fprintf(&sb, "capture threats: %.2f\n", float64(t.CaptureThreats))
	fmt.Fprintf(&sb, "mobility: %.2f\n", float64(t.Mobility))
	fmt.Fprintf(&sb, "center: %.2f\n", float64(t.Center))
	fmt.Fprintf(&sb, "total: %.2f", float64(t.Total))
	return sb.String()
}

// Evaluate scores pos from White's point of view. It does not modify pos.
func Evaluate[M comparable](pos Position[M]) Score {
	return evaluate(pos, nil)
}

// EvaluateTerms is Evaluate with the per-term breakdown.
func EvaluateTerms[M comparable](pos Position[M]) Terms {
	var t Terms
	t.Total = evaluate(pos, &t)
	return t
}

// evaluate accumulates terms one addition at a time so the total does not
// depend on whether a breakdown was requested.
func evaluate[M comparable](pos Position[M], terms *Terms) Score {
	outcome := pos.Outcome()
	if terms != nil {
		terms.Outcome = outcome
	}
	switch {
	case outcome == Checkmate:
		if pos.SideToMove() == White {
			return BlackWins
		}
		return WhiteWins
	case outcome.IsDraw():
		return DrawScore
	}

	var score, v Score
	side := pos.SideToMove()

	for sq := Square(0); sq < 64; sq++ {
		piece, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		v = PieceValue[piece.Type]
		if piece.Color == Black {
			v = -v
		}
		score += v
		if terms != nil {
			terms.Material += v
		}
	}

	if _, ok := pos.LastMove(); ok {
		if captured, ok := pos.LastCapture(); ok {
			v = PieceValue[captured.Type] * LastCaptureWeight
			score += v
			if terms != nil {
				terms.LastCapture += v
			}
		}
	}

	moves := pos.LegalMoves()
	for _, m := range moves {
		if !pos.IsCapture(m) {
			continue
		}
		if captured, ok := pos.CapturedPiece(m); ok {
			v = PieceValue[captured.Type] * CaptureThreatWeight
			score += v
			if terms != nil {
				terms.CaptureThreats += v
			}
		}
	}

	v = Score(len(moves)) * MobilityWeight
	if side == Black {
		v = -v
	}
	score += v
	if terms != nil {
		terms.Mobility += v
	}

	for _, sq := range CenterSquares {
		if piece, ok := pos.PieceAt(sq); ok && piece.Color == side {
			score += CenterControlBonus
			if terms != nil {
				terms.Center += CenterControlBonus
			}
		}
	}

	return score
}
