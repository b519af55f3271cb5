package engine

import "github.com/rs/zerolog"

// SearchStats counts the work done by one search.
type SearchStats struct {
	Nodes       uint64
	Evaluations uint64
	// BetaCutoffs are siblings skipped at maximizing nodes, AlphaCutoffs at
	// minimizing nodes.
	BetaCutoffs  uint64
	AlphaCutoffs uint64
}

// Cutoffs is the total number of pruned sibling loops.
func (s SearchStats) Cutoffs() uint64 { return s.BetaCutoffs + s.AlphaCutoffs }

// MarshalZerologObject lets stats be attached to a log event with Object.
func (s SearchStats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("evals", s.Evaluations).
		Uint64("beta_cutoffs", s.BetaCutoffs).
		Uint64("alpha_cutoffs", s.AlphaCutoffs)
}
