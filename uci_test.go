package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"minimax-chess/config"
)

func runUCI(t testing.TB, input string) string {
	t.Helper()
	var out bytes.Buffer
	u := newUCI(config.Default(), zerolog.Nop(), &out)
	if err := u.loop(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("uci loop: %v", err)
	}
	return out.String()
}

func TestUCIHandshake(t *testing.T) {
	out := runUCI(t, "uci\nisready\nquit\n")
	for _, want := range []string{"id name", "option name Depth", "option name Backend", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestUCIGoFindsMate(t *testing.T) {
	out := runUCI(t, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 2\n")
	if !strings.Contains(out, "bestmove a1a8") {
		t.Fatalf("expected bestmove a1a8, got:\n%s", out)
	}
	if !strings.Contains(out, "info depth 2 score cp 32000") {
		t.Fatalf("expected a mate score line, got:\n%s", out)
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	// After 1.f3 e5 2.g4 Black mates with Qh4.
	out := runUCI(t, "position startpos moves f2f3 e7e5 g2g4 d8h4\ngo\n")
	if !strings.Contains(out, "bestmove (none)") {
		t.Fatalf("expected no move in a mated position, got:\n%s", out)
	}
}

func TestUCIRejectsIllegalMoves(t *testing.T) {
	out := runUCI(t, "position startpos moves e2e5\nfoo\n")
	if !strings.Contains(out, "info string Move e2e5 not found") {
		t.Fatalf("expected illegal move report, got:\n%s", out)
	}
	if !strings.Contains(out, "info string Unknown command: foo") {
		t.Fatalf("expected unknown command report, got:\n%s", out)
	}
}

func TestUCISetOption(t *testing.T) {
	out := runUCI(t, strings.Join([]string{
		"setoption name Backend value dragon",
		"setoption name Backend value stockfish",
		"setoption name Depth value 1",
		"position startpos moves e2e4",
		"go",
		"eval",
	}, "\n"))
	if !strings.Contains(out, "unknown backend") {
		t.Fatalf("expected the bad backend to be rejected, got:\n%s", out)
	}
	if !strings.Contains(out, "info depth 1 ") || !strings.Contains(out, "bestmove ") {
		t.Fatalf("expected a depth 1 search, got:\n%s", out)
	}
	if !strings.Contains(out, "info string total:") {
		t.Fatalf("expected an evaluation breakdown, got:\n%s", out)
	}
}

func BenchmarkUCIGo(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		runUCI(b, "position startpos\ngo depth 3\n")
	}
}
