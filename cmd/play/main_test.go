package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"minimax-chess/config"
	"minimax-chess/engine"
)

func runGame(t *testing.T, fen string, human engine.Color, depth int, input string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Depth = depth
	var out bytes.Buffer
	g, err := newGame(cfg, zerolog.Nop(), fen, human, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if err := g.play(context.Background()); err != nil {
		t.Fatalf("play: %v", err)
	}
	return out.String()
}

func TestEngineDeliversMate(t *testing.T) {
	out := runGame(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", engine.Black, 2, "")
	for _, want := range []string{"Engine (White) played: Ra8#", "Checkmate! White wins!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHumanInput(t *testing.T) {
	out := runGame(t, "", engine.White, 1, "e2e5\nbanana\nNf3\nquit\n")
	if strings.Count(out, "is not a legal move here") != 2 {
		t.Fatalf("expected two rejected inputs, got:\n%s", out)
	}
	if !strings.Contains(out, "Engine (Black) played:") {
		t.Fatalf("expected an engine reply after Nf3, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "Game abandoned.\n") {
		t.Fatalf("expected the game to be abandoned, got:\n%s", out)
	}
}

func TestBoardRendering(t *testing.T) {
	out := runGame(t, "", engine.White, 1, "")
	lines := strings.Split(out, "\n")
	var board []string
	for _, l := range lines {
		if strings.HasPrefix(l, "8 ") || strings.HasPrefix(l, "1 ") {
			board = append(board, l)
		}
	}
	if len(board) < 2 {
		t.Fatalf("board not rendered:\n%s", out)
	}
	if !strings.Contains(board[0], "♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜") || !strings.Contains(board[1], "♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖") {
		t.Fatalf("unexpected back ranks:\n%s\n%s", board[0], board[1])
	}
}

func TestResultMessages(t *testing.T) {
	cases := []struct {
		fen  string
		want string
	}{
		{"7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", "Checkmate! White wins!"},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "Stalemate! The game is a draw."},
		{"8/8/4k3/8/8/4K3/8/8 w - - 0 1", "Draw by insufficient material."},
		{"8/8/4k3/8/8/4K3/4R3/8 w - - 150 90", "Draw by 75-move rule."},
	}
	for _, tc := range cases {
		out := runGame(t, tc.fen, engine.White, 1, "")
		if !strings.HasSuffix(out, tc.want+"\n") {
			t.Errorf("%s: expected %q, got:\n%s", tc.fen, tc.want, out)
		}
	}
}
