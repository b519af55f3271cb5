package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"minimax-chess/config"
)

func TestBackendFromEnvironment(t *testing.T) {
	t.Setenv("ENGINE_BACKEND", "notnil")
	t.Setenv("ENGINE_DEPTH", "2")
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var out bytes.Buffer
	if err := run(cfg, zerolog.Nop(), perftFlags{fen: "startpos", repeat: 1, label: "Initial"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	fields := strings.Fields(out.String())
	if len(fields) < 4 || fields[1] != "notnil" || fields[2] != "2" || fields[3] != "400" {
		t.Fatalf("unexpected perft line %q", out.String())
	}
}

func TestDivideFlags(t *testing.T) {
	cfg := config.Default()
	flags := flag.NewFlagSet("perft", flag.ContinueOnError)
	cfg.RegisterFlags(flags)
	if err := flags.Parse([]string{"-backend", "dragon", "-depth", "1"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	if err := run(cfg, zerolog.Nop(), perftFlags{fen: "startpos", divide: true}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "e2e4: 1\n") || !strings.HasSuffix(out.String(), "Total: 20\n") {
		t.Fatalf("unexpected divide output:\n%s", out.String())
	}
}

func TestUnknownBackendFails(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "stockfish"
	if err := run(cfg, zerolog.Nop(), perftFlags{fen: "startpos", repeat: 1}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected an error for an unknown backend")
	}
}
