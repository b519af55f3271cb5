package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENGINE_DEPTH", "ENGINE_BACKEND", "LOG_LEVEL", "LOG_FORMAT", "ENGINE_VERIFY_UNMAKE"} {
		// t.Setenv restores the original value when the test ends.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "ENGINE_DEPTH=5\nENGINE_BACKEND=dragon\nLOG_FORMAT=json\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENGINE_BACKEND", "notnil")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Depth != 5 || cfg.LogFormat != FormatJSON {
		t.Fatalf("env file values not applied: %+v", cfg)
	}
	if cfg.Backend != "notnil" {
		t.Fatalf("process environment should win over the env file, got backend %q", cfg.Backend)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"-depth", "2", "-verify-unmake"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Depth != 2 || !cfg.VerifyUnmake || cfg.Backend != "notnil" {
		t.Fatalf("flags not applied on top of the environment: %+v", cfg)
	}
}

func TestLoadRejectsMalformedEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_DEPTH", "three")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero depth", func(c *Config) { c.Depth = 0 }},
		{"unknown backend", func(c *Config) { c.Backend = "stockfish" }},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestLoggerHonorsLevelAndFormat(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = FormatJSON
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	log := cfg.Logger(&buf)
	log.Info().Msg("hidden")
	log.Warn().Int("depth", 3).Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"depth":3`) {
		t.Fatalf("expected a JSON warn record, got %s", out)
	}
}
