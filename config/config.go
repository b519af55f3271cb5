// Package config gathers engine settings from defaults, a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"minimax-chess/engine"
	"minimax-chess/rules"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Depth        int
	Backend      string
	LogLevel     string
	LogFormat    string
	VerifyUnmake bool
}

func Default() Config {
	return Config{
		Depth:     engine.DefaultDepth,
		Backend:   rules.Goose,
		LogLevel:  zerolog.InfoLevel.String(),
		LogFormat: FormatConsole,
	}
}

// Load reads envFile, if it exists, into the environment without overriding
// variables that are already set, then applies the environment to the
// defaults. An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
	}
	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ENGINE_DEPTH"); ok {
		depth, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: ENGINE_DEPTH %q: %v", ErrInvalid, v, err)
		}
		c.Depth = depth
	}
	if v, ok := lookup("ENGINE_BACKEND"); ok {
		c.Backend = strings.TrimSpace(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("ENGINE_VERIFY_UNMAKE"); ok {
		verify, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: ENGINE_VERIFY_UNMAKE %q: %v", ErrInvalid, v, err)
		}
		c.VerifyUnmake = verify
	}
	return nil
}

// RegisterFlags binds the settings to flags, using the current values as
// defaults. Call Validate after flags.Parse.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Depth, "depth", c.Depth, "search depth in plies")
	flags.StringVar(&c.Backend, "backend", c.Backend, "rules backend: "+strings.Join(rules.Backends(), ", "))
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn, error or disabled")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "console or json")
	flags.BoolVar(&c.VerifyUnmake, "verify-unmake", c.VerifyUnmake, "check that every unmake restores the position")
}

func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalid, c.Depth)
	}
	if !slices.Contains(rules.Backends(), c.Backend) {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	if c.LogFormat != FormatConsole && c.LogFormat != FormatJSON {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Logger builds a logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.LogFormat == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SessionOptions carries the settings a rules.Session needs.
func (c Config) SessionOptions(log zerolog.Logger) rules.Options {
	return rules.Options{Log: log, VerifyUnmake: c.VerifyUnmake}
}
