package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"minimax-chess/config"
	"minimax-chess/rules"
)

type perftFlags struct {
	fen     string
	divide  bool
	repeat  int
	label   string
	cpuProf string
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// -depth and -backend come from config.
	var pf perftFlags
	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVar(&pf.fen, "fen", rules.StartFEN, "FEN string (defaults to initial position)")
	flag.BoolVar(&pf.divide, "divide", false, "Print per-move node counts at root")
	flag.IntVar(&pf.repeat, "repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	flag.StringVar(&pf.label, "label", "", "Optional label prefix for one-line output")
	flag.StringVar(&pf.cpuProf, "cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.Logger(os.Stderr)
	if err := run(cfg, logger, pf, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("perft-failed")
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger, pf perftFlags, out io.Writer) error {
	session, err := rules.NewSession(cfg.Backend, pf.fen, cfg.SessionOptions(logger))
	if err != nil {
		return err
	}

	if pf.divide {
		moves, counts := session.Divide(cfg.Depth)
		order := make([]int, len(moves))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return moves[order[i]] < moves[order[j]] })
		var sum uint64
		for _, i := range order {
			fmt.Fprintf(out, "%s: %d\n", moves[i], counts[i])
			sum += counts[i]
		}
		fmt.Fprintf(out, "Total: %d\n", sum)
		return nil
	}

	if pf.cpuProf != "" {
		f, err := os.Create(pf.cpuProf)
		if err != nil {
			return fmt.Errorf("creating cpuprofile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < pf.repeat; i++ {
		totalNodes += session.Perft(cfg.Depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Label Backend Depth Nodes Time NPS
	fmt.Fprintf(out, "%s \t%s \t%d \t\t%d \t\t%s \t%.0f\n", pf.label, cfg.Backend, cfg.Depth, totalNodes, elapsed, nps)
	return nil
}
