package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"minimax-chess/config"
	"minimax-chess/engine"
	"minimax-chess/rules"
)

type iteration struct {
	index   int
	move    string
	score   engine.Score
	stats   engine.SearchStats
	elapsed time.Duration
}

type benchFlags struct {
	repeat, parallel       int
	fen                    string
	cpuProfile, memProfile string
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// --- Flags ---
	var bf benchFlags
	cfg.RegisterFlags(flag.CommandLine)
	flag.IntVar(&bf.repeat, "repeat", 1, "number of searches to run")
	flag.StringVar(&bf.fen, "fen", "", "FEN to search (empty = startpos)")
	flag.IntVar(&bf.parallel, "parallel", 1, "number of searches to run at once")
	flag.StringVar(&bf.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&bf.memProfile, "memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.Logger(os.Stderr)
	if err := run(context.Background(), cfg, logger, bf, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("searchbench-failed")
		os.Exit(1)
	}
}

// run returns instead of exiting so the profiles are flushed on every path.
func run(ctx context.Context, cfg config.Config, logger zerolog.Logger, bf benchFlags, out io.Writer) error {
	if bf.parallel < 1 {
		return fmt.Errorf("parallel must be positive, got %d", bf.parallel)
	}

	// --- Optional CPU profiling setup ---
	if bf.cpuProfile != "" {
		cpuFile, err := os.Create(bf.cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := rules.StartFEN
	if bf.fen != "" {
		fen = bf.fen
	}

	fmt.Fprintf(out, "searchbench: fen=%q depth=%d repeat=%d parallel=%d backend=%s\n",
		fen, cfg.Depth, bf.repeat, bf.parallel, cfg.Backend)

	startAll := time.Now()
	results, err := runSearches(ctx, cfg, logger, fen, bf.repeat, bf.parallel)
	if err != nil {
		return err
	}
	var nodes uint64
	for _, r := range results {
		nodes += r.stats.Nodes
		fmt.Fprintf(out, "iteration %d: bestmove %s  score=%.2f  nodes=%d  cutoffs=%d  time=%v\n",
			r.index+1, r.move, float64(r.score), r.stats.Nodes, r.stats.Cutoffs(), r.elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Fprintf(out, "total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, nodes, float64(nodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if bf.memProfile != "" {
		f, err := os.Create(bf.memProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}
	return nil
}

// runSearches runs repeat searches of fen, at most parallel at a time. Each
// search gets its own session.
func runSearches(ctx context.Context, cfg config.Config, logger zerolog.Logger, fen string, repeat, parallel int) ([]iteration, error) {
	results := make([]iteration, repeat)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < repeat; i++ {
		i := i
		g.Go(func() error {
			session, err := rules.NewSession(cfg.Backend, fen, cfg.SessionOptions(logger.With().Int("iteration", i+1).Logger()))
			if err != nil {
				return err
			}
			res, err := session.Search(ctx, cfg.Depth)
			if err != nil {
				return fmt.Errorf("iteration %d: %w", i+1, err)
			}
			results[i] = iteration{index: i, move: res.Move, score: res.Score, stats: res.Stats, elapsed: res.Elapsed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
