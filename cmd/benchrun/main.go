// Command benchrun prints package benchmarks, a perft ladder and search
// timings for every rules backend. Usage: go run ./cmd/benchrun
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"minimax-chess/rules"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// section is a titled group of go commands. A required section stops the
// run when one of its commands fails.
type section struct {
	title    string
	header   string
	required bool
	commands [][]string
}

func plan(backends []string) []section {
	perft := section{
		title:  "Perft Performance:",
		header: "TEST \t\tBackend \tDepth \t\tNodes \t\tTime \tNPS",
	}
	search := section{title: "Search Performance:"}
	for _, backend := range backends {
		for _, depth := range []string{"3", "4"} {
			perft.commands = append(perft.commands, []string{"run", "./cmd/perft", "-backend", backend, "-depth", depth, "-label", "Initial"})
		}
		perft.commands = append(perft.commands, []string{"run", "./cmd/perft", "-backend", backend, "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete"})
		search.commands = append(search.commands, []string{"run", "./cmd/searchbench", "-backend", backend, "-depth", "3", "-repeat", "4", "-parallel", "2"})
	}
	return []section{
		{
			title:    "Benchmarks:",
			header:   "Columns: BENCHMARK  N  ns/op  B/op  allocs/op",
			required: true,
			commands: [][]string{{"test", "./engine", "./rules", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"}},
		},
		perft,
		search,
	}
}

// goRunner runs one go command with its output going to out.
type goRunner func(ctx context.Context, out io.Writer, args []string) error

func runGo(ctx context.Context, out io.Writer, args []string) error {
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Env = os.Environ()
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

// execute runs every section and returns the exit code of the first failed
// command, or 0.
func execute(ctx context.Context, sections []section, out io.Writer, runner goRunner) int {
	code := 0
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, s.title)
		if s.header != "" {
			fmt.Fprintln(out, s.header)
		}
		for _, args := range s.commands {
			err := runner(ctx, out, args)
			if err == nil {
				continue
			}
			c := 1
			var ee *exec.ExitError
			if errors.As(err, &ee) {
				c = ee.ExitCode()
			} else {
				fmt.Fprintf(out, "go %v: %v\n", args, err)
			}
			if code == 0 {
				code = c
			}
			if s.required {
				return code
			}
		}
	}
	return code
}

func main() {
	os.Exit(execute(context.Background(), plan(rules.Backends()), os.Stdout, runGo))
}
