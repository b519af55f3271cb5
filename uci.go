package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"minimax-chess/config"
	"minimax-chess/engine"
	"minimax-chess/rules"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	u := newUCI(cfg, cfg.Logger(os.Stderr), os.Stdout)
	if err := u.loop(context.Background(), os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type uci struct {
	cfg config.Config
	log zerolog.Logger
	out io.Writer

	session *rules.Session
	fen     string
	moves   []string
}

func newUCI(cfg config.Config, log zerolog.Logger, out io.Writer) *uci {
	u := &uci{cfg: cfg, log: log, out: out}
	u.setPosition(rules.StartFEN, nil)
	return u
}

func (u *uci) println(a ...any) { fmt.Fprintln(u.out, a...) }

// setPosition replaces the session with fen plus moves. A move that is not
// legal is reported and the moves after it are dropped.
func (u *uci) setPosition(fen string, moves []string) {
	session, err := rules.NewSession(u.cfg.Backend, fen, u.cfg.SessionOptions(u.log))
	if err != nil {
		u.println("info string Invalid position:", err)
		return
	}
	u.session, u.fen, u.moves = session, fen, nil
	for _, m := range moves {
		m = strings.ToLower(m)
		if err := u.session.Play(m); err != nil {
			u.println("info string Move", m, "not found for position", u.session.FEN())
			return
		}
		u.moves = append(u.moves, m)
	}
}

func (u *uci) loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name MinimaxChess")
			u.println("id author MinimaxChess developers")
			u.println("option name Depth type spin default", u.cfg.Depth, "min 1 max 8")
			u.println("option name Backend type combo default", u.cfg.Backend, "var "+strings.Join(rules.Backends(), " var "))
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.setPosition(rules.StartFEN, nil)
		case "position":
			u.position(tokens[1:])
		case "go":
			u.goCommand(ctx, tokens[1:])
		case "eval":
			for _, l := range strings.Split(u.session.Evaluate().String(), "\n") {
				u.println("info string", l)
			}
		case "setoption":
			u.setOption(tokens[1:])
		case "stop":
			// Searches run to completion before the next command is read.
		case "quit":
			return nil
		default:
			u.println("info string Unknown command:", line)
		}
	}
	return scanner.Err()
}

func (u *uci) position(args []string) {
	if len(args) == 0 {
		u.println("info string Malformed position command")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = rules.StartFEN
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		if i == 0 {
			u.println("info string Invalid fen position")
			return
		}
		fen, rest = strings.Join(rest[:i], " "), rest[i:]
	default:
		u.println("info string Invalid position subcommand")
		return
	}
	var moves []string
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		moves = rest[1:]
	}
	u.setPosition(fen, moves)
}

func (u *uci) goCommand(ctx context.Context, args []string) {
	depth := u.cfg.Depth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				u.println("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil || d < 1 {
				u.println("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = d
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes", "mate":
			// Fixed-depth search only; the value is skipped.
			i++
		case "infinite", "ponder":
		default:
			u.println("info string Unknown go subcommand", args[i])
		}
	}

	res, err := u.session.Search(ctx, depth)
	if errors.Is(err, rules.ErrGameOver) {
		u.println("info string", err)
		u.println("bestmove (none)")
		return
	}
	if err != nil && res.Move == "" {
		u.println("info string Search failed:", err)
		u.println("bestmove (none)")
		return
	}

	score := res.Score
	if u.session.SideToMove() == engine.Black {
		score = -score
	}
	ms := res.Elapsed.Milliseconds()
	var nps int64
	if res.Elapsed > 0 {
		nps = int64(float64(res.Stats.Nodes) / res.Elapsed.Seconds())
	}
	u.println(fmt.Sprintf("info depth %d score cp %d nodes %d time %d nps %d pv %s",
		res.Depth, score.Centipawns(), res.Stats.Nodes, ms, nps, res.Move))
	u.println("bestmove", res.Move)
}

// setOption handles "setoption name <id> value <x>".
func (u *uci) setOption(args []string) {
	var name, value []string
	target := &name
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			*target = append(*target, tok)
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "depth":
		d, err := strconv.Atoi(strings.Join(value, ""))
		if err != nil || d < 1 {
			u.println("info string Malformed setoption value for Depth")
			return
		}
		u.cfg.Depth = d
	case "backend":
		next := u.cfg
		next.Backend = strings.ToLower(strings.Join(value, ""))
		if err := next.Validate(); err != nil {
			u.println("info string", err)
			return
		}
		u.cfg = next
		u.setPosition(u.fen, u.moves)
	default:
		u.println("info string Unknown option", strings.Join(name, " "))
	}
}
