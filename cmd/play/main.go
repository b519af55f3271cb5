// Command play runs a game between a human at the terminal and the engine.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
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
	color := flag.String("color", "white", "the side you play: white or black")
	fen := flag.String("fen", rules.StartFEN, "starting position")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	human := engine.White
	switch strings.ToLower(*color) {
	case "white", "w":
	case "black", "b":
		human = engine.Black
	default:
		fmt.Fprintf(os.Stderr, "unknown color %q\n", *color)
		os.Exit(2)
	}

	g, err := newGame(cfg, cfg.Logger(os.Stderr), *fen, human, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := g.play(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type game struct {
	cfg     config.Config
	session *rules.Session
	human   engine.Color
	in      *bufio.Scanner
	out     *termenv.Output
}

func newGame(cfg config.Config, log zerolog.Logger, fen string, human engine.Color, in io.Reader, out io.Writer) (*game, error) {
	session, err := rules.NewSession(cfg.Backend, fen, cfg.SessionOptions(log))
	if err != nil {
		return nil, err
	}
	return &game{
		cfg:     cfg,
		session: session,
		human:   human,
		in:      bufio.NewScanner(in),
		out:     termenv.NewOutput(out),
	}, nil
}

func (g *game) printf(format string, a ...any) { fmt.Fprintf(g.out, format, a...) }

var pieceSymbols = [7][2]string{
	engine.Pawn:   {"♙", "♟"},
	engine.Knight: {"♘", "♞"},
	engine.Bishop: {"♗", "♝"},
	engine.Rook:   {"♖", "♜"},
	engine.Queen:  {"♕", "♛"},
	engine.King:   {"♔", "♚"},
}

func (g *game) showBoard() {
	light, dark := g.out.Color("#d7c9a6"), g.out.Color("#8f7555")
	g.printf("  a b c d e f g h\n")
	for rank := 7; rank >= 0; rank-- {
		g.printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := engine.Square(rank*8 + file)
			symbol := "."
			if p, ok := g.session.PieceAt(sq); ok {
				symbol = pieceSymbols[p.Type][p.Color]
			}
			bg := dark
			if (rank+file)%2 == 1 {
				bg = light
			}
			g.printf("%s", g.out.String(symbol+" ").Background(bg))
		}
		g.printf("%d\n", rank+1)
	}
	g.printf("  a b c d e f g h\n")
}

// play alternates human and engine moves until the game ends or the human
// quits.
func (g *game) play(ctx context.Context) error {
	g.printf("Enter moves like e2e4, Nf3 or O-O. Enter 'quit' to leave.\n\n")
	for g.session.Outcome() == engine.Ongoing {
		g.showBoard()
		if g.session.SideToMove() == g.human {
			quit, err := g.humanMove()
			if err != nil || quit {
				return err
			}
			continue
		}
		if err := g.engineMove(ctx); err != nil {
			return err
		}
	}
	g.showBoard()
	g.printf("%s\n", result(g.session))
	return nil
}

func (g *game) humanMove() (quit bool, err error) {
	for {
		g.printf("%s's move: ", g.human)
		if !g.in.Scan() {
			if err := g.in.Err(); err != nil {
				return true, err
			}
			g.printf("\nGame abandoned.\n")
			return true, nil
		}
		input := strings.TrimSpace(g.in.Text())
		if strings.EqualFold(input, "quit") {
			g.printf("Game abandoned.\n")
			return true, nil
		}
		uci, err := rules.ToUCI(g.session.FEN(), input)
		if errors.Is(err, rules.ErrIllegalMove) {
			g.printf("%q is not a legal move here. Use e2e4, Nf3, O-O, etc.\n", input)
			continue
		}
		if err != nil {
			return true, err
		}
		return false, g.session.Play(uci)
	}
}

func (g *game) engineMove(ctx context.Context) error {
	g.printf("Engine is thinking...\n")
	fen := g.session.FEN()
	res, err := g.session.Search(ctx, g.cfg.Depth)
	if err != nil {
		return err
	}
	san, err := rules.ToSAN(fen, res.Move)
	if err != nil {
		return err
	}
	g.printf("Engine (%s) played: %s\n", g.human.Other(), g.out.String(san).Bold())
	g.printf("Time taken: %.2f seconds\n", res.Elapsed.Seconds())
	return g.session.Play(res.Move)
}

func result(s *rules.Session) string {
	switch o := s.Outcome(); o {
	case engine.Checkmate:
		return fmt.Sprintf("Checkmate! %s wins!", s.SideToMove().Other())
	case engine.Stalemate:
		return "Stalemate! The game is a draw."
	case engine.InsufficientMaterial:
		return "Draw by insufficient material."
	case engine.SeventyFiveMoves:
		return "Draw by 75-move rule."
	case engine.FivefoldRepetition:
		return "Draw by fivefold repetition."
	default:
		return fmt.Sprintf("Game over: %s.", o)
	}
}
