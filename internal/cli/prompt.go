package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notabot-mateo/chess-tools/internal/analysis"
	"github.com/notabot-mateo/chess-tools/internal/board"
	"github.com/notabot-mateo/chess-tools/internal/legality"
)

const promptUsage = `commands:
  fen <FEN>         load a position (no argument reloads startpos)
  board             show the position
  analyze <square>  attackers, defenders, hanging/protected, exchange
  move <uci-move>   safety report for a move, position unchanged
  play <uci-move>   make a move and keep the new position
  hanging <color>   hanging and undefended pieces
  tactics <color>   pins, skewers, forks, discoveries, fork chances
  survey            safety report for every legal move
  all               position overview
  json on|off       toggle JSON output
  help              this text
  quit              leave
`

// Prompt runs the interactive loop: one position held between commands,
// line-oriented dispatch, errors reported inline without ending the
// session.
func (a *App) Prompt(in io.Reader) error {
	p, err := a.position()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "chessvision - type help for commands")
	fmt.Fprint(a.out, "> ")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Fprint(a.out, "> ")
			continue
		}

		cmd := strings.ToLower(fields[0])
		args := fields[1:]
		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprint(a.out, promptUsage)
		case "fen":
			fen := board.StartFEN
			if len(args) > 0 {
				fen = strings.Join(args, " ")
			}
			next, err := board.ParseFEN(fen)
			if err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
				break
			}
			p = next
			writeBoard(a.out, p, a.prefs.UnicodeBoard)
		case "play":
			if len(args) < 1 {
				fmt.Fprintln(a.out, "usage: play <uci-move>")
				break
			}
			next, err := playMove(p, args[0])
			if err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
				break
			}
			p = next
			writeBoard(a.out, p, a.prefs.UnicodeBoard)
		case "json":
			if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
				fmt.Fprintln(a.out, "usage: json on|off")
				break
			}
			a.cfg.JSON = args[0] == "on"
		case "board", "analyze", "move", "hanging", "tactics", "survey", "all", "stats":
			// The batch dispatcher covers these; pin it to the held
			// position instead of re-parsing the configured FEN.
			a.cfg.FEN = p.ToFEN()
			if err := a.Run(fields); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", cmd)
		}
		fmt.Fprint(a.out, "> ")
	}
	return scanner.Err()
}

// playMove validates a user move against the oracle and applies it to a
// copy, so a rejected move leaves the session position untouched.
func playMove(p *board.Position, moveStr string) (*board.Position, error) {
	m, legal, err := legality.ParseUserMove(p, moveStr)
	if err != nil {
		return nil, err
	}
	if !legal {
		return nil, fmt.Errorf("%w: %s is not legal here", analysis.ErrInvalidMove, moveStr)
	}
	next := p.Copy()
	next.Apply(m)
	return next, nil
}
