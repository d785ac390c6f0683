package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/notabot-mateo/chess-tools/internal/analysis"
	"github.com/notabot-mateo/chess-tools/internal/board"
	"github.com/notabot-mateo/chess-tools/internal/diagram"
	"github.com/notabot-mateo/chess-tools/internal/legality"
	"github.com/notabot-mateo/chess-tools/internal/storage"
)

func (a *App) cmdBoard(p *board.Position) error {
	if a.cfg.JSON {
		if err := a.emitJSON(map[string]string{
			"fen":          p.ToFEN(),
			"side_to_move": colorName(p.SideToMove),
		}); err != nil {
			return err
		}
	} else {
		writeBoard(a.out, p, a.prefs.UnicodeBoard)
	}
	return a.writeDiagrams(p)
}

// writeDiagrams produces the -svg/-png side outputs, marking every
// hanging piece of either color.
func (a *App) writeDiagrams(p *board.Position) error {
	if a.cfg.SVGPath == "" && a.cfg.PNGPath == "" {
		return nil
	}

	opts := diagram.DefaultOptions()
	opts.Flipped = a.cfg.Flipped
	if a.cfg.DiagramSize > 0 {
		opts.Size = a.cfg.DiagramSize
	} else if a.prefs.DiagramSize > 0 {
		opts.Size = a.prefs.DiagramSize
	}
	for _, c := range []board.Color{board.White, board.Black} {
		hanging, err := analysis.FindHanging(p, c)
		if err != nil {
			return err
		}
		opts.Marked = append(opts.Marked, hanging...)
	}

	if a.cfg.SVGPath != "" {
		path, err := resolveDiagramPath(a.cfg.SVGPath, "board.svg")
		if err != nil {
			return err
		}
		if err := writeDiagramFile(path, p, opts, diagram.WriteSVG); err != nil {
			return fmt.Errorf("writing SVG diagram: %w", err)
		}
		fmt.Fprintf(a.out, "diagram written to %s\n", path)
	}
	if a.cfg.PNGPath != "" {
		path, err := resolveDiagramPath(a.cfg.PNGPath, "board.png")
		if err != nil {
			return err
		}
		if err := writeDiagramFile(path, p, opts, diagram.WritePNG); err != nil {
			return fmt.Errorf("writing PNG diagram: %w", err)
		}
		fmt.Fprintf(a.out, "diagram written to %s\n", path)
	}
	return nil
}

// resolveDiagramPath expands the "auto" shorthand to a file in the data
// directory's diagram folder.
func resolveDiagramPath(path, name string) (string, error) {
	if path != "auto" {
		return path, nil
	}
	dir, err := storage.GetDiagramDir()
	if err != nil {
		return "", fmt.Errorf("resolving diagram directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func writeDiagramFile(path string, p *board.Position, opts diagram.Options,
	render func(w io.Writer, p *board.Position, opts diagram.Options) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f, p, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *App) cmdAnalyze(p *board.Position, sqStr string) (bool, error) {
	sq, err := board.ParseSquare(sqStr)
	if err != nil {
		return false, err
	}

	var view squareView
	hit, err := a.cached("analyze:"+sq.String(), p.ToFEN(), &view, func() error {
		report, err := analysis.AnalyzeSquare(p, sq)
		if err != nil {
			return err
		}
		view = *newSquareView(report)
		return nil
	})
	if err != nil {
		return false, err
	}

	if a.cfg.JSON {
		return hit, a.emitJSON(&view)
	}
	writeSquareText(a.out, &view)
	return hit, nil
}

func (a *App) cmdMove(p *board.Position, moveStr string) (bool, error) {
	var view moveView
	hit, err := a.cached("move:"+moveStr, p.ToFEN(), &view, func() error {
		m, legal, err := legality.ParseUserMove(p, moveStr)
		if err != nil {
			return err
		}
		report, err := analysis.AnalyzeMove(p, analysis.CandidateMove{Move: m, Legal: legal})
		if err != nil {
			return err
		}
		view = *newMoveView(report)
		return nil
	})
	if err != nil {
		return false, err
	}

	if a.cfg.JSON {
		return hit, a.emitJSON(&view)
	}
	writeMoveText(a.out, &view)
	return hit, nil
}

func (a *App) cmdHanging(p *board.Position, colorStr string) (bool, error) {
	c, err := parseColor(colorStr)
	if err != nil {
		return false, err
	}

	var view hangingView
	hit, err := a.cached("hanging:"+colorName(c), p.ToFEN(), &view, func() error {
		v, err := newHangingView(p, c)
		if err != nil {
			return err
		}
		view = *v
		return nil
	})
	if err != nil {
		return false, err
	}

	if a.cfg.JSON {
		return hit, a.emitJSON(&view)
	}
	writeHangingText(a.out, &view)
	return hit, nil
}

func (a *App) cmdTactics(p *board.Position, colorStr string) (bool, error) {
	c, err := parseColor(colorStr)
	if err != nil {
		return false, err
	}

	var view tacticsView
	hit, err := a.cached("tactics:"+colorName(c), p.ToFEN(), &view, func() error {
		v, err := newTacticsView(p, c)
		if err != nil {
			return err
		}
		view = *v
		return nil
	})
	if err != nil {
		return false, err
	}

	if a.cfg.JSON {
		return hit, a.emitJSON(&view)
	}
	writeTacticsText(a.out, &view)
	return hit, nil
}

// cmdSurvey runs the move analyzer over every legal move. Never cached:
// the oracle round-trip dominates and the per-move reports are small.
func (a *App) cmdSurvey(p *board.Position) error {
	moves, err := legality.LegalMoves(p)
	if err != nil {
		return err
	}

	entries := make([]surveyEntry, 0, len(moves))
	for _, m := range moves {
		report, err := analysis.AnalyzeMove(p, analysis.CandidateMove{Move: m, Legal: true})
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", m, err)
		}
		e := surveyEntry{
			Move:         m.String(),
			GivesCheck:   report.GivesCheck,
			Recapture:    report.Recapture,
			Exchange:     report.Exchange,
			NewlyHanging: len(report.NewlyHanging),
			Warnings:     len(report.Warnings),
		}
		if report.Captured != board.NoPiece {
			e.Captures = report.Captured.String()
		}
		entries = append(entries, e)
	}

	if a.cfg.JSON {
		return a.emitJSON(entries)
	}
	writeSurveyText(a.out, entries)
	return nil
}

func (a *App) cmdAll(p *board.Position) (bool, error) {
	var view allView
	hit, err := a.cached("all", p.ToFEN(), &view, func() error {
		white, err := newHangingView(p, board.White)
		if err != nil {
			return err
		}
		black, err := newHangingView(p, board.Black)
		if err != nil {
			return err
		}
		tactics, err := newTacticsView(p, p.SideToMove)
		if err != nil {
			return err
		}
		view = allView{
			FEN:          p.ToFEN(),
			SideToMove:   colorName(p.SideToMove),
			WhiteHanging: white,
			BlackHanging: black,
			Tactics:      tactics,
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if a.cfg.JSON {
		return hit, a.emitJSON(&view)
	}
	writeBoard(a.out, p, a.prefs.UnicodeBoard)
	fmt.Fprintln(a.out)
	writeHangingText(a.out, view.WhiteHanging)
	fmt.Fprintln(a.out)
	writeHangingText(a.out, view.BlackHanging)
	fmt.Fprintln(a.out)
	writeTacticsText(a.out, view.Tactics)
	return hit, nil
}

func (a *App) cmdStats() error {
	if a.store == nil {
		fmt.Fprintln(a.out, "cache disabled, no statistics")
		return nil
	}
	stats, err := a.store.LoadStats()
	if err != nil {
		return err
	}
	if a.cfg.JSON {
		return a.emitJSON(stats)
	}
	fmt.Fprintf(a.out, "queries run: %d\n", stats.QueriesRun)
	// HitRate is already a percentage.
	fmt.Fprintf(a.out, "cache hit rate: %.0f%% (%d hits, %d misses)\n",
		stats.HitRate(), stats.CacheHits, stats.CacheMisses)
	commands := make([]string, 0, len(stats.ByCommand))
	for cmd := range stats.ByCommand {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)
	for _, cmd := range commands {
		fmt.Fprintf(a.out, "  %-8s %d\n", cmd, stats.ByCommand[cmd])
	}
	return nil
}
