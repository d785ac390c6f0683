// Package cli implements the chessvision command surface: batch commands
// over a FEN given on the command line, and an interactive prompt that
// holds a position between queries. Commands call into internal/analysis
// and never compute chess facts themselves.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/notabot-mateo/chess-tools/internal/board"
	"github.com/notabot-mateo/chess-tools/internal/storage"
)

// Config carries the flag-level settings shared by every command.
type Config struct {
	// FEN of the position to analyze. Defaults to the starting position.
	FEN string
	// JSON switches machine-readable output on.
	JSON bool
	// SVGPath / PNGPath, when set, additionally write a board diagram.
	SVGPath string
	PNGPath string
	// DiagramSize is the diagram edge length in pixels; 0 means the
	// stored preference.
	DiagramSize int
	// Flipped draws diagrams from Black's side.
	Flipped bool
	// NoCache bypasses the report cache entirely.
	NoCache bool
	// CacheDir overrides the platform data directory. Mostly for tests.
	CacheDir string
}

// App binds a configuration to an output stream and, unless caching is
// off, the on-disk report store.
type App struct {
	out   io.Writer
	cfg   Config
	store *storage.Storage
	prefs *storage.Preferences
}

// NewApp opens the report store and loads preferences. A store that fails
// to open degrades to uncached operation with a logged warning; analysis
// never depends on the cache.
func NewApp(out io.Writer, cfg Config) *App {
	a := &App{out: out, cfg: cfg, prefs: storage.DefaultPreferences()}
	if cfg.NoCache {
		return a
	}

	var (
		store *storage.Storage
		err   error
	)
	if cfg.CacheDir != "" {
		store, err = storage.NewStorageIn(cfg.CacheDir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("report cache unavailable: %v", err)
		return a
	}
	a.store = store

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Printf("could not load preferences: %v", err)
		return a
	}
	a.prefs = prefs
	if !a.cfg.JSON && prefs.Format == storage.FormatJSON {
		a.cfg.JSON = true
	}
	return a
}

// Close stamps the preferences and releases the report store.
func (a *App) Close() {
	if a.store == nil {
		return
	}
	a.prefs.LastUsed = time.Now()
	if err := a.store.SavePreferences(a.prefs); err != nil {
		log.Printf("saving preferences: %v", err)
	}
	if err := a.store.Close(); err != nil {
		log.Printf("closing report cache: %v", err)
	}
}

// position parses the configured FEN, falling back to the stored default
// and then the standard starting position.
func (a *App) position() (*board.Position, error) {
	fen := a.cfg.FEN
	if fen == "" {
		fen = a.prefs.DefaultFEN
	}
	if fen == "" {
		fen = board.StartFEN
	}
	p, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing FEN: %w", err)
	}
	return p, nil
}

// Run dispatches one batch command. The first argument is the command
// name, the rest are its operands.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd := strings.ToLower(args[0])
	if cmd == "help" {
		fmt.Fprint(a.out, usage)
		return nil
	}
	if cmd == "stats" {
		return a.cmdStats()
	}

	p, err := a.position()
	if err != nil {
		return err
	}

	start := time.Now()
	var hit bool
	switch cmd {
	case "board":
		err = a.cmdBoard(p)
	case "analyze":
		if len(args) < 2 {
			return fmt.Errorf("usage: analyze <square>")
		}
		hit, err = a.cmdAnalyze(p, args[1])
	case "move":
		if len(args) < 2 {
			return fmt.Errorf("usage: move <uci-move>")
		}
		hit, err = a.cmdMove(p, args[1])
	case "hanging":
		if len(args) < 2 {
			return fmt.Errorf("usage: hanging <white|black>")
		}
		hit, err = a.cmdHanging(p, args[1])
	case "tactics":
		if len(args) < 2 {
			return fmt.Errorf("usage: tactics <white|black>")
		}
		hit, err = a.cmdTactics(p, args[1])
	case "survey":
		err = a.cmdSurvey(p)
	case "all":
		hit, err = a.cmdAll(p)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	if err != nil {
		return err
	}

	if a.store != nil {
		if rerr := a.store.RecordQuery(cmd, hit, time.Since(start)); rerr != nil {
			log.Printf("recording query stats: %v", rerr)
		}
	}
	return nil
}

// cached runs LoadReport/compute/SaveReport around a report payload. The
// compute function fills dst; on a cache hit dst is populated from the
// stored JSON instead. Reports key by command + operand + exact FEN.
func (a *App) cached(kind, fen string, dst any, compute func() error) (bool, error) {
	if a.store != nil {
		hit, err := a.store.LoadReport(kind, fen, dst)
		if err != nil {
			log.Printf("reading report cache: %v", err)
		} else if hit {
			return true, nil
		}
	}
	if err := compute(); err != nil {
		return false, err
	}
	if a.store != nil {
		if err := a.store.SaveReport(kind, fen, dst); err != nil {
			log.Printf("writing report cache: %v", err)
		}
	}
	return false, nil
}

// emitJSON writes v as indented JSON, the batch output contract for
// scripted consumers.
func (a *App) emitJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return board.White, nil
	case "black", "b":
		return board.Black, nil
	}
	return board.NoColor, fmt.Errorf("unknown color %q (want white or black)", s)
}

const usage = `chessvision - positional fact queries over a FEN

Commands:
  board               print the position (add -svg/-png for a diagram)
  analyze <square>    attackers, defenders, hanging/protected, exchange
  move <uci-move>     safety report for one move (e.g. move g1f3)
  hanging <color>     hanging and undefended pieces of one side
  tactics <color>     pins, skewers, forks, discoveries, fork chances
  survey              safety report for every legal move
  all                 position overview: both sides' hanging + tactics
  stats               cache and usage counters
  help                this text

Flags (before the command):
  -fen FEN            position to analyze (default: startpos)
  -json               machine-readable output
  -svg PATH           write an SVG diagram ("auto" for the data directory)
  -png PATH           write a PNG diagram ("auto" for the data directory)
  -size N             diagram edge length in pixels
  -flipped            draw diagrams from Black's side
  -no-cache           bypass the report cache
`

// Fatal prints err the way the binaries report command failures.
func Fatal(err error) {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	log.Fatalf("chessvision: %v", err)
}
