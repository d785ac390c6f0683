// chessvision-cli runs one query command against a FEN and exits, the
// batch counterpart of the interactive chessvision binary.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/notabot-mateo/chess-tools/internal/cli"
)

var (
	fen        = flag.String("fen", "", "FEN of the position to analyze (default: startpos)")
	jsonOut    = flag.Bool("json", false, "machine-readable output")
	svgPath    = flag.String("svg", "", "write an SVG diagram to this path (\"auto\" for the data directory)")
	pngPath    = flag.String("png", "", "write a PNG diagram to this path (\"auto\" for the data directory)")
	size       = flag.Int("size", 0, "diagram edge length in pixels")
	flipped    = flag.Bool("flipped", false, "draw diagrams from Black's side")
	noCache    = flag.Bool("no-cache", false, "bypass the report cache")
	cacheDir   = flag.String("cache-dir", "", "override the cache directory")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Profiling via flag or environment, whichever is set.
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	app := cli.NewApp(os.Stdout, cli.Config{
		FEN:         *fen,
		JSON:        *jsonOut,
		SVGPath:     *svgPath,
		PNGPath:     *pngPath,
		DiagramSize: *size,
		Flipped:     *flipped,
		NoCache:     *noCache,
		CacheDir:    *cacheDir,
	})
	if err := app.Run(flag.Args()); err != nil {
		app.Close()
		cli.Fatal(err)
	}
	app.Close()
}
