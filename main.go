// chessvision is the interactive prompt: load a FEN, then query the
// position conversationally. For scripted one-shot queries use
// cmd/chessvision-cli.
package main

import (
	"flag"
	"os"

	"github.com/notabot-mateo/chess-tools/internal/cli"
)

var (
	fen      = flag.String("fen", "", "FEN of the starting position (default: startpos)")
	noCache  = flag.Bool("no-cache", false, "bypass the report cache")
	cacheDir = flag.String("cache-dir", "", "override the cache directory")
)

func main() {
	flag.Parse()

	app := cli.NewApp(os.Stdout, cli.Config{
		FEN:      *fen,
		NoCache:  *noCache,
		CacheDir: *cacheDir,
	})
	defer app.Close()

	if err := app.Prompt(os.Stdin); err != nil {
		cli.Fatal(err)
	}
}
