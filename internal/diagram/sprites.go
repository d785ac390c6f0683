// Package diagram renders positions as SVG and PNG board images.
package diagram

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// pieceFiles maps pieces to their asset file paths.
var pieceFiles = map[board.Piece]string{
	board.WhitePawn:   "assets/pieces/wP.svg",
	board.WhiteKnight: "assets/pieces/wN.svg",
	board.WhiteBishop: "assets/pieces/wB.svg",
	board.WhiteRook:   "assets/pieces/wR.svg",
	board.WhiteQueen:  "assets/pieces/wQ.svg",
	board.WhiteKing:   "assets/pieces/wK.svg",
	board.BlackPawn:   "assets/pieces/bP.svg",
	board.BlackKnight: "assets/pieces/bN.svg",
	board.BlackBishop: "assets/pieces/bB.svg",
	board.BlackRook:   "assets/pieces/bR.svg",
	board.BlackQueen:  "assets/pieces/bQ.svg",
	board.BlackKing:   "assets/pieces/bK.svg",
}

// pieceViewBox is the design size of every piece asset.
const pieceViewBox = 64

// spriteSet rasterizes piece sprites once per pixel size.
type spriteSet struct {
	pieces map[board.Piece]*image.RGBA
	size   int
}

// newSpriteSet renders every piece asset at the given square size.
func newSpriteSet(size int) (*spriteSet, error) {
	ss := &spriteSet{
		pieces: make(map[board.Piece]*image.RGBA, len(pieceFiles)),
		size:   size,
	}

	for piece, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading piece asset %s: %w", path, err)
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing piece asset %s: %w", path, err)
		}

		icon.SetTarget(0, 0, float64(size), float64(size))

		rgba := image.NewRGBA(image.Rect(0, 0, size, size))
		scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(size, size, scanner)
		icon.Draw(raster, 1.0)

		ss.pieces[piece] = rgba
	}
	return ss, nil
}

// get returns the rasterized sprite for a piece, nil for NoPiece.
func (ss *spriteSet) get(p board.Piece) *image.RGBA {
	return ss.pieces[p]
}

// pieceMarkup returns the drawable elements of a piece asset with the
// outer svg tags stripped, for inlining into a larger SVG document.
func pieceMarkup(p board.Piece) (string, error) {
	path, ok := pieceFiles[p]
	if !ok {
		return "", fmt.Errorf("no asset for piece %v", p)
	}
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading piece asset %s: %w", path, err)
	}

	s := string(data)
	start := strings.Index(s, ">")
	end := strings.LastIndex(s, "</svg>")
	if start < 0 || end < 0 || end < start {
		return "", fmt.Errorf("piece asset %s is not a bare svg document", path)
	}
	return strings.TrimSpace(s[start+1 : end]), nil
}
