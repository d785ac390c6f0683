package diagram

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// Options control how a diagram is drawn. The zero value is usable:
// DefaultOptions fills in the standard size and theme.
type Options struct {
	// Size is the output edge length in pixels. Diagrams are square.
	Size int
	// Flipped draws the board from Black's side.
	Flipped bool
	// Coordinates adds file and rank labels along the bottom and left.
	Coordinates bool
	// Marked squares get a translucent highlight, typically hanging
	// pieces or tactical targets.
	Marked []board.Square
	Theme  *Theme
}

// DefaultOptions returns the options the command line uses unless told
// otherwise.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Coordinates: true,
		Theme:       DefaultTheme(),
	}
}

// normalized fills unset fields with defaults.
func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = 512
	}
	if o.Theme == nil {
		o.Theme = DefaultTheme()
	}
	return o
}

// squareOrigin maps a square to its top-left pixel corner.
func squareOrigin(sq board.Square, squareSize int, flipped bool) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if flipped {
		return (7 - file) * squareSize, rank * squareSize
	}
	return file * squareSize, (7 - rank) * squareSize
}

// WriteSVG writes the position as a standalone SVG document.
func WriteSVG(w io.Writer, p *board.Position, opts Options) error {
	opts = opts.normalized()
	size := opts.Size
	sqSize := size / 8
	theme := opts.Theme

	canvas := svg.New(w)
	canvas.Start(size, size)

	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := squareOrigin(sq, sqSize, opts.Flipped)
		fill := theme.LightHex
		if (sq.File()+sq.Rank())%2 == 0 {
			fill = theme.DarkHex
		}
		canvas.Rect(x, y, sqSize, sqSize, fmt.Sprintf(`fill="%s"`, fill))
	}

	for _, sq := range opts.Marked {
		x, y := squareOrigin(sq, sqSize, opts.Flipped)
		canvas.Rect(x, y, sqSize, sqSize,
			fmt.Sprintf(`fill="%s" fill-opacity="0.5"`, theme.HighlightHex))
	}

	scale := float64(sqSize) / float64(pieceViewBox)
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := p.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		markup, err := pieceMarkup(piece)
		if err != nil {
			return err
		}
		x, y := squareOrigin(sq, sqSize, opts.Flipped)
		canvas.Group(fmt.Sprintf(`transform="translate(%d,%d) scale(%g)"`, x, y, scale))
		fmt.Fprintln(canvas.Writer, markup)
		canvas.Gend()
	}

	if opts.Coordinates {
		labelStyle := fmt.Sprintf(`font-family="monospace" font-size="%d" fill="%s"`,
			sqSize/5, theme.LabelHex)
		for i := 0; i < 8; i++ {
			fileIdx, rankIdx := i, i
			if opts.Flipped {
				fileIdx, rankIdx = 7-i, 7-i
			}
			fileLabel := string(rune('a' + fileIdx))
			rankLabel := string(rune('1' + rankIdx))
			canvas.Text(i*sqSize+sqSize/16, size-sqSize/16, fileLabel, labelStyle)
			canvas.Text(sqSize/16, (7-i)*sqSize+sqSize/5, rankLabel, labelStyle)
		}
	}

	canvas.End()
	return nil
}
