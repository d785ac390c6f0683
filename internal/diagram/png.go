package diagram

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// renderScale oversamples the board before the final downscale so piece
// outlines come out smooth at small sizes.
const renderScale = 3

// RenderPNG draws the position into an image of exactly opts.Size pixels
// on each edge.
func RenderPNG(p *board.Position, opts Options) (image.Image, error) {
	opts = opts.normalized()
	theme := opts.Theme
	size := opts.Size
	renderSize := size * renderScale

	big := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))

	for sq := board.A1; sq <= board.H8; sq++ {
		col, row := gridCell(sq, opts.Flipped)
		fill := theme.LightSquare
		if (sq.File()+sq.Rank())%2 == 0 {
			fill = theme.DarkSquare
		}
		draw.Draw(big, cellRect(col, row, renderSize), image.NewUniform(fill), image.Point{}, draw.Src)
	}

	for _, sq := range opts.Marked {
		col, row := gridCell(sq, opts.Flipped)
		draw.Draw(big, cellRect(col, row, renderSize), image.NewUniform(theme.Highlight), image.Point{}, draw.Over)
	}

	sprites, err := newSpriteSet(renderSize / 8)
	if err != nil {
		return nil, err
	}
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := p.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		sprite := sprites.get(piece)
		col, row := gridCell(sq, opts.Flipped)
		cell := cellRect(col, row, renderSize)
		draw.Draw(big, sprite.Bounds().Add(cell.Min), sprite, image.Point{}, draw.Over)
	}

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), xdraw.Src, nil)

	// Labels go on after the downscale so they stay crisp.
	if opts.Coordinates {
		drawLabels(out, opts)
	}
	return out, nil
}

// WritePNG renders the position and encodes it as PNG.
func WritePNG(w io.Writer, p *board.Position, opts Options) error {
	img, err := RenderPNG(p, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// gridCell maps a square to its display column and row.
func gridCell(sq board.Square, flipped bool) (int, int) {
	if flipped {
		return 7 - sq.File(), sq.Rank()
	}
	return sq.File(), 7 - sq.Rank()
}

// cellRect spreads the 8x8 grid over the full image edge, so cells absorb
// any pixel remainder instead of leaving a dead border.
func cellRect(col, row, edge int) image.Rectangle {
	return image.Rect(
		col*edge/8, row*edge/8,
		(col+1)*edge/8, (row+1)*edge/8,
	)
}

func drawLabels(img *image.RGBA, opts Options) {
	face := basicfont.Face7x13
	sq := opts.Size / 8
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Theme.Label),
		Face: face,
	}

	for i := 0; i < 8; i++ {
		fileIdx, rankIdx := i, i
		if opts.Flipped {
			fileIdx, rankIdx = 7-i, 7-i
		}

		d.Dot = fixed.P(i*sq+3, opts.Size-3)
		d.DrawString(string(rune('a' + fileIdx)))

		d.Dot = fixed.P(3, (7-i)*sq+face.Height)
		d.DrawString(string(rune('1' + rankIdx)))
	}
}
