package diagram

import "image/color"

// Theme defines the color scheme for the board. The hex fields mirror the
// RGBA values for the SVG writer.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Highlight   color.RGBA
	Label       color.RGBA

	LightHex     string
	DarkHex      string
	HighlightHex string
	LabelHex     string
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Highlight:   color.RGBA{255, 100, 100, 180}, // Red
		Label:       color.RGBA{60, 44, 36, 255},

		LightHex:     "#f0d9b5",
		DarkHex:      "#b58863",
		HighlightHex: "#ff6464",
		LabelHex:     "#3c2c24",
	}
}
