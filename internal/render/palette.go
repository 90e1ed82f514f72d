package render

import (
	"fmt"
	"image/color"
)

// Palette is an ordered list of series colors. Series i gets Palette[i % len].
type Palette []color.Color

// DefaultPalette mirrors the classic AWT constants: red, blue, green, magenta,
// orange, cyan, pink, yellow.
var DefaultPalette = Palette{
	color.RGBA{R: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{R: 255, B: 255, A: 255},
	color.RGBA{R: 255, G: 200, A: 255},
	color.RGBA{G: 255, B: 255, A: 255},
	color.RGBA{R: 255, G: 175, B: 175, A: 255},
	color.RGBA{R: 255, G: 255, A: 255},
}

// At returns the color for a series ordinal. Colors repeat past the palette size.
func (p Palette) At(seriesIndex int) color.Color {
	return p[seriesIndex%len(p)]
}

// ParsePalette reads "#rrggbb" entries.
func ParsePalette(hex []string) (Palette, error) {
	if len(hex) == 0 {
		return nil, fmt.Errorf("parse palette: at least one color is required")
	}
	out := make(Palette, 0, len(hex))
	for _, h := range hex {
		var r, g, b uint8
		if _, err := fmt.Sscanf(h, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("parse palette: color %q: %w", h, err)
		}
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out, nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
