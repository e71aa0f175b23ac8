package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme holds the colors used to draw a frame.
type Theme struct {
	Foreground color.RGBA
	Background color.RGBA
	Text       color.RGBA
}

var DefaultTheme = Theme{
	Foreground: color.RGBA{R: 0x90, G: 0x00, B: 0xFF, A: 0xFF}, // #9000ff
	Background: color.RGBA{R: 0xFF, G: 0xDC, B: 0x00, A: 0xFF}, // #ffdc00
	Text:       color.RGBA{A: 0xFF},
}

// Logical canvas size; scaled to the framebuffer.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
