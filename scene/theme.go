package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds all visual styling for easy customization. Colours are hex
// strings as the page would write them.
type Theme struct {
	// Canvas
	BackgroundColor string

	// Particles
	BaseColor string
	GlowColor string

	// Stats overlay
	OverlayBackground string
	OverlayBorder     string
	OverlayTitle      string
	OverlayLabel      string
	OverlayValue      string
	OverlayFont       string
	OverlayTitleFont  string
}

// DefaultTheme is a deep space nebula.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: "#05040c",

		BaseColor: "#5c6bf2",
		GlowColor: "#f28cfa",

		OverlayBackground: "rgba(0, 0, 0, 0.75)",
		OverlayBorder:     "#7a5cff",
		OverlayTitle:      "#b9a6ff",
		OverlayLabel:      "#cccccc",
		OverlayValue:      "#ffffff",
		OverlayFont:       "12px monospace",
		OverlayTitleFont:  "bold 14px monospace",
	}
}

// Palette is the parsed particle colours of a Theme.
type Palette struct {
	Background colorful.Color
	Base       colorful.Color
	Glow       colorful.Color
}

// Palette parses the particle colours.
func (t Theme) Palette() (Palette, error) {
	var p Palette
	for _, c := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", t.BackgroundColor, &p.Background},
		{"base", t.BaseColor, &p.Base},
		{"glow", t.GlowColor, &p.Glow},
	} {
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("scene: theme %s colour %q: %w", c.name, c.hex, err)
		}
		*c.dst = col
	}
	return p, nil
}
