package scene

import (
	"github.com/simukka/nebula/audio"
	"github.com/simukka/nebula/mode"
	"github.com/simukka/nebula/particle"
	"github.com/simukka/nebula/text"
	"github.com/simukka/nebula/viewport"
)

// Options configures one scene instance.
type Options struct {
	Text  string
	Seed  uint32
	Debug bool

	// FontURLs are tried in order before the embedded fallback fonts.
	FontURLs []string

	FOV     float64 // vertical, degrees
	CameraZ float64

	// Rect, when set, is the placement rectangle in CSS pixels. Otherwise
	// the text is centred over the view above BottomSafe.
	Rect       *viewport.Rect
	Margin     float64
	BottomSafe float64

	// MaxDelta caps the frame step in seconds, so a backgrounded tab does
	// not jump on return.
	MaxDelta float64

	// TransitionEpsilon is the distance under which a particle counts as
	// arrived.
	TransitionEpsilon float64

	Layout   text.LayoutConfig
	Particle particle.Config
	Mode     mode.Config
	Fit      viewport.FitConfig
	Audio    audio.Config
	Theme    Theme
}

// DefaultOptions returns the options used when the page passes none.
func DefaultOptions() Options {
	return Options{
		Text:              "NEBULA",
		Seed:              0x9E3779B9,
		FOV:               50,
		CameraZ:           600,
		Margin:            0.86,
		BottomSafe:        0.18,
		MaxDelta:          0.1,
		TransitionEpsilon: 0.05,
		Layout:            text.DefaultLayoutConfig(),
		Particle:          particle.DefaultConfig(),
		Mode:              mode.DefaultConfig(),
		Fit:               viewport.DefaultFitConfig(),
		Audio:             audio.DefaultConfig(),
		Theme:             DefaultTheme(),
	}
}
