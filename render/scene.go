// Package render describes a frame for a renderer and evaluates the
// per-point shading every renderer applies.
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/nebula/particle"
	"github.com/simukka/nebula/viewport"
)

// Uniforms are the frame-wide shading inputs.
type Uniforms struct {
	particle.Uniforms
	Base       colorful.Color
	Glow       colorful.Color
	Background colorful.Color
}

// Scene is everything needed to draw one frame. The ambient cloud is in
// world space; the text cloud is placed by Placement.
type Scene struct {
	Ambient   *particle.Buffer
	Text      *particle.Buffer
	Placement viewport.Placement
	Uniforms  Uniforms
}

// Renderer draws scenes onto one surface.
type Renderer interface {
	Render(s *Scene, cam *viewport.Camera)
	Resize(w, h float64)
	Dispose()
}
