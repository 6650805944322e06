package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/noise"
	"github.com/simukka/nebula/particle"
	"github.com/simukka/nebula/viewport"
)

// Sprite is a shaded point in world space.
type Sprite struct {
	Position common.Point3
	Size     float64 // world units
	Alpha    float64
	Color    colorful.Color
}

// Splat is a sprite projected to the screen.
type Splat struct {
	X, Y   float64
	Radius float64 // pixels
	Alpha  float64
	Color  colorful.Color
}

const (
	pulseSpeed  = 3.1
	swarmSpeed  = 0.9
	swarmScale  = 0.15
	shimmerRate = 2.2
)

// ShadeText evaluates text particle i: bass pulses its size, highs shift it
// toward the glow colour and loudness jitters it in place.
func ShadeText(b *particle.Buffer, i int, u Uniforms) Sprite {
	phase := b.Phase[i]
	pulse := 1 + u.PulseAmplitude*math.Sin(u.Time*pulseSpeed+phase)

	pos := b.Position[i]
	if u.SwarmAmplitude > 0 {
		w := u.Time*swarmSpeed + phase
		pos = pos.Add(common.Point3{
			X: (noise.Noise4(pos.X*swarmScale, pos.Y*swarmScale, 0, w) - 0.5) * 2,
			Y: (noise.Noise4(pos.X*swarmScale, pos.Y*swarmScale, 17, w) - 0.5) * 2,
			Z: (noise.Noise4(pos.X*swarmScale, pos.Y*swarmScale, 31, w) - 0.5) * 2,
		}.Scale(u.SwarmAmplitude * b.Amplitude[i]))
	}

	shimmer := 0.5 + 0.5*math.Sin(u.Time*shimmerRate+phase*1.3)
	lum := common.Clamp01(u.LuminanceAmplitude * shimmer)
	color := b.Color[i].BlendLab(u.Glow, lum).Clamped()

	alpha := b.Opacity[i] * (1 + 0.4*lum)
	if b.Stroke[i] {
		alpha = math.Max(alpha, b.Opacity[i])
	}
	return Sprite{
		Position: pos,
		Size:     b.Size[i] * u.PointSize * pulse,
		Alpha:    common.Clamp01(alpha),
		Color:    color,
	}
}

// ShadeAmbient evaluates ambient particle i.
func ShadeAmbient(b *particle.Buffer, i int, u Uniforms) Sprite {
	return Sprite{
		Position: b.Position[i],
		Size:     b.Size[i] * u.AmbientScale,
		Alpha:    common.Clamp01(b.Opacity[i] * (1 + 0.5*u.Flash)),
		Color:    b.Color[i].Clamped(),
	}
}

// Project maps a sprite to the screen with perspective size attenuation.
// ok is false for sprites behind the camera.
func Project(s Sprite, cam *viewport.Camera, vw, vh float64) (Splat, bool) {
	x, y, ok := cam.Project(s.Position, vw, vh)
	if !ok {
		return Splat{}, false
	}
	r := s.Size * cam.PixelScale(cam.Depth(s.Position), vh) / 2
	return Splat{X: x, Y: y, Radius: r, Alpha: s.Alpha, Color: s.Color}, true
}

// Visible reports whether a splat intersects a vw x vh viewport and is
// bright enough to draw.
func (s Splat) Visible(vw, vh float64) bool {
	return s.Alpha > 0.004 && s.Radius > 0.05 &&
		s.X+s.Radius >= 0 && s.X-s.Radius <= vw &&
		s.Y+s.Radius >= 0 && s.Y-s.Radius <= vh
}

// Each shades and projects every visible point of the scene, ambient cloud
// first.
func Each(sc *Scene, cam *viewport.Camera, vw, vh float64, fn func(Splat)) {
	if b := sc.Ambient; b != nil {
		for i := range b.Position {
			if s, ok := Project(ShadeAmbient(b, i, sc.Uniforms), cam, vw, vh); ok && s.Visible(vw, vh) {
				fn(s)
			}
		}
	}
	if b := sc.Text; b != nil {
		place := sc.Placement
		if place.Scale == 0 {
			place.Scale = 1
		}
		for i := range b.Position {
			sp := ShadeText(b, i, sc.Uniforms)
			sp.Position = place.Apply(sp.Position)
			sp.Size *= place.Scale
			if s, ok := Project(sp, cam, vw, vh); ok && s.Visible(vw, vh) {
				fn(s)
			}
		}
	}
}
