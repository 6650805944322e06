package viewport

import (
	"math"

	"github.com/simukka/nebula/common"
)

// Rect is a rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle center.
func (r Rect) Center() (x, y float64) { return r.X + r.W/2, r.Y + r.H/2 }

// Placement is the uniform scale and world position of the text group.
type Placement struct {
	Scale    float64
	Position common.Point3
}

// Apply maps a cloud-local point to world space.
func (p Placement) Apply(q common.Point3) common.Point3 {
	return q.Scale(p.Scale).Add(p.Position)
}

// ToLocal maps a world ray into cloud-local space. The direction keeps its
// length since the scale is uniform.
func (p Placement) ToLocal(origin, dir common.Point3) (common.Point3, common.Point3) {
	if p.Scale == 0 {
		return origin, dir
	}
	return origin.Sub(p.Position).Scale(1 / p.Scale), dir
}

// FitConfig tunes the fit.
type FitConfig struct {
	// Strings of at most ShortTextChars characters are capped to
	// ShortTextHeight of the visible height.
	ShortTextChars  int
	ShortTextHeight float64
	MinScale        float64
}

// DefaultFitConfig returns the scene's fit tuning.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		ShortTextChars:  2,
		ShortTextHeight: 0.38,
		MinScale:        1e-4,
	}
}

// Fitter fits a cloud-local bounding box into the view.
type Fitter struct {
	Box    common.Box
	Chars  int
	Config FitConfig
}

// FitToView centres the box over the whole viewport, keeping
// bottomSafe of the height free for page controls.
func (f Fitter) FitToView(cam Camera, margin, bottomSafe float64) Placement {
	bottomSafe = math.Min(math.Max(bottomSafe, 0), 0.9)
	view := Rect{W: cam.Aspect, H: 1}
	return f.FitToRect(cam, Rect{W: view.W, H: view.H * (1 - bottomSafe)}, view, margin)
}

// FitToRect scales and positions the box on the z=0 plane so its projection
// fits inside rect shrunk by margin. rect and view share pixel units; only
// their ratios matter.
func (f Fitter) FitToRect(cam Camera, rect, view Rect, margin float64) Placement {
	if margin <= 0 || margin > 1 {
		margin = 1
	}
	d := cam.Depth(common.Point3{})
	size := f.Box.Size()
	if f.Box.IsEmpty() || d <= 0 || view.W <= 0 || view.H <= 0 || rect.W <= 0 || rect.H <= 0 {
		return Placement{Scale: 1, Position: f.anchor(cam, rect, view, 1)}
	}
	cam.Aspect = view.W / view.H

	visH := cam.VisibleHeight(d)
	unit := visH / view.H // world units per pixel on the z=0 plane
	usableW := rect.W * margin * unit
	usableH := rect.H * margin * unit

	scale := math.Inf(1)
	if size.X > 0 {
		scale = usableW / size.X
	}
	if size.Y > 0 {
		scale = math.Min(scale, usableH/size.Y)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	if f.Chars > 0 && f.Chars <= f.Config.ShortTextChars && size.Y > 0 {
		scale = math.Min(scale, f.Config.ShortTextHeight*visH/size.Y)
	}

	// The plane fit ignores depth; shrink until the nearer face fits too.
	inner := Rect{
		X: rect.X + rect.W*(1-margin)/2,
		Y: rect.Y + rect.H*(1-margin)/2,
		W: rect.W * margin,
		H: rect.H * margin,
	}
	for i := 0; i < 32; i++ {
		ratio := f.overflow(cam, inner, view, scale)
		if ratio >= 1 {
			break
		}
		scale *= ratio * 0.9999
	}
	if scale < f.Config.MinScale {
		scale = f.Config.MinScale
	}
	return Placement{Scale: scale, Position: f.anchor(cam, rect, view, scale)}
}

// anchor returns the group position that puts the box center under the
// rect center on the z=0 plane.
func (f Fitter) anchor(cam Camera, rect, view Rect, scale float64) common.Point3 {
	d := cam.Depth(common.Point3{})
	cx, cy := rect.Center()
	visH := cam.VisibleHeight(d)
	visW := visH * view.W / view.H
	world := common.Point3{
		X: cam.Position.X + (cx/view.W-0.5)*visW,
		Y: cam.Position.Y + (0.5-cy/view.H)*visH,
	}
	return world.Sub(f.Box.Center().Scale(scale))
}

// overflow returns the factor, at most 1, by which the projection of the
// box placed at scale must shrink to stay inside rect.
func (f Fitter) overflow(cam Camera, rect, view Rect, scale float64) float64 {
	p := Placement{Scale: scale, Position: f.anchor(cam, rect, view, scale)}
	cx, cy := rect.Center()
	ratio := 1.0
	for _, corner := range corners(f.Box) {
		x, y, ok := cam.Project(p.Apply(corner), view.W, view.H)
		if !ok {
			return 0.5
		}
		if dx := math.Abs(x - cx); dx > rect.W/2 {
			ratio = math.Min(ratio, rect.W/2/dx)
		}
		if dy := math.Abs(y - cy); dy > rect.H/2 {
			ratio = math.Min(ratio, rect.H/2/dy)
		}
	}
	return ratio
}

func corners(b common.Box) [8]common.Point3 {
	var out [8]common.Point3
	for i := range out {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		out[i] = p
	}
	return out
}
