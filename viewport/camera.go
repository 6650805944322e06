// Package viewport holds the perspective camera and fits the text cloud
// into a pixel rectangle of the canvas.
package viewport

import (
	"math"

	"github.com/simukka/nebula/common"
)

// Camera is a perspective camera looking down -Z.
type Camera struct {
	Position common.Point3
	FOV      float64 // vertical, degrees
	Aspect   float64 // width / height
	Near     float64
	Far      float64
}

// NewCamera places a camera on the z axis at distance z.
func NewCamera(fov, aspect, z float64) Camera {
	return Camera{
		Position: common.Point3{Z: z},
		FOV:      fov,
		Aspect:   aspect,
		Near:     0.1,
		Far:      z * 4,
	}
}

// SetViewport updates the aspect ratio from a viewport size in pixels.
func (c *Camera) SetViewport(w, h float64) {
	if w > 0 && h > 0 {
		c.Aspect = w / h
	}
}

func (c Camera) tanHalf() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// VisibleHeight returns the height in world units seen at distance d in
// front of the camera.
func (c Camera) VisibleHeight(d float64) float64 {
	return 2 * d * c.tanHalf()
}

// Project maps a world point to pixel coordinates in a vw x vh viewport.
// ok is false for points behind the near plane.
func (c Camera) Project(p common.Point3, vw, vh float64) (x, y float64, ok bool) {
	rel := p.Sub(c.Position)
	depth := -rel.Z
	if depth <= c.Near {
		return 0, 0, false
	}
	t := c.tanHalf()
	ndcX := rel.X / (depth * t * c.Aspect)
	ndcY := rel.Y / (depth * t)
	return (ndcX + 1) / 2 * vw, (1 - ndcY) / 2 * vh, true
}

// Depth returns the distance of p in front of the camera plane.
func (c Camera) Depth(p common.Point3) float64 {
	return c.Position.Z - p.Z
}

// Ray returns the normalized ray through pixel (px, py) of a vw x vh
// viewport.
func (c Camera) Ray(px, py, vw, vh float64) (origin, dir common.Point3) {
	t := c.tanHalf()
	ndcX := px/vw*2 - 1
	ndcY := 1 - py/vh*2
	dir = common.Point3{X: ndcX * t * c.Aspect, Y: ndcY * t, Z: -1}.Normalize()
	return c.Position, dir
}

// PixelScale returns how many pixels one world unit spans at depth d in a
// viewport vh pixels tall.
func (c Camera) PixelScale(d, vh float64) float64 {
	if d <= 0 {
		return 0
	}
	return vh / c.VisibleHeight(d)
}
