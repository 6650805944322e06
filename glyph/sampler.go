package glyph

import (
	"math"

	"github.com/simukka/nebula/common"
)

// SamplerConfig holds the density and budget tuning for glyph sampling.
// Distances are in layout units (the font size is typically 1..100).
type SamplerConfig struct {
	Density             float64 // fill points per square layout unit
	MinPerTriangle      int     // fill points granted to every triangle before throttling
	StrokeSpacing       float64 // arc-length distance between stroke samples
	MinStrokePerContour int     // stroke points granted to every contour before throttling
	Jitter              float64 // +/- x/y offset applied to fill samples
	StrokeJitter        float64 // +/- x/y offset applied to stroke samples
	DepthJitter         float64 // +/- z offset applied to fill samples
	StrokeDepthJitter   float64 // +/- z offset applied to stroke samples
	MaxPoints           int     // global point budget for a layout; <= 0 disables throttling
}

// DefaultSamplerConfig returns tuning for glyphs laid out at a font size of
// about 64 units.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		Density:             0.09,
		MinPerTriangle:      1,
		StrokeSpacing:       1.6,
		MinStrokePerContour: 6,
		Jitter:              0.35,
		StrokeJitter:        0.12,
		DepthJitter:         2.5,
		StrokeDepthJitter:   0.8,
		MaxPoints:           14000,
	}
}

// PointSet holds the samples of one glyph or a whole layout. Fill points are
// interior samples, stroke points lie on the contours.
type PointSet struct {
	Fill   []common.Point3
	Stroke []common.Point3
}

// Len returns the total number of points.
func (s PointSet) Len() int { return len(s.Fill) + len(s.Stroke) }

// Result is the outcome of sampling one glyph. Consumed is the number of
// points charged against the remaining fill budget.
type Result struct {
	PointSet
	Consumed int
}

// Prepared is a shape triangulated once and placed at an offset, ready to be
// budgeted and sampled.
type Prepared struct {
	Shape     Shape
	Offset    common.Point2
	Triangles []Triangle
	Area      float64
}

// Prepare triangulates a shape.
func Prepare(shape Shape, offset common.Point2) Prepared {
	tris := Triangulate(shape.Outer, shape.Holes)
	var area float64
	for _, t := range tris {
		area += t.Area()
	}
	return Prepared{Shape: shape, Offset: offset, Triangles: tris, Area: area}
}

// contours returns the outer ring followed by the holes.
func (p Prepared) contours() []Contour {
	out := make([]Contour, 0, 1+len(p.Shape.Holes))
	if len(p.Shape.Outer) > 0 {
		out = append(out, p.Shape.Outer)
	}
	return append(out, p.Shape.Holes...)
}

// Sampler draws fill and stroke samples from glyph shapes.
type Sampler struct {
	Config SamplerConfig
	rng    *common.SeededRNG
}

// NewSampler creates a sampler. rng must not be nil.
func NewSampler(cfg SamplerConfig, rng *common.SeededRNG) *Sampler {
	return &Sampler{Config: cfg, rng: rng}
}

// SampleGlyph samples a single glyph region with its own stroke plan.
// remaining is the fill budget left; stroke points are always placed and
// are expected to have been reserved by the caller. An empty outline yields
// an empty result.
func (s *Sampler) SampleGlyph(outer Contour, holes []Contour, density float64, offset common.Point2, jitter float64, remaining int) Result {
	p := Prepare(Shape{Outer: outer, Holes: holes}, offset)
	if len(p.Triangles) == 0 {
		return Result{}
	}
	strokes := StrokeCounts(p.contours(), s.Config.StrokeSpacing, s.Config.MinStrokePerContour)
	fills := make([]int, len(p.Triangles))
	for i, t := range p.Triangles {
		fills[i] = fillCount(t.Area(), density, s.Config.MinPerTriangle)
	}
	return s.sample(p, fills, strokes, jitter, remaining)
}

// SamplePrepared samples a shape following a layout-wide budget plan.
// shape is the index of p within the slice the plan was built from.
func (s *Sampler) SamplePrepared(p Prepared, plan Plan, shape int, remaining int) Result {
	if len(p.Triangles) == 0 || shape < 0 || shape >= len(plan.FillCounts) {
		return Result{}
	}
	return s.sample(p, plan.FillCounts[shape], plan.StrokeCounts[shape], s.Config.Jitter, remaining)
}

func (s *Sampler) sample(p Prepared, fillCounts, strokeCounts []int, jitter float64, remaining int) Result {
	var res Result

	if remaining > 0 && len(fillCounts) == len(p.Triangles) {
		counts := fillCounts
		total := 0
		for _, n := range counts {
			total += n
		}
		if total > remaining {
			// Guard only; the plan normally keeps totals within budget.
			ratio := float64(remaining) / float64(total)
			scaled := make([]int, len(counts))
			total = 0
			for i, n := range counts {
				scaled[i] = int(math.Floor(float64(n) * ratio))
				total += scaled[i]
			}
			counts = scaled
		}
		res.Fill = make([]common.Point3, 0, total)
		for i, t := range p.Triangles {
			res.Fill = s.appendTriangle(res.Fill, t, counts[i], p.Offset, jitter, s.Config.DepthJitter)
		}
		res.Consumed = len(res.Fill)
	}

	for i, c := range p.contours() {
		if i >= len(strokeCounts) {
			break
		}
		for _, q := range c.Resample(strokeCounts[i]) {
			res.Stroke = append(res.Stroke, common.Point3{
				X: q.X + p.Offset.X + s.rng.Signed(s.Config.StrokeJitter),
				Y: q.Y + p.Offset.Y + s.rng.Signed(s.Config.StrokeJitter),
				Z: s.rng.Signed(s.Config.StrokeDepthJitter),
			})
		}
	}
	return res
}

// appendTriangle adds n uniformly distributed samples from t.
func (s *Sampler) appendTriangle(dst []common.Point3, t Triangle, n int, offset common.Point2, jitter, depth float64) []common.Point3 {
	for k := 0; k < n; k++ {
		q := samplePoint(t, s.rng)
		dst = append(dst, common.Point3{
			X: q.X + offset.X + s.rng.Signed(jitter),
			Y: q.Y + offset.Y + s.rng.Signed(jitter),
			Z: s.rng.Signed(depth),
		})
	}
	return dst
}

// SampleTriangles distributes fill samples over explicit triangles with the
// per-triangle allocation max(minPer, floor(area*density)).
func SampleTriangles(tris []Triangle, density float64, minPer int, rng *common.SeededRNG) []common.Point2 {
	var out []common.Point2
	for _, t := range tris {
		n := fillCount(t.Area(), density, minPer)
		for k := 0; k < n; k++ {
			out = append(out, samplePoint(t, rng))
		}
	}
	return out
}

// samplePoint returns a uniform-by-area point in t using the square-root
// barycentric mapping.
func samplePoint(t Triangle, rng *common.SeededRNG) common.Point2 {
	r1 := math.Sqrt(rng.Random())
	r2 := rng.Random()
	a := 1 - r1
	b := r1 * (1 - r2)
	c := r1 * r2
	return common.Point2{
		X: a*t[0].X + b*t[1].X + c*t[2].X,
		Y: a*t[0].Y + b*t[1].Y + c*t[2].Y,
	}
}

func fillCount(area, density float64, minPer int) int {
	n := int(math.Floor(area * density))
	if n < minPer {
		n = minPer
	}
	if n < 0 {
		n = 0
	}
	return n
}
