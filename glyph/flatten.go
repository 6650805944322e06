package glyph

import "github.com/simukka/nebula/common"

// maxFlattenDepth bounds recursive subdivision for pathological curves.
const maxFlattenDepth = 12

// PathBuilder flattens a sequence of move/line/curve commands into closed
// contours. Curves are subdivided until control points lie within
// Tolerance of the chord.
type PathBuilder struct {
	Tolerance float64

	contours []Contour
	current  Contour
	pen      common.Point2
}

// NewPathBuilder creates a builder with the given flattening tolerance.
func NewPathBuilder(tolerance float64) *PathBuilder {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	return &PathBuilder{Tolerance: tolerance}
}

// MoveTo starts a new contour, closing any open one.
func (b *PathBuilder) MoveTo(p common.Point2) {
	b.Close()
	b.current = Contour{p}
	b.pen = p
}

// LineTo appends a straight segment.
func (b *PathBuilder) LineTo(p common.Point2) {
	if b.current == nil {
		b.MoveTo(b.pen)
	}
	b.current = append(b.current, p)
	b.pen = p
}

// QuadTo appends a flattened quadratic Bézier segment.
func (b *PathBuilder) QuadTo(ctrl, p common.Point2) {
	if b.current == nil {
		b.MoveTo(b.pen)
	}
	b.flattenQuad(b.pen, ctrl, p, 0)
	b.pen = p
}

// CubicTo appends a flattened cubic Bézier segment.
func (b *PathBuilder) CubicTo(c1, c2, p common.Point2) {
	if b.current == nil {
		b.MoveTo(b.pen)
	}
	b.flattenCubic(b.pen, c1, c2, p, 0)
	b.pen = p
}

// Close finishes the current contour.
func (b *PathBuilder) Close() {
	if len(b.current) >= 2 {
		b.contours = append(b.contours, b.current)
	}
	b.current = nil
}

// Contours closes the current contour and returns everything built so far.
func (b *PathBuilder) Contours() []Contour {
	b.Close()
	return b.contours
}

func (b *PathBuilder) flattenQuad(p0, p1, p2 common.Point2, depth int) {
	if depth >= maxFlattenDepth || distanceToSegment(p1, p0, p2) < b.Tolerance {
		b.current = append(b.current, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	b.flattenQuad(p0, q0, q2, depth+1)
	b.flattenQuad(q2, q1, p2, depth+1)
}

func (b *PathBuilder) flattenCubic(p0, p1, p2, p3 common.Point2, depth int) {
	d := distanceToSegment(p1, p0, p3)
	if d2 := distanceToSegment(p2, p0, p3); d2 > d {
		d = d2
	}
	if depth >= maxFlattenDepth || d < b.Tolerance {
		b.current = append(b.current, p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	b.flattenCubic(p0, q0, r0, s, depth+1)
	b.flattenCubic(s, r1, q2, p3, depth+1)
}

// distanceToSegment returns the distance from p to segment ab.
func distanceToSegment(p, a, b common.Point2) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 < 1e-20 {
		return p.Dist(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	if t < 0 {
		return p.Dist(a)
	}
	if t > 1 {
		return p.Dist(b)
	}
	return p.Dist(a.Add(ab.Scale(t)))
}
