// Package glyph turns filled glyph outlines into particle point clouds:
// contour cleanup, hole-aware triangulation, budget planning and sampling.
package glyph

import (
	"math"
	"sort"

	"github.com/simukka/nebula/common"
)

// Contour is a closed polyline. The closing edge from the last point back to
// the first is implicit.
type Contour []common.Point2

// Shape is one filled region: an outer ring with zero or more holes.
type Shape struct {
	Outer Contour
	Holes []Contour
}

// SignedArea returns the shoelace area; positive for counter-clockwise
// contours in a y-up coordinate system.
func (c Contour) SignedArea() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += c[i].Cross(c[j])
	}
	return a / 2
}

// Area returns the absolute enclosed area.
func (c Contour) Area() float64 { return math.Abs(c.SignedArea()) }

// Perimeter returns the closed length of the contour.
func (c Contour) Perimeter() float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var l float64
	for i := 0; i < n; i++ {
		l += c[i].Dist(c[(i+1)%n])
	}
	return l
}

// Reversed returns a copy with the opposite winding.
func (c Contour) Reversed() Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// Contains reports whether p lies inside the contour (even-odd rule).
func (c Contour) Contains(p common.Point2) bool {
	inside := false
	n := len(c)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Clean removes consecutive duplicates, a repeated closing point and
// collinear vertices. The result may have fewer than three points, in which
// case the contour encloses no area.
func (c Contour) Clean() Contour {
	const eps = 1e-9
	out := make(Contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1].Dist(p) < eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Dist(out[len(out)-1]) < eps {
		out = out[:len(out)-1]
	}

	changed := true
	for changed && len(out) >= 3 {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			cur := out[i]
			cross := cur.Sub(prev).Cross(next.Sub(cur))
			scale := cur.Dist(prev) * next.Dist(cur)
			if math.Abs(cross) <= eps*math.Max(scale, eps) {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}

// Resample returns count points evenly spaced by arc length along the
// closed contour, starting at its first vertex.
func (c Contour) Resample(count int) []common.Point2 {
	if count <= 0 || len(c) == 0 {
		return nil
	}
	if len(c) == 1 {
		out := make([]common.Point2, count)
		for i := range out {
			out[i] = c[0]
		}
		return out
	}

	perim := c.Perimeter()
	out := make([]common.Point2, 0, count)
	if perim == 0 {
		for i := 0; i < count; i++ {
			out = append(out, c[0])
		}
		return out
	}

	step := perim / float64(count)
	seg := 0
	segStart := 0.0
	n := len(c)
	for k := 0; k < count; k++ {
		d := float64(k) * step
		for seg < n {
			a, b := c[seg], c[(seg+1)%n]
			l := a.Dist(b)
			if d <= segStart+l || seg == n-1 {
				t := 0.0
				if l > 0 {
					t = (d - segStart) / l
				}
				if t > 1 {
					t = 1
				}
				out = append(out, a.Lerp(b, t))
				break
			}
			segStart += l
			seg++
		}
	}
	return out
}

// GroupShapes assigns contours to filled shapes by nesting depth: a contour
// inside an even number of others is an outer ring, one inside an odd number
// is a hole of the innermost enclosing outer ring. This does not depend on
// the winding convention of the font. Degenerate contours are dropped.
func GroupShapes(contours []Contour) []Shape {
	type entry struct {
		c    Contour
		area float64
	}
	entries := make([]entry, 0, len(contours))
	for _, c := range contours {
		cl := c.Clean()
		if len(cl) < 3 {
			continue
		}
		a := cl.Area()
		if a <= 0 {
			continue
		}
		entries = append(entries, entry{c: cl, area: a})
	}
	// Largest first so every container precedes what it contains.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].area > entries[j].area })

	parent := make([]int, len(entries))
	depth := make([]int, len(entries))
	for i := range entries {
		parent[i] = -1
		first := entries[i].c[0]
		for j := i - 1; j >= 0; j-- {
			// The smallest enclosing contour is the closest one earlier in
			// the list that contains its first vertex.
			if entries[j].c.Contains(first) {
				parent[i] = j
				depth[i] = depth[j] + 1
				break
			}
		}
	}

	var shapes []Shape
	index := make(map[int]int)
	for i, e := range entries {
		if depth[i]%2 == 0 {
			index[i] = len(shapes)
			shapes = append(shapes, Shape{Outer: e.c})
		}
	}
	for i, e := range entries {
		if depth[i]%2 == 1 {
			si := index[parent[i]]
			shapes[si].Holes = append(shapes[si].Holes, e.c)
		}
	}
	return shapes
}
