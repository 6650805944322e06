package glyph

import (
	"math"
	"sort"

	"github.com/simukka/nebula/common"
)

// Triangle is a 2D triangle in layout units.
type Triangle [3]common.Point2

// Area returns the unsigned triangle area.
func (t Triangle) Area() float64 {
	return math.Abs(t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))) / 2
}

// Contains reports whether p lies inside or on the triangle.
func (t Triangle) Contains(p common.Point2) bool {
	d1 := p.Sub(t[0]).Cross(t[1].Sub(t[0]))
	d2 := p.Sub(t[1]).Cross(t[2].Sub(t[1]))
	d3 := p.Sub(t[2]).Cross(t[0].Sub(t[2]))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

const areaEpsilon = 1e-12

// Triangulate splits the region inside outer and outside every hole into
// triangles. Holes must lie inside outer and must not overlap each other;
// self-intersecting input produces an unspecified but finite result.
func Triangulate(outer Contour, holes []Contour) []Triangle {
	outer = outer.Clean()
	if len(outer) < 3 || outer.Area() <= areaEpsilon {
		return nil
	}
	if outer.SignedArea() < 0 {
		outer = outer.Reversed()
	}

	prepared := make([]Contour, 0, len(holes))
	for _, h := range holes {
		h = h.Clean()
		if len(h) < 3 || h.Area() <= areaEpsilon {
			continue
		}
		if h.SignedArea() > 0 {
			h = h.Reversed()
		}
		prepared = append(prepared, h)
	}
	// Bridge holes right to left so later bridges never cross earlier ones.
	sort.SliceStable(prepared, func(i, j int) bool {
		return maxX(prepared[i]) > maxX(prepared[j])
	})

	ring := append(Contour(nil), outer...)
	for _, h := range prepared {
		ring = bridgeHole(ring, h)
	}
	return earClip(ring)
}

func maxX(c Contour) float64 {
	m := math.Inf(-1)
	for _, p := range c {
		if p.X > m {
			m = p.X
		}
	}
	return m
}

// bridgeHole merges a clockwise hole into a counter-clockwise ring by
// connecting the hole's rightmost vertex to a mutually visible ring vertex
// with a zero-width double edge.
func bridgeHole(ring Contour, hole Contour) Contour {
	mi := 0
	for i, p := range hole {
		if p.X > hole[mi].X || (p.X == hole[mi].X && p.Y < hole[mi].Y) {
			mi = i
		}
	}
	m := hole[mi]

	pi := findBridge(ring, m)

	merged := make(Contour, 0, len(ring)+len(hole)+2)
	merged = append(merged, ring[:pi+1]...)
	for k := 0; k < len(hole); k++ {
		merged = append(merged, hole[(mi+k)%len(hole)])
	}
	merged = append(merged, m, ring[pi])
	merged = append(merged, ring[pi+1:]...)
	return merged
}

// findBridge returns the index of a ring vertex visible from m, found by
// casting a ray towards +x and refining against reflex vertices that could
// block the straight connection.
func findBridge(ring Contour, m common.Point2) int {
	n := len(ring)
	best := -1
	bestX := math.Inf(1)
	var hit common.Point2
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if a.Y == b.Y || math.Min(a.Y, b.Y) > m.Y || math.Max(a.Y, b.Y) < m.Y {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < m.X || x >= bestX {
			continue
		}
		bestX = x
		hit = common.Point2{X: x, Y: m.Y}
		if a.X > b.X {
			best = i
		} else {
			best = (i + 1) % n
		}
	}

	if best < 0 {
		// No edge to the right; fall back to the nearest vertex.
		d := math.Inf(1)
		for i, p := range ring {
			if dd := p.Dist(m); dd < d {
				d, best = dd, i
			}
		}
		return best
	}
	if ring[best].X == hit.X && ring[best].Y == hit.Y {
		return best
	}

	// Any ring vertex inside triangle (m, hit, candidate) may hide the
	// candidate; pick the one with the smallest angle to the ray.
	tri := Triangle{m, hit, ring[best]}
	candidate := ring[best]
	bestTan := math.Inf(1)
	choice := best
	for i, p := range ring {
		if p == candidate || p.X < m.X || p == m {
			continue
		}
		if !tri.Contains(p) {
			continue
		}
		prev := ring[(i+n-1)%n]
		next := ring[(i+1)%n]
		if p.Sub(prev).Cross(next.Sub(p)) > 0 {
			// convex vertices cannot block the view
			continue
		}
		dx := p.X - m.X
		if dx <= 0 {
			continue
		}
		tan := math.Abs(p.Y-m.Y) / dx
		if tan < bestTan || (tan == bestTan && p.X < ring[choice].X) {
			bestTan = tan
			choice = i
		}
	}
	return choice
}

// earClip triangulates a counter-clockwise simple ring (possibly containing
// zero-width bridge edges). It always terminates: when no strict ear exists
// it relaxes the test, first to convex vertices and then to any vertex.
func earClip(ring Contour) []Triangle {
	n := len(ring)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([]Triangle, 0, n-2)

	pass := 0
	stall := 0
	i := 0
	for len(idx) > 3 {
		k := len(idx)
		i %= k
		ia, ib, ic := idx[(i+k-1)%k], idx[i], idx[(i+1)%k]
		if isEar(ring, idx, ia, ib, ic, pass) {
			t := Triangle{ring[ia], ring[ib], ring[ic]}
			if t.Area() > areaEpsilon {
				tris = append(tris, t)
			}
			idx = append(idx[:i], idx[i+1:]...)
			stall = 0
			pass = 0
			continue
		}
		i++
		stall++
		if stall >= k {
			stall = 0
			pass++
		}
	}
	t := Triangle{ring[idx[0]], ring[idx[1]], ring[idx[2]]}
	if t.Area() > areaEpsilon {
		tris = append(tris, t)
	}
	return tris
}

// isEar tests vertex b of triangle (a, b, c). Pass 0 is the strict test,
// pass 1 accepts any convex vertex, pass 2 and above accept anything.
func isEar(ring Contour, idx []int, ia, ib, ic int, pass int) bool {
	if pass >= 2 {
		return true
	}
	a, b, c := ring[ia], ring[ib], ring[ic]
	cross := b.Sub(a).Cross(c.Sub(b))
	if cross <= 0 {
		// Degenerate spikes from bridges are clipped as soon as they are
		// the only thing left to try.
		return false
	}
	if pass == 1 {
		return true
	}
	tri := Triangle{a, b, c}
	k := len(idx)
	for j, v := range idx {
		if v == ia || v == ib || v == ic {
			continue
		}
		p := ring[v]
		if p == a || p == b || p == c {
			continue
		}
		if !tri.Contains(p) {
			continue
		}
		prev := ring[idx[(j+k-1)%k]]
		next := ring[idx[(j+1)%k]]
		// Only reflex (or flat) vertices can poke into an ear.
		if p.Sub(prev).Cross(next.Sub(p)) <= 0 {
			return false
		}
	}
	return true
}
