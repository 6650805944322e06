package glyph

import "math"

// Plan is a look-ahead budget for a whole layout. It is computed once from
// every prepared shape so early and late glyphs get the same density.
type Plan struct {
	DensityScale   float64 // multiplier applied to SamplerConfig.Density
	MinPerTriangle int     // per-triangle minimum after throttling
	StrokeCounts   [][]int // per shape, per contour (outer first)
	FillCounts     [][]int // per shape, per triangle
	StrokeTotal    int
	FillBudget     int // points left for fill once strokes are reserved
	FillEstimate   int // fill points the plan will produce
}

// Total returns the planned number of points.
func (p Plan) Total() int { return p.StrokeTotal + p.FillEstimate }

// StrokeCounts returns the unthrottled stroke sample count for each contour.
func StrokeCounts(contours []Contour, spacing float64, minPer int) []int {
	counts := make([]int, len(contours))
	for i, c := range contours {
		n := minPer
		if spacing > 0 {
			if k := int(math.Floor(c.Perimeter() / spacing)); k > n {
				n = k
			}
		}
		if n < 0 {
			n = 0
		}
		counts[i] = n
	}
	return counts
}

// PlanBudget computes stroke and fill counts for every shape so that the
// total number of samples never exceeds cfg.MaxPoints.
//
// Every stroke point is reserved first. Strokes shrink, proportionally to
// contour perimeter, only when they alone exceed MaxPoints. The fill gets
// what is left.
// Within budget every triangle gets max(min, floor(a*d)). Over budget the
// density is scaled by s so that min*T + s*A*d = budget, dropping the
// per-triangle minimum if even that cannot fit, and the fractional part of
// a*d*s is carried from triangle to triangle so thin budgets spread over
// many glyphs are not rounded away.
func PlanBudget(shapes []Prepared, cfg SamplerConfig) Plan {
	plan := Plan{
		DensityScale:   1,
		MinPerTriangle: cfg.MinPerTriangle,
		StrokeCounts:   make([][]int, len(shapes)),
		FillCounts:     make([][]int, len(shapes)),
	}

	var perimTotal float64
	contourCount := 0
	for i, s := range shapes {
		if len(s.Triangles) == 0 {
			continue
		}
		cs := s.contours()
		plan.StrokeCounts[i] = StrokeCounts(cs, cfg.StrokeSpacing, cfg.MinStrokePerContour)
		for j, c := range cs {
			plan.StrokeTotal += plan.StrokeCounts[i][j]
			perimTotal += c.Perimeter()
			contourCount++
		}
	}

	limited := cfg.MaxPoints > 0
	if limited {
		if plan.StrokeTotal > cfg.MaxPoints {
			plan.StrokeTotal = shrinkStrokes(shapes, plan.StrokeCounts, cfg.MaxPoints, cfg.MinStrokePerContour, contourCount, perimTotal)
		}
		plan.FillBudget = cfg.MaxPoints - plan.StrokeTotal
		if plan.FillBudget < 0 {
			plan.FillBudget = 0
		}
	}

	var area float64
	triangles := 0
	for i, s := range shapes {
		counts := make([]int, len(s.Triangles))
		for j, t := range s.Triangles {
			counts[j] = fillCount(t.Area(), cfg.Density, cfg.MinPerTriangle)
			plan.FillEstimate += counts[j]
			area += t.Area()
			triangles++
		}
		plan.FillCounts[i] = counts
	}
	if !limited {
		plan.FillBudget = plan.FillEstimate
		return plan
	}
	if plan.FillEstimate <= plan.FillBudget {
		return plan
	}

	minPer := cfg.MinPerTriangle
	if minPer < 0 {
		minPer = 0
	}
	if minPer*triangles >= plan.FillBudget {
		minPer = 0
	}
	scale := 0.0
	if area*cfg.Density > 0 {
		scale = float64(plan.FillBudget-minPer*triangles) / (area * cfg.Density)
	}
	scale = math.Max(0, math.Min(1, scale))
	plan.DensityScale = scale
	plan.MinPerTriangle = minPer

	plan.FillEstimate = 0
	carry := 0.0
	for i, s := range shapes {
		counts := plan.FillCounts[i]
		for j, t := range s.Triangles {
			carry += t.Area() * cfg.Density * scale
			n := int(math.Floor(carry))
			carry -= float64(n)
			n += minPer
			if plan.FillEstimate+n > plan.FillBudget {
				n = plan.FillBudget - plan.FillEstimate
			}
			counts[j] = n
			plan.FillEstimate += n
		}
	}
	return plan
}

// shrinkStrokes rewrites counts so they sum to at most limit and returns the
// new total. Each contour keeps an equal minimum and shares the rest in
// proportion to its perimeter.
func shrinkStrokes(shapes []Prepared, counts [][]int, limit, minPer, contourCount int, perimTotal float64) int {
	if contourCount == 0 {
		return 0
	}
	if minPer < 0 {
		minPer = 0
	}
	if minPer*contourCount > limit {
		minPer = limit / contourCount
	}
	rest := limit - minPer*contourCount
	total := 0
	for i, s := range shapes {
		if counts[i] == nil {
			continue
		}
		for j, c := range s.contours() {
			n := minPer
			if perimTotal > 0 {
				n += int(math.Floor(c.Perimeter() / perimTotal * float64(rest)))
			}
			counts[i][j] = n
			total += n
		}
	}
	return total
}
