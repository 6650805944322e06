package glyph

import (
	"math"
	"testing"

	"github.com/simukka/nebula/common"
)

func TestSampleTriangles_AreaProportional(t *testing.T) {
	// Rectangle 0..4 x 0..1 fanned from P=(1,1) into areas 2, 0.5 and 1.5.
	p := common.Point2{X: 1, Y: 1}
	tris := []Triangle{
		{{X: 0, Y: 0}, {X: 4, Y: 0}, p},
		{{X: 0, Y: 0}, p, {X: 0, Y: 1}},
		{{X: 4, Y: 0}, {X: 4, Y: 1}, p},
	}
	want := []float64{2, 0.5, 1.5}
	for i, tr := range tris {
		if math.Abs(tr.Area()-want[i]) > 1e-12 {
			t.Fatalf("Expected triangle %d area %f, got %f", i, want[i], tr.Area())
		}
	}

	rng := common.NewSeededRNG(42)
	pts := SampleTriangles(tris, 2500, 0, rng)
	if len(pts) != 10000 {
		t.Fatalf("Expected 10000 points, got %d", len(pts))
	}

	// Partition each sample by which triangle it falls in; the fan covers
	// the rectangle so every sample lands somewhere.
	counts := make([]int, len(tris))
	for _, q := range pts {
		if q.X < -1e-9 || q.X > 4+1e-9 || q.Y < -1e-9 || q.Y > 1+1e-9 {
			t.Fatalf("Sample %v outside rectangle", q)
		}
		for i, tr := range tris {
			if tr.Contains(q) {
				counts[i]++
				break
			}
		}
	}
	for i := range tris {
		expected := want[i] / 4 * float64(len(pts))
		if math.Abs(float64(counts[i])-expected) > expected*0.15 {
			t.Errorf("Triangle %d: expected about %.0f samples, got %d", i, expected, counts[i])
		}
	}
}

func TestSamplePoint_UniformWithinTriangle(t *testing.T) {
	// Split a right triangle at the midpoint of its hypotenuse; both halves
	// have equal area and should receive about the same number of samples.
	tri := Triangle{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	left := Triangle{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}}
	rng := common.NewSeededRNG(7)
	inLeft := 0
	const n = 8000
	for i := 0; i < n; i++ {
		q := samplePoint(tri, rng)
		if !tri.Contains(q) {
			t.Fatalf("Sample %v outside triangle", q)
		}
		if left.Contains(q) {
			inLeft++
		}
	}
	if math.Abs(float64(inLeft)-n/2) > n*0.05 {
		t.Errorf("Expected about %d samples in the left half, got %d", n/2, inLeft)
	}
}

func TestSampleTriangles_MinimumPerTriangle(t *testing.T) {
	tiny := Triangle{{X: 0, Y: 0}, {X: 0.01, Y: 0}, {X: 0, Y: 0.01}}
	pts := SampleTriangles([]Triangle{tiny, tiny}, 1, 3, common.NewSeededRNG(1))
	if len(pts) != 6 {
		t.Errorf("Expected 6 points from the per-triangle minimum, got %d", len(pts))
	}
}

func TestSampleGlyph_ZeroRemaining(t *testing.T) {
	cfg := DefaultSamplerConfig()
	s := NewSampler(cfg, common.NewSeededRNG(3))
	res := s.SampleGlyph(rect(0, 0, 10, 10), nil, cfg.Density, common.Point2{}, cfg.Jitter, 0)
	if len(res.Fill) != 0 {
		t.Errorf("Expected no fill points with zero budget, got %d", len(res.Fill))
	}
	if res.Consumed != 0 {
		t.Errorf("Expected nothing consumed, got %d", res.Consumed)
	}
	if len(res.Stroke) == 0 {
		t.Error("Expected stroke points to still be placed")
	}
}

func TestSampleGlyph_EmptyOutline(t *testing.T) {
	s := NewSampler(DefaultSamplerConfig(), common.NewSeededRNG(3))
	res := s.SampleGlyph(nil, nil, 1, common.Point2{}, 0, 1000)
	if res.Len() != 0 {
		t.Errorf("Expected empty result, got %d points", res.Len())
	}
}

func TestSampleGlyph_RespectsRemaining(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.Density = 10
	s := NewSampler(cfg, common.NewSeededRNG(5))
	res := s.SampleGlyph(rect(0, 0, 10, 10), nil, cfg.Density, common.Point2{X: 100, Y: 0}, 0, 50)
	if res.Consumed > 50 {
		t.Errorf("Expected at most 50 fill points, got %d", res.Consumed)
	}
	for _, p := range res.Fill {
		if p.X < 100 || p.X > 110 {
			t.Errorf("Expected fill point translated by offset, got %v", p)
			break
		}
	}
}

func TestSampleGlyph_HoleStaysEmpty(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.Jitter = 0
	s := NewSampler(cfg, common.NewSeededRNG(9))
	res := s.SampleGlyph(rect(0, 0, 30, 30), []Contour{rect(10, 10, 20, 20)}, 1, common.Point2{}, 0, 100000)
	if len(res.Fill) < 700 {
		t.Fatalf("Expected roughly 800 fill points, got %d", len(res.Fill))
	}
	for _, p := range res.Fill {
		if p.X > 10.01 && p.X < 19.99 && p.Y > 10.01 && p.Y < 19.99 {
			t.Fatalf("Fill point %v inside the hole", p)
		}
	}
}

func TestPlanBudget_Unlimited(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.MaxPoints = 0
	shapes := []Prepared{Prepare(Shape{Outer: rect(0, 0, 40, 40)}, common.Point2{})}
	plan := PlanBudget(shapes, cfg)
	if plan.DensityScale != 1 {
		t.Errorf("Expected no throttling, got scale %f", plan.DensityScale)
	}
	if plan.FillEstimate != plan.FillBudget {
		t.Errorf("Expected budget to equal estimate when unlimited, got %d and %d", plan.FillBudget, plan.FillEstimate)
	}
}

func TestPlanBudget_NeverExceedsMaxPoints(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.MaxPoints = 2000
	cfg.Density = 1

	var shapes []Prepared
	for i := 0; i < 60; i++ {
		off := common.Point2{X: float64(i%10) * 50, Y: float64(i/10) * 60}
		shape := Shape{Outer: rect(0, 0, 40, 50), Holes: []Contour{rect(10, 10, 30, 40)}}
		shapes = append(shapes, Prepare(shape, off))
	}
	plan := PlanBudget(shapes, cfg)
	if plan.DensityScale >= 1 {
		t.Errorf("Expected density to be throttled, got scale %f", plan.DensityScale)
	}
	if plan.Total() > cfg.MaxPoints {
		t.Errorf("Expected planned total <= %d, got %d", cfg.MaxPoints, plan.Total())
	}

	s := NewSampler(cfg, common.NewSeededRNG(11))
	remaining := plan.FillBudget
	total := 0
	for i, p := range shapes {
		res := s.SamplePrepared(p, plan, i, remaining)
		remaining -= res.Consumed
		total += res.Len()
	}
	if total > cfg.MaxPoints {
		t.Errorf("Expected at most %d samples, got %d", cfg.MaxPoints, total)
	}
	if remaining < 0 {
		t.Errorf("Expected remaining budget to stay non-negative, got %d", remaining)
	}
	// The plan is look-ahead: the last shape is sampled at the same density
	// as the first, up to the carried rounding remainder.
	first := s.SamplePrepared(shapes[0], plan, 0, plan.FillBudget).Consumed
	last := s.SamplePrepared(shapes[len(shapes)-1], plan, len(shapes)-1, plan.FillBudget).Consumed
	if first == 0 || first-last > 1 || last-first > 1 {
		t.Errorf("Expected equal density for identical shapes, got %d and %d", first, last)
	}
	if plan.FillEstimate < plan.FillBudget-1 {
		t.Errorf("Expected the fill budget to be used, got %d of %d", plan.FillEstimate, plan.FillBudget)
	}
}

func TestPlanBudget_DropsMinimumWhenTooTight(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.MaxPoints = 20
	cfg.MinPerTriangle = 7
	shapes := []Prepared{Prepare(Shape{Outer: rect(0, 0, 100, 100)}, common.Point2{})}
	plan := PlanBudget(shapes, cfg)
	if plan.MinPerTriangle != 0 {
		t.Errorf("Expected the per-triangle minimum to be dropped, got %d", plan.MinPerTriangle)
	}
	if plan.Total() > cfg.MaxPoints {
		t.Errorf("Expected planned total <= %d, got %d", cfg.MaxPoints, plan.Total())
	}
}

func TestPlanBudget_ThinBudgetOverManyShapes(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.MaxPoints = 300
	var shapes []Prepared
	for i := 0; i < 500; i++ {
		shapes = append(shapes, Prepare(Shape{Outer: rect(0, 0, 30, 40)}, common.Point2{X: float64(i) * 35}))
	}
	plan := PlanBudget(shapes, cfg)
	if plan.Total() > cfg.MaxPoints {
		t.Errorf("Expected planned total <= %d, got %d", cfg.MaxPoints, plan.Total())
	}
	if plan.FillEstimate < plan.FillBudget-1 {
		t.Errorf("Expected fractional counts to be carried, got %d of %d", plan.FillEstimate, plan.FillBudget)
	}
}

func TestPlanBudget_KeepsStrokesThrottlesFill(t *testing.T) {
	cfg := DefaultSamplerConfig()
	cfg.Density = 1
	var shapes []Prepared
	for i := 0; i < 20; i++ {
		shape := Shape{Outer: rect(0, 0, 40, 50), Holes: []Contour{rect(10, 10, 30, 40)}}
		shapes = append(shapes, Prepare(shape, common.Point2{X: float64(i) * 50}))
	}

	cfg.MaxPoints = 0
	free := PlanBudget(shapes, cfg)
	if free.StrokeTotal == 0 || free.FillEstimate == 0 {
		t.Fatalf("Expected stroke and fill points, got %d and %d", free.StrokeTotal, free.FillEstimate)
	}

	// Room for every stroke point and a little fill.
	cfg.MaxPoints = free.StrokeTotal + free.FillEstimate/4
	plan := PlanBudget(shapes, cfg)
	if plan.StrokeTotal != free.StrokeTotal {
		t.Errorf("Expected all %d stroke points kept, got %d", free.StrokeTotal, plan.StrokeTotal)
	}
	if plan.DensityScale >= 1 {
		t.Errorf("Expected fill density to be throttled, got scale %f", plan.DensityScale)
	}
	if plan.FillBudget != cfg.MaxPoints-free.StrokeTotal {
		t.Errorf("Expected fill budget %d, got %d", cfg.MaxPoints-free.StrokeTotal, plan.FillBudget)
	}

	s := NewSampler(cfg, common.NewSeededRNG(4))
	remaining := plan.FillBudget
	strokes, total := 0, 0
	for i, p := range shapes {
		res := s.SamplePrepared(p, plan, i, remaining)
		remaining -= res.Consumed
		strokes += len(res.Stroke)
		total += res.Len()
	}
	if strokes != free.StrokeTotal {
		t.Errorf("Expected %d sampled stroke points, got %d", free.StrokeTotal, strokes)
	}
	if total > cfg.MaxPoints {
		t.Errorf("Expected at most %d samples, got %d", cfg.MaxPoints, total)
	}
}

func TestPlanBudget_ShrinksStrokesOnlyPastMaxPoints(t *testing.T) {
	cfg := DefaultSamplerConfig()
	var shapes []Prepared
	for i := 0; i < 20; i++ {
		shapes = append(shapes, Prepare(Shape{Outer: rect(0, 0, 40, 50)}, common.Point2{X: float64(i) * 50}))
	}
	cfg.MaxPoints = 0
	free := PlanBudget(shapes, cfg)

	cfg.MaxPoints = free.StrokeTotal / 2
	plan := PlanBudget(shapes, cfg)
	if plan.StrokeTotal > cfg.MaxPoints {
		t.Errorf("Expected strokes shrunk to at most %d, got %d", cfg.MaxPoints, plan.StrokeTotal)
	}
	if plan.FillEstimate != 0 {
		t.Errorf("Expected no fill once strokes use the budget, got %d", plan.FillEstimate)
	}
}

func TestStrokeCounts(t *testing.T) {
	counts := StrokeCounts([]Contour{rect(0, 0, 10, 10), rect(0, 0, 1, 1)}, 2, 6)
	if counts[0] != 20 {
		t.Errorf("Expected 20 stroke points for perimeter 40, got %d", counts[0])
	}
	if counts[1] != 6 {
		t.Errorf("Expected the per-contour minimum of 6, got %d", counts[1])
	}
}
