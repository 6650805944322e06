package viewport

import (
	"fmt"
	"math"
	"testing"

	"github.com/simukka/nebula/common"
)

func box(w, h, d float64) common.Box {
	return common.Box{
		Min: common.Point3{X: -w / 2, Y: -h / 2, Z: -d / 2},
		Max: common.Point3{X: w / 2, Y: h / 2, Z: d / 2},
	}
}

func TestCamera_ProjectCenter(t *testing.T) {
	cam := NewCamera(50, 16.0/9, 600)
	x, y, ok := cam.Project(common.Point3{}, 1600, 900)
	if !ok || math.Abs(x-800) > 1e-9 || math.Abs(y-450) > 1e-9 {
		t.Errorf("Expected origin at the viewport center, got (%f, %f, %v)", x, y, ok)
	}
	if _, _, ok := cam.Project(common.Point3{Z: 700}, 1600, 900); ok {
		t.Error("Expected a point behind the camera to be rejected")
	}
	// The top of the visible height lands on the top edge.
	top := common.Point3{Y: cam.VisibleHeight(600) / 2}
	if _, y, _ := cam.Project(top, 1600, 900); math.Abs(y) > 1e-9 {
		t.Errorf("Expected the visible top at y=0, got %f", y)
	}
}

func TestCamera_RayHitsProjectedPoint(t *testing.T) {
	cam := NewCamera(45, 1.5, 500)
	for _, p := range []common.Point3{{X: 30, Y: -20}, {X: -100, Y: 80, Z: 40}, {}} {
		px, py, ok := cam.Project(p, 1200, 800)
		if !ok {
			t.Fatalf("Expected %+v to be visible", p)
		}
		origin, dir := cam.Ray(px, py, 1200, 800)
		_, q := common.ClosestOnRay(origin, dir, p)
		if d := q.Dist(p); d > 1e-6 {
			t.Errorf("Expected the ray through (%f, %f) to pass through %+v, missed by %g", px, py, p, d)
		}
		if math.Abs(dir.Len()-1) > 1e-12 {
			t.Errorf("Expected a normalized direction, got length %f", dir.Len())
		}
	}
}

// projected returns the pixel bounds of the placed box.
func projected(cam Camera, b common.Box, p Placement, view Rect) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range corners(b) {
		x, y, _ := cam.Project(p.Apply(c), view.W, view.H)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return
}

func TestFitter_NeverOverflows(t *testing.T) {
	views := []Rect{{W: 1920, H: 1080}, {W: 390, H: 844}, {W: 800, H: 800}, {W: 3440, H: 1440}}
	boxes := []struct {
		b     common.Box
		chars int
	}{
		{box(600, 70, 6), 14},
		{box(120, 260, 6), 40},
		{box(90, 70, 6), 2},
		{box(40, 70, 0), 1},
		{box(2000, 60, 20), 60},
	}
	distances := []float64{150, 600, 2000}
	rects := []func(v Rect) Rect{
		func(v Rect) Rect { return v },
		func(v Rect) Rect { return Rect{X: v.W * 0.55, Y: v.H * 0.1, W: v.W * 0.4, H: v.H * 0.3} },
		func(v Rect) Rect { return Rect{X: 0, Y: v.H * 0.7, W: v.W * 0.25, H: v.H * 0.25} },
	}

	for _, view := range views {
		for _, bc := range boxes {
			for _, d := range distances {
				for ri, mk := range rects {
					rect := mk(view)
					name := fmt.Sprintf("%.0fx%.0f/%v/%d/%.0f/%d", view.W, view.H, bc.b.Size(), bc.chars, d, ri)
					t.Run(name, func(t *testing.T) {
						cam := NewCamera(50, view.W/view.H, d)
						f := Fitter{Box: bc.b, Chars: bc.chars, Config: DefaultFitConfig()}
						const margin = 0.9
						p := f.FitToRect(cam, rect, view, margin)
						if p.Scale <= 0 {
							t.Fatalf("Expected a positive scale, got %f", p.Scale)
						}
						minX, minY, maxX, maxY := projected(cam, bc.b, p, view)
						tol := 1e-6 * view.H
						ix := rect.X + rect.W*(1-margin)/2
						iy := rect.Y + rect.H*(1-margin)/2
						if minX < ix-tol || maxX > ix+rect.W*margin+tol ||
							minY < iy-tol || maxY > iy+rect.H*margin+tol {
							t.Errorf("Expected projection inside [%f,%f]x[%f,%f], got [%f,%f]x[%f,%f]",
								ix, ix+rect.W*margin, iy, iy+rect.H*margin, minX, maxX, minY, maxY)
						}
					})
				}
			}
		}
	}
}

func TestFitter_FillsOneSide(t *testing.T) {
	view := Rect{W: 1600, H: 900}
	cam := NewCamera(50, view.W/view.H, 600)
	f := Fitter{Box: box(600, 70, 2), Chars: 14, Config: DefaultFitConfig()}
	p := f.FitToRect(cam, view, view, 0.9)
	minX, _, maxX, _ := projected(cam, f.Box, p, view)
	if w := maxX - minX; w < view.W*0.9*0.97 {
		t.Errorf("Expected a wide box to use the rect width %f, got %f", view.W*0.9, w)
	}
}

func TestFitter_ShortTextCap(t *testing.T) {
	view := Rect{W: 1600, H: 900}
	cam := NewCamera(50, view.W/view.H, 600)
	cfg := DefaultFitConfig()
	b := box(40, 64, 0)

	short := Fitter{Box: b, Chars: 1, Config: cfg}.FitToRect(cam, view, view, 0.9)
	long := Fitter{Box: b, Chars: 3, Config: cfg}.FitToRect(cam, view, view, 0.9)
	if short.Scale >= long.Scale {
		t.Errorf("Expected a capped scale for one character, got %f vs %f", short.Scale, long.Scale)
	}
	_, minY, _, maxY := projected(cam, b, short, view)
	if h := maxY - minY; h > cfg.ShortTextHeight*view.H+1e-6 {
		t.Errorf("Expected short text at most %f px tall, got %f", cfg.ShortTextHeight*view.H, h)
	}
}

func TestFitter_FitToView(t *testing.T) {
	cam := NewCamera(50, 16.0/9, 600)
	f := Fitter{Box: box(300, 60, 4), Chars: 10, Config: DefaultFitConfig()}
	p := f.FitToView(cam, 0.9, 0.2)
	view := Rect{W: cam.Aspect, H: 1}
	_, minY, _, maxY := projected(cam, f.Box, p, view)
	if maxY > 0.8+1e-9 {
		t.Errorf("Expected the bottom safe zone to stay clear, got bottom at %f", maxY)
	}
	if minY < 0 {
		t.Errorf("Expected the top inside the view, got %f", minY)
	}
	if p.Position.Y <= 0 {
		t.Errorf("Expected the group raised above center, got y=%f", p.Position.Y)
	}
}

func TestFitter_EmptyBox(t *testing.T) {
	cam := NewCamera(50, 1, 600)
	p := Fitter{Box: common.EmptyBox()}.FitToView(cam, 0.9, 0)
	if p.Scale != 1 {
		t.Errorf("Expected unit scale for an empty box, got %f", p.Scale)
	}
}

func TestPlacement_ToLocal(t *testing.T) {
	p := Placement{Scale: 2, Position: common.Point3{X: 10, Y: -4}}
	q := common.Point3{X: 3, Y: 1, Z: 2}
	o, _ := p.ToLocal(p.Apply(q), common.Point3{Z: -1})
	if o.Dist(q) > 1e-12 {
		t.Errorf("Expected %+v, got %+v", q, o)
	}
}
