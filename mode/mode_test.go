package mode

import (
	"testing"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/particle"
)

// gridBuffer lays particles on a flat grid at z=0 with positions at home.
func gridBuffer(w, h int, step float64) *particle.Buffer {
	b := particle.NewBuffer(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			p := common.Point3{X: (float64(x) - float64(w-1)/2) * step, Y: (float64(y) - float64(h-1)/2) * step}
			b.Home[i] = p
			b.Target[i] = p
			b.Position[i] = p
		}
	}
	return b
}

func TestController_DissolveAssembleRoundTrip(t *testing.T) {
	b := gridBuffer(20, 10, 2)
	c := NewController(b, DefaultConfig(), common.NewSeededRNG(4), nil)

	c.SetMode(Dissolve)
	moved := 0
	for i := range b.Target {
		if b.Target[i] != b.Home[i] {
			moved++
		}
	}
	if moved != b.Len() {
		t.Errorf("Expected every target scattered, got %d of %d", moved, b.Len())
	}

	c.SetMode(Assemble)
	for i := range b.Target {
		if b.Target[i] != b.Home[i] {
			t.Fatalf("Expected target %d to equal home %+v, got %+v", i, b.Home[i], b.Target[i])
		}
	}
	if c.Mode() != Assemble {
		t.Errorf("Expected mode %s, got %s", Assemble, c.Mode())
	}
}

func TestController_DissolveIsStable(t *testing.T) {
	b := gridBuffer(8, 8, 3)
	c := NewController(b, DefaultConfig(), common.NewSeededRNG(4), nil)

	c.SetMode(Dissolve)
	first := append([]common.Point3(nil), b.Target...)
	c.SetMode(Dissolve)
	c.SetMode(Assemble)
	c.SetMode(Dissolve)
	for i := range first {
		if b.Target[i] != first[i] {
			t.Fatalf("Expected the same scatter for particle %d, got %+v and %+v", i, first[i], b.Target[i])
		}
	}
}

func TestController_ScatterOnShell(t *testing.T) {
	b := gridBuffer(10, 10, 2)
	cfg := DefaultConfig()
	c := NewController(b, cfg, common.NewSeededRNG(8), nil)
	c.SetMode(Dissolve)

	box := b.Bounds()
	r := box.Size().Len() / 2
	for i, p := range b.Target {
		d := p.Dist(box.Center())
		if d < r*cfg.ShellInner-1e-9 || d > r*cfg.ShellOuter+1e-9 {
			t.Fatalf("Expected particle %d on the shell [%f, %f], got %f", i, r*cfg.ShellInner, r*cfg.ShellOuter, d)
		}
	}
}

func TestController_Toggle(t *testing.T) {
	c := NewController(gridBuffer(4, 4, 1), DefaultConfig(), common.NewSeededRNG(1), nil)
	var changes []Mode
	c.OnChange = func(_, to Mode) { changes = append(changes, to) }

	c.Toggle()
	c.Toggle()
	if len(changes) != 2 || changes[0] != Dissolve || changes[1] != Assemble {
		t.Errorf("Expected [dissolve assemble], got %v", changes)
	}

	c.Burst(common.Point3{Z: 100}, common.Point3{Z: -1})
	if c.Mode() != Burst {
		t.Fatalf("Expected mode %s, got %s", Burst, c.Mode())
	}
	c.Toggle()
	if c.Mode() != Dissolve {
		t.Errorf("Expected toggle after a burst to dissolve, got %s", c.Mode())
	}
}

func TestController_SetModeIgnoresBurst(t *testing.T) {
	c := NewController(gridBuffer(4, 4, 1), DefaultConfig(), common.NewSeededRNG(1), nil)
	c.SetMode(Burst)
	if c.Mode() != Assemble {
		t.Errorf("Expected SetMode(Burst) to be ignored, got %s", c.Mode())
	}
}

func TestController_BurstIsLocal(t *testing.T) {
	b := gridBuffer(40, 40, 1)
	cfg := DefaultConfig()
	c := NewController(b, cfg, common.NewSeededRNG(2), nil)

	origin := common.Point3{X: 10, Y: 5, Z: 200}
	dir := common.Point3{Z: -1}
	hit := c.Burst(origin, dir)
	if hit == 0 {
		t.Fatal("Expected particles near the ray to burst")
	}

	counted := 0
	for i, p := range b.Position {
		_, q := common.ClosestOnRay(origin, dir, p)
		near := p.Dist(q) < cfg.BurstRadius
		changed := b.Target[i] != b.Home[i]
		if near != changed {
			t.Fatalf("Expected only particles near the ray to move, particle %d near=%v changed=%v", i, near, changed)
		}
		if changed {
			counted++
			// Targets move away from the impact point.
			impact := common.Point3{X: 10, Y: 5}
			if b.Target[i].Dist(impact) < b.Home[i].Dist(impact) {
				t.Errorf("Expected particle %d pushed away from the impact, got %+v", i, b.Target[i])
			}
		}
	}
	if counted != hit {
		t.Errorf("Expected %d changed targets, got %d", hit, counted)
	}
}

func TestController_BurstsCompound(t *testing.T) {
	b := gridBuffer(20, 20, 1)
	c := NewController(b, DefaultConfig(), common.NewSeededRNG(2), nil)
	origin := common.Point3{X: 3, Y: 0, Z: 50}
	dir := common.Point3{Z: -1}

	c.Burst(origin, dir)
	once := append([]common.Point3(nil), b.Target...)
	c.Burst(origin, dir)

	grew := false
	for i := range once {
		d1 := once[i].Dist(b.Home[i])
		d2 := b.Target[i].Dist(b.Home[i])
		if d2 < d1-1e-9 {
			t.Fatalf("Expected a second burst to add to the first for particle %d, got %f after %f", i, d2, d1)
		}
		if d2 > d1 {
			grew = true
		}
	}
	if !grew {
		t.Error("Expected a second burst to move targets further")
	}

	c.SetMode(Assemble)
	for i := range b.Target {
		if b.Target[i] != b.Home[i] {
			t.Fatalf("Expected assemble to recover home for particle %d", i)
		}
	}
}

func TestController_Transitioning(t *testing.T) {
	b := gridBuffer(5, 5, 1)
	c := NewController(b, DefaultConfig(), common.NewSeededRNG(3), nil)
	if c.Transitioning(1e-3) {
		t.Error("Expected no transition with positions at home")
	}
	c.SetMode(Dissolve)
	if !c.Transitioning(1e-3) {
		t.Error("Expected a transition after dissolve")
	}
	copy(b.Position, b.Target)
	if c.Transitioning(1e-3) {
		t.Error("Expected transition to end once positions reach their targets")
	}
}

func TestController_SetBufferKeepsMode(t *testing.T) {
	c := NewController(gridBuffer(4, 4, 1), DefaultConfig(), common.NewSeededRNG(3), nil)
	c.SetMode(Dissolve)
	next := gridBuffer(6, 6, 1)
	c.SetBuffer(next)
	if c.Mode() != Dissolve {
		t.Errorf("Expected mode %s after swapping buffers, got %s", Dissolve, c.Mode())
	}
	for i := range next.Target {
		if next.Target[i] == next.Home[i] {
			t.Fatalf("Expected the new buffer to be scattered at %d", i)
		}
	}
}
