// Package particle owns the two point clouds of a scene, the ambient
// nebula and the text cloud, and advances them once per frame.
package particle

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/text"
)

// Buffer holds per-particle attributes as parallel slices indexed by
// particle id. Slices are allocated once; Target is rewritten in place.
type Buffer struct {
	Position []common.Point3
	Home     []common.Point3
	Target   []common.Point3
	Offset   []common.Point3
	Velocity []common.Point3

	Phase     []float64
	Amplitude []float64
	Opacity   []float64
	Size      []float64
	Color     []colorful.Color
	Stroke    []bool
}

// NewBuffer allocates a buffer of n particles.
func NewBuffer(n int) *Buffer {
	return &Buffer{
		Position:  make([]common.Point3, n),
		Home:      make([]common.Point3, n),
		Target:    make([]common.Point3, n),
		Offset:    make([]common.Point3, n),
		Velocity:  make([]common.Point3, n),
		Phase:     make([]float64, n),
		Amplitude: make([]float64, n),
		Opacity:   make([]float64, n),
		Size:      make([]float64, n),
		Color:     make([]colorful.Color, n),
		Stroke:    make([]bool, n),
	}
}

// Len returns the number of particles.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Position)
}

// Bounds returns the bounding box of the home positions.
func (b *Buffer) Bounds() common.Box {
	box := common.EmptyBox()
	if b == nil {
		return box
	}
	for _, p := range b.Home {
		box.Extend(p)
	}
	return box
}

// Distance returns the summed distance of every particle to its target.
func (b *Buffer) Distance() float64 {
	if b == nil {
		return 0
	}
	var sum float64
	for i := range b.Position {
		sum += b.Position[i].Dist(b.Target[i])
	}
	return sum
}

// NewAmbientBuffer scatters cfg.AmbientCount particles through the nebula
// shell. Home holds the rest position the field oscillates around.
func NewAmbientBuffer(cfg Config, rng *common.SeededRNG) *Buffer {
	b := NewBuffer(cfg.AmbientCount)
	for i := range b.Home {
		h := rng.InShell(cfg.InnerRadius, cfg.OuterRadius)
		// Flatten the shell into a disc-like nebula.
		h.Y *= cfg.Flatten
		b.Home[i] = h
		b.Position[i] = h
		b.Target[i] = h
		b.Phase[i] = rng.Random() * 2 * math.Pi
		b.Amplitude[i] = rng.RandomFloat(0.5, 1)
		b.Size[i] = cfg.AmbientSize * rng.RandomFloat(0.6, 1.4)
		b.Opacity[i] = cfg.OpacityMin
		b.Color[i] = cfg.Base.BlendLab(cfg.Glow, rng.Random()*0.5)
	}
	return b
}

// NewTextBuffer turns a laid out cloud into particles. Fill points come
// first, then stroke points. Particles start scattered around the cloud so
// an Assemble visibly pulls them in.
func NewTextBuffer(c *text.Cloud, cfg Config, rng *common.SeededRNG) *Buffer {
	if c == nil {
		return NewBuffer(0)
	}
	b := NewBuffer(c.Len())
	r := math.Hypot(c.Width, c.Height) / 2
	if r == 0 {
		r = 1
	}
	for i := range b.Home {
		var h common.Point3
		stroke := i >= len(c.Fill)
		if stroke {
			h = c.Stroke[i-len(c.Fill)]
		} else {
			h = c.Fill[i]
		}
		b.Home[i] = h
		b.Target[i] = h
		b.Position[i] = rng.InShell(r*cfg.SpawnInner, r*cfg.SpawnOuter)
		b.Stroke[i] = stroke
		b.Phase[i] = rng.Random() * 2 * math.Pi
		b.Amplitude[i] = rng.RandomFloat(0.4, 1)
		if stroke {
			b.Size[i] = cfg.TextSize * cfg.StrokeSize * rng.RandomFloat(0.9, 1.1)
			b.Opacity[i] = cfg.StrokeOpacity
			b.Color[i] = cfg.Glow
		} else {
			b.Size[i] = cfg.TextSize * rng.RandomFloat(0.8, 1.2)
			b.Opacity[i] = rng.RandomFloat(cfg.FillOpacityMin, cfg.FillOpacityMax)
			b.Color[i] = cfg.Base.BlendLab(cfg.Glow, rng.Random()*0.35)
		}
	}
	return b
}
