// Package mode rewrites the targets of the text cloud: assembled on the
// glyphs, dissolved over a sphere shell, or burst away from a pointer ray.
// It never touches positions; the particle field interpolates toward
// whatever targets are set.
package mode

import (
	"log/slog"
	"math"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/particle"
)

// Mode is the state of the text cloud.
type Mode int

const (
	Assemble Mode = iota
	Dissolve
	Burst
)

func (m Mode) String() string {
	switch m {
	case Assemble:
		return "assemble"
	case Dissolve:
		return "dissolve"
	case Burst:
		return "burst"
	default:
		return "unknown"
	}
}

// Config controls scatter and burst geometry. Shell radii are multiples of
// the radius of the sphere containing the assembled cloud.
type Config struct {
	ShellInner    float64
	ShellOuter    float64
	BurstRadius   float64 // cloud units around the ray
	BurstStrength float64 // cloud units at the ray
}

// DefaultConfig returns the scene's scatter and burst tuning.
func DefaultConfig() Config {
	return Config{
		ShellInner:    1.1,
		ShellOuter:    1.8,
		BurstRadius:   14,
		BurstStrength: 36,
	}
}

// Controller owns the targets of one text buffer.
type Controller struct {
	cfg    Config
	rng    *common.SeededRNG
	logger *slog.Logger

	buf     *particle.Buffer
	mode    Mode
	base    Mode
	scatter []common.Point3
	center  common.Point3
	radius  float64

	// OnChange, when set, is called after every mode change.
	OnChange func(from, to Mode)
}

// NewController controls buf, starting assembled.
func NewController(buf *particle.Buffer, cfg Config, rng *common.SeededRNG, logger *slog.Logger) *Controller {
	if rng == nil {
		rng = common.NewSeededRNG(1)
	}
	c := &Controller{cfg: cfg, rng: rng, logger: common.OrNop(logger)}
	c.SetBuffer(buf)
	return c
}

// SetBuffer switches to a new text buffer and applies the current base
// mode to it. The cached scatter is discarded.
func (c *Controller) SetBuffer(buf *particle.Buffer) {
	if buf == nil {
		buf = particle.NewBuffer(0)
	}
	c.buf = buf
	c.scatter = nil
	box := buf.Bounds()
	c.center = box.Center()
	c.radius = box.Size().Len() / 2
	c.mode = c.base
	c.apply(c.base)
}

// Buffer returns the controlled buffer.
func (c *Controller) Buffer() *particle.Buffer { return c.buf }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// SetMode rewrites every target for Assemble or Dissolve. Burst is not a
// mode that can be set; use Burst.
func (c *Controller) SetMode(m Mode) {
	if m != Assemble && m != Dissolve {
		c.logger.Warn("ignoring mode", "mode", m)
		return
	}
	from := c.mode
	c.base = m
	c.mode = m
	c.apply(m)
	c.logger.Debug("mode set", "from", from, "to", m)
	if c.OnChange != nil {
		c.OnChange(from, m)
	}
}

// Toggle flips between Assemble and Dissolve. After a burst it flips the
// mode the burst was applied over.
func (c *Controller) Toggle() {
	if c.base == Assemble {
		c.SetMode(Dissolve)
	} else {
		c.SetMode(Assemble)
	}
}

func (c *Controller) apply(m Mode) {
	switch m {
	case Assemble:
		copy(c.buf.Target, c.buf.Home)
	case Dissolve:
		copy(c.buf.Target, c.scatterTargets())
	}
}

// scatterTargets samples the dissolve shell once per buffer.
func (c *Controller) scatterTargets() []common.Point3 {
	if c.scatter != nil {
		return c.scatter
	}
	r := c.radius
	if r == 0 {
		r = 1
	}
	c.scatter = make([]common.Point3, c.buf.Len())
	for i := range c.scatter {
		c.scatter[i] = c.center.Add(c.rng.InShell(r*c.cfg.ShellInner, r*c.cfg.ShellOuter))
	}
	return c.scatter
}

// Burst pushes the targets of particles near the ray origin + dir*t away
// from where the ray meets the text plane. Coordinates are cloud-local and
// dir must be normalized. Bursts add to each other until the next SetMode.
// It returns the number of particles affected.
func (c *Controller) Burst(origin, dir common.Point3) int {
	impact := c.impact(origin, dir)
	radius := c.cfg.BurstRadius
	if radius <= 0 {
		return 0
	}
	b := c.buf
	hit := 0
	for i, p := range b.Position {
		_, q := common.ClosestOnRay(origin, dir, p)
		d := p.Dist(q)
		if d >= radius {
			continue
		}
		away := b.Home[i].Sub(impact)
		if away.LenSq() == 0 {
			away = c.rng.UnitVector()
		} else {
			away = away.Normalize()
		}
		fall := 1 - d/radius
		b.Target[i] = b.Target[i].Add(away.Scale(c.cfg.BurstStrength * fall * fall))
		hit++
	}
	if hit > 0 {
		from := c.mode
		c.mode = Burst
		c.logger.Debug("burst", "particles", hit)
		if c.OnChange != nil && from != Burst {
			c.OnChange(from, Burst)
		}
	}
	return hit
}

// impact is where the ray crosses z=0, or the point on the ray closest to
// the cloud center when the ray runs parallel to that plane.
func (c *Controller) impact(origin, dir common.Point3) common.Point3 {
	if math.Abs(dir.Z) > 1e-9 {
		if t := -origin.Z / dir.Z; t >= 0 {
			return origin.Add(dir.Scale(t))
		}
	}
	_, q := common.ClosestOnRay(origin, dir, c.center)
	return q
}

// Transitioning reports whether any particle is farther than eps from its
// target.
func (c *Controller) Transitioning(eps float64) bool {
	b := c.buf
	e2 := eps * eps
	for i := range b.Position {
		if b.Position[i].Sub(b.Target[i]).LenSq() > e2 {
			return true
		}
	}
	return false
}
