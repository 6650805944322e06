package particle

import (
	"log/slog"
	"math"

	"github.com/simukka/nebula/audio"
	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/noise"
)

// Uniforms are the per-frame values every point is shaded with.
type Uniforms struct {
	Time               float64
	PointSize          float64 // text point size multiplier
	AmbientScale       float64 // ambient point size multiplier
	PulseAmplitude     float64
	LuminanceAmplitude float64
	SwarmAmplitude     float64
	Flash              float64 // current flash level in [0, 1]
}

// Field advances the ambient nebula and the text cloud.
type Field struct {
	cfg    Config
	rng    *common.SeededRNG
	logger *slog.Logger

	Ambient *Buffer
	Text    *Buffer

	sizeBoost float64
	spin      float64

	flashing      bool
	flashAge      float64
	flashDuration float64

	uniforms Uniforms
}

// NewField creates the ambient nebula. The text cloud is empty until SetText.
func NewField(cfg Config, rng *common.SeededRNG, logger *slog.Logger) *Field {
	if rng == nil {
		rng = common.NewSeededRNG(1)
	}
	f := &Field{
		cfg:       cfg,
		rng:       rng.Fork(1),
		logger:    common.OrNop(logger),
		Ambient:   NewAmbientBuffer(cfg, rng.Fork(0)),
		Text:      NewBuffer(0),
		sizeBoost: 1,
	}
	f.uniforms = Uniforms{PointSize: 1, AmbientScale: 1}
	f.logger.Debug("ambient field created", "particles", f.Ambient.Len())
	return f
}

// Config returns the field tuning.
func (f *Field) Config() Config { return f.cfg }

// SetText replaces the text cloud. sizeBoost scales text points, for short
// strings.
func (f *Field) SetText(b *Buffer, sizeBoost float64) {
	if b == nil {
		b = NewBuffer(0)
	}
	if sizeBoost <= 0 {
		sizeBoost = 1
	}
	f.Text = b
	f.sizeBoost = sizeBoost
	f.logger.Debug("text cloud replaced", "particles", b.Len(), "sizeBoost", sizeBoost)
}

// Uniforms returns the values computed by the last Advance.
func (f *Field) Uniforms() Uniforms { return f.uniforms }

// Flash reports the current flash level in [0, 1].
func (f *Field) Flash() float64 { return f.uniforms.Flash }

// Advance moves both clouds one frame forward. time is the scene clock in
// seconds; drive is clamped before use.
func (f *Field) Advance(dt, time float64, drive audio.Drive) {
	if dt < 0 {
		dt = 0
	}
	drive = drive.Clamp()
	f.spin += f.cfg.SpinSpeed * dt

	flash := f.advanceFlash(dt)
	f.advanceAmbient(dt, time, drive, flash)
	f.advanceText()

	f.uniforms = Uniforms{
		Time:               time,
		PointSize:          f.sizeBoost * (1 + drive.Bass*f.cfg.BassSize) * (1 + flash*f.cfg.FlashBoost*0.5),
		AmbientScale:       (1 + drive.Bass*f.cfg.BassSize*0.5) * (1 + flash*f.cfg.FlashBoost),
		PulseAmplitude:     drive.Bass * f.cfg.PulseScale,
		LuminanceAmplitude: drive.High * f.cfg.LuminanceScale,
		SwarmAmplitude:     drive.RMS * f.cfg.SwarmScale,
		Flash:              flash,
	}
}

// advanceFlash rolls for a new flash and returns the current level. The
// roll is normalised so the flash rate does not depend on the frame rate.
func (f *Field) advanceFlash(dt float64) float64 {
	if !f.flashing {
		p := 1 - math.Exp(-f.cfg.FlashRate*dt)
		if f.rng.Random() < p {
			f.flashing = true
			f.flashAge = 0
			f.flashDuration = f.rng.RandomFloat(f.cfg.FlashMinDuration, f.cfg.FlashMaxDuration)
		}
	} else {
		f.flashAge += dt
	}
	if !f.flashing {
		return 0
	}
	if f.flashAge >= f.flashDuration {
		f.flashing = false
		return 0
	}
	return math.Exp(-5 * f.flashAge / f.flashDuration)
}

func (f *Field) advanceAmbient(dt, time float64, drive audio.Drive, flash float64) {
	b := f.Ambient
	cfg := f.cfg
	bass := 1 + drive.Bass*cfg.BassRadial
	vDecay, oDecay := cfg.VelocityDecay, cfg.OffsetDecay
	for i, h := range b.Home {
		r := h.Len()
		if r == 0 {
			b.Position[i] = b.Offset[i]
			continue
		}
		phase := b.Phase[i]
		amp := b.Amplitude[i]

		wobble := math.Sin(time*cfg.WobbleSpeed+phase) * cfg.RadialWobble * amp
		n := noise.Fractal4(
			h.X*cfg.NoiseScale, h.Y*cfg.NoiseScale, h.Z*cfg.NoiseScale,
			time*cfg.NoiseSpeed+float64(i)*0.0137, cfg.NoiseOctaves)
		radius := (1 + wobble + (n-0.5)*2*cfg.NoiseAmplitude) * bass

		b.Offset[i] = b.Offset[i].Add(b.Velocity[i].Scale(dt))
		b.Velocity[i] = b.Velocity[i].Scale(vDecay)
		b.Offset[i] = b.Offset[i].Scale(oDecay)

		b.Position[i] = h.Scale(radius).RotateY(f.spin).Add(b.Offset[i])

		o := 0.5 + 0.5*math.Sin(time*cfg.OpacitySpeed*(0.5+amp)+phase*1.7)
		b.Opacity[i] = cfg.OpacityMin + (cfg.OpacityMax-cfg.OpacityMin)*common.Clamp01(o+flash*0.3)

		c := 0.5 + 0.5*math.Sin(time*cfg.ColorSpeed+phase*2.3)
		b.Color[i] = cfg.Base.BlendLab(cfg.Glow, common.Clamp01(c*0.7+drive.High*0.3))
	}
}

func (f *Field) advanceText() {
	b := f.Text
	k := common.Clamp01(f.cfg.LerpFactor)
	for i := range b.Position {
		p := b.Position[i]
		t := b.Target[i]
		b.Position[i] = p.Add(t.Sub(p).Scale(k))
	}
}

// Repel pushes ambient particles near the ray origin + dir*t away from it.
// dir must be normalized.
func (f *Field) Repel(origin, dir common.Point3) {
	b := f.Ambient
	radius := f.cfg.RepelRadius
	if radius <= 0 {
		return
	}
	hit := 0
	for i, p := range b.Position {
		_, c := common.ClosestOnRay(origin, dir, p)
		away := p.Sub(c)
		d := away.Len()
		if d >= radius {
			continue
		}
		if d == 0 {
			away = f.rng.UnitVector()
		} else {
			away = away.Scale(1 / d)
		}
		fall := 1 - d/radius
		b.Velocity[i] = b.Velocity[i].Add(away.Scale(f.cfg.RepelStrength * fall * fall))
		hit++
	}
	f.logger.Debug("ambient repel", "particles", hit)
}
