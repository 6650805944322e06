package particle

import "github.com/lucasb-eyer/go-colorful"

// Config holds the tuning of the ambient nebula and the text cloud.
// Distances are world units; rates are per second unless noted.
type Config struct {
	// Ambient nebula
	AmbientCount int
	InnerRadius  float64
	OuterRadius  float64
	Flatten      float64 // y scale of the shell
	AmbientSize  float64

	RadialWobble   float64 // fraction of the home radius
	WobbleSpeed    float64
	NoiseAmplitude float64 // fraction of the home radius
	NoiseScale     float64 // spatial frequency
	NoiseSpeed     float64
	NoiseOctaves   int
	BassRadial     float64 // radius multiplier at full bass
	SpinSpeed      float64 // radians per second around y

	FlashRate        float64 // expected flashes per second
	FlashBoost       float64 // extra size multiplier at the flash peak
	FlashMinDuration float64
	FlashMaxDuration float64

	OpacityMin   float64
	OpacityMax   float64
	OpacitySpeed float64
	ColorSpeed   float64

	// Impulse field, per frame
	VelocityDecay float64
	OffsetDecay   float64
	RepelRadius   float64
	RepelStrength float64

	// Text cloud
	LerpFactor     float64 // per frame
	TextSize       float64
	StrokeSize     float64 // multiple of TextSize
	StrokeOpacity  float64
	FillOpacityMin float64
	FillOpacityMax float64
	SpawnInner     float64 // multiples of the cloud radius
	SpawnOuter     float64

	// Audio response
	BassSize       float64 // point size gain at full bass
	PulseScale     float64
	LuminanceScale float64
	SwarmScale     float64

	Base colorful.Color
	Glow colorful.Color
}

// DefaultConfig returns the nebula tuning used by the scene.
func DefaultConfig() Config {
	return Config{
		AmbientCount: 2400,
		InnerRadius:  160,
		OuterRadius:  620,
		Flatten:      0.55,
		AmbientSize:  2.4,

		RadialWobble:   0.04,
		WobbleSpeed:    0.6,
		NoiseAmplitude: 0.12,
		NoiseScale:     0.006,
		NoiseSpeed:     0.08,
		NoiseOctaves:   2,
		BassRadial:     0.18,
		SpinSpeed:      0.025,

		FlashRate:        0.06,
		FlashBoost:       0.9,
		FlashMinDuration: 0.7,
		FlashMaxDuration: 1.3,

		OpacityMin:   0.15,
		OpacityMax:   0.75,
		OpacitySpeed: 0.7,
		ColorSpeed:   0.25,

		VelocityDecay: 0.92,
		OffsetDecay:   0.985,
		RepelRadius:   70,
		RepelStrength: 260,

		LerpFactor:     0.075,
		TextSize:       1.6,
		StrokeSize:     0.8,
		StrokeOpacity:  0.95,
		FillOpacityMin: 0.55,
		FillOpacityMax: 0.85,
		SpawnInner:     1.5,
		SpawnOuter:     3,

		BassSize:       0.6,
		PulseScale:     0.35,
		LuminanceScale: 0.6,
		SwarmScale:     2.5,

		Base: colorful.Color{R: 0.36, G: 0.42, B: 0.95},
		Glow: colorful.Color{R: 0.95, G: 0.55, B: 0.98},
	}
}
