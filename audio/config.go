package audio

// Config tunes the analysis and smoothing of the audio drive.
type Config struct {
	// Analysis window
	FFTSize int // samples per analysis window, a power of two

	// Band edges in Hz
	BassLow  float64
	BassHigh float64
	HighLow  float64
	HighHigh float64

	// Normalisation: the mean band magnitude (1.0 for a full-scale sine in a
	// single bin) is multiplied by the gain and clamped to [0, 1].
	BassGain float64
	HighGain float64
	RMSGain  float64

	// Gamma shaping, < 1 lifts quiet signals
	BassGamma float64
	HighGamma float64
	RMSGamma  float64

	// Per-frame smoothing factors: bass slowest, high fastest
	BassAlpha float64
	HighAlpha float64
	RMSAlpha  float64
}

// DefaultConfig returns the tuning used by the scene.
func DefaultConfig() Config {
	return Config{
		FFTSize: 2048,

		BassLow:  20,
		BassHigh: 140,
		HighLow:  2500,
		HighHigh: 8000,

		BassGain: 4.0,
		HighGain: 14.0,
		RMSGain:  2.5,

		BassGamma: 0.6,
		HighGamma: 0.7,
		RMSGamma:  0.65,

		BassAlpha: 0.08,
		HighAlpha: 0.3,
		RMSAlpha:  0.15,
	}
}
