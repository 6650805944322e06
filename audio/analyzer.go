package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/simukka/nebula/common"
)

// Analyzer turns a window of mono time-domain samples into raw, unsmoothed
// band energies. It reuses its buffers and is not safe for concurrent use.
type Analyzer struct {
	cfg    Config
	fft    *fourier.FFT
	window []float64
	buf    []float64
	coeffs []complex128
}

// NewAnalyzer creates an analyzer for cfg.FFTSize samples.
func NewAnalyzer(cfg Config) *Analyzer {
	n := cfg.FFTSize
	if n < 16 {
		n = 16
	}
	cfg.FFTSize = n
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return &Analyzer{
		cfg:    cfg,
		fft:    fourier.NewFFT(n),
		window: w,
		buf:    make([]float64, n),
		coeffs: make([]complex128, n/2+1),
	}
}

// Analyze returns the gamma-shaped bass, high and RMS levels of samples.
// Shorter input is zero padded at the front; longer input is cut to the
// most recent FFTSize samples.
func (a *Analyzer) Analyze(samples []float64, sampleRate float64) Drive {
	n := a.cfg.FFTSize
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	if len(samples) == 0 || sampleRate <= 0 {
		return Drive{}
	}

	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(samples)))

	pad := n - len(samples)
	for i := 0; i < pad; i++ {
		a.buf[i] = 0
	}
	for i, s := range samples {
		a.buf[pad+i] = s * a.window[pad+i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.buf)

	return Drive{
		Bass: shape(a.bandMean(a.cfg.BassLow, a.cfg.BassHigh, sampleRate)*a.cfg.BassGain, a.cfg.BassGamma),
		High: shape(a.bandMean(a.cfg.HighLow, a.cfg.HighHigh, sampleRate)*a.cfg.HighGain, a.cfg.HighGamma),
		RMS:  shape(rms*a.cfg.RMSGain, a.cfg.RMSGamma),
	}
}

// bandMean averages the normalised magnitude of the bins whose centre
// frequency lies in [lo, hi]. A band narrower than one bin uses the bin
// nearest its centre.
func (a *Analyzer) bandMean(lo, hi, sampleRate float64) float64 {
	n := a.cfg.FFTSize
	binHz := sampleRate / float64(n)
	first := int(math.Ceil(lo / binHz))
	last := int(math.Floor(hi / binHz))
	maxBin := len(a.coeffs) - 1
	if first < 1 {
		first = 1
	}
	if last > maxBin {
		last = maxBin
	}
	if first > last {
		k := int(math.Round((lo + hi) / 2 / binHz))
		if k < 1 || k > maxBin {
			return 0
		}
		first, last = k, k
	}
	// Hann window coherent gain is 0.5 and the spectrum is one-sided, so a
	// full-scale sine peaks at n/4.
	norm := 4 / float64(n)
	var sum float64
	for k := first; k <= last; k++ {
		sum += cmplx.Abs(a.coeffs[k]) * norm
	}
	return sum / float64(last-first+1)
}

// shape clamps v to [0, 1] and applies the gamma curve.
func shape(v, gamma float64) float64 {
	v = common.Clamp01(v)
	if gamma <= 0 || v == 0 {
		return v
	}
	return math.Pow(v, gamma)
}
