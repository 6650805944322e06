package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

func tone(freq, amp float64, n int, rate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

func TestAnalyzer_Empty(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	if d := a.Analyze(nil, 44100); d != (Drive{}) {
		t.Errorf("Expected zero drive for no samples, got %+v", d)
	}
	if d := a.Analyze(make([]float64, 2048), 0); d != (Drive{}) {
		t.Errorf("Expected zero drive for zero sample rate, got %+v", d)
	}
}

func TestAnalyzer_Silence(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	if d := a.Analyze(make([]float64, 2048), 44100); d != (Drive{}) {
		t.Errorf("Expected zero drive for silence, got %+v", d)
	}
}

func TestAnalyzer_Bands(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)

	low := a.Analyze(tone(60, 0.8, cfg.FFTSize, 44100), 44100)
	if low.Bass <= low.High {
		t.Errorf("Expected bass > high for 60 Hz, got %+v", low)
	}
	high := a.Analyze(tone(4000, 0.8, cfg.FFTSize, 44100), 44100)
	if high.High <= high.Bass {
		t.Errorf("Expected high > bass for 4 kHz, got %+v", high)
	}
	for _, d := range []Drive{low, high} {
		for _, v := range []float64{d.Bass, d.High, d.RMS} {
			if v < 0 || v > 1 {
				t.Errorf("Expected values in [0,1], got %+v", d)
			}
		}
	}
}

func TestAnalyzer_RMSGamma(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)
	d := a.Analyze(tone(440, 0.1, cfg.FFTSize, 44100), 44100)
	rms := 0.1 / math.Sqrt2
	want := math.Pow(rms*cfg.RMSGain, cfg.RMSGamma)
	if math.Abs(d.RMS-want) > 0.01 {
		t.Errorf("Expected RMS %f, got %f", want, d.RMS)
	}
}

func TestAnalyzer_ShortWindowPadded(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	d := a.Analyze(tone(80, 1, 512, 44100), 44100)
	if d.Bass == 0 || d.RMS == 0 {
		t.Errorf("Expected a padded short window to register, got %+v", d)
	}
}

func TestStreamTap_PassThrough(t *testing.T) {
	counter := 0.0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			counter++
			samples[i] = [2]float64{counter, counter}
		}
		return len(samples), true
	})
	tap := NewStreamTap(src, testRate, 8)

	buf := make([][2]float64, 5)
	n, ok := tap.Stream(buf)
	if n != 5 || !ok {
		t.Fatalf("Expected 5 samples, got %d (ok=%v)", n, ok)
	}
	if buf[4][0] != 5 {
		t.Errorf("Expected playback samples to pass through, got %v", buf[4])
	}

	dst := make([]float64, 8)
	if got := tap.ReadSamples(dst); got != 5 {
		t.Errorf("Expected 5 recorded samples, got %d", got)
	}

	tap.Stream(make([][2]float64, 6))
	if got := tap.ReadSamples(dst); got != 8 {
		t.Fatalf("Expected a full ring, got %d", got)
	}
	for i, v := range dst {
		if want := float64(4 + i); v != want {
			t.Errorf("Expected sample %d to be %f, got %f", i, want, v)
		}
	}
}
