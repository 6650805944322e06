package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
)

// StreamTap is a pass-through beep.Streamer that keeps the most recent mono
// samples in a ring buffer for analysis. Play the tap instead of the
// original streamer and the audio is heard unchanged.
type StreamTap struct {
	// Pull, when positive, makes every ReadSamples call first stream that
	// many frames from the source itself. It drives offline analysis when
	// nothing is playing the tap.
	Pull int

	src  beep.Streamer
	rate beep.SampleRate

	mu      sync.Mutex
	ring    []float64
	pos     int
	filled  int
	scratch [][2]float64
}

// NewStreamTap wraps src, remembering up to size samples.
func NewStreamTap(src beep.Streamer, rate beep.SampleRate, size int) *StreamTap {
	if size <= 0 {
		size = DefaultConfig().FFTSize
	}
	return &StreamTap{src: src, rate: rate, ring: make([]float64, size)}
}

// Stream implements beep.Streamer.
func (t *StreamTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.src.Stream(samples)
	t.mu.Lock()
	t.record(samples[:n])
	t.mu.Unlock()
	return n, ok
}

// Err implements beep.Streamer.
func (t *StreamTap) Err() error { return t.src.Err() }

func (t *StreamTap) record(samples [][2]float64) {
	for _, s := range samples {
		t.ring[t.pos] = (s[0] + s[1]) / 2
		t.pos = (t.pos + 1) % len(t.ring)
		if t.filled < len(t.ring) {
			t.filled++
		}
	}
}

// ReadSamples implements Source.
func (t *StreamTap) ReadSamples(dst []float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Pull > 0 {
		if cap(t.scratch) < t.Pull {
			t.scratch = make([][2]float64, t.Pull)
		}
		buf := t.scratch[:t.Pull]
		n, _ := t.src.Stream(buf)
		for i := n; i < len(buf); i++ {
			// An exhausted source reads as silence.
			buf[i] = [2]float64{}
		}
		t.record(buf)
	}

	n := len(dst)
	if n > t.filled {
		n = t.filled
	}
	start := (t.pos - n + len(t.ring)) % len(t.ring)
	for i := 0; i < n; i++ {
		dst[i] = t.ring[(start+i)%len(t.ring)]
	}
	return n
}

// SampleRate implements Source.
func (t *StreamTap) SampleRate() float64 { return float64(t.rate) }

// StreamGraph is a Graph over beep streamers for native hosts and tests.
// Media handed to Tap must be a beep.Streamer.
type StreamGraph struct {
	Rate beep.SampleRate
	Size int
	Pull int

	mu        sync.Mutex
	taps      []*StreamTap
	suspended bool
}

// NewStreamGraph creates a graph producing taps at rate.
func NewStreamGraph(rate beep.SampleRate, size int) *StreamGraph {
	return &StreamGraph{Rate: rate, Size: size}
}

// Tap implements Graph. Tapping the same streamer twice returns the same tap.
func (g *StreamGraph) Tap(m Media) (Source, error) {
	s, ok := m.(beep.Streamer)
	if !ok {
		return nil, fmt.Errorf("audio: cannot tap %T", m)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range g.taps {
		if sameMedia(t.src, s) {
			return t, nil
		}
	}
	t := NewStreamTap(s, g.Rate, g.Size)
	t.Pull = g.Pull
	g.taps = append(g.taps, t)
	return t, nil
}

// Suspend pauses analysis until Resume, mirroring a browser audio context
// blocked by autoplay policy.
func (g *StreamGraph) Suspend() {
	g.mu.Lock()
	g.suspended = true
	g.mu.Unlock()
}

// Suspended implements Graph.
func (g *StreamGraph) Suspended() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.suspended
}

// Resume implements Graph.
func (g *StreamGraph) Resume() error {
	g.mu.Lock()
	g.suspended = false
	g.mu.Unlock()
	return nil
}
