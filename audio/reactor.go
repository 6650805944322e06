// Package audio extracts smoothed bass, high and loudness signals from a
// playing media element. The analysis is pure Go; the browser graph and the
// beep stream tap are interchangeable sample sources.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/simukka/nebula/common"
)

// Sentinel errors for the audio package.
var (
	// ErrNoMedia is returned by Attach when the locator finds nothing to
	// analyse. It is not a failure of the visualisation.
	ErrNoMedia = errors.New("audio: no media element")

	// ErrTapFailed is returned when the graph cannot tap the media.
	ErrTapFailed = errors.New("audio: tap failed")

	// ErrNoGraph is returned when the host has no audio graph.
	ErrNoGraph = errors.New("audio: no audio graph")
)

// Drive is the smoothed audio signal handed to the particle field. Every
// channel is in [0, 1].
type Drive struct {
	Bass float64
	High float64
	RMS  float64
}

// Clamp returns d with every channel clamped to [0, 1].
func (d Drive) Clamp() Drive {
	return Drive{Bass: common.Clamp01(d.Bass), High: common.Clamp01(d.High), RMS: common.Clamp01(d.RMS)}
}

// State is the attachment state of a Reactor.
type State int

const (
	Uninitialized State = iota
	Attached
	Running
	Suspended
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Attached:
		return "attached"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Media is an opaque handle to something playable, understood only by the
// Graph that taps it.
type Media any

// Locator finds the media to react to. Finding nothing is normal.
type Locator interface {
	Locate() (Media, bool)
}

// LocatorFunc adapts a function to a Locator.
type LocatorFunc func() (Media, bool)

// Locate implements Locator.
func (f LocatorFunc) Locate() (Media, bool) { return f() }

// Source delivers the most recent time-domain samples of a tapped media.
type Source interface {
	// ReadSamples fills dst with the latest mono samples in chronological
	// order and returns how many were written.
	ReadSamples(dst []float64) int
	SampleRate() float64
}

// Graph is the process-wide audio service. Tapping must leave the original
// playback routing intact, and tapping the same media twice must return the
// same source.
type Graph interface {
	Tap(m Media) (Source, error)
	Suspended() bool
	Resume() error
}

// Reactor turns a tapped media into a smoothed Drive, one Update per frame.
type Reactor struct {
	cfg      Config
	graph    Graph
	logger   *slog.Logger
	analyzer *Analyzer

	state   State
	media   Media
	source  Source
	samples []float64
	drive   Drive
}

// NewReactor creates a reactor over graph. A nil graph is allowed; the
// reactor then stays uninitialized and reports zero drive.
func NewReactor(graph Graph, cfg Config, logger *slog.Logger) *Reactor {
	a := NewAnalyzer(cfg)
	return &Reactor{
		cfg:      a.cfg,
		graph:    graph,
		logger:   common.OrNop(logger),
		analyzer: a,
		samples:  make([]float64, a.cfg.FFTSize),
	}
}

// State returns the current attachment state.
func (r *Reactor) State() State { return r.state }

// Drive returns the last computed drive.
func (r *Reactor) Drive() Drive { return r.drive }

// Attach locates the media and taps it. On failure the reactor keeps its
// previous state; callers treat the error as informational.
func (r *Reactor) Attach(loc Locator) error {
	if r.graph == nil {
		r.logger.Debug("audio graph unavailable")
		return ErrNoGraph
	}
	if loc == nil {
		return ErrNoMedia
	}
	m, ok := loc.Locate()
	if !ok {
		r.logger.Debug("no media element found")
		return ErrNoMedia
	}
	if r.state != Uninitialized && sameMedia(r.media, m) {
		return nil
	}
	src, err := r.graph.Tap(m)
	if err != nil {
		r.logger.Debug("audio tap failed", "error", err)
		return fmt.Errorf("%w: %w", ErrTapFailed, err)
	}
	r.media = m
	r.source = src
	r.state = Attached
	r.logger.Debug("audio attached", "sampleRate", src.SampleRate())
	return nil
}

// Reattach clears the smoothing state and attaches again.
func (r *Reactor) Reattach(loc Locator) error {
	r.drive = Drive{}
	r.state = Uninitialized
	r.media = nil
	r.source = nil
	return r.Attach(loc)
}

// Resume asks the graph to leave the suspended state. It is called from
// user gestures and only logs on failure.
func (r *Reactor) Resume() {
	if r.graph == nil || !r.graph.Suspended() {
		return
	}
	if err := r.graph.Resume(); err != nil {
		r.logger.Warn("audio resume failed", "error", err)
		return
	}
	r.logger.Debug("audio resumed")
}

// Update analyses the latest samples and returns the smoothed drive. While
// unattached or suspended it returns the last drive unchanged.
func (r *Reactor) Update() Drive {
	if r.state == Uninitialized || r.source == nil {
		return r.drive
	}
	if r.graph.Suspended() {
		if r.state != Suspended {
			r.logger.Debug("audio suspended")
		}
		r.state = Suspended
		return r.drive
	}
	r.state = Running

	n := r.source.ReadSamples(r.samples)
	raw := r.analyzer.Analyze(r.samples[:n], r.source.SampleRate())
	r.drive = Drive{
		Bass: smooth(r.drive.Bass, raw.Bass, r.cfg.BassAlpha),
		High: smooth(r.drive.High, raw.High, r.cfg.HighAlpha),
		RMS:  smooth(r.drive.RMS, raw.RMS, r.cfg.RMSAlpha),
	}.Clamp()
	return r.drive
}

// sameMedia compares two handles without panicking on uncomparable
// dynamic types such as beep.StreamerFunc.
func sameMedia(a, b Media) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func smooth(cur, raw, alpha float64) float64 {
	return cur + (raw-cur)*common.Clamp01(alpha)
}
