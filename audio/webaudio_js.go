//go:build js
// +build js

package audio

import (
	"fmt"
	"log/slog"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/nebula/common"
)

// WebGraph is the page-wide Web Audio graph. Browsers allow a single
// MediaElementSource per element, so one WebGraph is created at page load
// and shared by every scene.
type WebGraph struct {
	ctx     *js.Object
	fftSize int
	logger  *slog.Logger
	taps    []webTap
}

type webTap struct {
	element *js.Object
	source  *webSource
}

// NewWebGraph creates the AudioContext. It fails with ErrNoGraph when the
// browser has no Web Audio support.
func NewWebGraph(fftSize int, logger *slog.Logger) (*WebGraph, error) {
	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return nil, ErrNoGraph
	}
	if fftSize <= 0 {
		fftSize = DefaultConfig().FFTSize
	}
	return &WebGraph{
		ctx:     audioCtx.New(),
		fftSize: fftSize,
		logger:  common.OrNop(logger),
	}, nil
}

// Tap implements Graph. The element keeps playing through the destination;
// the analyser is connected in parallel.
func (g *WebGraph) Tap(m Media) (src Source, err error) {
	el, ok := m.(*js.Object)
	if !ok || el == nil || el == js.Undefined {
		return nil, fmt.Errorf("audio: cannot tap %T", m)
	}
	for _, t := range g.taps {
		if t.element == el {
			return t.source, nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("audio: web audio: %v", r)
		}
	}()

	media := g.ctx.Call("createMediaElementSource", el)
	analyser := g.ctx.Call("createAnalyser")
	analyser.Set("fftSize", g.fftSize)
	analyser.Set("smoothingTimeConstant", 0)
	media.Call("connect", analyser)
	media.Call("connect", g.ctx.Get("destination"))

	s := &webSource{
		analyser: analyser,
		buf:      js.Global.Get("Float32Array").New(g.fftSize),
		rate:     g.ctx.Get("sampleRate").Float(),
	}
	g.taps = append(g.taps, webTap{element: el, source: s})
	g.logger.Debug("media element tapped", "fftSize", g.fftSize, "sampleRate", s.rate)
	return s, nil
}

// Suspended implements Graph.
func (g *WebGraph) Suspended() bool {
	return g.ctx.Get("state").String() == "suspended"
}

// Resume implements Graph. The browser resolves the request asynchronously;
// a rejection is logged, not returned.
func (g *WebGraph) Resume() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("audio: resume: %v", r)
		}
	}()
	promise := g.ctx.Call("resume")
	if promise != nil && promise != js.Undefined {
		promise.Call("catch", func(reason *js.Object) {
			g.logger.Warn("audio context resume rejected", "reason", reason.String())
		})
	}
	return nil
}

type webSource struct {
	analyser *js.Object
	buf      *js.Object
	rate     float64
}

// ReadSamples implements Source.
func (s *webSource) ReadSamples(dst []float64) int {
	s.analyser.Call("getFloatTimeDomainData", s.buf)
	n := s.buf.Length()
	if n > len(dst) {
		n = len(dst)
	}
	off := s.buf.Length() - n
	for i := 0; i < n; i++ {
		dst[i] = s.buf.Index(off + i).Float()
	}
	return n
}

// SampleRate implements Source.
func (s *webSource) SampleRate() float64 { return s.rate }

// DOMLocator finds the first audio or video element on the page.
type DOMLocator struct {
	Selector string
}

// Locate implements Locator.
func (l DOMLocator) Locate() (Media, bool) {
	sel := l.Selector
	if sel == "" {
		sel = "audio, video"
	}
	doc := js.Global.Get("document")
	if doc == nil || doc == js.Undefined {
		return nil, false
	}
	el := doc.Call("querySelector", sel)
	if el == nil || el == js.Undefined {
		return nil, false
	}
	return el, true
}
