//go:build js
// +build js

package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/nebula/audio"
	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/render"
	"github.com/simukka/nebula/text"
)

// Scene is one running visualization bound to a canvas.
type Scene struct {
	fc       *FrameContext
	canvas   *js.Object
	renderer render.Renderer
	overlay  *StatsOverlay
	logger   *slog.Logger

	// Animation
	AnimationFrameID int
	LastFrameTime    float64
	frameFn          *js.Object

	listeners []listener
}

type listener struct {
	target *js.Object
	event  string
	fn     *js.Object
}

// Init lays out the text, taps the page media through graph and starts the
// frame loop on canvas. It blocks on font loading, so call it from a
// goroutine. A font failure is the only error.
func Init(ctx context.Context, canvas *js.Object, opts Options, graph audio.Graph, logger *slog.Logger) (*Scene, error) {
	logger = common.OrNop(logger)
	if canvas == nil || canvas == js.Undefined {
		return nil, errors.New("scene: canvas element not found")
	}

	sources := make([]text.FontSource, 0, len(opts.FontURLs)+1)
	for _, u := range opts.FontURLs {
		sources = append(sources, text.URLSource{URL: u})
	}
	sources = append(sources, text.GoBold())
	fonts, err := text.LoadProvider(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	logger.Info("font loaded", "source", fonts.Source, "family", fonts.Family())

	fc, err := NewFrameContext(opts, fonts, graph, logger)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		fc:       fc,
		canvas:   canvas,
		renderer: render.NewCanvasRenderer(canvas, logger.With("component", "render")),
		overlay:  NewStatsOverlay(opts.Theme),
		logger:   logger,
	}
	fc.Locator = audio.DOMLocator{}
	fc.AttachAudio()

	s.resize()
	s.SetupInputHandlers()
	s.frameFn = js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		s.FrameRAF(args[0].Float())
		return nil
	})
	s.AnimationFrameID = js.Global.Call("requestAnimationFrame", s.frameFn).Int()
	logger.Info("scene started", "ambient", fc.Field.Ambient.Len(), "text", fc.Field.Text.Len())
	return s, nil
}

// Context returns the frame state, or nil once destroyed.
func (s *Scene) Context() *FrameContext { return s.fc }

// Destroy stops the loop, disposes the renderer and drops all state. It is
// safe to call more than once.
func (s *Scene) Destroy() {
	if s.fc == nil {
		return
	}
	s.fc.Release()
	js.Global.Call("cancelAnimationFrame", s.AnimationFrameID)
	for _, l := range s.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
	}
	s.listeners = nil
	s.renderer.Dispose()
	s.renderer = nil
	s.fc = nil
	s.frameFn = nil
	s.logger.Info("scene destroyed")
}

// SetText replaces the text in the current mode.
func (s *Scene) SetText(str string) error {
	if s.fc == nil {
		return errors.New("scene: destroyed")
	}
	return s.fc.SetText(str)
}

// resize matches the canvas to its CSS box and refits the text.
func (s *Scene) resize() {
	w := s.canvas.Get("clientWidth").Float()
	h := s.canvas.Get("clientHeight").Float()
	if w <= 0 || h <= 0 {
		w = js.Global.Get("innerWidth").Float()
		h = js.Global.Get("innerHeight").Float()
	}
	s.renderer.Resize(w, h)
	s.fc.Resize(w, h)
}

func (s *Scene) listen(target *js.Object, event string, fn func(event *js.Object)) {
	f := js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		fn(args[0])
		return nil
	})
	target.Call("addEventListener", event, f)
	s.listeners = append(s.listeners, listener{target: target, event: event, fn: f})
}
