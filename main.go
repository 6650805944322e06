//go:build js
// +build js

package main

import (
	"context"
	"log/slog"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/nebula/audio"
	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/mode"
	"github.com/simukka/nebula/scene"
	"github.com/simukka/nebula/viewport"
)

// host owns the page-wide services and the scene currently on the canvas.
type host struct {
	graph  audio.Graph
	level  *slog.LevelVar
	logger *slog.Logger

	current *scene.Scene
	last    *js.Object // options of the last init, reused after transitions
	gen     int
}

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(common.NewConsoleHandler(level))

	h := &host{level: level, logger: logger}
	// Browsers allow one MediaElementSource per element, so the graph lives
	// as long as the page.
	if g, err := audio.NewWebGraph(audio.DefaultConfig().FFTSize, logger.With("component", "webaudio")); err != nil {
		logger.Warn("web audio unavailable", "error", err)
	} else {
		h.graph = g
	}

	js.Global.Set("Nebula", map[string]interface{}{
		"init":     h.init,
		"destroy":  h.destroy,
		"setText":  h.setText,
		"toggle":   func() { h.withScene(func(fc *scene.FrameContext) { fc.Controller.Toggle() }) },
		"assemble": func() { h.withScene(func(fc *scene.FrameContext) { fc.Controller.SetMode(mode.Assemble) }) },
		"dissolve": func() { h.withScene(func(fc *scene.FrameContext) { fc.Controller.SetMode(mode.Dissolve) }) },
	})

	doc := js.Global.Get("document")
	doc.Call("addEventListener", "nebula:before-transition", func() {
		h.destroy()
	})
	doc.Call("addEventListener", "nebula:after-transition", func() {
		h.init(h.last)
	})

	select {}
}

// init starts a scene and returns a promise settled once the font has
// loaded and the first frame is scheduled.
func (h *host) init(opts *js.Object) *js.Object {
	h.destroy()
	h.gen++
	gen := h.gen
	h.last = opts
	return js.Global.Get("Promise").New(func(resolve, reject *js.Object) {
		go func() {
			o := parseOptions(opts)
			if o.Debug {
				h.level.Set(slog.LevelDebug)
			} else {
				h.level.Set(slog.LevelInfo)
			}
			canvas := findCanvas(opts)
			s, err := scene.Init(context.Background(), canvas, o, h.graph, h.logger)
			if err != nil {
				h.logger.Error("nebula init failed", "error", err)
				reject.Invoke(err.Error())
				return
			}
			if gen != h.gen {
				// Destroyed or re-initialised while the font loaded.
				s.Destroy()
				resolve.Invoke()
				return
			}
			h.current = s
			resolve.Invoke()
		}()
	})
}

func (h *host) destroy() {
	h.gen++
	if h.current != nil {
		h.current.Destroy()
		h.current = nil
	}
}

func (h *host) setText(s string) {
	if h.current == nil {
		return
	}
	if err := h.current.SetText(s); err != nil {
		h.logger.Error("nebula setText failed", "error", err)
	}
}

func (h *host) withScene(fn func(fc *scene.FrameContext)) {
	if h.current == nil {
		return
	}
	if fc := h.current.Context(); fc != nil {
		fn(fc)
	}
}

func findCanvas(opts *js.Object) *js.Object {
	doc := js.Global.Get("document")
	if present(opts) {
		if c := opts.Get("canvas"); present(c) {
			if c.Get("getContext") != js.Undefined {
				return c
			}
			return doc.Call("querySelector", c.String())
		}
	}
	return doc.Call("getElementById", "c")
}

// parseOptions overlays the page's init options on the defaults.
func parseOptions(opts *js.Object) scene.Options {
	o := scene.DefaultOptions()
	if !present(opts) {
		return o
	}
	if v := opts.Get("text"); present(v) {
		o.Text = v.String()
	}
	if v := opts.Get("seed"); present(v) {
		o.Seed = uint32(v.Int64())
	}
	if v := opts.Get("debug"); present(v) {
		o.Debug = v.Bool()
	}
	if v := opts.Get("fontUrls"); present(v) {
		for i := 0; i < v.Length(); i++ {
			o.FontURLs = append(o.FontURLs, v.Index(i).String())
		}
	}
	if v := opts.Get("maxPoints"); present(v) {
		o.Layout.Sampler.MaxPoints = v.Int()
	}
	if v := opts.Get("maxCharsPerLine"); present(v) {
		o.Layout.MaxCharsPerLine = v.Int()
	}
	if v := opts.Get("ambientCount"); present(v) {
		o.Particle.AmbientCount = v.Int()
	}
	if v := opts.Get("margin"); present(v) {
		o.Margin = v.Float()
	}
	if v := opts.Get("bottomSafe"); present(v) {
		o.BottomSafe = v.Float()
	}
	if v := opts.Get("rect"); present(v) {
		o.Rect = &viewport.Rect{
			X: v.Get("x").Float(),
			Y: v.Get("y").Float(),
			W: v.Get("width").Float(),
			H: v.Get("height").Float(),
		}
	}
	if t := opts.Get("theme"); present(t) {
		for key, dst := range map[string]*string{
			"background": &o.Theme.BackgroundColor,
			"base":       &o.Theme.BaseColor,
			"glow":       &o.Theme.GlowColor,
		} {
			if v := t.Get(key); present(v) {
				*dst = v.String()
			}
		}
	}
	return o
}

func present(v *js.Object) bool {
	return v != nil && v != js.Undefined
}
