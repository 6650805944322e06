//go:build js
// +build js

package render

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/gopherjs/gopherjs/js"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/viewport"
)

const (
	spriteSize   = 64
	spriteLevels = 24
)

// RenderToCanvas creates an off-screen canvas and renders to it.
func RenderToCanvas(width, height int, renderFn func(canvas, ctx *js.Object)) *js.Object {
	document := js.Global.Get("document")
	canvas := document.Call("createElement", "canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	ctx := canvas.Call("getContext", "2d")
	renderFn(canvas, ctx)
	return canvas
}

// CanvasRenderer draws additive glow sprites on a 2D canvas.
type CanvasRenderer struct {
	canvas *js.Object
	ctx    *js.Object
	logger *slog.Logger

	width, height float64
	ratio         float64

	sprites map[string]*js.Object
	Drawn   int // sprites drawn by the last Render
}

// NewCanvasRenderer takes ownership of canvas.
func NewCanvasRenderer(canvas *js.Object, logger *slog.Logger) *CanvasRenderer {
	r := &CanvasRenderer{
		canvas:  canvas,
		ctx:     canvas.Call("getContext", "2d"),
		logger:  common.OrNop(logger),
		ratio:   1,
		sprites: make(map[string]*js.Object),
	}
	if dpr := js.Global.Get("devicePixelRatio"); dpr != js.Undefined && dpr != nil {
		r.ratio = math.Min(dpr.Float(), 2)
	}
	return r
}

// Resize implements Renderer. w and h are CSS pixels.
func (r *CanvasRenderer) Resize(w, h float64) {
	r.width, r.height = w, h
	r.canvas.Set("width", int(w*r.ratio))
	r.canvas.Set("height", int(h*r.ratio))
	r.logger.Debug("canvas resized", "width", w, "height", h, "ratio", r.ratio)
}

// Render implements Renderer.
func (r *CanvasRenderer) Render(s *Scene, cam *viewport.Camera) {
	if r.ctx == nil || r.width <= 0 || r.height <= 0 {
		return
	}
	ctx := r.ctx
	ctx.Call("setTransform", r.ratio, 0, 0, r.ratio, 0, 0)
	ctx.Set("globalCompositeOperation", "source-over")
	ctx.Set("globalAlpha", 1)
	ctx.Set("fillStyle", s.Uniforms.Background.Hex())
	ctx.Call("fillRect", 0, 0, r.width, r.height)

	ctx.Set("globalCompositeOperation", "lighter")
	r.Drawn = 0
	Each(s, cam, r.width, r.height, func(sp Splat) {
		d := sp.Radius * 2
		ctx.Set("globalAlpha", sp.Alpha)
		ctx.Call("drawImage", r.sprite(sp.Color), sp.X-sp.Radius, sp.Y-sp.Radius, d, d)
		r.Drawn++
	})
	ctx.Set("globalAlpha", 1)
	ctx.Set("globalCompositeOperation", "source-over")
}

// sprite returns a radial glow in c, quantised so the cache stays small.
func (r *CanvasRenderer) sprite(c colorful.Color) *js.Object {
	q := quantize(c)
	key := q.Hex()
	if img, ok := r.sprites[key]; ok {
		return img
	}
	img := RenderToCanvas(spriteSize, spriteSize, func(canvas, ctx *js.Object) {
		half := float64(spriteSize) / 2
		red, green, blue := q.RGB255()
		rgb := "rgba(" + strconv.Itoa(int(red)) + "," + strconv.Itoa(int(green)) + "," + strconv.Itoa(int(blue)) + ","
		g := ctx.Call("createRadialGradient", half, half, 0, half, half, half)
		g.Call("addColorStop", 0, rgb+"1)")
		g.Call("addColorStop", 0.25, rgb+"0.6)")
		g.Call("addColorStop", 1, rgb+"0)")
		ctx.Set("fillStyle", g)
		ctx.Call("fillRect", 0, 0, spriteSize, spriteSize)
	})
	r.sprites[key] = img
	return img
}

// Dispose implements Renderer. The canvas is cleared and released.
func (r *CanvasRenderer) Dispose() {
	if r.ctx != nil {
		r.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
		r.ctx.Call("clearRect", 0, 0, r.canvas.Get("width"), r.canvas.Get("height"))
	}
	r.sprites = nil
	r.ctx = nil
	r.canvas = nil
	r.logger.Debug("canvas renderer disposed")
}

func quantize(c colorful.Color) colorful.Color {
	c = c.Clamped()
	step := func(v float64) float64 { return math.Round(v*spriteLevels) / spriteLevels }
	return colorful.Color{R: step(c.R), G: step(c.G), B: step(c.B)}
}
