// Package scene ties the nebula together: it owns the per-frame state of one
// canvas, steps it, and wires it to the browser.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/simukka/nebula/audio"
	"github.com/simukka/nebula/common"
	"github.com/simukka/nebula/mode"
	"github.com/simukka/nebula/particle"
	"github.com/simukka/nebula/render"
	"github.com/simukka/nebula/text"
	"github.com/simukka/nebula/viewport"
)

// FrameContext holds every piece of state a frame reads or writes. It is
// only touched from the frame loop and input handlers, which share one
// thread.
type FrameContext struct {
	Alive bool

	Options    Options
	Palette    Palette
	Fonts      text.FontProvider
	Field      *particle.Field
	Reactor    *audio.Reactor
	Controller *mode.Controller
	Camera     viewport.Camera
	Placement  viewport.Placement
	Cloud      *text.Cloud

	// Locator finds the page media. Gestures retry it while nothing is
	// attached.
	Locator audio.Locator

	ViewW, ViewH float64
	Time         float64
	Frames       int
	ModeChanges  int
	Drive        audio.Drive

	rng    *common.SeededRNG
	texts  int
	logger *slog.Logger
}

// NewFrameContext builds the scene state and lays out opts.Text. graph may
// be nil; the scene then runs without audio. The only errors are a bad
// theme or a font provider failure.
func NewFrameContext(opts Options, fonts text.FontProvider, graph audio.Graph, logger *slog.Logger) (*FrameContext, error) {
	logger = common.OrNop(logger)
	pal, err := opts.Theme.Palette()
	if err != nil {
		return nil, err
	}
	opts.Particle.Base = pal.Base
	opts.Particle.Glow = pal.Glow

	rng := common.NewSeededRNG(opts.Seed)
	fc := &FrameContext{
		Options:    opts,
		Palette:    pal,
		Fonts:      fonts,
		Field:      particle.NewField(opts.Particle, rng.Fork(1), logger.With("component", "particle")),
		Reactor:    audio.NewReactor(graph, opts.Audio, logger.With("component", "audio")),
		Controller: mode.NewController(nil, opts.Mode, rng.Fork(2), logger.With("component", "mode")),
		Camera:     viewport.NewCamera(opts.FOV, 1, opts.CameraZ),
		rng:        rng,
		logger:     logger,
	}
	fc.Controller.OnChange = fc.modeChanged
	if err := fc.SetText(opts.Text); err != nil {
		return nil, err
	}
	fc.Alive = true
	return fc, nil
}

// SetText lays out s and swaps in a new text cloud in the current mode. On
// error the previous cloud stays.
func (fc *FrameContext) SetText(s string) error {
	fc.texts++
	rng := fc.rng.Fork(100 + fc.texts)
	cloud, err := text.Layout(s, fc.Options.Layout, fc.Fonts, rng)
	if err != nil {
		return fmt.Errorf("scene: set text: %w", err)
	}
	buf := particle.NewTextBuffer(cloud, fc.Field.Config(), rng.Fork(1))
	fc.Field.SetText(buf, cloud.SizeBoost)
	fc.Controller.SetBuffer(buf)
	fc.Cloud = cloud
	fc.refit()
	fc.logger.Info("text set", "lines", len(cloud.Lines), "chars", cloud.Chars,
		"fill", len(cloud.Fill), "stroke", len(cloud.Stroke))
	return nil
}

// Resize records the viewport size in CSS pixels and refits the text.
func (fc *FrameContext) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	fc.ViewW, fc.ViewH = w, h
	fc.Camera.SetViewport(w, h)
	fc.refit()
}

func (fc *FrameContext) refit() {
	if fc.Cloud == nil {
		return
	}
	f := viewport.Fitter{Box: fc.Cloud.Bounds(), Chars: fc.Cloud.Chars, Config: fc.Options.Fit}
	if r := fc.Options.Rect; r != nil && fc.ViewW > 0 && fc.ViewH > 0 {
		fc.Placement = f.FitToRect(fc.Camera, *r, viewport.Rect{W: fc.ViewW, H: fc.ViewH}, fc.Options.Margin)
	} else {
		fc.Placement = f.FitToView(fc.Camera, fc.Options.Margin, fc.Options.BottomSafe)
	}
	fc.logger.Debug("text fitted", "scale", fc.Placement.Scale, "x", fc.Placement.Position.X, "y", fc.Placement.Position.Y)
}

// AttachAudio taps the media found by Locator. Without media the scene
// keeps running on zero drive.
func (fc *FrameContext) AttachAudio() {
	if fc.Locator == nil {
		return
	}
	if err := fc.Reactor.Attach(fc.Locator); err != nil {
		fc.logger.Debug("running without audio", "error", err)
	}
}

// Gesture handles a user gesture. A media element added after init is
// tapped on the first gesture that finds it, then suspended audio resumes.
func (fc *FrameContext) Gesture() {
	if !fc.Alive {
		return
	}
	if fc.Locator != nil && fc.Reactor.State() == audio.Uninitialized {
		if err := fc.Reactor.Reattach(fc.Locator); err != nil {
			fc.logger.Debug("audio still unattached", "error", err)
		}
	}
	fc.Reactor.Resume()
}

// Pointer handles a press at pixel (px, py): it counts as a gesture, repels
// the nebula and bursts the text around the ray. It returns the number of
// text particles burst.
func (fc *FrameContext) Pointer(px, py float64) int {
	if !fc.Alive || fc.ViewW <= 0 || fc.ViewH <= 0 {
		return 0
	}
	fc.Gesture()
	origin, dir := fc.Camera.Ray(px, py, fc.ViewW, fc.ViewH)
	fc.Field.Repel(origin, dir)
	lo, ld := fc.Placement.ToLocal(origin, dir)
	return fc.Controller.Burst(lo, ld)
}

func (fc *FrameContext) modeChanged(from, to mode.Mode) {
	fc.ModeChanges++
	fc.logger.Info("mode changed", "from", from, "to", to)
}

// Transitioning reports whether the text is still moving toward its
// targets.
func (fc *FrameContext) Transitioning() bool {
	return fc.Controller.Transitioning(fc.Options.TransitionEpsilon)
}

// Scene describes the current frame for a renderer.
func (fc *FrameContext) Scene() *render.Scene {
	return &render.Scene{
		Ambient:   fc.Field.Ambient,
		Text:      fc.Field.Text,
		Placement: fc.Placement,
		Uniforms: render.Uniforms{
			Uniforms:   fc.Field.Uniforms(),
			Base:       fc.Palette.Base,
			Glow:       fc.Palette.Glow,
			Background: fc.Palette.Background,
		},
	}
}

// Release marks the context dead. Frames that still arrive do nothing.
func (fc *FrameContext) Release() {
	fc.Alive = false
	fc.logger.Debug("frame context released", "frames", fc.Frames)
}

// Advance steps the scene by dt seconds: audio first, then particles.
func Advance(fc *FrameContext, dt float64) {
	if fc == nil || !fc.Alive {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if limit := fc.Options.MaxDelta; limit > 0 && dt > limit {
		dt = limit
	}
	fc.Time += dt
	fc.Drive = fc.Reactor.Update()
	fc.Field.Advance(dt, fc.Time, fc.Drive)
	fc.Frames++
}
