//go:build js
// +build js

package scene

import (
	"strconv"

	"github.com/gopherjs/gopherjs/js"
)

// StatsOverlay displays real-time scene statistics.
type StatsOverlay struct {
	Visible bool
	Theme   Theme

	// FPS tracking
	FrameCount    int
	LastFPSUpdate float64
	CurrentFPS    float64

	// Position and styling
	PanelX      int
	PanelY      int
	LineHeight  int
	PanelWidth  int
	PanelHeight int
}

// NewStatsOverlay creates a new stats overlay instance.
func NewStatsOverlay(theme Theme) *StatsOverlay {
	return &StatsOverlay{
		Theme:       theme,
		PanelX:      16,
		PanelY:      16,
		LineHeight:  18,
		PanelWidth:  264,
		PanelHeight: 262,
	}
}

// Toggle toggles the stats overlay visibility.
func (s *StatsOverlay) Toggle() {
	s.Visible = !s.Visible
}

// UpdateFPS updates the FPS counter.
func (s *StatsOverlay) UpdateFPS(currentTime float64) {
	s.FrameCount++

	// Update FPS every second
	elapsed := currentTime - s.LastFPSUpdate
	if elapsed >= 1000 {
		s.CurrentFPS = float64(s.FrameCount) / (elapsed / 1000)
		s.FrameCount = 0
		s.LastFPSUpdate = currentTime
	}
}

// Render draws the stats overlay.
func (s *StatsOverlay) Render(ctx *js.Object, sc *Scene) {
	fc := sc.fc
	if !s.Visible || fc == nil {
		return
	}
	ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)

	// Draw stats panel background
	ctx.Set("fillStyle", s.Theme.OverlayBackground)
	ctx.Call("fillRect", s.PanelX, s.PanelY, s.PanelWidth, s.PanelHeight)

	// Draw panel border
	ctx.Set("strokeStyle", s.Theme.OverlayBorder)
	ctx.Set("lineWidth", 1)
	ctx.Call("strokeRect", s.PanelX, s.PanelY, s.PanelWidth, s.PanelHeight)

	// Title
	ctx.Set("fillStyle", s.Theme.OverlayTitle)
	ctx.Set("font", s.Theme.OverlayTitleFont)
	ctx.Set("textAlign", "left")
	ctx.Call("fillText", "NEBULA STATS [F10]", s.PanelX+10, s.PanelY+20)

	ctx.Set("font", s.Theme.OverlayFont)
	y := s.PanelY + 48

	s.drawStatLine(ctx, "FPS", strconv.FormatFloat(s.CurrentFPS, 'f', 1, 64), y)
	y += s.LineHeight
	s.drawStatLine(ctx, "Frames", strconv.Itoa(fc.Frames), y)
	y += s.LineHeight

	y = s.section(ctx, "Particles", y)
	s.drawStatLine(ctx, "Ambient", strconv.Itoa(fc.Field.Ambient.Len()), y)
	y += s.LineHeight
	if fc.Cloud != nil {
		s.drawStatLine(ctx, "Fill / Stroke", strconv.Itoa(len(fc.Cloud.Fill))+" / "+strconv.Itoa(len(fc.Cloud.Stroke)), y)
		y += s.LineHeight
	}
	mode := fc.Controller.Mode().String()
	if fc.Transitioning() {
		mode += "*"
	}
	s.drawStatLine(ctx, "Mode", mode, y)
	y += s.LineHeight
	s.drawStatLine(ctx, "Changes", strconv.Itoa(fc.ModeChanges), y)
	y += s.LineHeight
	s.drawStatLine(ctx, "Scale", strconv.FormatFloat(fc.Placement.Scale, 'f', 3, 64), y)
	y += s.LineHeight

	y = s.section(ctx, "Audio", y)
	s.drawStatLine(ctx, "State", fc.Reactor.State().String(), y)
	y += s.LineHeight
	s.drawBar(ctx, "Bass", fc.Drive.Bass, y)
	y += s.LineHeight
	s.drawBar(ctx, "High", fc.Drive.High, y)
	y += s.LineHeight
	s.drawBar(ctx, "RMS", fc.Drive.RMS, y)
}

// section draws a separator with a heading and returns the next line.
func (s *StatsOverlay) section(ctx *js.Object, title string, y int) int {
	y += 5
	ctx.Set("fillStyle", "#666666")
	ctx.Call("fillText", "── "+title+" ──", s.PanelX+10, y)
	return y + s.LineHeight
}

// drawStatLine draws a single stat line with label and value.
func (s *StatsOverlay) drawStatLine(ctx *js.Object, label, value string, y int) {
	ctx.Set("fillStyle", s.Theme.OverlayLabel)
	ctx.Call("fillText", label+":", s.PanelX+15, y)

	ctx.Set("fillStyle", s.Theme.OverlayValue)
	ctx.Set("textAlign", "right")
	ctx.Call("fillText", value, s.PanelX+s.PanelWidth-15, y)
	ctx.Set("textAlign", "left")
}

// drawBar draws a labelled [0, 1] level.
func (s *StatsOverlay) drawBar(ctx *js.Object, label string, v float64, y int) {
	ctx.Set("fillStyle", s.Theme.OverlayLabel)
	ctx.Call("fillText", label+":", s.PanelX+15, y)

	barX := float64(s.PanelX + 90)
	barW := float64(s.PanelWidth - 105)
	ctx.Set("strokeStyle", "#444444")
	ctx.Call("strokeRect", barX, float64(y-9), barW, 10)
	ctx.Set("fillStyle", s.Theme.OverlayBorder)
	ctx.Call("fillRect", barX, float64(y-9), barW*v, 10)
}
