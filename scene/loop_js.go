//go:build js
// +build js

package scene

import "github.com/gopherjs/gopherjs/js"

// FrameRAF is the frame loop driven by requestAnimationFrame. currentTime
// is in milliseconds.
func (s *Scene) FrameRAF(currentTime float64) {
	fc := s.fc
	if fc == nil || !fc.Alive {
		return
	}

	// Schedule next frame
	s.AnimationFrameID = js.Global.Call("requestAnimationFrame", s.frameFn).Int()

	// Update FPS counter
	s.overlay.UpdateFPS(currentTime)

	dt := 0.0
	if s.LastFrameTime > 0 {
		dt = (currentTime - s.LastFrameTime) / 1000
	}
	s.LastFrameTime = currentTime

	Advance(fc, dt)
	s.renderer.Render(fc.Scene(), &fc.Camera)
	s.overlay.Render(s.canvas.Call("getContext", "2d"), s)
}
