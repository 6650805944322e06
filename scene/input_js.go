//go:build js
// +build js

package scene

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/nebula/mode"
)

// Key codes handled by the scene.
const (
	KeyT   = 84
	KeyA   = 65
	KeyD   = 68
	KeyF10 = 121
)

// SetupInputHandlers wires pointer, keyboard and resize events. Every
// handler is removed by Destroy.
func (s *Scene) SetupInputHandlers() {
	window := js.Global
	document := js.Global.Get("document")

	s.listen(window, "resize", func(*js.Object) {
		if s.fc == nil {
			return
		}
		s.resize()
	})

	s.listen(s.canvas, "pointerdown", func(event *js.Object) {
		if s.fc == nil {
			return
		}
		rect := s.canvas.Call("getBoundingClientRect")
		x := event.Get("clientX").Float() - rect.Get("left").Float()
		y := event.Get("clientY").Float() - rect.Get("top").Float()
		hit := s.fc.Pointer(x, y)
		s.logger.Debug("pointer", "x", x, "y", y, "burst", hit)
	})

	s.listen(document, "keydown", func(event *js.Object) {
		if s.fc == nil {
			return
		}
		// Any key counts as a gesture for the autoplay policy.
		s.fc.Gesture()

		target := event.Get("target").Get("tagName").String()
		if target == "INPUT" || target == "TEXTAREA" {
			return
		}
		switch event.Get("keyCode").Int() {
		case KeyT:
			s.fc.Controller.Toggle()
		case KeyA:
			s.fc.Controller.SetMode(mode.Assemble)
		case KeyD:
			s.fc.Controller.SetMode(mode.Dissolve)
		case KeyF10:
			s.overlay.Toggle()
			event.Call("preventDefault")
		}
	})
}
