//go:build js
// +build js

package common

import (
	"context"
	"log/slog"

	"github.com/gopherjs/gopherjs/js"
)

// ConsoleHandler is a slog.Handler writing to the browser console.
// Debug goes to console.debug, Info to console.log, Warn to console.warn and
// Error to console.error. Attributes are passed as a trailing object so they
// stay inspectable in devtools.
type ConsoleHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewConsoleHandler creates a console handler that drops records below level.
func NewConsoleHandler(level slog.Leveler) *ConsoleHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ConsoleHandler{level: level}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := js.Global.Get("Object").New()
	set := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fields.Set(key, a.Value.String())
	}
	for _, a := range h.attrs {
		set(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		set(a)
		return true
	})

	method := "log"
	switch {
	case r.Level >= slog.LevelError:
		method = "error"
	case r.Level >= slog.LevelWarn:
		method = "warn"
	case r.Level < slog.LevelInfo:
		method = "debug"
	}
	js.Global.Get("console").Call(method, "[nebula] "+r.Message, fields)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ConsoleHandler{level: h.level, attrs: merged, group: h.group}
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	g := name
	if h.group != "" {
		g = h.group + "." + name
	}
	return &ConsoleHandler{level: h.level, attrs: h.attrs, group: g}
}
