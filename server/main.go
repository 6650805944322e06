//go:build !js
// +build !js

package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed index.html
var indexHTML []byte

// newMux serves the embedded page, the compiled bundle and assets from
// staticDir, and fonts from fontDir.
func newMux(staticDir, fontDir string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(staticDir))

	// Serve embedded index.html at root path
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(indexHTML)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".js") {
			w.Header().Set("Cache-Control", "no-cache")
		}
		// Serve other static files from disk
		files.ServeHTTP(w, r)
	})

	// Fonts are fetched cross-origin by the bundle's font loader.
	fonts := http.StripPrefix("/fonts/", http.FileServer(http.Dir(fontDir)))
	mux.HandleFunc("/fonts/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fonts.ServeHTTP(w, r)
	})

	// Health check
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return logRequests(mux, logger)
}

// logRequests logs every request at debug level.
func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory to serve static files (nebula.js) from")
	fontDir := flag.String("fonts", "fonts", "Directory to serve /fonts/ from")
	debug := flag.Bool("debug", false, "Log every request")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if _, err := os.Stat(filepath.Join(*staticDir, "nebula.js")); err != nil {
		logger.Warn("bundle not found, build it with: gopherjs build -o nebula.js .", "dir", *staticDir)
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("nebula dev server starting", "url", "http://localhost"+addr)
	logger.Info("serving", "static", *staticDir, "fonts", *fontDir)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(*staticDir, *fontDir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
