// blserver renders House Bills of Lading over HTTP.
//
// Usage:
//
//	blserver [-addr :8080] [-config settings.yml]
//
// Routes:
//
//	POST /v1/documents/bol?format=pdf|svg|png   Render the JSON document input in the body
//	GET  /healthz                               Liveness check
package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gardar/shipdoc/pkg/render"
)

func main() {
	configPath := flag.String("config", "", "Path to a settings file")
	addr := flag.String("addr", "", "Listen address (default from settings)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	settings, err := render.LoadSettings(*configPath)
	if err != nil {
		slog.Error("Failed to load settings", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		settings.Addr = *addr
	}
	opts, err := settings.Options()
	if err != nil {
		slog.Error("Invalid settings", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              settings.Addr,
		Handler:           newServer(opts, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting server", "addr", settings.Addr, "format", opts.Format)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
