package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/gardar/shipdoc/pkg/bol"
	"github.com/gardar/shipdoc/pkg/layout"
	"github.com/gardar/shipdoc/pkg/render"
)

// maxBodyBytes bounds the JSON input, logo included.
const maxBodyBytes = 8 << 20

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type server struct {
	opts render.Options
	log  *slog.Logger
}

func newServer(opts render.Options, log *slog.Logger) *server {
	opts.Layout.Logger = log
	return &server{opts: opts, log: log}
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/documents/bol", s.handleRender).Methods(http.MethodPost)
	return s.withRequestLogging(r)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	if f := r.URL.Query().Get("format"); f != "" {
		format, err := render.ParseFormat(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		opts.Format = format
	}

	var in bol.DocumentInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return
	}

	doc, err := render.Document(in, opts)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.log.Error("Rendering failed", "error", err)
		}
		writeError(w, status, err)
		return
	}

	name := "bill-of-lading"
	if in.House != nil && in.House.HouseNo != "" {
		name = unsafeFilename.ReplaceAllString(in.House.HouseNo, "_")
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+opts.Format.Extension()))
	w.Header().Set("X-Page-Count", strconv.Itoa(doc.PageCount()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Artifact)
}

// statusFor maps rendering errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bol.ErrMissingHouse), errors.Is(err, render.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrEntryTooTall), errors.Is(err, layout.ErrOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("Request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
