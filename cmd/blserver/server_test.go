package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/shipdoc/pkg/layout"
	"github.com/gardar/shipdoc/pkg/render"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

const body = `{
  "job": {"job_no": "J-7", "vessel": "CMA CGM MARCO POLO", "voyage": "0FL2"},
  "house": {
    "house_no": "HBL 2024/7",
    "shipper": {"name": "ROTTERDAM DAIRY BV"},
    "cargo": [{"commodity": "MILK POWDER", "packages": 800, "gross_weight": 20000.5}]
  }
}`

func testServer() *httptest.Server {
	opts := render.Options{Format: render.FormatPDF, Layout: layout.DefaultConfig()}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptest.NewServer(newServer(opts, log).routes())
}

func TestHealth(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "ok", got["status"])
}

func TestRender(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	tests := []struct {
		name        string
		query       string
		body        string
		status      int
		contentType string
	}{
		{"pdf by default", "", body, http.StatusOK, "application/pdf"},
		{"svg", "?format=svg", body, http.StatusOK, "image/svg+xml"},
		{"png", "?format=png", body, http.StatusOK, "image/png"},
		{"unknown format", "?format=doc", body, http.StatusBadRequest, "application/json"},
		{"missing house", "", `{"job": {}}`, http.StatusBadRequest, "application/json"},
		{"broken json", "", `{"house": `, http.StatusBadRequest, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/documents/bol"+tt.query, "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			if tt.status == http.StatusOK {
				assert.Equal(t, "1", resp.Header.Get("X-Page-Count"))
				assert.Contains(t, resp.Header.Get("Content-Disposition"), "HBL_2024_7.")
			}
		})
	}
}

func TestRenderMethodNotAllowed(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/documents/bol")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(layout.ErrEntryTooTall))
	assert.Equal(t, http.StatusInternalServerError, statusFor(layout.ErrRender))
	assert.Equal(t, http.StatusBadRequest, statusFor(render.ErrUnknownFormat))
}
