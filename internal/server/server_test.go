package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/pipeline"
)

const testDoc = `
title = "Test Figure"
formats = ["svg"]

[[subplot]]
  [[subplot.overlay]]
  kind = "line_plot"
  data = [[1.0, 2.0, 4.0, 8.0]]

[[subplot]]
  [[subplot.overlay]]
  kind = "cdf"
  data = [[3.0, 1.0, 2.0, 5.0, 4.0]]
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(New(runner, logger, "").Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestKinds(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/kinds")
	if err != nil {
		t.Fatalf("GET /kinds: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Kinds []struct {
			Kind     string `json:"kind"`
			GridData bool   `json:"grid_data"`
		} `json:"kinds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Kinds) != 8 {
		t.Fatalf("len(kinds) = %d, want 8", len(body.Kinds))
	}
	for _, k := range body.Kinds {
		if k.GridData != (k.Kind == "contour") {
			t.Errorf("kind %q grid_data = %v", k.Kind, k.GridData)
		}
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	payload, _ := json.Marshal(map[string]any{"document": testDoc})
	resp, err := http.Post(srv.URL+"/render", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DocHash == "" {
		t.Error("doc_hash is empty")
	}
	if body.Subplots != 2 || body.Overlays != 2 {
		t.Errorf("subplots = %d, overlays = %d, want 2, 2", body.Subplots, body.Overlays)
	}
	svg, ok := body.Artifacts["svg"]
	if !ok {
		t.Fatal("missing svg artifact")
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg artifact does not contain <svg")
	}
}

func TestRenderFormatQueryParam(t *testing.T) {
	srv := newTestServer(t)

	// The document asks for svg; the query param should win.
	payload, _ := json.Marshal(map[string]any{"document": testDoc})
	resp, err := http.Post(srv.URL+"/render?format=png,pdf", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body.Artifacts["png"]; !ok {
		t.Error("missing png artifact")
	}
	if _, ok := body.Artifacts["pdf"]; !ok {
		t.Error("missing pdf artifact")
	}
	if _, ok := body.Artifacts["svg"]; ok {
		t.Error("svg artifact present despite format override")
	}
}

func TestRenderErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{
			name:       "not json",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "missing document",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "invalid document",
			body:       `{"document": "not = [valid"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidFigure,
		},
		{
			name:       "invalid format",
			body:       `{"document": "[[subplot]]\n[[subplot.overlay]]\nkind = \"cdf\"\ndata = [[1.0, 2.0]]\n", "formats": ["bmp"]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/render", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST /render: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}
