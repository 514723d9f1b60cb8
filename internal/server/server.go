// Package server exposes the rendering pipeline over HTTP.
//
// The server offers a small JSON API: POST /render accepts a figure
// document and returns rendered artifacts, GET /kinds lists the supported
// chart kinds, and GET /healthz reports liveness. Figure documents are
// submitted inline; the server never reads figure files from its own
// filesystem.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ec-intl/chartly/pkg/buildinfo"
	"github.com/ec-intl/chartly/pkg/chart"
	"github.com/ec-intl/chartly/pkg/errors"
	"github.com/ec-intl/chartly/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// maxDocumentBytes bounds the size of an inline figure document.
	maxDocumentBytes = 4 << 20

	// shutdownTimeout bounds graceful shutdown after the context is cancelled.
	shutdownTimeout = 10 * time.Second

	readHeaderTimeout = 5 * time.Second
)

// =============================================================================
// Server
// =============================================================================

// Server serves the rendering pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	addr   string
}

// New creates a Server bound to addr. A nil runner gets a cache-less
// default; a nil logger falls back to log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, addr string) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, addr: addr}
}

// Handler builds the HTTP route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/kinds", s.handleKinds)
	r.Post("/render", s.handleRender)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// =============================================================================
// Handlers
// =============================================================================

// renderRequest is the JSON body accepted by POST /render.
type renderRequest struct {
	Document  string   `json:"document"` // figure document, TOML text
	Formats   []string `json:"formats,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	DPI       int      `json:"dpi,omitempty"`
	ShareAxes bool     `json:"share_axes,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`
}

// renderResponse is the JSON body returned by POST /render. Artifact
// bytes are base64-encoded by encoding/json.
type renderResponse struct {
	DocHash   string            `json:"doc_hash"`
	Subplots  int               `json:"subplots"`
	Overlays  int               `json:"overlays"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	body := http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}
	if req.Document == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request is missing a figure document"))
		return
	}

	// A format query param overrides the body's formats list, so callers can
	// re-request the same document in another format without editing the body.
	formats := req.Formats
	if q := r.URL.Query().Get("format"); q != "" {
		formats = strings.Split(q, ",")
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Document:  []byte(req.Document),
		Formats:   formats,
		Width:     req.Width,
		Height:    req.Height,
		DPI:       req.DPI,
		ShareAxes: req.ShareAxes,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, renderResponse{
		DocHash:   result.DocHash,
		Subplots:  result.Stats.SubplotCount,
		Overlays:  result.Stats.OverlayCount,
		Cached:    result.CacheInfo.ArtifactHit,
		Artifacts: result.Artifacts,
	})
}

// kindInfo describes one chart kind in the GET /kinds response.
type kindInfo struct {
	Kind     string `json:"kind"`
	GridData bool   `json:"grid_data"`
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := make([]kindInfo, 0, len(chart.Kinds))
	for _, k := range chart.Kinds {
		kinds = append(kinds, kindInfo{Kind: k.String(), GridData: k == chart.KindContour})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"kinds": kinds})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusFor(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusFor maps pipeline error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal, errors.ErrCodeRenderFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
