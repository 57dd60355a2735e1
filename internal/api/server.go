// Package api exposes the regeneration trigger and run history over HTTP.
// The pipeline itself is synchronous and stateless; this layer owns the
// serialization of regeneration requests, the artifact directory and the
// run-history database.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cooperage-labs/visionpipe/internal/artifacts"
	"github.com/cooperage-labs/visionpipe/internal/db"
	"github.com/cooperage-labs/visionpipe/internal/httputil"
	"github.com/cooperage-labs/visionpipe/internal/monitoring"
	"github.com/cooperage-labs/visionpipe/internal/version"
	"github.com/cooperage-labs/visionpipe/internal/vision"
)

// ANSI escape codes for the request log.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server handles the demo API. Regeneration requests are serialized with
// a mutex so at most one pipeline run executes at a time; the vision core
// itself exposes no locking.
type Server struct {
	db          *db.DB
	outputDir   string
	params      vision.Params
	defaultSize int

	regenMu sync.Mutex
}

// NewServer builds a Server writing artifacts to outputDir and recording
// runs in database.
func NewServer(database *db.DB, outputDir string, params vision.Params, defaultSize int) *Server {
	return &Server{
		db:          database,
		outputDir:   outputDir,
		params:      params,
		defaultSize: defaultSize,
	}
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/regenerate", s.handleRegenerate)
	mux.HandleFunc("/api/runs", s.handleListRuns)
	mux.HandleFunc("/api/runs/latest", s.handleLatestRun)
	mux.HandleFunc("/api/stats/chart", s.handleStatsChart)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.Handle("/output/", http.StripPrefix("/output/",
		noCache(http.FileServer(http.Dir(s.outputDir)))))
	return mux
}

// Regenerate runs the full pipeline at the given size, persists the
// artifacts and records the run. It is safe for concurrent callers.
func (s *Server) Regenerate(size int) (*artifacts.Summary, error) {
	s.regenMu.Lock()
	defer s.regenMu.Unlock()

	res, err := vision.Run(size, s.params)
	if err != nil {
		return nil, err
	}
	summary, err := artifacts.Save(s.outputDir, res)
	if err != nil {
		return nil, err
	}
	generatedAt, err := time.Parse(time.RFC3339, summary.GeneratedAt)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	runID, err := s.db.RecordRun(size, generatedAt, raw)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("regenerated outputs at %dpx (run %s)", size, runID)
	return summary, nil
}

type regenerateRequest struct {
	Size *int `json:"size"`
}

type regenerateResponse struct {
	OK      bool               `json:"ok"`
	Size    int                `json:"size"`
	Summary *artifacts.Summary `json:"summary"`
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	size := s.defaultSize
	if q := r.URL.Query().Get("size"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil {
			httputil.BadRequest(w, "size must be an integer")
			return
		}
		size = v
	}
	var req regenerateRequest
	if err := httputil.DecodeJSONBody(r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if req.Size != nil {
		size = *req.Size
	}

	if err := vision.ValidateSize(size); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	summary, err := s.Regenerate(size)
	if err != nil {
		var sizeErr *vision.InvalidSizeError
		if errors.As(err, &sizeErr) {
			httputil.BadRequest(w, sizeErr.Error())
			return
		}
		monitoring.Logf("regeneration failed: %v", err)
		httputil.InternalServerError(w, "failed to regenerate outputs: "+err.Error())
		return
	}

	httputil.WriteJSONOK(w, regenerateResponse{OK: true, Size: size, Summary: summary})
}

const defaultRunLimit = 50

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	limit := defaultRunLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 {
			httputil.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = v
	}
	runs, err := s.db.ListRuns(limit)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	httputil.WriteJSONOK(w, map[string]interface{}{"runs": runs})
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	run, err := s.db.LatestRun()
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no runs recorded yet")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, run)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	})
}

// noCache wraps a handler to disable client-side caching, so the browser
// always fetches freshly regenerated artifacts.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
