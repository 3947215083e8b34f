package http

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
)

// maxDecodeBody caps POST /decode bodies; a .dly line is 269 bytes.
const maxDecodeBody = 1 << 20

// Server exposes health, readiness, metrics, and an ad-hoc decode endpoint.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// /decode routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.HandleFunc("POST /decode", s.handleDecode)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// decodeResult is one entry of the /decode response.
type decodeResult struct {
	Line   int            `json:"line"`
	Record *domain.Record `json:"record,omitempty"`
	Error  string         `json:"error,omitempty"`
	Kind   string         `json:"kind,omitempty"`
	Field  string         `json:"field,omitempty"`
	Day    *int           `json:"day,omitempty"`
}

// handleDecode decodes each line of a text/plain body. Blank lines are
// skipped; line numbers are 1-based positions in the body.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxDecodeBody)
	scanner := bufio.NewScanner(body)

	results := []decodeResult{}
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		results = append(results, decodeLine(n, line))
	}
	if err := scanner.Err(); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.logger.Warn("decode request body", "error", err, "status", status)
		sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, results)
}

func decodeLine(n int, line string) decodeResult {
	rec, err := domain.DecodeRecord(line)
	if err == nil {
		return decodeResult{Line: n, Record: &rec}
	}

	res := decodeResult{Line: n, Error: err.Error(), Kind: domain.ErrorKind(err)}
	if fe, ok := domain.AsFieldError(err); ok {
		res.Field = fe.Field.String()
		if fe.Field.PerDay() {
			day := fe.Day
			res.Day = &day
		}
	}
	return res
}
