// Package server exposes the progressive renderer over HTTP with
// server-sent events.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lumen-render/lumen/log"
	"github.com/lumen-render/lumen/pkg/scene"
)

var logger = log.New("web")

// Server handles web requests for the progressive renderer.
type Server struct {
	addr string
	mux  *http.ServeMux
}

// NewServer creates a web server bound to the given address.
func NewServer(addr string) *Server {
	s := &Server{
		addr: addr,
		mux:  http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	return s
}

// Handler returns the root handler. Tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving requests and blocks until the listener fails.
func (s *Server) Start() error {
	logger.Noticef("starting web viewer on http://%s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}

// handleHealth provides a simple health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes a client can request.
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]scene.SceneInfo{"scenes": scene.ListScenes()})
}

// sessionLogger forwards render session progress to the web logger.
type sessionLogger struct{}

func (sessionLogger) Printf(format string, args ...interface{}) {
	logger.Debugf(strings.TrimSuffix(format, "\n"), args...)
}

// parseIntParam parses an integer parameter from URL query with validation.
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation.
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
