package timeserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 5 * time.Second

// timecodeResponse is the GET /timecode wire format.
type timecodeResponse struct {
	DisplayText string `json:"display_text"`
}

// Server serves the timecode API.
//
// Server provides two endpoints:
//   - GET /timecode: the current formatted timecode as JSON
//   - POST /config: replace the formatting configuration
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	service    *Service
	port       int
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new HTTP [Server] around service.
//
// The server is not started until [Server.Start] is called.
func NewServer(service *Service, port int, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		port:    port,
		logger:  logger,
	}
}

// Handler returns the server's routes, exposed for tests and embedding.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/timecode", s.handleTimecode)
	mux.HandleFunc("/config", s.handleConfig)
	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the
// server is listening. The server runs until the context is cancelled,
// then shuts down gracefully with a 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	s.logger.Info("timecode server listening", "addr", addr)
	return nil
}

// handleTimecode answers GET /timecode with the current display text.
func (s *Server) handleTimecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "only GET is allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := timecodeResponse{DisplayText: s.service.DisplayText()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to write timecode response", "error", err)
	}
}

// handleConfig answers POST /config by replacing the formatting
// configuration.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST is allowed", http.StatusMethodNotAllowed)
		return
	}

	var cfg Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, fmt.Sprintf("failed to decode config: %v", err), http.StatusBadRequest)
		return
	}

	s.service.UpdateConfig(cfg)
	s.logger.Info("client config applied",
		"source", cfg.SourceName,
		"time_mode", cfg.TimeMode,
		"fps", cfg.FPS,
		"remote", r.RemoteAddr,
	)
	w.WriteHeader(http.StatusOK)
}
