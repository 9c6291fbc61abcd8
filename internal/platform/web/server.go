package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/tui-blast/internal/config"
)

const (
	routeWS     = "/ws"
	routeHealth = "/healthz"
)

// ServerConfig holds configuration for the WebSocket server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Board is the board every new connection starts with.
	Board config.BlastConfig

	// Seed fixes board generation. Zero seeds each connection from the clock.
	Seed int64

	// Logger receives server and session logs. Nil means stderr at info level.
	Logger *log.Logger
}

// Server accepts WebSocket clients and gives each one a board.
type Server struct {
	config   ServerConfig
	router   *way.Router
	upgrader websocket.Upgrader
	logger   *log.Logger

	nextID atomic.Int64

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewServer creates a server with its routes registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.Board.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blast-web",
		})
	}

	s := &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:   logger,
		sessions: make(map[int64]*Session),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", routeWS, s.handleWS)
	s.router.HandleFunc("GET", routeHealth, s.handleHealth)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id := s.nextID.Add(1)
	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += id - 1
	}

	logger := s.logger.With("session", id)
	session := newSession(id, conn, s.config.Board, seed, logger)

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}()

	start := time.Now()
	logger.Info("session started", "remote", r.RemoteAddr)
	if err := session.run(); err != nil {
		logger.Warn("session failed", "error", err)
	}
	logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
}

// closeSessions sends every connected client a going-away close frame and
// drops its connection. Shutdown does not reach hijacked connections.
func (s *Server) closeSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)
	for id, session := range s.sessions {
		if err := session.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			s.logger.Debug("close frame failed", "session", id, "error", err)
		}
		session.conn.Close()
	}
	return len(s.sessions)
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Sessions: s.Sessions()}); err != nil {
		s.logger.Warn("health response failed", "error", err)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "sessions", s.closeSessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
