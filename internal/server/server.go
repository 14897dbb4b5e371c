// Package server exposes blackjack sessions over WebSocket. Every
// connection gets its own game; nothing is shared between sessions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/gameid"
)

// GameFactory builds the game for the n-th session (counting from zero)
type GameFactory func(n int) (*game.Game, error)

// Config holds configuration for the server
type Config struct {
	Address     string
	IdleTimeout time.Duration
	NewGame     GameFactory
	Clock       quartz.Clock
	Logger      *log.Logger
}

// Server hosts blackjack sessions
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	started  int
}

// NewServer creates a new WebSocket server
func NewServer(config Config) *Server {
	if config.NewGame == nil {
		panic("game factory is required for server creation")
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = 10 * time.Minute
	}

	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			// Sessions are anonymous and hold no credentials
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   config.Logger.WithPrefix("server"),
		sessions: make(map[string]*Session),
	}
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/sessions", s.handleSessions)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// ListenAndServe serves until ctx is cancelled, then closes every session
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down", "sessions", s.SessionCount())
	s.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// CloseAll closes every open session
func (s *Server) CloseAll() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.Close()
	}
}

// SessionCount returns the number of open sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.started
	s.started++
	s.mu.Unlock()

	g, err := s.config.NewGame(n)
	if err != nil {
		s.logger.Error("Failed to create game", "error", err)
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sess := newSession(gameid.Generate(), conn, g, s.config.Clock, s.config.IdleTimeout, s.logger)

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	total := len(s.sessions)
	s.mu.Unlock()
	s.logger.Info("Session opened", "session", sess.ID(), "total", total)

	sess.start()

	go func() {
		<-sess.Done()
		s.mu.Lock()
		delete(s.sessions, sess.ID())
		total := len(s.sessions)
		s.mu.Unlock()
		s.logger.Info("Session closed", "session", sess.ID(), "rounds", sess.Rounds(), "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"sessions": s.SessionCount()})
}

// requestLogger logs each request through the server's logger
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
