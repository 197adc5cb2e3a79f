package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"filler/internal/engine"
	"filler/internal/server/game"
)

// Server wires the game manager and the engine to HTTP.
type Server struct {
	games  *game.Manager
	engine *engine.Engine
	hub    *Hub

	srvMu sync.Mutex
	srv   *http.Server
}

func NewServer(games *game.Manager, eng *engine.Engine, hub *Hub) *Server {
	return &Server{games: games, engine: eng, hub: hub}
}

func (s *Server) Engine() *engine.Engine { return s.engine }

// Routes builds the router. Static assets are served from webDir when set.
func (s *Server) Routes(webDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Use(limitBody)
		r.Post("/", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Put("/anfield", s.handleReplaceAnfield)
			r.Post("/cells", s.handleSetCell)
			r.Post("/evaluate", s.handleEvaluate)
			r.Post("/play", s.handlePlay)
			r.Get("/constrained", s.handleConstrained)
			r.Get("/ws", s.handleWS)
		})
	})

	if webDir != "" {
		RegisterStaticRoutes(r, webDir)
	}
	return r
}

// Listen serves until Close is called.
func (s *Server) Listen(addr, webDir string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(webDir),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()

	log.Printf("listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
