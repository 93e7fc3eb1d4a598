// Package server exposes the chat pipeline over HTTP for the browser UI.
//
// The surface is a small JSON API plus a websocket that pushes
// conversation events (new messages, typing state) and an embedded
// single-page UI at the root.
package server

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/codepane/codepane/chat"
	"github.com/codepane/codepane/config"
)

//go:embed static
var staticFiles embed.FS

// Server wires the chat service and active settings to HTTP handlers.
type Server struct {
	svc *chat.Service
	hub *hub

	mu       sync.RWMutex
	settings config.Settings
}

// New creates a server around an existing chat service. The service's
// event stream is forwarded to websocket clients.
func New(settings config.Settings, svc *chat.Service) *Server {
	s := &Server{
		svc:      svc,
		settings: settings,
		hub:      newHub(),
	}
	svc.OnEvent(func(ev chat.Event) {
		s.hub.broadcast(toWireEvent(ev))
	})
	return s
}

// wireEvent is the websocket payload; messages carry their highlighted
// renderings so clients need no second fetch.
type wireEvent struct {
	Kind    chat.EventKind `json:"kind"`
	Typing  bool           `json:"typing,omitempty"`
	Message *messageView   `json:"message,omitempty"`
}

func toWireEvent(ev chat.Event) wireEvent {
	wire := wireEvent{Kind: ev.Kind, Typing: ev.Typing}
	if ev.Message != nil {
		view := toView(*ev.Message)
		wire.Message = &view
	}
	return wire
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/providers", s.handleProviders)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("PUT /api/config", s.handlePutConfig)
	mux.HandleFunc("GET /api/messages", s.handleMessages)
	mux.HandleFunc("DELETE /api/messages", s.handleClear)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/preview", s.handlePreview)
	mux.HandleFunc("GET /ws", s.hub.handleWS)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	// Middleware stack (outermost first): recover -> logging -> mux
	var handler http.Handler = mux
	handler = withLogging(handler)
	handler = withRecover(handler)
	return handler
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.mu.RLock()
	addr := s.settings.Addr
	s.mu.RUnlock()

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) currentSettings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Server) setSettings(settings config.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}
