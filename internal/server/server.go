// Package server provides a small local monitor for the gesture
// presenter: a health endpoint and a WebSocket feed of dispatched
// gestures, so a second screen can follow along.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server is the local monitor HTTP server.
type Server struct {
	mux   *http.ServeMux
	hub   *eventHub
	start time.Time
	log   zerolog.Logger
}

// New creates a monitor Server.
func New(log zerolog.Logger) *Server {
	s := &Server{
		mux:   http.NewServeMux(),
		hub:   newEventHub(log),
		start: time.Now(),
		log:   log.With().Str("component", "monitor").Logger(),
	}
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/events", s.hub)
	return s
}

// Publish broadcasts one gesture event to all connected clients.
func (s *Server) Publish(session, gesture string, at time.Time) {
	s.hub.broadcast(eventPayload{Session: session, Gesture: gesture, At: at})
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the monitor on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("monitor listening")
	return http.ListenAndServe(addr, s)
}
