// Package rest provides the HTTP interface: the streamable MCP
// endpoint and the component rendering routes.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/domain/shared"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/server"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/render"
)

// Session id header names. Requests carry the lowercase form; responses
// expose the canonical form.
const (
	sessionIDHeader         = "mcp-session-id"
	sessionIDResponseHeader = "Mcp-Session-Id"
)

// Server is the HTTP server fronting the session manager and the
// component renderer.
type Server struct {
	manager    *server.Manager
	dispatcher *server.Dispatcher
	lwc        *render.LWCRenderer
	logger     *logging.Logger

	httpServer *http.Server
	router     chi.Router
}

// NewServer wires the routes.
func NewServer(addr string, manager *server.Manager, dispatcher *server.Dispatcher, lwc *render.LWCRenderer, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	s := &Server{
		manager:    manager,
		dispatcher: dispatcher,
		lwc:        lwc,
		logger:     logger,
	}

	router := chi.NewRouter()
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", sessionIDHeader},
		ExposedHeaders: []string{sessionIDResponseHeader},
	}).Handler)

	router.Post("/mcp", s.handlePost)
	router.Get("/mcp", s.handleStream)
	router.Delete("/mcp", s.handleDelete)
	router.Get("/lwc/{componentName}", s.handleComponent)
	router.Get("/lwc", s.handleDefaultComponent)
	router.Get("/flightDetails", s.handleFlightDetails)
	router.Get("/status", s.handleStatus)

	s.router = router
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server starting", logging.Fields{"addr": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server and terminates all sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.manager.CloseAll()
	return s.httpServer.Shutdown(ctx)
}

// handlePost accepts one client-to-server message. The first initialize
// message may arrive without a session id; everything else must carry
// the id of a live session.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var req shared.JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, shared.JSONRPCResponse{
			JSONRPC: shared.JSONRPCVersion,
			Error: &shared.JSONRPCError{
				Code:    int(shared.ParseError),
				Message: shared.ErrorMessage(shared.ParseError),
			},
		})
		return
	}

	sessionID := r.Header.Get(sessionIDHeader)

	var sess *server.Session
	switch {
	case sessionID != "":
		resolved, err := s.manager.Resolve(sessionID)
		if err != nil {
			s.writeBadSession(w)
			return
		}
		sess = resolved
	case req.Method == shared.MethodInitialize:
		created, err := s.manager.CreateSession()
		if err != nil {
			s.logger.Error("session creation failed", logging.Fields{"error": err.Error()})
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		sess = created
	default:
		err := domain.NewInvalidHandshakeError(req.Method + " requires an existing session")
		s.logger.Warn("rejected sessionless message", logging.Fields{
			"method": req.Method,
			"error":  err.Error(),
		})
		s.writeBadSession(w)
		return
	}

	sess.Lock()
	resp := s.dispatcher.Dispatch(r.Context(), sess, req)
	sess.Unlock()

	w.Header().Set(sessionIDResponseHeader, sess.ID())
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStream opens the long-lived server-to-client stream.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.resolveSessionOr404(w, r)
	if !ok {
		return
	}

	stream, err := server.UpgradeStream(w, r, sess.ID(), s.logger)
	if err != nil {
		s.logger.Error("stream upgrade failed", logging.Fields{
			"session_id": sess.ID(),
			"error":      err.Error(),
		})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sess.AttachStream(stream)

	select {
	case <-r.Context().Done():
		stream.Close()
	case <-stream.Done():
	}
}

// handleDelete terminates a session explicitly.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(sessionIDHeader)
	if sessionID == "" {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err := s.manager.Close(sessionID); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) resolveSessionOr404(w http.ResponseWriter, r *http.Request) (*server.Session, bool) {
	sessionID := r.Header.Get(sessionIDHeader)
	sess, err := s.manager.Resolve(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// handleComponent renders a named component. Data arrives as a JSON
// document in the value query parameter; a malformed document is
// ignored rather than rejected.
func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "componentName")
	data := parseValueParam(r)

	page, err := s.lwc.RenderComponent(name, data)
	if err != nil {
		s.writeComponentError(w, name, err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleDefaultComponent(w http.ResponseWriter, r *http.Request) {
	page, err := s.lwc.RenderDefault(nil)
	if err != nil {
		s.writeComponentError(w, "x-flightDetails", err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleFlightDetails(w http.ResponseWriter, r *http.Request) {
	page, err := s.lwc.RenderDefault(parseValueParam(r))
	if err != nil {
		s.writeComponentError(w, "x-flightDetails", err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.manager.Count(),
	})
}

func (s *Server) writeComponentError(w http.ResponseWriter, name string, err error) {
	switch e := err.(type) {
	case *domain.ComponentNameError:
		http.Error(w, e.Error(), http.StatusBadRequest)
	case *domain.ComponentNotFoundError:
		http.Error(w, e.Error(), http.StatusNotFound)
	case *domain.AssetLoadError:
		s.logger.Error("component asset missing", logging.Fields{
			"component": name,
			"path":      e.Path,
		})
		http.Error(w, e.Error(), http.StatusNotFound)
	default:
		s.logger.Error("component rendering failed", logging.Fields{
			"component": name,
			"error":     err.Error(),
		})
		http.Error(w, "Error loading component", http.StatusInternalServerError)
	}
}

func (s *Server) writeBadSession(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error": map[string]string{
			"message": "Bad Request: No valid session ID provided",
		},
	})
}

func parseValueParam(r *http.Request) interface{} {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		return nil
	}
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(page))
}
