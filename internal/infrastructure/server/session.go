// Package server implements the session store and the per-session
// protocol dispatch for the streamable HTTP transport.
package server

import (
	"sync"
	"time"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/registry"
)

// Session is one client's protocol session. It owns a tool registry
// that is never shared with other sessions, and an optional
// server-to-client stream.
//
// Messages for a session are serialized through its mutex so they are
// processed strictly in arrival order. Sessions for different ids
// proceed independently.
type Session struct {
	id        string
	createdAt time.Time

	// procMu serializes message dispatch; mu guards session fields.
	// They are distinct so dispatch handlers can touch session state
	// while a message is in flight.
	procMu sync.Mutex

	mu       sync.Mutex
	state    domain.SessionState
	registry *registry.Registry
	stream   *Stream
}

func newSession(id string, reg *registry.Registry) *Session {
	return &Session{
		id:        id,
		createdAt: time.Now(),
		state:     domain.SessionInitializing,
		registry:  reg,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// State returns the current lifecycle state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Registry returns the session's tool registry.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Activate moves an initializing session to active. Activating a
// closed session has no effect.
func (s *Session) Activate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SessionInitializing {
		s.state = domain.SessionActive
	}
}

// close marks the session closed and drops the stream. Closed is
// terminal.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.SessionClosed
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
}

// Closed reports whether the session has terminated.
func (s *Session) Closed() bool {
	return s.State() == domain.SessionClosed
}

// AttachStream binds the server-to-client stream. A session holds at
// most one stream; a new one replaces the previous.
func (s *Session) AttachStream(stream *Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SessionClosed {
		stream.Close()
		return
	}
	if s.stream != nil {
		s.stream.Close()
	}
	s.stream = stream
}

// CurrentStream returns the bound stream, or nil.
func (s *Session) CurrentStream() *Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream
}

// Lock serializes message processing for this session. Callers must
// pair it with Unlock.
func (s *Session) Lock() {
	s.procMu.Lock()
}

// Unlock releases the message processing lock.
func (s *Session) Unlock() {
	s.procMu.Unlock()
}
