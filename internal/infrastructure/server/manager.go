package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/registry"
)

// RegistryFactory builds the tool registry for a new session.
type RegistryFactory func() (*registry.Registry, error)

// Manager owns the live sessions, keyed by identifier. Identifiers are
// random UUIDs and are never reissued.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	newRegistry RegistryFactory
	logger      *logging.Logger
}

// NewManager creates a session manager. Each created session receives
// its own registry from the factory.
func NewManager(factory RegistryFactory, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		newRegistry: factory,
		logger:      logger,
	}
}

// CreateSession allocates a new initializing session with a fresh id
// and registry.
func (m *Manager) CreateSession() (*Session, error) {
	reg, err := m.newRegistry()
	if err != nil {
		return nil, err
	}

	sess := newSession(uuid.NewString(), reg)

	m.mu.Lock()
	m.sessions[sess.ID()] = sess
	m.mu.Unlock()

	m.logger.Info("session initialized", logging.Fields{"session_id": sess.ID()})
	return sess, nil
}

// Resolve returns the live session for id. Unknown and closed sessions
// both resolve to a not-found error; a closed id is never reused.
func (m *Manager) Resolve(id string) (*Session, error) {
	if id == "" {
		return nil, domain.NewSessionNotFoundError(id)
	}

	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || sess.Closed() {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return sess, nil
}

// Close terminates the session for id and removes it from the store.
// Closing an unknown id is an error; closing is otherwise idempotent
// through removal.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return domain.NewSessionNotFoundError(id)
	}

	sess.close()
	m.logger.Info("session closed", logging.Fields{"session_id": id})
	return nil
}

// CloseAll terminates every live session. Used during shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
