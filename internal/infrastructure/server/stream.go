package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/tmaxmax/go-sse"

	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
)

// Stream is a server-to-client event stream bound to one session. Sends
// after Close are logged and dropped rather than surfaced to callers.
type Stream struct {
	sessionID string
	logger    *logging.Logger

	mu     sync.Mutex
	sess   *sse.Session
	closed bool
	done   chan struct{}
}

// UpgradeStream turns a GET request into an event stream.
func UpgradeStream(w http.ResponseWriter, r *http.Request, sessionID string, logger *logging.Logger) (*Stream, error) {
	if logger == nil {
		logger = logging.Default()
	}
	sess, err := sse.Upgrade(w, r)
	if err != nil {
		return nil, err
	}
	return &Stream{
		sessionID: sessionID,
		logger:    logger,
		sess:      sess,
		done:      make(chan struct{}),
	}, nil
}

// Send marshals v and writes it as a "message" event.
func (s *Stream) Send(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Warn("dropping message for closed stream", logging.Fields{
			"session_id": s.sessionID,
		})
		return nil
	}

	msg := sse.Message{Type: sse.Type("message")}
	msg.AppendData(string(data))
	if err := s.sess.Send(&msg); err != nil {
		return err
	}
	return s.sess.Flush()
}

// Close marks the stream closed. Idempotent.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
}

// Done is closed when the stream terminates.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}
