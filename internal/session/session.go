// Package session owns the registry of live connections and the per-session
// state the pipeline needs between utterances.
package session

import (
	"time"

	"github.com/google/uuid"
)

// historyWindow bounds the rolling utterance history kept per session.
// Nothing is persisted beyond this in-memory window.
const historyWindow = 10

// Transport is the outbound side of a session's connection. *websocket.Conn
// satisfies it.
type Transport interface {
	WriteJSON(v any) error
}

// Session is the server-side state for one client connection. It is created
// on connect and destroyed on disconnect, timeout, or error; the Manager is
// its sole owner.
type Session struct {
	ID         string
	Client     string
	Conn       Transport
	CreatedAt  time.Time
	LastActive time.Time

	history []string
}

func newSession(client string, conn Transport, now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Client:     client,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Touch records activity on the session.
func (s *Session) Touch(now time.Time) {
	s.LastActive = now
}

// AppendUtterance adds one utterance to the rolling history, evicting the
// oldest entry past the window.
func (s *Session) AppendUtterance(text string) {
	s.history = append(s.history, text)
	if len(s.history) > historyWindow {
		s.history = s.history[len(s.history)-historyWindow:]
	}
}

// History returns a copy of the rolling utterance history, oldest first.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
