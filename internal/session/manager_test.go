package session

import (
	"errors"
	"fmt"
	"testing"
)

type nopConn struct{ writes []any }

func (c *nopConn) WriteJSON(v any) error {
	c.writes = append(c.writes, v)
	return nil
}

func TestConnectEnforcesCapacity(t *testing.T) {
	m := NewManager(2)

	a, err := m.Connect("1.1.1.1", &nopConn{})
	if err != nil {
		t.Fatalf("first connect: %v", err)
	}
	if _, err := m.Connect("2.2.2.2", &nopConn{}); err != nil {
		t.Fatalf("second connect: %v", err)
	}

	if _, err := m.Connect("3.3.3.3", &nopConn{}); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}

	m.Disconnect(a.ID)
	if _, err := m.Connect("3.3.3.3", &nopConn{}); err != nil {
		t.Fatalf("connect after disconnect: %v", err)
	}
}

func TestDisconnectUnknownIsNoop(t *testing.T) {
	m := NewManager(2)
	m.Disconnect("no-such-session")
	if got := m.ActiveCount(); got != 0 {
		t.Fatalf("ActiveCount = %d, want 0", got)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	m := NewManager(10)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		_ = i
		s, err := m.Connect("1.1.1.1", &nopConn{})
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestHistoryWindowEvictsOldest(t *testing.T) {
	m := NewManager(1)
	s, err := m.Connect("1.1.1.1", &nopConn{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	for i := 0; i < 15; i++ {
		s.AppendUtterance(fmt.Sprintf("utterance %d", i))
	}

	h := s.History()
	if len(h) != 10 {
		t.Fatalf("history length = %d, want 10", len(h))
	}
	if h[0] != "utterance 5" || h[9] != "utterance 14" {
		t.Fatalf("unexpected window: first=%q last=%q", h[0], h[9])
	}
}

func TestBroadcastReachesAllSessions(t *testing.T) {
	m := NewManager(5)
	conns := []*nopConn{{}, {}, {}}
	for _, c := range conns {
		if _, err := m.Connect("1.1.1.1", c); err != nil {
			t.Fatalf("connect: %v", err)
		}
	}

	m.Broadcast(map[string]string{"type": "notice"})

	for i, c := range conns {
		if len(c.writes) != 1 {
			t.Fatalf("conn %d received %d writes, want 1", i, len(c.writes))
		}
	}
}
