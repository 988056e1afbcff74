package state

import (
	"sync"

	"smartcart/internal/domain"
)

// Snapshot is a consistent view of the current session and its items.
type Snapshot struct {
	Session *domain.ShoppingSession `json:"session"`
	Items   []domain.SessionItem    `json:"items"`
}

// SessionState holds at most one active shopping session and its line items.
// Only the session service writes to it, and always by full replacement, so
// concurrent readers never observe a half-updated view. Subscribers get the
// latest snapshot on subscribe and every change after; a slow subscriber has
// stale snapshots dropped rather than blocking the writer.
type SessionState struct {
	mu      sync.RWMutex
	session *domain.ShoppingSession
	items   []domain.SessionItem
	subs    map[int]chan Snapshot
	nextSub int
}

func New() *SessionState {
	return &SessionState{subs: make(map[int]chan Snapshot)}
}

func (s *SessionState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *SessionState) snapshotLocked() Snapshot {
	snap := Snapshot{Items: make([]domain.SessionItem, len(s.items))}
	copy(snap.Items, s.items)
	if s.session != nil {
		sess := *s.session
		snap.Session = &sess
	}
	return snap
}

// Session returns the current session, or nil when there is none.
func (s *SessionState) Session() *domain.ShoppingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

func (s *SessionState) SetSession(session *domain.ShoppingSession) {
	s.mu.Lock()
	if session == nil {
		s.session = nil
	} else {
		sess := *session
		s.session = &sess
	}
	s.items = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

func (s *SessionState) SetItems(items []domain.SessionItem) {
	s.mu.Lock()
	s.items = make([]domain.SessionItem, len(items))
	copy(s.items, items)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

// Clear resets to the no-session state.
func (s *SessionState) Clear() {
	s.mu.Lock()
	s.session = nil
	s.items = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

// Subscribe registers a watcher. The current snapshot is delivered
// immediately; the returned cancel func must be called to release the
// subscription.
func (s *SessionState) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	ch <- s.snapshotLocked()
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *SessionState) publish(snap Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		// Replace a pending stale snapshot instead of blocking.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
