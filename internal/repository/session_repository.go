package repository

import (
	"sync"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// SessionRepo tracks sign-in sessions so access tokens can be revoked.  Only
// live sessions are kept: signing out deletes the entry, and expired entries
// are dropped when they are next looked up or when a new session is stored.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]model.Session)}
}

// Store records a new session and sweeps the ones that expired before it
// was created.
func (r *SessionRepo) Store(s model.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, old := range r.sessions {
		if !old.Active(s.CreatedAt) {
			delete(r.sessions, id)
		}
	}
	r.sessions[s.ID] = s
}

// Validate returns the session's user ID if it has not expired.
func (r *SessionRepo) Validate(id string, now time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return "", ErrNotFound
	}
	if !s.Active(now) {
		delete(r.sessions, id)
		return "", ErrNotFound
	}
	return s.UserID, nil
}

// Revoke ends a session.  Unknown or already expired sessions are
// ErrNotFound.
func (r *SessionRepo) Revoke(id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	if !s.Active(now) {
		return ErrNotFound
	}
	return nil
}

// Len returns the number of stored sessions.
func (r *SessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
