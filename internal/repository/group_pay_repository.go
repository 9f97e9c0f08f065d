package repository

import (
	"fmt"
	"sync"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

type groupPayEntry struct {
	mu      sync.Mutex
	session model.GroupPaySession
}

// GroupPayRepo stores group-pay sessions.  Each session has its own lock so
// payments for different sessions never contend.
type GroupPayRepo struct {
	mu       sync.RWMutex
	sessions map[string]*groupPayEntry
}

func NewGroupPayRepo() *GroupPayRepo {
	return &GroupPayRepo{sessions: make(map[string]*groupPayEntry)}
}

func (r *GroupPayRepo) Create(s model.GroupPaySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("group pay %s: %w", s.ID, ErrAlreadyExists)
	}
	r.sessions[s.ID] = &groupPayEntry{session: s.Clone()}
	return nil
}

// With runs fn on the stored session while holding its lock and returns a
// copy of the session as fn left it.  Changes made by fn are kept even when
// fn returns an error, so a failing operation can still record state such
// as a lazy expiry.
func (r *GroupPayRepo) With(id string, fn func(*model.GroupPaySession) error) (model.GroupPaySession, error) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return model.GroupPaySession{}, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(&e.session)
	return e.session.Clone(), err
}
