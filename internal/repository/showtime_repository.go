package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// ShowtimeRepo caches generated showtime lists by their composite key and
// keeps the explicit showtimeID → {movie, theater} index.
type ShowtimeRepo struct {
	mu    sync.RWMutex
	lists map[string][]model.Showtime
	index map[string]model.ShowtimeRef
	byID  map[string]model.Showtime
}

func NewShowtimeRepo() *ShowtimeRepo {
	return &ShowtimeRepo{
		lists: make(map[string][]model.Showtime),
		index: make(map[string]model.ShowtimeRef),
		byID:  make(map[string]model.Showtime),
	}
}

// ShowtimeKey builds the cache key of a (movie, theater, date, language)
// request.
func ShowtimeKey(movieID, theaterID, date, language string) string {
	return strings.Join([]string{movieID, theaterID, date, language}, "|")
}

// List returns the cached list for key.  The second result is false on a
// cache miss.  An empty list is still a hit.
func (r *ShowtimeRepo) List(key string) ([]model.Showtime, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.lists[key]
	if !ok {
		return nil, false
	}
	return append([]model.Showtime(nil), list...), true
}

// Put stores a generated list under key and indexes every showtime with the
// given ref (its ShowtimeID is filled per entry).  Existing index entries are
// overwritten.
func (r *ShowtimeRepo) Put(key string, ref model.ShowtimeRef, list []model.Showtime) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[key] = append([]model.Showtime(nil), list...)
	for _, st := range list {
		ref.ShowtimeID = st.ID
		r.index[st.ID] = ref
		r.byID[st.ID] = st
	}
}

// Get returns a showtime and its index entry.
func (r *ShowtimeRepo) Get(showtimeID string) (model.Showtime, model.ShowtimeRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.byID[showtimeID]
	if !ok {
		return model.Showtime{}, model.ShowtimeRef{}, ErrNotFound
	}
	return st, r.index[showtimeID], nil
}

// IDs lists every indexed showtime, sorted.
func (r *ShowtimeRepo) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
