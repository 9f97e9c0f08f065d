package repository

import (
	"fmt"
	"sort"
	"sync"
)

// OccupiedSeats is the set of occupied seat IDs of one showtime.  It is only
// handed out inside InventoryRepo.WithShowtime, while the showtime's lock is
// held.
type OccupiedSeats map[string]struct{}

func (o OccupiedSeats) Has(seatID string) bool {
	_, ok := o[seatID]
	return ok
}

func (o OccupiedSeats) Add(seatID string)    { o[seatID] = struct{}{} }
func (o OccupiedSeats) Remove(seatID string) { delete(o, seatID) }
func (o OccupiedSeats) Len() int             { return len(o) }

type inventoryEntry struct {
	mu       sync.Mutex
	occupied OccupiedSeats
}

// InventoryRepo is the per-showtime occupied-seat store and the single source
// of truth for availability.  Each showtime has its own mutex; every
// check-then-act on a showtime's seats runs under it.
type InventoryRepo struct {
	mu      sync.Mutex
	entries map[string]*inventoryEntry
}

func NewInventoryRepo() *InventoryRepo {
	return &InventoryRepo{entries: make(map[string]*inventoryEntry)}
}

// GetOrCreate creates the showtime's entry exactly once, seeding it with the
// seats returned by fill.  It reports whether this call created the entry.
// Later calls, including concurrent ones racing the first, never invoke
// fill and never alter the stored set.  The entry is locked before it
// becomes visible, so readers block until the fill is in place.
func (r *InventoryRepo) GetOrCreate(showtimeID string, fill func() []string) bool {
	r.mu.Lock()
	if _, ok := r.entries[showtimeID]; ok {
		r.mu.Unlock()
		return false
	}
	e := &inventoryEntry{occupied: make(OccupiedSeats)}
	e.mu.Lock()
	r.entries[showtimeID] = e
	r.mu.Unlock()

	defer e.mu.Unlock()
	if fill != nil {
		for _, id := range fill() {
			e.occupied.Add(id)
		}
	}
	return true
}

func (r *InventoryRepo) entry(showtimeID string) (*inventoryEntry, error) {
	r.mu.Lock()
	e, ok := r.entries[showtimeID]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("inventory %s: %w", showtimeID, ErrNotFound)
	}
	return e, nil
}

// Exists reports whether the showtime's inventory has been created.
func (r *InventoryRepo) Exists(showtimeID string) bool {
	_, err := r.entry(showtimeID)
	return err == nil
}

// WithShowtime runs fn while holding the showtime's lock.  Mutations made to
// the set inside fn are the store's new state.
func (r *InventoryRepo) WithShowtime(showtimeID string, fn func(OccupiedSeats) error) error {
	e, err := r.entry(showtimeID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.occupied)
}

// Snapshot returns a copy of the occupied set.
func (r *InventoryRepo) Snapshot(showtimeID string) (map[string]bool, error) {
	out := map[string]bool{}
	err := r.WithShowtime(showtimeID, func(o OccupiedSeats) error {
		for id := range o {
			out[id] = true
		}
		return nil
	})
	return out, err
}

// Count returns the number of occupied seats.
func (r *InventoryRepo) Count(showtimeID string) (int, error) {
	n := 0
	err := r.WithShowtime(showtimeID, func(o OccupiedSeats) error {
		n = o.Len()
		return nil
	})
	return n, err
}

// Reserve occupies every seat or none.  When any seat is already taken it
// returns ErrConflict and the set is left untouched.
func (r *InventoryRepo) Reserve(showtimeID string, seatIDs []string) error {
	return r.WithShowtime(showtimeID, func(o OccupiedSeats) error {
		return ReserveAll(o, seatIDs)
	})
}

// ReserveAll is the all-or-nothing reservation step for callers that already
// hold the showtime's lock.
func ReserveAll(o OccupiedSeats, seatIDs []string) error {
	var taken []string
	for _, id := range seatIDs {
		if o.Has(id) {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		sort.Strings(taken)
		return fmt.Errorf("%w: seats %v already occupied", ErrConflict, taken)
	}
	for _, id := range seatIDs {
		o.Add(id)
	}
	return nil
}
