package repository

import (
	"fmt"
	"sync"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// BookingRepo is the append-only booking ledger.  Bookings keep their
// insertion order; nothing is ever removed.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings []*model.Booking
	byID     map[string]*model.Booking
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{byID: make(map[string]*model.Booking)}
}

// Append adds a booking to the ledger.
func (r *BookingRepo) Append(b model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; ok {
		return fmt.Errorf("booking %s: %w", b.ID, ErrAlreadyExists)
	}
	stored := b.Clone()
	r.bookings = append(r.bookings, &stored)
	r.byID[b.ID] = &stored
	return nil
}

func (r *BookingRepo) Get(id string) (model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	return b.Clone(), nil
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(userID string) []model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Booking
	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].UserID == userID {
			out = append(out, r.bookings[i].Clone())
		}
	}
	return out
}

// ListByShowtime returns the showtime's bookings in ledger order.
func (r *BookingRepo) ListByShowtime(showtimeID string) []model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Booking
	for _, b := range r.bookings {
		if b.ShowtimeID == showtimeID {
			out = append(out, b.Clone())
		}
	}
	return out
}

// Update applies fn to the stored booking under the ledger lock.
func (r *BookingRepo) Update(id string, fn func(*model.Booking) error) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	if err := fn(b); err != nil {
		return model.Booking{}, err
	}
	return b.Clone(), nil
}

func (r *BookingRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}
