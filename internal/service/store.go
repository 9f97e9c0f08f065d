package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// Store is the process-wide in-memory state of the booking core.  It is
// built once at start-up and shared by every service.
type Store struct {
	Catalog   *repository.CatalogRepo
	Inventory *repository.InventoryRepo
	Showtimes *repository.ShowtimeRepo
	Bookings  *repository.BookingRepo
	GroupPay  *repository.GroupPayRepo
}

// NewStore returns empty stores over the given catalog.
func NewStore(catalog *repository.CatalogRepo) *Store {
	return &Store{
		Catalog:   catalog,
		Inventory: repository.NewInventoryRepo(),
		Showtimes: repository.NewShowtimeRepo(),
		Bookings:  repository.NewBookingRepo(),
		GroupPay:  repository.NewGroupPayRepo(),
	}
}

type showtimeDetails struct {
	Showtime model.Showtime
	Ref      model.ShowtimeRef
	Movie    model.Movie
	Theater  model.Theater
	Layout   model.Layout
}

// details resolves a showtime through the explicit index.  The showtime's
// FilledSeats is refreshed from the inventory when one exists.
func (s *Store) details(showtimeID string) (showtimeDetails, error) {
	st, ref, err := s.Showtimes.Get(showtimeID)
	if err != nil {
		return showtimeDetails{}, fmt.Errorf("showtime %s: %w", showtimeID, ErrNotFound)
	}
	movie, err := s.Catalog.Movie(ref.MovieID)
	if err != nil {
		return showtimeDetails{}, fmt.Errorf("showtime %s references movie %s: %w", showtimeID, ref.MovieID, ErrCatalogIntegrity)
	}
	theater, layout, err := s.Catalog.LayoutForTheater(ref.TheaterID)
	if err != nil {
		return showtimeDetails{}, catalogErr(err)
	}
	if n, err := s.Inventory.Count(showtimeID); err == nil {
		st.FilledSeats = n
	}
	return showtimeDetails{Showtime: st, Ref: ref, Movie: movie, Theater: theater, Layout: layout}, nil
}

// catalogErr maps catalog lookup failures onto the service taxonomy.
func catalogErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrLayoutNotFound):
		return fmt.Errorf("%w: %v", ErrCatalogIntegrity, err)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// normalizeSeats de-duplicates seat IDs, keeping first-seen order,
// and checks every seat is sellable in the layout.
func normalizeSeats(seatIDs []string, layout model.Layout) ([]string, error) {
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", ErrValidation)
	}
	seen := make(map[string]bool, len(seatIDs))
	out := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !layout.IsSellable(id) {
			return nil, fmt.Errorf("%w: seat %q is not sellable", ErrValidation, id)
		}
		out = append(out, id)
	}
	return out, nil
}
