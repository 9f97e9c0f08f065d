package repository

import (
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// CatalogRepo serves the static catalog: layouts, locations, theaters,
// movies and coupons.  It is read-only after construction, so no locking is
// needed.
type CatalogRepo struct {
	layouts   map[string]model.Layout
	locations []model.Location
	theaters  []model.Theater
	movies    []model.Movie
	coupons   []model.Coupon
}

// Catalog groups the data a CatalogRepo is built from.
type Catalog struct {
	Layouts   map[string]model.Layout
	Locations []model.Location
	Theaters  []model.Theater
	Movies    []model.Movie
	Coupons   []model.Coupon
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Layouts:   defaultLayouts(),
		Locations: defaultLocations(),
		Theaters:  defaultTheaters(),
		Movies:    defaultMovies(),
		Coupons:   defaultCoupons(),
	}
}

// NewCatalogRepo builds a repository over the given catalog.
func NewCatalogRepo(c Catalog) *CatalogRepo {
	return &CatalogRepo{
		layouts:   c.Layouts,
		locations: c.Locations,
		theaters:  c.Theaters,
		movies:    c.Movies,
		coupons:   c.Coupons,
	}
}

// Validate checks referential integrity of the static data.  Every theater
// must reference a known layout and location, and every layout must have a
// positive geometry.  A failure here is a bug in the catalog and the caller
// is expected to refuse to start.
func (r *CatalogRepo) Validate() error {
	for id, l := range r.layouts {
		if id != l.ID {
			return fmt.Errorf("layout %q registered under key %q", l.ID, id)
		}
		if len(l.Rows) == 0 || l.SeatsPerRow <= 0 {
			return fmt.Errorf("layout %q has empty geometry", id)
		}
		for _, g := range l.Gaps {
			if !l.HasRow(g.Row) {
				return fmt.Errorf("layout %q: gap on unknown row %q", id, g.Row)
			}
		}
	}
	for _, t := range r.theaters {
		if _, ok := r.layouts[t.LayoutID]; !ok {
			return fmt.Errorf("theater %s: %w: %q", t.ID, ErrLayoutNotFound, t.LayoutID)
		}
		if _, err := r.Location(t.LocationID); err != nil {
			return fmt.Errorf("theater %s: unknown location %q", t.ID, t.LocationID)
		}
	}
	return nil
}

// Layout returns a layout by ID or ErrLayoutNotFound.
func (r *CatalogRepo) Layout(id string) (model.Layout, error) {
	l, ok := r.layouts[id]
	if !ok {
		return model.Layout{}, fmt.Errorf("%w: %q", ErrLayoutNotFound, id)
	}
	return l, nil
}

// LayoutForTheater resolves the theater's layout.  A theater pointing at a
// missing layout yields ErrLayoutNotFound.
func (r *CatalogRepo) LayoutForTheater(theaterID string) (model.Theater, model.Layout, error) {
	t, err := r.Theater(theaterID)
	if err != nil {
		return model.Theater{}, model.Layout{}, err
	}
	l, err := r.Layout(t.LayoutID)
	if err != nil {
		return model.Theater{}, model.Layout{}, fmt.Errorf("theater %s: %w", t.ID, err)
	}
	return t, l, nil
}

func (r *CatalogRepo) Locations() []model.Location {
	return append([]model.Location(nil), r.locations...)
}

func (r *CatalogRepo) Location(id string) (model.Location, error) {
	for _, l := range r.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Location{}, ErrNotFound
}

func (r *CatalogRepo) Theater(id string) (model.Theater, error) {
	for _, t := range r.theaters {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Theater{}, ErrNotFound
}

// TheatersByLocation lists theaters of a location in catalog order.
func (r *CatalogRepo) TheatersByLocation(locationID string) []model.Theater {
	var out []model.Theater
	for _, t := range r.theaters {
		if t.LocationID == locationID {
			out = append(out, t)
		}
	}
	return out
}

// Movies returns every movie.  All movies play at every location.
func (r *CatalogRepo) Movies() []model.Movie {
	out := make([]model.Movie, len(r.movies))
	for i, m := range r.movies {
		m.AvailableLanguages = append([]string(nil), m.AvailableLanguages...)
		out[i] = m
	}
	return out
}

func (r *CatalogRepo) Movie(id string) (model.Movie, error) {
	for _, m := range r.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Movie{}, ErrNotFound
}

func (r *CatalogRepo) Coupons() []model.Coupon {
	return append([]model.Coupon(nil), r.coupons...)
}

// Coupon looks up a coupon by code, ignoring case and surrounding spaces.
func (r *CatalogRepo) Coupon(code string) (model.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range r.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return model.Coupon{}, ErrNotFound
}
