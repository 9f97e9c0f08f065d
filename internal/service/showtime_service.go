package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// DateLayout is the format of the date parameter of showtime queries.
const DateLayout = "2006-01-02"

// Candidate screening times (local hour, minute).  Each is offered with
// probability showtimeOdds.
var candidateTimes = [...]struct{ hour, minute int }{
	{10, 0}, {13, 15}, {16, 30}, {19, 45}, {23, 0},
}

const (
	showtimeOdds  = 0.6
	nearFullOdds  = 0.15
	nearFullBase  = 0.90
	nearFullRange = 0.09
	regularRange  = 0.88
)

// ShowtimeService generates showtimes lazily and caches them per
// (movie, theater, date, language).
type ShowtimeService struct {
	store   *Store
	seating *SeatingService
	rng     Random
	clock   Clock
	loc     *time.Location
	flight  singleflight.Group
	metrics *metrics.Metrics
	log     logger.Logger
}

func NewShowtimeService(store *Store, seating *SeatingService, rng Random, clock Clock, loc *time.Location, m *metrics.Metrics, log logger.Logger) *ShowtimeService {
	if loc == nil {
		loc = time.UTC
	}
	return &ShowtimeService{store: store, seating: seating, rng: rng, clock: clock, loc: loc, metrics: m, log: log}
}

// GenerateShowtimes returns the upcoming showtimes of a movie in a theater
// on date.  The first request for a key generates and caches the list; later
// requests return the cached entries that have not started yet.  Past
// entries stay in the cache.
func (s *ShowtimeService) GenerateShowtimes(ctx context.Context, movieID, theaterID, date, language string) ([]model.Showtime, error) {
	day, err := time.ParseInLocation(DateLayout, date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := s.store.Catalog.Movie(movieID); err != nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}
	_, layout, err := s.store.Catalog.LayoutForTheater(theaterID)
	if err != nil {
		return nil, catalogErr(err)
	}

	key := repository.ShowtimeKey(movieID, theaterID, date, language)
	list, ok := s.store.Showtimes.List(key)
	if !ok {
		v, err, _ := s.flight.Do(key, func() (interface{}, error) {
			if cached, ok := s.store.Showtimes.List(key); ok {
				return cached, nil
			}
			generated := s.generate(movieID, theaterID, day, date, language, layout)
			s.store.Showtimes.Put(key, model.ShowtimeRef{MovieID: movieID, TheaterID: theaterID, Date: date, Language: language}, generated)
			s.metrics.Generated(len(generated))
			s.log.Debugf(ctx, "showtimes: generated %d for %s", len(generated), key)
			return generated, nil
		})
		if err != nil {
			return nil, err
		}
		list = v.([]model.Showtime)
	}

	now := s.clock.Now()
	out := make([]model.Showtime, 0, len(list))
	for _, st := range list {
		if !st.DateTime.After(now) {
			continue
		}
		if n, err := s.store.Inventory.Count(st.ID); err == nil {
			st.FilledSeats = n
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *ShowtimeService) generate(movieID, theaterID string, day time.Time, date, language string, layout model.Layout) []model.Showtime {
	now := s.clock.Now()
	total := layout.Capacity()
	list := []model.Showtime{}
	for _, c := range candidateTimes {
		if s.rng.Float64() <= 1-showtimeOdds {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, 0, 0, s.loc)
		if !at.After(now) {
			continue
		}
		id := fmt.Sprintf("s-%s-%s-%s-%02d%02d-%s", movieID, theaterID, date, c.hour, c.minute, language)

		var ratio float64
		if s.rng.Float64() < nearFullOdds {
			ratio = nearFullBase + s.rng.Float64()*nearFullRange
		} else {
			ratio = s.rng.Float64() * regularRange
		}
		filled := int(math.Floor(ratio * float64(total)))
		s.seating.EnsureSeats(id, filled, layout)

		n, _ := s.store.Inventory.Count(id)
		list = append(list, model.Showtime{
			ID:          id,
			DateTime:    at,
			Language:    language,
			TotalSeats:  total,
			FilledSeats: n,
		})
	}
	return list
}

// ShowtimesForLocation returns showtimes per theater of a location.  An
// unknown movie, or a language the movie is not screened in, yields an
// empty result rather than an error.
func (s *ShowtimeService) ShowtimesForLocation(ctx context.Context, movieID, locationID, date, language string) (map[string][]model.Showtime, error) {
	result := map[string][]model.Showtime{}
	movie, err := s.store.Catalog.Movie(movieID)
	if err != nil || !movie.OffersLanguage(language) {
		return result, nil
	}
	for _, t := range s.store.Catalog.TheatersByLocation(locationID) {
		list, err := s.GenerateShowtimes(ctx, movieID, t.ID, date, language)
		if err != nil {
			return nil, err
		}
		result[t.ID] = list
	}
	return result, nil
}
