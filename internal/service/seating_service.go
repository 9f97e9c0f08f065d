package service

import (
	"context"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// SeatingService generates and presents a showtime's seating chart.
type SeatingService struct {
	store   *Store
	rng     Random
	metrics *metrics.Metrics
	log     logger.Logger
}

func NewSeatingService(store *Store, rng Random, m *metrics.Metrics, log logger.Logger) *SeatingService {
	return &SeatingService{store: store, rng: rng, metrics: m, log: log}
}

// SeatingInfo is everything a client needs to draw a showtime's chart.
type SeatingInfo struct {
	Movie    model.Movie    `json:"movie"`
	Theater  model.Theater  `json:"theater"`
	Showtime model.Showtime `json:"showtime"`
	Seats    []model.Seat   `json:"seats"`
	Layout   model.Layout   `json:"layout"`
}

// EnsureSeats creates the showtime's inventory on first use: the sellable
// seats are shuffled and the first filledCount of them are marked occupied.
// Only the first call for a showtime has any effect; it reports whether it
// was that call.
func (s *SeatingService) EnsureSeats(showtimeID string, filledCount int, layout model.Layout) bool {
	created := s.store.Inventory.GetOrCreate(showtimeID, func() []string {
		ids := layout.SellableSeatIDs()
		s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		n := max(0, min(filledCount, len(ids)))
		return ids[:n]
	})
	if created {
		s.metrics.InventoryCreated()
	}
	return created
}

// MaterializeSeats lists every physical seat of the layout in row-major
// order.  Gap positions are omitted.  Statically blocked seats are reported
// as blocked regardless of occupancy.
func (s *SeatingService) MaterializeSeats(showtimeID string, layout model.Layout) ([]model.Seat, error) {
	occupied, err := s.store.Inventory.Snapshot(showtimeID)
	if err != nil {
		return nil, ErrNotFound
	}
	seats := make([]model.Seat, 0, layout.Capacity())
	for _, row := range layout.Rows {
		for n := 1; n <= layout.SeatsPerRow; n++ {
			if layout.IsGap(row, n) {
				continue
			}
			id := model.SeatID(row, n)
			status := model.SeatAvailable
			switch {
			case layout.IsBlocked(id):
				status = model.SeatBlocked
			case occupied[id]:
				status = model.SeatFilled
			}
			seats = append(seats, model.Seat{ID: id, Row: row, Number: n, Status: status})
		}
	}
	return seats, nil
}

// GetSeatingInfo returns the chart of a generated showtime.
func (s *SeatingService) GetSeatingInfo(ctx context.Context, showtimeID string) (SeatingInfo, error) {
	d, err := s.store.details(showtimeID)
	if err != nil {
		return SeatingInfo{}, err
	}
	if s.EnsureSeats(showtimeID, d.Showtime.FilledSeats, d.Layout) {
		s.log.Debugf(ctx, "seating: inventory for %s created on read", showtimeID)
	}
	seats, err := s.MaterializeSeats(showtimeID, d.Layout)
	if err != nil {
		return SeatingInfo{}, err
	}
	st := d.Showtime
	if n, err := s.store.Inventory.Count(showtimeID); err == nil {
		st.FilledSeats = n
	}
	return SeatingInfo{Movie: d.Movie, Theater: d.Theater, Showtime: st, Seats: seats, Layout: d.Layout}, nil
}

// Suggest runs the persona engine over a showtime's current chart.
func (s *SeatingService) Suggest(ctx context.Context, showtimeID string, persona Persona, familySize int) ([][]string, error) {
	info, err := s.GetSeatingInfo(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	return SuggestGroups(persona, info.Seats, info.Layout, familySize)
}
