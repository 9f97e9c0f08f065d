package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// PremiumRows lists the premium rows, best first.  Bookings already in one
// of the first two are never moved.
var PremiumRows = []string{"H", "G", "F"}

var errNotEligible = errors.New("booking no longer eligible")

// UpgradeLottery moves at most one single-seat booking per showtime to a
// free premium seat.
type UpgradeLottery struct {
	store     *Store
	rng       Random
	clock     Clock
	archive   BookingArchive
	publisher queue.Publisher
	metrics   *metrics.Metrics
	log       logger.Logger
}

func NewUpgradeLottery(store *Store, rng Random, clock Clock, archive BookingArchive, publisher queue.Publisher, m *metrics.Metrics, log logger.Logger) *UpgradeLottery {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &UpgradeLottery{store: store, rng: rng, clock: clock, archive: archive, publisher: publisher, metrics: m, log: log}
}

// Run draws once per showtime and returns how many bookings were upgraded.
func (l *UpgradeLottery) Run(ctx context.Context) (int, error) {
	upgraded := 0
	for _, showtimeID := range l.store.Showtimes.IDs() {
		if err := ctx.Err(); err != nil {
			return upgraded, err
		}
		ok, err := l.runShowtime(ctx, showtimeID)
		if err != nil {
			l.log.Warnf(ctx, "upgrade-lottery: showtime %s: %v", showtimeID, err)
			continue
		}
		if ok {
			upgraded++
		}
	}
	l.metrics.Upgraded(upgraded)
	l.log.Infof(ctx, "upgrade-lottery: %d bookings upgraded", upgraded)
	return upgraded, nil
}

func (l *UpgradeLottery) runShowtime(ctx context.Context, showtimeID string) (bool, error) {
	var candidates []model.Booking
	for _, b := range l.store.Bookings.ListByShowtime(showtimeID) {
		if !b.Upgraded() && len(b.SeatIDs) == 1 {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return false, nil
	}
	winner := candidates[l.rng.IntN(len(candidates))]
	from := winner.SeatIDs[0]
	if row := model.RowOf(from); row == PremiumRows[0] || row == PremiumRows[1] {
		return false, nil
	}

	_, ref, err := l.store.Showtimes.Get(showtimeID)
	if err != nil {
		return false, err
	}
	_, layout, err := l.store.Catalog.LayoutForTheater(ref.TheaterID)
	if err != nil {
		return false, catalogErr(err)
	}

	var updated model.Booking
	var to string
	err = l.store.Inventory.WithShowtime(showtimeID, func(o repository.OccupiedSeats) error {
		to = findBetterSeat(layout, o)
		if to == "" {
			return nil
		}
		b, err := l.store.Bookings.Update(winner.ID, func(b *model.Booking) error {
			if b.Upgraded() || len(b.SeatIDs) != 1 || b.SeatIDs[0] != from {
				return errNotEligible
			}
			b.UpgradedFrom = from
			b.SeatIDs = []string{to}
			b.HasSeenUpgrade = false
			return nil
		})
		if err != nil {
			return err
		}
		o.Remove(from)
		o.Add(to)
		updated = b
		return nil
	})
	if errors.Is(err, errNotEligible) || (err == nil && to == "") {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.log.Infof(ctx, "upgrade-lottery: %s moved %s -> %s", updated.ID, from, to)
	l.afterUpgrade(ctx, updated, from, to)
	return true, nil
}

func (l *UpgradeLottery) afterUpgrade(ctx context.Context, b model.Booking, from, to string) {
	sctx, cancel := detach(ctx, sideEffectTimeout)
	defer cancel()
	if l.archive != nil {
		if err := l.archive.RecordUpgrade(sctx, b.ID, from, to); err != nil {
			l.log.Warnf(ctx, "upgrade-lottery: archive %s: %v", b.ID, err)
		}
	}
	ev := queue.SeatUpgradedEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		ShowtimeID: b.ShowtimeID,
		FromSeat:   from,
		ToSeat:     to,
		UpgradedAt: l.clock.Now().UTC().Format(time.RFC3339),
	}
	if err := l.publisher.PublishSeatUpgraded(sctx, ev); err != nil {
		l.log.Warnf(ctx, "upgrade-lottery: publish %s: %v", b.ID, err)
	}
}

// findBetterSeat returns the first free sellable premium seat, searching
// rows best first and each row from the center outward, right before left.
// It returns "" when every premium seat is taken.
func findBetterSeat(layout model.Layout, occupied repository.OccupiedSeats) string {
	spr := layout.SeatsPerRow
	mid := spr / 2
	for _, row := range PremiumRows {
		if !layout.HasRow(row) {
			continue
		}
		for i := 0; i < (spr+1)/2; i++ {
			positions := []int{mid + i}
			if i > 0 {
				positions = append(positions, mid-i)
			}
			for _, n := range positions {
				if n < 1 || n > spr {
					continue
				}
				id := model.SeatID(row, n)
				if layout.IsSellable(id) && !occupied.Has(id) {
					return id
				}
			}
		}
	}
	return ""
}

// LotteryScheduler runs the lottery on a fixed interval.
type LotteryScheduler struct {
	lottery  *UpgradeLottery
	interval time.Duration
	log      logger.Logger
}

func NewLotteryScheduler(lottery *UpgradeLottery, interval time.Duration, log logger.Logger) *LotteryScheduler {
	return &LotteryScheduler{lottery: lottery, interval: interval, log: log}
}

// Run blocks until ctx is done.  A non-positive interval disables the
// scheduler and Run returns immediately.
func (s *LotteryScheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return nil
	}
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := s.lottery.Run(ctx); err != nil && ctx.Err() == nil {
				s.log.Errorf(ctx, "upgrade-lottery: %v", err)
			}
		}
	}
}
