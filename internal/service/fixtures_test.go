package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// scriptedRandom replays fixed values and then falls back to zero.
type scriptedRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

func (r *scriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) Shuffle(int, func(i, j int)) {}

type recordingPublisher struct {
	mu        sync.Mutex
	confirmed []queue.BookingConfirmedEvent
	upgraded  []queue.SeatUpgradedEvent
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmed = append(p.confirmed, ev)
	return nil
}

func (p *recordingPublisher) PublishSeatUpgraded(_ context.Context, ev queue.SeatUpgradedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.upgraded = append(p.upgraded, ev)
	return nil
}

type testEnv struct {
	store     *Store
	clock     *fakeClock
	rng       *scriptedRandom
	publisher *recordingPublisher
	seating   *SeatingService
	showtimes *ShowtimeService
	bookings  *BookingService
	groupPay  *GroupPayService
	lottery   *UpgradeLottery
	coupons   *CouponService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	catalog := repository.NewCatalogRepo(repository.DefaultCatalog())
	require.NoError(t, catalog.Validate())

	env := &testEnv{
		store:     NewStore(catalog),
		clock:     &fakeClock{t: testNow},
		rng:       &scriptedRandom{},
		publisher: &recordingPublisher{},
	}
	log := logger.NewNop()
	env.seating = NewSeatingService(env.store, env.rng, nil, log)
	env.showtimes = NewShowtimeService(env.store, env.seating, env.rng, env.clock, time.UTC, nil, log)
	env.bookings = NewBookingService(env.store, env.clock, nil, env.publisher, nil, log)
	env.groupPay = NewGroupPayService(env.store, env.bookings, env.clock, DefaultGroupPayTTL, nil, log)
	env.lottery = NewUpgradeLottery(env.store, env.rng, env.clock, nil, env.publisher, nil, log)
	env.coupons = NewCouponService(env.store)
	return env
}

// addShowtime indexes a showtime of m1 in theater t1 (layout1) with the
// given seats already occupied.
func (e *testEnv) addShowtime(t *testing.T, id string, occupied ...string) string {
	t.Helper()
	st := model.Showtime{ID: id, DateTime: testNow.Add(3 * time.Hour), Language: "Telugu", TotalSeats: 112}
	e.store.Showtimes.Put(repository.ShowtimeKey("m1", "t1", "2026-10-19", id), model.ShowtimeRef{
		MovieID: "m1", TheaterID: "t1", Date: "2026-10-19", Language: "Telugu",
	}, []model.Showtime{st})
	require.True(t, e.store.Inventory.GetOrCreate(id, func() []string { return occupied }))
	return id
}

func asUser(userID string) context.Context {
	return ContextWithUserID(context.Background(), userID)
}
