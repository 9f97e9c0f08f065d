package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

func TestEnsureSeatsIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	layout, err := env.store.Catalog.Layout("layout1")
	require.NoError(t, err)

	assert.True(t, env.seating.EnsureSeats("s-x", 10, layout))
	assert.False(t, env.seating.EnsureSeats("s-x", 50, layout))

	n, err := env.store.Inventory.Count("s-x")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestEnsureSeatsClampsAndSkipsBlocked(t *testing.T) {
	env := newTestEnv(t)
	layout, err := env.store.Catalog.Layout("layout1")
	require.NoError(t, err)

	env.seating.EnsureSeats("s-full", 1000, layout)
	snap, err := env.store.Inventory.Snapshot("s-full")
	require.NoError(t, err)
	assert.Len(t, snap, 108)
	assert.False(t, snap["C5"])
}

func TestEnsureSeatsConcurrentFirstAccess(t *testing.T) {
	env := newTestEnv(t)
	seating := NewSeatingService(env.store, NewRandom(99), nil, logger.NewNop())
	layout, err := env.store.Catalog.Layout("layout4")
	require.NoError(t, err)

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		snaps   []map[string]bool
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(fill int) {
			defer wg.Done()
			ok := seating.EnsureSeats("s-race", fill, layout)
			snap, err := env.store.Inventory.Snapshot("s-race")
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				created++
			}
			snaps = append(snaps, snap)
		}(20 + i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	for _, s := range snaps[1:] {
		assert.Equal(t, snaps[0], s)
	}
}

func TestGetSeatingInfo(t *testing.T) {
	env := newTestEnv(t)
	id := env.addShowtime(t, "s-1", "A1", "H14")

	info, err := env.seating.GetSeatingInfo(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "m1", info.Movie.ID)
	assert.Equal(t, "t1", info.Theater.ID)
	assert.Equal(t, "layout1", info.Layout.ID)
	assert.Equal(t, 2, info.Showtime.FilledSeats)
	require.Len(t, info.Seats, 112)

	status := map[string]model.SeatStatus{}
	for _, s := range info.Seats {
		status[s.ID] = s.Status
	}
	assert.Equal(t, model.SeatFilled, status["A1"])
	assert.Equal(t, model.SeatFilled, status["H14"])
	assert.Equal(t, model.SeatBlocked, status["C5"])
	assert.Equal(t, model.SeatAvailable, status["D7"])

	_, err = env.seating.GetSeatingInfo(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaterializeSeatsOmitsGaps(t *testing.T) {
	env := newTestEnv(t)
	layout, err := env.store.Catalog.Layout("layout2")
	require.NoError(t, err)
	env.seating.EnsureSeats("s-gaps", 0, layout)

	seats, err := env.seating.MaterializeSeats("s-gaps", layout)
	require.NoError(t, err)
	assert.Len(t, seats, layout.Capacity())
	for _, s := range seats {
		assert.NotEqual(t, "J5", s.ID)
	}

	_, err = env.seating.MaterializeSeats("nope", layout)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestUsesCurrentChart(t *testing.T) {
	env := newTestEnv(t)
	id := env.addShowtime(t, "s-1", "F6")

	groups, err := env.seating.Suggest(context.Background(), id, PersonaMovieLover, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"F5"}, {"F7"}, {"E5"}, {"E6"}, {"E7"}}, groups)
}
