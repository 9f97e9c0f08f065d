package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

func occupiedSet(ids ...string) repository.OccupiedSeats {
	o := repository.OccupiedSeats{}
	for _, id := range ids {
		o.Add(id)
	}
	return o
}

func rowSeats(row string, from, to int) []string {
	var out []string
	for n := from; n <= to; n++ {
		out = append(out, model.SeatID(row, n))
	}
	return out
}

func TestFindBetterSeat(t *testing.T) {
	catalog := repository.NewCatalogRepo(repository.DefaultCatalog())
	layout1, err := catalog.Layout("layout1")
	require.NoError(t, err)
	layout3, err := catalog.Layout("layout3")
	require.NoError(t, err)

	fullHG := append(rowSeats("H", 1, 14), rowSeats("G", 1, 14)...)

	tests := []struct {
		name     string
		layout   model.Layout
		occupied []string
		want     string
	}{
		{"center of best row", layout1, nil, "H7"},
		{"right of center first", layout1, []string{"H7"}, "H8"},
		{"then left", layout1, []string{"H7", "H8"}, "H6"},
		{"falls back to next row", layout1, rowSeats("H", 1, 14), "G7"},
		{"skips blocked seats", layout1, append(append([]string{}, fullHG...), "F6", "F7", "F8"), "F5"},
		{"gaps are never chosen", layout3, append(rowSeats("H", 3, 12), rowSeats("G", 3, 12)...), "F6"},
		{"nothing free", layout1, append(append([]string{}, fullHG...), rowSeats("F", 1, 14)...), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findBetterSeat(tt.layout, occupiedSet(tt.occupied...)))
		})
	}
}

func TestLotteryUpgradesSingleSeatBooking(t *testing.T) {
	env := newTestEnv(t)
	id := env.addShowtime(t, "s-1")
	b, err := env.bookings.BookSeats(asUser("user123"), BookRequest{UserID: "user123", ShowtimeID: id, SeatIDs: []string{"A1"}})
	require.NoError(t, err)
	_, err = env.bookings.MarkUpgradeSeen(asUser("user123"), b.ID)
	require.NoError(t, err)

	n, err := env.lottery.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := env.store.Bookings.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"H7"}, got.SeatIDs)
	assert.Equal(t, "A1", got.UpgradedFrom)
	assert.False(t, got.HasSeenUpgrade)

	snap, err := env.store.Inventory.Snapshot(id)
	require.NoError(t, err)
	assert.True(t, snap["H7"])
	assert.False(t, snap["A1"])

	require.Len(t, env.publisher.upgraded, 1)
	assert.Equal(t, "A1", env.publisher.upgraded[0].FromSeat)
	assert.Equal(t, "H7", env.publisher.upgraded[0].ToSeat)

	n, err = env.lottery.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n, "an upgraded booking is not drawn again")
}

func TestLotterySkipsIneligibleBookings(t *testing.T) {
	env := newTestEnv(t)
	pair := env.addShowtime(t, "s-pair")
	premium := env.addShowtime(t, "s-premium")
	env.addShowtime(t, "s-empty")

	_, err := env.bookings.BookSeats(asUser("user123"), BookRequest{UserID: "user123", ShowtimeID: pair, SeatIDs: []string{"A1", "A2"}})
	require.NoError(t, err)
	g, err := env.bookings.BookSeats(asUser("user123"), BookRequest{UserID: "user123", ShowtimeID: premium, SeatIDs: []string{"G1"}})
	require.NoError(t, err)

	n, err := env.lottery.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := env.store.Bookings.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"G1"}, got.SeatIDs)
	assert.Empty(t, env.publisher.upgraded)
}

func TestLotteryLeavesBookingWhenPremiumRowsFull(t *testing.T) {
	env := newTestEnv(t)
	var full []string
	for _, row := range PremiumRows {
		full = append(full, rowSeats(row, 1, 14)...)
	}
	id := env.addShowtime(t, "s-1", full...)
	b, err := env.bookings.BookSeats(asUser("user123"), BookRequest{UserID: "user123", ShowtimeID: id, SeatIDs: []string{"B4"}})
	require.NoError(t, err)

	n, err := env.lottery.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := env.store.Bookings.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B4"}, got.SeatIDs)
	assert.False(t, got.Upgraded())
}

func TestLotteryPicksCandidateWithRandomSource(t *testing.T) {
	env := newTestEnv(t)
	id := env.addShowtime(t, "s-1")
	first, err := env.bookings.BookSeats(asUser("user123"), BookRequest{UserID: "user123", ShowtimeID: id, SeatIDs: []string{"A1"}})
	require.NoError(t, err)
	second, err := env.bookings.BookSeats(asUser("user123"), BookRequest{UserID: "user123", ShowtimeID: id, SeatIDs: []string{"A2"}})
	require.NoError(t, err)

	env.rng.ints = []int{1}
	n, err := env.lottery.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := env.store.Bookings.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.UpgradedFrom)
	got, err = env.store.Bookings.Get(first.ID)
	require.NoError(t, err)
	assert.False(t, got.Upgraded())
}

func TestLotterySchedulerDisabled(t *testing.T) {
	env := newTestEnv(t)
	s := NewLotteryScheduler(env.lottery, 0, logger.NewNop())
	assert.NoError(t, s.Run(context.Background()))
}

func TestLotterySchedulerStopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	s := NewLotteryScheduler(env.lottery, 5*time.Millisecond, logger.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.NoError(t, s.Run(ctx))
}
