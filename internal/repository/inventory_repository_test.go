package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateFillsOnce(t *testing.T) {
	repo := NewInventoryRepo()
	calls := 0
	fill := func() []string {
		calls++
		return []string{"A1", "A2"}
	}

	assert.True(t, repo.GetOrCreate("s1", fill))
	assert.False(t, repo.GetOrCreate("s1", fill))
	assert.Equal(t, 1, calls)

	n, err := repo.Count("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReserveIsAllOrNothing(t *testing.T) {
	repo := NewInventoryRepo()
	repo.GetOrCreate("s1", func() []string { return []string{"B2"} })

	err := repo.Reserve("s1", []string{"B1", "B2", "B3"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "B2")

	snap, err := repo.Snapshot("s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"B2": true}, snap)

	require.NoError(t, repo.Reserve("s1", []string{"B1", "B3"}))
	n, _ := repo.Count("s1")
	assert.Equal(t, 3, n)
}

func TestInventoryUnknownShowtime(t *testing.T) {
	repo := NewInventoryRepo()
	assert.False(t, repo.Exists("nope"))
	_, err := repo.Snapshot("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Reserve("nope", []string{"A1"}), ErrNotFound)
}

func TestReserveConcurrentSingleWinner(t *testing.T) {
	repo := NewInventoryRepo()
	repo.GetOrCreate("s1", nil)

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.Reserve("s1", []string{"D4", "D5"}) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
