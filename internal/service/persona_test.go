package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// chart builds the seats of layout with the given seats filled.
func chart(t *testing.T, layoutID string, filled ...string) ([]model.Seat, model.Layout) {
	t.Helper()
	layout, err := repository.NewCatalogRepo(repository.DefaultCatalog()).Layout(layoutID)
	require.NoError(t, err)

	taken := map[string]bool{}
	for _, id := range filled {
		taken[id] = true
	}
	var seats []model.Seat
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
			case taken[id]:
				status = model.SeatFilled
			}
			seats = append(seats, model.Seat{ID: id, Row: row, Number: n, Status: status})
		}
	}
	return seats, layout
}

func TestCoupleSuggestsCornerPairs(t *testing.T) {
	seats, layout := chart(t, "layout1", "B13")

	groups, err := SuggestGroups(PersonaCouple, seats, layout, 0)
	require.NoError(t, err)

	assert.Contains(t, groups, []string{"A1", "A2"})
	assert.Contains(t, groups, []string{"A13", "A14"})
	assert.Contains(t, groups, []string{"B1", "B2"})
	assert.NotContains(t, groups, []string{"B13", "B14"})
	assert.Len(t, groups, 15)
}

func TestCoupleRespectsCornerAisles(t *testing.T) {
	layout := model.Layout{ID: "aisles", Rows: []string{"A", "B"}, SeatsPerRow: 6, Aisles: []int{1, 5}}
	var seats []model.Seat
	for _, row := range layout.Rows {
		for n := 1; n <= layout.SeatsPerRow; n++ {
			seats = append(seats, model.Seat{ID: model.SeatID(row, n), Row: row, Number: n, Status: model.SeatAvailable})
		}
	}

	groups, err := SuggestGroups(PersonaCouple, seats, layout, 0)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestMovieLoverPicksMiddleThird(t *testing.T) {
	seats, layout := chart(t, "layout1")

	groups, err := SuggestGroups(PersonaMovieLover, seats, layout, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"F5"}, {"F6"}, {"F7"}, {"E5"}, {"E6"}, {"E7"}}, groups)
}

func TestFamilyFindsContiguousRuns(t *testing.T) {
	seats, layout := chart(t, "layout1")

	groups, err := SuggestGroups(PersonaFamily, seats, layout, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"F4", "F5", "F6", "F7"},
		{"E4", "E5", "E6", "E7"},
		{"E8", "E9", "E10", "E11"},
		{"D4", "D5", "D6", "D7"},
		{"D8", "D9", "D10", "D11"},
		{"C7", "C8", "C9", "C10"},
	}, groups)
}

func TestFamilyGroupsNeverOverlap(t *testing.T) {
	seats, layout := chart(t, "layout4", "E3")

	groups, err := SuggestGroups(PersonaFamily, seats, layout, 2)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, g := range groups {
		require.Len(t, g, 2)
		for _, id := range g {
			assert.False(t, seen[id], "seat %s suggested twice", id)
			seen[id] = true
		}
	}
	assert.False(t, seen["E3"])
}

func TestFamilySizeBounds(t *testing.T) {
	seats, layout := chart(t, "layout1")

	_, err := SuggestGroups(PersonaFamily, seats, layout, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = SuggestGroups(PersonaFamily, seats, layout, MaxFamilySize+1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParsePersona(t *testing.T) {
	for in, want := range map[string]Persona{
		"couple":      PersonaCouple,
		"Movie_Lover": PersonaMovieLover,
		"movielover":  PersonaMovieLover,
		" FAMILY ":    PersonaFamily,
	} {
		got, err := ParsePersona(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePersona("solo")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestToggleSeat(t *testing.T) {
	groups := [][]string{{"A1", "A2"}, {"A13", "A14"}}

	sel := ToggleSeat(nil, groups, "A2")
	assert.Equal(t, []string{"A1", "A2"}, sel)

	sel = ToggleSeat(sel, groups, "D4")
	assert.Equal(t, []string{"A1", "A2", "D4"}, sel)

	sel = ToggleSeat(sel, groups, "A1")
	assert.Equal(t, []string{"D4"}, sel)

	sel = ToggleSeat([]string{"A13"}, groups, "A14")
	assert.Empty(t, sel, "a partly selected group is cleared")

	sel = ToggleSeat([]string{"D4"}, groups, "D4")
	assert.Empty(t, sel)
}
