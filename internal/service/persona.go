package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// Persona selects a seat-suggestion heuristic.
type Persona string

const (
	PersonaCouple     Persona = "couple"
	PersonaMovieLover Persona = "movie_lover"
	PersonaFamily     Persona = "family"
)

const (
	MinFamilySize     = 1
	MaxFamilySize     = 10
	DefaultFamilySize = 4
)

// ParsePersona accepts the persona names case-insensitively, with either
// "movie_lover" or "movielover".
func ParsePersona(s string) (Persona, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "couple":
		return PersonaCouple, nil
	case "movie_lover", "movielover", "movie-lover":
		return PersonaMovieLover, nil
	case "family":
		return PersonaFamily, nil
	}
	return "", fmt.Errorf("%w: unknown persona %q", ErrValidation, s)
}

// SuggestGroups proposes seat groups for a persona.  Each group is one
// atomic suggestion.  Only available seats are considered; rows that have
// no available seat do not take part in row indexing.
func SuggestGroups(p Persona, seats []model.Seat, layout model.Layout, familySize int) ([][]string, error) {
	rows := map[string][]model.Seat{}
	available := map[string]bool{}
	for _, seat := range seats {
		if seat.Status != model.SeatAvailable {
			continue
		}
		rows[seat.Row] = append(rows[seat.Row], seat)
		available[seat.ID] = true
	}
	rowKeys := make([]string, 0, len(rows))
	for k, rs := range rows {
		sort.Slice(rs, func(i, j int) bool { return rs[i].Number < rs[j].Number })
		rowKeys = append(rowKeys, k)
	}
	sort.Strings(rowKeys)

	switch p {
	case PersonaCouple:
		return coupleGroups(rowKeys, available, layout), nil
	case PersonaMovieLover:
		return movieLoverGroups(rowKeys, rows, layout), nil
	case PersonaFamily:
		if familySize < MinFamilySize || familySize > MaxFamilySize {
			return nil, fmt.Errorf("%w: family size must be between %d and %d", ErrValidation, MinFamilySize, MaxFamilySize)
		}
		return familyGroups(rowKeys, rows, layout, familySize), nil
	}
	return nil, fmt.Errorf("%w: unknown persona %q", ErrValidation, p)
}

// coupleGroups proposes the two corner pairs of every row.
func coupleGroups(rowKeys []string, available map[string]bool, layout model.Layout) [][]string {
	var groups [][]string
	spr := layout.SeatsPerRow
	for _, row := range rowKeys {
		l1, l2 := model.SeatID(row, 1), model.SeatID(row, 2)
		if available[l1] && available[l2] && !layout.HasAisleAfter(1) {
			groups = append(groups, []string{l1, l2})
		}
		if spr < 2 {
			continue
		}
		r1, r2 := model.SeatID(row, spr-1), model.SeatID(row, spr)
		if available[r1] && available[r2] && !layout.HasAisleAfter(spr-1) {
			groups = append(groups, []string{r1, r2})
		}
	}
	return groups
}

// movieLoverGroups proposes single seats in the middle third of the two
// rows around the two-thirds point.
func movieLoverGroups(rowKeys []string, rows map[string][]model.Seat, layout model.Layout) [][]string {
	var groups [][]string
	mid := len(rowKeys) * 2 / 3
	var ideal []string
	for _, i := range []int{mid, mid - 1} {
		if i >= 0 && i < len(rowKeys) {
			ideal = append(ideal, rowKeys[i])
		}
	}
	start := layout.SeatsPerRow / 3
	end := start + layout.SeatsPerRow/3
	for _, row := range ideal {
		for _, seat := range rows[row] {
			n := seat.Number
			if n < start || n >= end {
				continue
			}
			if layout.HasAisleAfter(n) || layout.HasAisleAfter(n-1) {
				continue
			}
			groups = append(groups, []string{seat.ID})
		}
	}
	return groups
}

// familyGroups proposes non-overlapping runs of size consecutive seats with
// no aisle inside, scanning the middle half of the rows front-most first.
func familyGroups(rowKeys []string, rows map[string][]model.Seat, layout model.Layout, size int) [][]string {
	var groups [][]string
	from, to := len(rowKeys)/4, len(rowKeys)*3/4
	for k := to - 1; k >= from; k-- {
		rs := rows[rowKeys[k]]
		if len(rs) < size {
			continue
		}
		for i := 0; i+size <= len(rs); i++ {
			block := rs[i : i+size]
			if !contiguous(block, layout) {
				continue
			}
			ids := make([]string, size)
			for j, seat := range block {
				ids[j] = seat.ID
			}
			groups = append(groups, ids)
			i += size - 1
		}
	}
	return groups
}

func contiguous(block []model.Seat, layout model.Layout) bool {
	for j := 1; j < len(block); j++ {
		if block[j].Number != block[j-1].Number+1 || layout.HasAisleAfter(block[j-1].Number) {
			return false
		}
	}
	return true
}

// ToggleSeat applies a click on seatID to the current selection.  When the
// seat belongs to a suggestion group the whole group flips: deselected if
// any member is selected, selected otherwise.  Any other seat toggles on
// its own.  The result keeps the existing order and appends new seats.
func ToggleSeat(selected []string, groups [][]string, seatID string) []string {
	set := make(map[string]bool, len(selected))
	for _, id := range selected {
		set[id] = true
	}

	target := []string{seatID}
	for _, g := range groups {
		if containsString(g, seatID) {
			target = g
			break
		}
	}

	anySelected := false
	for _, id := range target {
		if set[id] {
			anySelected = true
			break
		}
	}

	out := make([]string, 0, len(selected)+len(target))
	if anySelected {
		drop := make(map[string]bool, len(target))
		for _, id := range target {
			drop[id] = true
		}
		for _, id := range selected {
			if !drop[id] {
				out = append(out, id)
			}
		}
		return out
	}
	out = append(out, selected...)
	for _, id := range target {
		if !set[id] {
			out = append(out, id)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
