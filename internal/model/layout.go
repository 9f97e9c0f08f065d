package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Gap marks columns of a row that have no physical seat.  Gap positions are
// not rendered, not sellable and do not count toward a layout's capacity.
type Gap struct {
	Row   string `json:"row"`
	Seats []int  `json:"seats"`
}

// Layout describes the static seating geometry of a screen.
//
// Fields:
//
//	ID           – catalog identifier (e.g. layout1).
//	Rows         – row labels in stored order, front of the screen last.
//	SeatsPerRow  – number of columns in every row.
//	Aisles       – columns after which a visual aisle is drawn.
//	Gaps         – positions that physically do not exist.
//	BlockedSeats – seats that exist but are never sold.
type Layout struct {
	ID           string   `json:"id"`
	Rows         []string `json:"rows"`
	SeatsPerRow  int      `json:"seats_per_row"`
	Aisles       []int    `json:"aisles"`
	Gaps         []Gap    `json:"gaps"`
	BlockedSeats []string `json:"blocked_seats"`
}

// SeatID joins a row label and a 1-based column into a seat identifier.
func SeatID(row string, number int) string {
	return row + strconv.Itoa(number)
}

// ParseSeatID splits a seat identifier such as "AA12" into its row label and
// column.  Row labels may be one or more letters.  Only the canonical form
// SeatID produces is accepted: "A01", "A+1" and "a1" are malformed, so every
// physical seat has exactly one identifier.
func ParseSeatID(id string) (row string, number int, err error) {
	i := 0
	for i < len(id) && id[i] >= 'A' && id[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(id) {
		return "", 0, fmt.Errorf("malformed seat id %q", id)
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil || n < 1 || strconv.Itoa(n) != id[i:] {
		return "", 0, fmt.Errorf("malformed seat id %q", id)
	}
	return id[:i], n, nil
}

// Capacity returns rows×seatsPerRow minus every gap position.  Blocked seats
// still count.
func (l Layout) Capacity() int {
	total := len(l.Rows) * l.SeatsPerRow
	for _, g := range l.Gaps {
		total -= len(g.Seats)
	}
	return total
}

// HasRow reports whether the row label is part of the layout.
func (l Layout) HasRow(row string) bool {
	return l.RowIndex(row) >= 0
}

// RowIndex returns the stored position of the row or -1.
func (l Layout) RowIndex(row string) int {
	for i, r := range l.Rows {
		if r == row {
			return i
		}
	}
	return -1
}

// IsGap reports whether (row, number) is a position with no physical seat.
func (l Layout) IsGap(row string, number int) bool {
	for _, g := range l.Gaps {
		if g.Row != row {
			continue
		}
		for _, n := range g.Seats {
			if n == number {
				return true
			}
		}
	}
	return false
}

// IsBlocked reports whether the seat is statically withheld from sale.
func (l Layout) IsBlocked(seatID string) bool {
	for _, b := range l.BlockedSeats {
		if b == seatID {
			return true
		}
	}
	return false
}

// Exists reports whether the seat is a physical seat of the layout, blocked
// or not.
func (l Layout) Exists(seatID string) bool {
	row, n, err := ParseSeatID(seatID)
	if err != nil {
		return false
	}
	if !l.HasRow(row) || n > l.SeatsPerRow {
		return false
	}
	return !l.IsGap(row, n)
}

// IsSellable reports whether the seat exists and is not blocked.
func (l Layout) IsSellable(seatID string) bool {
	return l.Exists(seatID) && !l.IsBlocked(seatID)
}

// HasAisleAfter reports whether an aisle is drawn right after the column.
func (l Layout) HasAisleAfter(number int) bool {
	for _, a := range l.Aisles {
		if a == number {
			return true
		}
	}
	return false
}

// SellableSeatIDs enumerates sellable seats in row-major order.
func (l Layout) SellableSeatIDs() []string {
	out := make([]string, 0, l.Capacity())
	for _, row := range l.Rows {
		for n := 1; n <= l.SeatsPerRow; n++ {
			if l.IsGap(row, n) {
				continue
			}
			id := SeatID(row, n)
			if l.IsBlocked(id) {
				continue
			}
			out = append(out, id)
		}
	}
	return out
}

// RowOf returns the row label of a seat identifier, or "" when malformed.
func RowOf(seatID string) string {
	row, _, err := ParseSeatID(strings.TrimSpace(seatID))
	if err != nil {
		return ""
	}
	return row
}
