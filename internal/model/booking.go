package model

import "time"

// BookingSource identifies which flow produced a booking.
type BookingSource string

const (
	BookingDirect   BookingSource = "direct"
	BookingGroupPay BookingSource = "group_pay"
)

// Booking is an entry of the booking ledger.  It is created only by a
// successful reservation, mutated only by the upgrade lottery and the
// "upgrade seen" acknowledgement, and never deleted.  PricePaid is in paise.
//
// The descriptive fields (movie, theater, location) are copied at creation
// so tickets can be rendered without another catalog lookup.
type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	ShowtimeID     string        `json:"showtime_id"`
	SeatIDs        []string      `json:"seat_ids"`
	PricePaid      int64         `json:"price_paid"`
	UpgradedFrom   string        `json:"upgraded_from,omitempty"`
	HasSeenUpgrade bool          `json:"has_seen_upgrade"`
	Source         BookingSource `json:"source"`

	MovieID      string    `json:"movie_id"`
	MovieTitle   string    `json:"movie_title"`
	PosterURL    string    `json:"poster_url"`
	TheaterID    string    `json:"theater_id"`
	TheaterName  string    `json:"theater_name"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	Language     string    `json:"language"`
	ShowtimeAt   time.Time `json:"showtime_at"`
	QRCodeURL    string    `json:"qr_code_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Upgraded reports whether the lottery has already moved this booking.
func (b Booking) Upgraded() bool {
	return b.UpgradedFrom != ""
}

// Clone returns a copy that does not share the seat slice.
func (b Booking) Clone() Booking {
	b.SeatIDs = append([]string(nil), b.SeatIDs...)
	return b
}
