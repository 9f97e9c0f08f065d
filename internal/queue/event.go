// Package queue defines the events exchanged over RabbitMQ, the publisher
// used by the booking core and the consumer that logs them.
package queue

// Queue names.  Both queues are durable.
const (
	BookingConfirmedQueue = "booking.confirmed"
	SeatUpgradedQueue     = "seat.upgraded"
)

// BookingConfirmedEvent is published when a booking is appended to the
// ledger.  It carries enough information for downstream consumers to log,
// notify or run analytics without calling back into the service.
type BookingConfirmedEvent struct {
	BookingID    string   `json:"booking_id"`
	UserID       string   `json:"user_id"`
	ShowtimeID   string   `json:"showtime_id"`
	MovieTitle   string   `json:"movie_title"`
	TheaterName  string   `json:"theater_name"`
	LocationName string   `json:"location_name"`
	Language     string   `json:"language"`
	StartsAt     string   `json:"starts_at"`
	SeatIDs      []string `json:"seats"`
	PricePaid    int64    `json:"price_paid"`
	Source       string   `json:"source"`
	ConfirmedAt  string   `json:"confirmed_at"`
}

// SeatUpgradedEvent is published when the upgrade lottery moves a booking.
type SeatUpgradedEvent struct {
	BookingID  string `json:"booking_id"`
	UserID     string `json:"user_id"`
	ShowtimeID string `json:"showtime_id"`
	FromSeat   string `json:"from_seat"`
	ToSeat     string `json:"to_seat"`
	UpgradedAt string `json:"upgraded_at"`
}
