package model

import "time"

// Showtime is one screening of a movie in a theater.  TotalSeats is the
// layout capacity; FilledSeats mirrors the size of the showtime's occupied
// set and is refreshed whenever the showtime is read.
type Showtime struct {
	ID          string    `json:"id"`
	DateTime    time.Time `json:"date_time"`
	Language    string    `json:"language"`
	TotalSeats  int       `json:"total_seats"`
	FilledSeats int       `json:"filled_seats"`
}

// ShowtimeRef records which movie and theater a showtime belongs to.  It is
// written once when the showtime is generated so lookups never have to
// reverse-engineer the showtime identifier.
type ShowtimeRef struct {
	ShowtimeID string
	MovieID    string
	TheaterID  string
	Date       string
	Language   string
}
