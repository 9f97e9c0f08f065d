package model

// SeatStatus is the status of a seat as presented to clients.  The server
// only ever stores "occupied or not"; blocked comes from the layout and
// selected is a client-side projection.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatFilled    SeatStatus = "filled"
	SeatBlocked   SeatStatus = "blocked"
	SeatSelected  SeatStatus = "selected"
)

// Seat is one physical seat of a showtime's seating chart.
//
// Fields:
//
//	ID     – row label followed by the 1-based column (e.g. "F7").
//	Row    – row label.
//	Number – column within the row.
//	Status – availability at the time the chart was materialized.
type Seat struct {
	ID     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
}
