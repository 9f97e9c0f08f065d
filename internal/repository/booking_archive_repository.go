package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// BookingArchiveRepo writes a copy of every booking to MySQL for reporting.
// The in-memory ledger stays the source of truth; the archive is written
// after the fact and is never read back by the booking flow.
type BookingArchiveRepo struct {
	db *sql.DB
}

// NewBookingArchiveRepo returns a BookingArchiveRepo bound to the given database.
func NewBookingArchiveRepo(db *sql.DB) *BookingArchiveRepo { return &BookingArchiveRepo{db: db} }

var archiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS booking_archive (
		id            VARCHAR(64)  NOT NULL PRIMARY KEY,
		user_id       VARCHAR(64)  NOT NULL,
		showtime_id   VARCHAR(191) NOT NULL,
		movie_id      VARCHAR(32)  NOT NULL,
		theater_id    VARCHAR(32)  NOT NULL,
		location_id   VARCHAR(32)  NOT NULL,
		price_paid    BIGINT       NOT NULL,
		source        VARCHAR(16)  NOT NULL,
		upgraded_from VARCHAR(16)  NULL,
		showtime_at   DATETIME     NOT NULL,
		created_at    DATETIME     NOT NULL,
		KEY idx_booking_archive_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS booking_archive_seats (
		booking_id VARCHAR(64) NOT NULL,
		seat_id    VARCHAR(16) NOT NULL,
		PRIMARY KEY (booking_id, seat_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the archive tables when they do not exist yet.
func (r *BookingArchiveRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range archiveSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Archive inserts the booking and its seats in one transaction.
func (r *BookingArchiveRepo) Archive(ctx context.Context, b model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO booking_archive (id, user_id, showtime_id, movie_id, theater_id, location_id, price_paid, source, showtime_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q,
		b.ID, b.UserID, b.ShowtimeID, b.MovieID, b.TheaterID, b.LocationID,
		b.PricePaid, string(b.Source), b.ShowtimeAt.UTC(), b.CreatedAt.UTC(),
	); err != nil {
		return err
	}
	if err := insertSeatsTx(ctx, tx, b.ID, b.SeatIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordUpgrade replaces the archived seats of a booking with its upgraded
// seat and stores the seat it came from.
func (r *BookingArchiveRepo) RecordUpgrade(ctx context.Context, bookingID, fromSeat, toSeat string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE booking_archive SET upgraded_from = ? WHERE id = ?`, fromSeat, bookingID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_archive_seats WHERE booking_id = ?`, bookingID); err != nil {
		return err
	}
	if err := insertSeatsTx(ctx, tx, bookingID, []string{toSeat}); err != nil {
		return err
	}
	return tx.Commit()
}

// insertSeatsTx inserts all seat rows of a booking in a single statement.
func insertSeatsTx(ctx context.Context, tx *sql.Tx, bookingID string, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	placeholders := make([]string, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs)*2)
	for i, id := range seatIDs {
		placeholders[i] = "(?, ?)"
		args = append(args, bookingID, id)
	}
	q := "INSERT INTO booking_archive_seats (booking_id, seat_id) VALUES " + strings.Join(placeholders, ", ")
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}
