package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

func newArchiveMock(t *testing.T) (*BookingArchiveRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBookingArchiveRepo(db), mock
}

func archivedBooking() model.Booking {
	at := time.Date(2026, 10, 19, 19, 45, 0, 0, time.UTC)
	return model.Booking{
		ID:         "BK-1",
		UserID:     "u1",
		ShowtimeID: "s-m1-t1-2026-10-19-1945-Telugu",
		SeatIDs:    []string{"F5", "F6"},
		PricePaid:  30000,
		Source:     model.BookingDirect,
		MovieID:    "m1",
		TheaterID:  "t1",
		LocationID: "vis",
		ShowtimeAt: at,
		CreatedAt:  at.Add(-3 * time.Hour),
	}
}

func TestArchiveEnsureSchema(t *testing.T) {
	repo, mock := newArchiveMock(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS booking_archive \(`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS booking_archive_seats`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveInsertsBookingAndSeats(t *testing.T) {
	repo, mock := newArchiveMock(t)
	b := archivedBooking()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO booking_archive \(`).
		WithArgs(b.ID, b.UserID, b.ShowtimeID, "m1", "t1", "vis", int64(30000), "direct", b.ShowtimeAt, b.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO booking_archive_seats \(booking_id, seat_id\) VALUES \(\?, \?\), \(\?, \?\)`).
		WithArgs("BK-1", "F5", "BK-1", "F6").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Archive(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRollsBackOnSeatFailure(t *testing.T) {
	repo, mock := newArchiveMock(t)
	boom := errors.New("deadlock")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO booking_archive \(`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO booking_archive_seats`).WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.Archive(context.Background(), archivedBooking())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRecordUpgrade(t *testing.T) {
	repo, mock := newArchiveMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE booking_archive SET upgraded_from = \? WHERE id = \?`).
		WithArgs("A1", "BK-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM booking_archive_seats WHERE booking_id = \?`).
		WithArgs("BK-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO booking_archive_seats`).
		WithArgs("BK-1", "H7").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordUpgrade(context.Background(), "BK-1", "A1", "H7"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRecordUpgradeUnknownBooking(t *testing.T) {
	repo, mock := newArchiveMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE booking_archive`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RecordUpgrade(context.Background(), "BK-404", "A1", "H7")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
