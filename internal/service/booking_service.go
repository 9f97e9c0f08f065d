package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// SeatConflictMessage is shown to a customer whose seats were taken first.
const SeatConflictMessage = "Sorry, one or more selected seats have just been booked. Please select different seats."

const (
	qrCodeBase        = "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data="
	sideEffectTimeout = 5 * time.Second
)

// BookingArchive persists bookings outside the process.  It is optional.
type BookingArchive interface {
	Archive(ctx context.Context, b model.Booking) error
	RecordUpgrade(ctx context.Context, bookingID, fromSeat, toSeat string) error
}

// BookRequest is the input of BookSeats.  PricePaid is in paise.
type BookRequest struct {
	UserID     string   `json:"user_id"`
	ShowtimeID string   `json:"showtime_id"`
	SeatIDs    []string `json:"seat_ids"`
	PricePaid  int64    `json:"price_paid"`
	LocationID string   `json:"location_id"`
}

// BookingService reserves seats and owns the booking ledger.
type BookingService struct {
	store     *Store
	clock     Clock
	archive   BookingArchive
	publisher queue.Publisher
	metrics   *metrics.Metrics
	log       logger.Logger
}

// NewBookingService wires the ledger.  archive may be nil; a nil publisher
// drops events.
func NewBookingService(store *Store, clock Clock, archive BookingArchive, publisher queue.Publisher, m *metrics.Metrics, log logger.Logger) *BookingService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &BookingService{store: store, clock: clock, archive: archive, publisher: publisher, metrics: m, log: log}
}

// BookSeats reserves seats for the signed-in user.  Either every seat is
// reserved and one booking is appended, or nothing changes.
func (s *BookingService) BookSeats(ctx context.Context, req BookRequest) (model.Booking, error) {
	if err := requireUser(ctx, req.UserID); err != nil {
		return model.Booking{}, err
	}
	b, err := s.reserve(ctx, req, model.BookingDirect)
	if err != nil {
		return model.Booking{}, err
	}
	s.afterBooking(ctx, b)
	return b, nil
}

// reserve is the check-then-act step shared by direct bookings and group-pay
// settlement.  It does not check authentication and runs no side effects.
func (s *BookingService) reserve(ctx context.Context, req BookRequest, source model.BookingSource) (model.Booking, error) {
	d, err := s.store.details(req.ShowtimeID)
	if err != nil {
		return model.Booking{}, err
	}
	if !s.store.Inventory.Exists(req.ShowtimeID) {
		return model.Booking{}, fmt.Errorf("inventory for %s: %w", req.ShowtimeID, ErrNotFound)
	}
	seats, err := normalizeSeats(req.SeatIDs, d.Layout)
	if err != nil {
		return model.Booking{}, err
	}
	if req.PricePaid < 0 {
		return model.Booking{}, fmt.Errorf("%w: negative price", ErrValidation)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Booking{}, fmt.Errorf("booking id: %w", err)
	}
	now := s.clock.Now()
	b := model.Booking{
		ID:          "BK-" + id.String(),
		UserID:      req.UserID,
		ShowtimeID:  req.ShowtimeID,
		SeatIDs:     seats,
		PricePaid:   req.PricePaid,
		Source:      source,
		MovieID:     d.Movie.ID,
		MovieTitle:  d.Movie.Title,
		PosterURL:   d.Movie.PosterURL,
		TheaterID:   d.Theater.ID,
		TheaterName: d.Theater.Name,
		Language:    d.Ref.Language,
		ShowtimeAt:  d.Showtime.DateTime,
		CreatedAt:   now,
	}
	b.QRCodeURL = qrCodeBase + url.QueryEscape(b.ID)
	b.LocationID = req.LocationID
	if b.LocationID == "" {
		b.LocationID = d.Theater.LocationID
	}
	if loc, err := s.store.Catalog.Location(b.LocationID); err == nil {
		b.LocationName = loc.Name
	}

	err = s.store.Inventory.WithShowtime(req.ShowtimeID, func(o repository.OccupiedSeats) error {
		if err := repository.ReserveAll(o, seats); err != nil {
			return err
		}
		if err := s.store.Bookings.Append(b); err != nil {
			for _, id := range seats {
				o.Remove(id)
			}
			return err
		}
		return nil
	})
	if errors.Is(err, repository.ErrConflict) {
		s.metrics.SeatConflict()
		s.log.Infof(ctx, "booking: conflict on %s: %v", req.ShowtimeID, err)
		return model.Booking{}, fmt.Errorf("%w: %s", ErrSeatConflict, SeatConflictMessage)
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("reserve %s: %w", req.ShowtimeID, err)
	}
	return b, nil
}

// afterBooking records metrics, archives the booking and publishes the
// confirmation.  Failures are logged and never reach the caller.
func (s *BookingService) afterBooking(ctx context.Context, b model.Booking) {
	s.metrics.BookingCreated(string(b.Source), len(b.SeatIDs))
	s.log.Infof(ctx, "booking: %s confirmed for %s on %s seats=%v", b.ID, b.UserID, b.ShowtimeID, b.SeatIDs)

	sctx, cancel := detach(ctx, sideEffectTimeout)
	defer cancel()
	if s.archive != nil {
		if err := s.archive.Archive(sctx, b); err != nil {
			s.log.Warnf(ctx, "booking: archive %s: %v", b.ID, err)
		}
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		ShowtimeID:   b.ShowtimeID,
		MovieTitle:   b.MovieTitle,
		TheaterName:  b.TheaterName,
		LocationName: b.LocationName,
		Language:     b.Language,
		StartsAt:     b.ShowtimeAt.Format(time.RFC3339),
		SeatIDs:      b.SeatIDs,
		PricePaid:    b.PricePaid,
		Source:       string(b.Source),
		ConfirmedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingConfirmed(sctx, ev); err != nil {
		s.log.Warnf(ctx, "booking: publish %s: %v", b.ID, err)
	}
}

// TicketsForUser lists the signed-in user's bookings, newest first.
func (s *BookingService) TicketsForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	if err := requireUser(ctx, userID); err != nil {
		return nil, err
	}
	list := s.store.Bookings.ListByUser(userID)
	if list == nil {
		list = []model.Booking{}
	}
	return list, nil
}

// MarkUpgradeSeen acknowledges an upgrade notice.  Bookings of other users
// are reported as not found.
func (s *BookingService) MarkUpgradeSeen(ctx context.Context, bookingID string) (model.Booking, error) {
	caller := UserIDFromContext(ctx)
	if caller == "" {
		return model.Booking{}, ErrAuthRequired
	}
	b, err := s.store.Bookings.Update(bookingID, func(b *model.Booking) error {
		if b.UserID != caller {
			return repository.ErrNotFound
		}
		b.HasSeenUpgrade = true
		return nil
	})
	if err != nil {
		return model.Booking{}, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return b, nil
}
