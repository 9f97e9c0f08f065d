package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// DefaultGroupPayTTL is how long a session accepts payments.
const DefaultGroupPayTTL = 10 * time.Minute

// InitiateRequest starts a group-pay session for the signed-in user.
type InitiateRequest struct {
	UserID     string   `json:"user_id"`
	ShowtimeID string   `json:"showtime_id"`
	SeatIDs    []string `json:"seat_ids"`
	LocationID string   `json:"location_id"`
}

// SessionView is a session as shown to its members.
type SessionView struct {
	model.GroupPaySession
	Movie        model.Movie    `json:"movie"`
	Theater      model.Theater  `json:"theater"`
	Showtime     model.Showtime `json:"showtime"`
	PricePerSeat int64          `json:"price_per_seat"`
	TotalPrice   int64          `json:"total_price"`
	PaidCount    int            `json:"paid_count"`
}

// GroupPayService runs the split-payment state machine.  A session moves
// from pending to completed when its last seat is paid, or to expired when
// it is read or paid after its deadline.
type GroupPayService struct {
	store    *Store
	bookings *BookingService
	clock    Clock
	ttl      time.Duration
	metrics  *metrics.Metrics
	log      logger.Logger
}

func NewGroupPayService(store *Store, bookings *BookingService, clock Clock, ttl time.Duration, m *metrics.Metrics, log logger.Logger) *GroupPayService {
	if ttl <= 0 {
		ttl = DefaultGroupPayTTL
	}
	return &GroupPayService{store: store, bookings: bookings, clock: clock, ttl: ttl, metrics: m, log: log}
}

// Initiate opens a session with every seat unpaid.  Seats that are already
// occupied are rejected up front; settlement re-checks them.
func (s *GroupPayService) Initiate(ctx context.Context, req InitiateRequest) (SessionView, error) {
	if err := requireUser(ctx, req.UserID); err != nil {
		return SessionView{}, err
	}
	d, err := s.store.details(req.ShowtimeID)
	if err != nil {
		return SessionView{}, err
	}
	seats, err := normalizeSeats(req.SeatIDs, d.Layout)
	if err != nil {
		return SessionView{}, err
	}
	occupied, err := s.store.Inventory.Snapshot(req.ShowtimeID)
	if err != nil {
		return SessionView{}, fmt.Errorf("inventory for %s: %w", req.ShowtimeID, ErrNotFound)
	}
	for _, id := range seats {
		if occupied[id] {
			return SessionView{}, fmt.Errorf("%w: %s", ErrSeatConflict, SeatConflictMessage)
		}
	}

	now := s.clock.Now()
	sess := model.GroupPaySession{
		ID:              "GP-" + uuid.NewString(),
		InitiatorUserID: req.UserID,
		ShowtimeID:      req.ShowtimeID,
		LocationID:      req.LocationID,
		SeatIDs:         seats,
		SeatPayments:    make(map[string]model.SeatPayment, len(seats)),
		ExpiresAt:       now.Add(s.ttl),
		Status:          model.GroupPayPending,
		CreatedAt:       now,
	}
	if sess.LocationID == "" {
		sess.LocationID = d.Theater.LocationID
	}
	for _, id := range seats {
		sess.SeatPayments[id] = model.SeatPayment{Status: model.SeatUnpaid}
	}
	if err := s.store.GroupPay.Create(sess); err != nil {
		return SessionView{}, fmt.Errorf("create group pay: %w", err)
	}
	s.metrics.GroupPay(string(model.GroupPayPending))
	s.log.Infof(ctx, "group-pay: %s opened by %s for %d seats", sess.ID, req.UserID, len(seats))
	return s.view(sess, d), nil
}

// Get returns a session, expiring it first when its deadline has passed.
func (s *GroupPayService) Get(ctx context.Context, sessionID string) (SessionView, error) {
	expired := false
	sess, err := s.store.GroupPay.With(sessionID, func(g *model.GroupPaySession) error {
		expired = s.expireIfDue(g)
		return nil
	})
	if err != nil {
		return SessionView{}, fmt.Errorf("group pay %s: %w", sessionID, ErrNotFound)
	}
	if expired {
		s.metrics.GroupPay(string(model.GroupPayExpired))
		s.log.Infof(ctx, "group-pay: %s expired", sessionID)
	}
	return s.enrich(sess)
}

// PayForSeat marks one unpaid seat as paid by payer.  The payment that
// completes the set performs the single reservation for the initiator.  A
// settlement that loses a seat race leaves the session completed with
// SettlementError set and no booking.
func (s *GroupPayService) PayForSeat(ctx context.Context, sessionID, seatID, payer string) (SessionView, error) {
	payer = strings.TrimSpace(payer)
	if payer == "" {
		return SessionView{}, fmt.Errorf("%w: payer name is required", ErrValidation)
	}

	var (
		expired bool
		booked  *model.Booking
	)
	sess, err := s.store.GroupPay.With(sessionID, func(g *model.GroupPaySession) error {
		if s.expireIfDue(g) {
			expired = true
			return fmt.Errorf("%w: session expired", ErrSessionInvalid)
		}
		if g.Status != model.GroupPayPending {
			return fmt.Errorf("%w: session is %s", ErrSessionInvalid, g.Status)
		}
		p, ok := g.SeatPayments[seatID]
		if !ok {
			return fmt.Errorf("%w: seat %s is not part of the session", ErrSessionInvalid, seatID)
		}
		if p.Status != model.SeatUnpaid {
			return fmt.Errorf("%w: seat %s is already paid", ErrSessionInvalid, seatID)
		}
		g.SeatPayments[seatID] = model.SeatPayment{Status: model.SeatPaid, PaidBy: payer}
		if !g.AllPaid() {
			return nil
		}

		g.Status = model.GroupPayCompleted
		b, err := s.bookings.reserve(ctx, BookRequest{
			UserID:     g.InitiatorUserID,
			ShowtimeID: g.ShowtimeID,
			SeatIDs:    g.SeatIDs,
			PricePaid:  int64(len(g.SeatIDs)) * SeatPricePaise,
			LocationID: g.LocationID,
		}, model.BookingGroupPay)
		if err != nil {
			g.SettlementError = err.Error()
			s.log.Warnf(ctx, "group-pay: %s settlement failed: %v", g.ID, err)
			return nil
		}
		g.BookingID = b.ID
		booked = &b
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return SessionView{}, fmt.Errorf("group pay %s: %w", sessionID, ErrNotFound)
	}
	if expired {
		s.metrics.GroupPay(string(model.GroupPayExpired))
	}
	if err != nil {
		return SessionView{}, err
	}

	if sess.Status == model.GroupPayCompleted {
		s.metrics.GroupPay(string(model.GroupPayCompleted))
		s.log.Infof(ctx, "group-pay: %s completed", sess.ID)
	}
	if booked != nil {
		s.bookings.afterBooking(ctx, *booked)
	}
	return s.enrich(sess)
}

// expireIfDue flips a pending session past its deadline to expired and
// reports whether it did.  Terminal sessions are left alone.
func (s *GroupPayService) expireIfDue(g *model.GroupPaySession) bool {
	if g.Status != model.GroupPayPending || !g.IsExpired(s.clock.Now()) {
		return false
	}
	g.Status = model.GroupPayExpired
	return true
}

func (s *GroupPayService) enrich(sess model.GroupPaySession) (SessionView, error) {
	d, err := s.store.details(sess.ShowtimeID)
	if err != nil {
		return SessionView{}, err
	}
	return s.view(sess, d), nil
}

func (s *GroupPayService) view(sess model.GroupPaySession, d showtimeDetails) SessionView {
	return SessionView{
		GroupPaySession: sess,
		Movie:           d.Movie,
		Theater:         d.Theater,
		Showtime:        d.Showtime,
		PricePerSeat:    SeatPricePaise,
		TotalPrice:      int64(len(sess.SeatIDs)) * SeatPricePaise,
		PaidCount:       sess.PaidCount(),
	}
}
