package model

import "time"

// GroupPayStatus is the lifecycle state of a group-pay session.
type GroupPayStatus string

const (
	GroupPayPending   GroupPayStatus = "pending"
	GroupPayCompleted GroupPayStatus = "completed"
	GroupPayExpired   GroupPayStatus = "expired"
)

// IsTerminal reports whether no further payments can be accepted.
func (s GroupPayStatus) IsTerminal() bool {
	return s == GroupPayCompleted || s == GroupPayExpired
}

// SeatPaymentStatus is the payment state of one seat in a session.
type SeatPaymentStatus string

const (
	SeatUnpaid SeatPaymentStatus = "unpaid"
	SeatPaid   SeatPaymentStatus = "paid"
)

// SeatPayment records who paid for a seat.
type SeatPayment struct {
	Status SeatPaymentStatus `json:"status"`
	PaidBy string            `json:"paid_by,omitempty"`
}

// GroupPaySession coordinates several payers splitting one seat set.  The
// session settles into exactly one booking for the initiator once every seat
// is paid.  BookingID is set on settlement; SettlementError records why the
// final reservation failed, if it did.
type GroupPaySession struct {
	ID              string                 `json:"id"`
	InitiatorUserID string                 `json:"initiator_user_id"`
	ShowtimeID      string                 `json:"showtime_id"`
	LocationID      string                 `json:"location_id"`
	SeatIDs         []string               `json:"seat_ids"`
	SeatPayments    map[string]SeatPayment `json:"seat_payments"`
	ExpiresAt       time.Time              `json:"expires_at"`
	Status          GroupPayStatus         `json:"status"`
	BookingID       string                 `json:"booking_id,omitempty"`
	SettlementError string                 `json:"settlement_error,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// IsExpired reports whether the session's deadline has passed at now.
func (s GroupPaySession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// AllPaid reports whether every seat has been paid.
func (s GroupPaySession) AllPaid() bool {
	for _, p := range s.SeatPayments {
		if p.Status != SeatPaid {
			return false
		}
	}
	return len(s.SeatPayments) > 0
}

// PaidCount returns the number of paid seats.
func (s GroupPaySession) PaidCount() int {
	n := 0
	for _, p := range s.SeatPayments {
		if p.Status == SeatPaid {
			n++
		}
	}
	return n
}

// Clone returns a deep copy safe to hand out of a repository.
func (s GroupPaySession) Clone() GroupPaySession {
	s.SeatIDs = append([]string(nil), s.SeatIDs...)
	payments := make(map[string]SeatPayment, len(s.SeatPayments))
	for k, v := range s.SeatPayments {
		payments[k] = v
	}
	s.SeatPayments = payments
	return s
}
