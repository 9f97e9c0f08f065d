package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// SeatPricePaise is the flat price of one seat (₹150).
const SeatPricePaise int64 = 15000

// InvalidCouponMessage is shown for an unknown coupon code.
const InvalidCouponMessage = "Invalid coupon code."

// Quote is the price breakdown of a cart.  Amounts are in paise.
type Quote struct {
	SeatCount  int    `json:"seat_count"`
	Subtotal   int64  `json:"subtotal"`
	Discount   int64  `json:"discount"`
	Total      int64  `json:"total"`
	CouponCode string `json:"coupon_code,omitempty"`
	Message    string `json:"message,omitempty"`
}

type CouponService struct {
	store *Store
}

func NewCouponService(store *Store) *CouponService {
	return &CouponService{store: store}
}

// ValidateCoupon returns the coupon for code if it applies to seatCount
// tickets.
func (s *CouponService) ValidateCoupon(code string, seatCount int) (model.Coupon, error) {
	c, err := s.store.Catalog.Coupon(code)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Coupon{}, fmt.Errorf("coupon %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return model.Coupon{}, err
	}
	if c.MinTickets > 0 && seatCount < c.MinTickets {
		return c, fmt.Errorf("%w: %s requires at least %d tickets", ErrValidation, c.Code, c.MinTickets)
	}
	return c, nil
}

// Quote prices seatCount seats with an optional coupon.  A coupon whose
// minimum is not met is reported in Message and gives no discount; an
// unknown code is an error.
func (s *CouponService) Quote(seatCount int, code string) (Quote, error) {
	if seatCount < 1 {
		return Quote{}, fmt.Errorf("%w: at least one seat is required", ErrValidation)
	}
	q := Quote{SeatCount: seatCount, Subtotal: int64(seatCount) * SeatPricePaise}
	q.Total = q.Subtotal
	if code == "" {
		return q, nil
	}

	c, err := s.ValidateCoupon(code, seatCount)
	switch {
	case errors.Is(err, ErrValidation):
		q.CouponCode = c.Code
		q.Message = fmt.Sprintf("%s is valid for %d or more tickets.", c.Code, c.MinTickets)
		return q, nil
	case err != nil:
		return Quote{}, err
	}

	q.CouponCode = c.Code
	q.Discount = discount(c, q.Subtotal)
	q.Total = max(0, q.Subtotal-q.Discount)
	q.Message = fmt.Sprintf("Coupon %s applied: %s", c.Code, c.Description)
	return q, nil
}

func discount(c model.Coupon, subtotal int64) int64 {
	switch c.DiscountType {
	case model.DiscountFixed:
		return c.Value
	case model.DiscountPercentage:
		return subtotal * c.Value / 100
	}
	return 0
}
