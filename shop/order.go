package shop

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

// OrderID derives a human-readable order identifier from the issuance time
// and the requesting user: "ST" + MMDDHHmm + userID mod 1000 zero-padded
// to 3 digits. Deterministic for a given (userID, now); two users whose
// IDs collide mod 1000 ordering in the same minute get the same string.
// That weakness is accepted: the ID is a payment-comment tag, not a key.
func OrderID(userID int64, now time.Time) string {
	uid := userID % 1000
	if uid < 0 {
		uid += 1000
	}
	return fmt.Sprintf("ST%s%03d", now.Format("01021504"), uid)
}

// Order is a transient value: it exists only inside the one response
// message that presents payment instructions. Nothing stores it.
type Order struct {
	ID    string
	Stars int
	Price decimal.Decimal
}

// NewOrder validates the quantity and issues an order. An Order is never
// constructed from an out-of-range quantity.
func NewOrder(p Pricing, userID int64, stars int, now time.Time) (*Order, error) {
	if err := p.Validate(stars); err != nil {
		return nil, err
	}
	price, err := p.Price(stars)
	if err != nil {
		return nil, err
	}
	return &Order{
		ID:    OrderID(userID, now),
		Stars: stars,
		Price: price,
	}, nil
}
