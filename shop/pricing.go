// Package shop implements the order-intake domain: quantity validation,
// pricing, order identifiers and the conversation flow that ties them
// together. It is transport-free; rendering is expressed as Views.
package shop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"

	coreconfig "starsbot/core/config"
)

// Validation error kinds. Exposed via ValidationError.Kind and as the
// error code in handler summary logs.
const (
	KindNotANumber   = "not_a_number"
	KindBelowMinimum = "below_minimum"
	KindAboveMaximum = "above_maximum"
)

// ValidationError describes a rejected quantity. All kinds are recoverable:
// the user is re-prompted and may try again.
type ValidationError struct {
	Kind string
	Min  int
	Max  int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindBelowMinimum:
		return fmt.Sprintf("quantity below minimum %d", e.Min)
	case KindAboveMaximum:
		return fmt.Sprintf("quantity above maximum %d", e.Max)
	default:
		return "quantity is not a number"
	}
}

// Code reports the error kind for structured logging.
func (e *ValidationError) Code() string { return e.Kind }

// Pricing holds the immutable pricing bounds and the per-star price.
// Built once at startup from config and passed down explicitly.
type Pricing struct {
	PricePerStar decimal.Decimal
	MinStars     int
	MaxStars     int
}

// NewPricing builds a Pricing from normalized shop configuration.
func NewPricing(cfg coreconfig.ShopConfig) Pricing {
	return Pricing{
		PricePerStar: cfg.Price,
		MinStars:     cfg.MinStars,
		MaxStars:     coreconfig.MaxStars,
	}
}

// ParseStars parses raw user input into a star quantity and validates it
// against the configured range. Non-integer input, including decimals,
// is rejected as not a number.
func (p Pricing) ParseStars(raw string) (int, error) {
	stars, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Kind: KindNotANumber, Min: p.MinStars, Max: p.MaxStars}
	}
	if err := p.Validate(stars); err != nil {
		return 0, err
	}
	return stars, nil
}

// Validate checks a quantity against the configured range.
func (p Pricing) Validate(stars int) error {
	if stars < p.MinStars {
		return &ValidationError{Kind: KindBelowMinimum, Min: p.MinStars, Max: p.MaxStars}
	}
	if stars > p.MaxStars {
		return &ValidationError{Kind: KindAboveMaximum, Min: p.MinStars, Max: p.MaxStars}
	}
	return nil
}

// Price computes stars × price-per-star rounded to 2 decimal places.
// Rounding is half-to-even. Assumes a validated quantity.
func (p Pricing) Price(stars int) (decimal.Decimal, error) {
	qty, err := decimal.New(int64(stars), 0)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("quantity out of decimal range: %w", err)
	}
	total, err := qty.Mul(p.PricePerStar)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price overflow: %w", err)
	}
	return total.Round(2), nil
}
