package shop

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricing(t *testing.T) Pricing {
	t.Helper()
	return Pricing{
		PricePerStar: decimal.MustParse("1.6"),
		MinStars:     50,
		MaxStars:     5000,
	}
}

func TestParseStars(t *testing.T) {
	p := testPricing(t)

	tests := []struct {
		name     string
		raw      string
		want     int
		wantKind string
	}{
		{name: "minimum", raw: "50", want: 50},
		{name: "maximum", raw: "5000", want: 5000},
		{name: "mid range", raw: "100", want: 100},
		{name: "surrounding whitespace", raw: "  250 ", want: 250},
		{name: "below minimum", raw: "10", wantKind: KindBelowMinimum},
		{name: "above maximum", raw: "5001", wantKind: KindAboveMaximum},
		{name: "letters", raw: "abc", wantKind: KindNotANumber},
		{name: "decimal input", raw: "12.5", wantKind: KindNotANumber},
		{name: "empty", raw: "", wantKind: KindNotANumber},
		{name: "negative", raw: "-5", wantKind: KindBelowMinimum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseStars(tt.raw)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Equal(t, tt.wantKind, verr.Code())
		})
	}
}

func TestPrice(t *testing.T) {
	p := testPricing(t)

	price, err := p.Price(100)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.MustParse("160")), "got %s", price)

	price, err = p.Price(50)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.MustParse("80")), "got %s", price)

	price, err = p.Price(333)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.MustParse("532.8")), "got %s", price)
}

func TestPriceRoundsHalfToEven(t *testing.T) {
	// 0.105 per star lands exactly on .xx5 boundaries.
	p := Pricing{
		PricePerStar: decimal.MustParse("0.105"),
		MinStars:     1,
		MaxStars:     5000,
	}

	price, err := p.Price(1) // 0.105 -> 0.10
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.MustParse("0.10")), "got %s", price)

	price, err = p.Price(3) // 0.315 -> 0.32
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.MustParse("0.32")), "got %s", price)
}

func TestValidationErrorMessages(t *testing.T) {
	p := testPricing(t)

	err := p.Validate(10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum 50")

	err = p.Validate(9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum 5000")

	_, err = p.ParseStars("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}
