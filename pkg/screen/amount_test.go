package screen_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/screen"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"10":      "10",
		"10.5":    "10.5",
		"0.01":    "0.01",
		"+3.25":   "3.25",
		" 42.00 ": "42",
		"1000000": "1000000",
		"0.125":   "0.125",
		".5":      "0.5",
		"10.":     "10",
		"1.234":   "1.234",
	}
	for text, want := range valid {
		t.Run(text, func(t *testing.T) {
			got, err := screen.ParseAmount(text)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(want)), "got %s", got)
		})
	}

	invalid := []string{"", "abc", "0", "0.00", "-5", "10,5", "1,000", "1e3", ".", "+", "1.2.3", "NaN", "0.000"}
	for _, text := range invalid {
		t.Run("invalid "+text, func(t *testing.T) {
			_, err := screen.ParseAmount(text)
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		})
	}
}

func TestDisplayBalance(t *testing.T) {
	cases := map[string]string{
		"1234.5":   "1234.50",
		"10.001":   "10.01",
		"10.009":   "10.01",
		"0":        "0.00",
		"-3.331":   "-3.34",
		"99.99":    "99.99",
		"2.100000": "2.10",
	}
	for in, want := range cases {
		assert.Equal(t, want, screen.DisplayBalance(decimal.RequireFromString(in)), in)
	}
}
