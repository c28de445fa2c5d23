package screen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aretw0/aura/pkg/domain"
)

// amountPattern accepts plain decimal text: optional '+', digits and '.' as the only
// separator. Exponents, signs other than '+' and grouping are rejected.
var amountPattern = regexp.MustCompile(`^\+?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount parses user text into a strictly positive amount.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if !amountPattern.MatchString(text) {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, text)
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(text, "+"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", domain.ErrInvalidAmount)
	}
	return amount, nil
}

// DisplayBalance renders a balance rounded away from zero to two decimal places.
func DisplayBalance(balance decimal.Decimal) string {
	return balance.RoundUp(2).StringFixed(2)
}
