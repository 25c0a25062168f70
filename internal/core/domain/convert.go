package domain

import (
	"fmt"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/shopspring/decimal"
)

var errSelectBoth = fmt.Errorf("%w: please select both currencies", apperrors.ErrUndefinedConversion)

// Convert applies the table rate for from→to to amount.
// Identical endpoints return amount unchanged without consulting the table.
func Convert(amount decimal.Decimal, from, to Currency, table RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if !from.IsChosen() || !to.IsChosen() {
		return decimal.Zero, errSelectBoth
	}
	rate, ok := table.Rate(from, to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no conversion rate for %s to %s", apperrors.ErrUndefinedConversion, from, to)
	}
	return amount.Mul(rate), nil
}

// FormatAmount renders a result the way the form displays it.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}
