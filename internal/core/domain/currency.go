package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
)

// Currency is one endpoint selection of the form.
type Currency string

const (
	// CurrencyDefault is the "Select" placeholder: no currency chosen yet.
	CurrencyDefault Currency = "default"
	USD             Currency = "USD"
	EUR             Currency = "EUR"
	GBP             Currency = "GBP"
)

// SupportedCurrencies lists the real currencies in display order.
var SupportedCurrencies = []Currency{USD, EUR, GBP}

// ParseCurrency accepts "default" or one of the supported codes, case-insensitively.
// An empty string is treated as "default".
func ParseCurrency(s string) (Currency, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, string(CurrencyDefault)) {
		return CurrencyDefault, nil
	}
	code := Currency(strings.ToUpper(trimmed))
	if code.IsSupported() {
		return code, nil
	}
	return "", fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, s)
}

// IsSupported reports whether c is a real currency (not the placeholder).
func (c Currency) IsSupported() bool {
	switch c {
	case USD, EUR, GBP:
		return true
	}
	return false
}

// IsChosen reports whether the endpoint holds a real currency.
func (c Currency) IsChosen() bool {
	return c != CurrencyDefault && c != ""
}

// Label is what the selector shows for c.
func (c Currency) Label() string {
	if !c.IsChosen() {
		return "Select"
	}
	return string(c)
}

func (c Currency) String() string {
	return string(c)
}
