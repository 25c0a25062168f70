package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateTable maps "<FROM>_<TO>" pair keys to positive multipliers.
// Same-currency pairs are never stored; the identity is handled by Convert.
type RateTable map[string]float64

// RateKey builds the table key for an ordered currency pair.
func RateKey(from, to Currency) string {
	return string(from) + "_" + string(to)
}

// ParseRateKey splits a "<FROM>_<TO>" key into its two supported currencies.
func ParseRateKey(key string) (Currency, Currency, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: malformed rate key %q", apperrors.ErrValidation, key)
	}
	from, to := Currency(parts[0]), Currency(parts[1])
	if !from.IsSupported() || !to.IsSupported() {
		return "", "", fmt.Errorf("%w: rate key %q uses an unsupported currency", apperrors.ErrValidation, key)
	}
	if from == to {
		return "", "", fmt.Errorf("%w: rate key %q pairs a currency with itself", apperrors.ErrValidation, key)
	}
	return from, to, nil
}

// DefaultRateTable returns a fresh copy of the built-in rates.
func DefaultRateTable() RateTable {
	return RateTable{
		"USD_EUR": 0.85,
		"USD_GBP": 0.72,
		"EUR_USD": 1.18,
		"EUR_GBP": 0.84,
		"GBP_USD": 1.39,
		"GBP_EUR": 1.19,
	}
}

// Rate looks up the multiplier for an ordered pair.
func (t RateTable) Rate(from, to Currency) (decimal.Decimal, bool) {
	r, ok := t[RateKey(from, to)]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(r), true
}

// Clone returns an independent copy of t.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// With returns a copy of t with one pair replaced.
func (t RateTable) With(from, to Currency, rate float64) (RateTable, error) {
	if err := ValidateRate(RateKey(from, to), rate); err != nil {
		return nil, err
	}
	out := t.Clone()
	out[RateKey(from, to)] = rate
	return out, nil
}

// Validate checks every key and rate of t.
func (t RateTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: rate table is empty", apperrors.ErrValidation)
	}
	for _, key := range t.Keys() {
		if err := ValidateRate(key, t[key]); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the pair keys in sorted order.
func (t RateTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateRate checks a single table entry.
func ValidateRate(key string, rate float64) error {
	if _, _, err := ParseRateKey(key); err != nil {
		return err
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("%w: rate for %s must be a positive number", apperrors.ErrValidation, key)
	}
	return nil
}
