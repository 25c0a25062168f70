package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	// maxAmountLength bounds the characters of a single amount literal.
	maxAmountLength = 64
	// maxAmountExponent bounds the decimal exponent of an amount in both directions.
	maxAmountExponent = 20
	// maxResultLength bounds a rendered conversion result read back from storage.
	maxResultLength = 512
)

var (
	decimalLiteral  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d{1,3})?$`)
	specialCharOnly = regexp.MustCompile(`^[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]*$`)
)

// ValidateAmount checks raw amount text as typed by the user.
//
// An empty (after trimming) input is accepted as "". A finite decimal number is
// accepted and returned trimmed; its decimal exponent must stay within
// ±maxAmountExponent. Input made only of punctuation fails with
// apperrors.ErrSpecialCharacters, anything else with apperrors.ErrInvalidNumber.
func ValidateAmount(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) <= maxAmountLength && decimalLiteral.MatchString(trimmed) {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && exponentInRange(trimmed) {
			return trimmed, nil
		}
	}
	if specialCharOnly.MatchString(trimmed) {
		return "", apperrors.ErrSpecialCharacters
	}
	return "", apperrors.ErrInvalidNumber
}

func exponentInRange(literal string) bool {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return false
	}
	exp := d.Exponent()
	return exp >= -maxAmountExponent && exp <= maxAmountExponent
}

// validResult reports whether s looks like a rendered conversion result.
func validResult(s string) bool {
	return s != "" && len(s) <= maxResultLength && decimalLiteral.MatchString(s)
}
