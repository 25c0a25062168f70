package domain

import (
	"fmt"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
)

// ConversionState is the whole form at one instant. Values are never mutated
// in place; Reduce returns a new state for every action.
type ConversionState struct {
	AmountText    string
	From          Currency
	To            Currency
	LastAmount    string
	LastResult    string
	LastFrom      Currency
	LastTo        Currency
	ResultVisible bool
	Rates         RateTable
}

// Phase names the two states of the form's state machine.
type Phase string

const (
	PhaseIdle  Phase = "idle"
	PhaseShown Phase = "shown"
)

// NewConversionState returns the startup state: nothing chosen, default rates.
func NewConversionState() ConversionState {
	return ConversionState{
		From:       CurrencyDefault,
		To:         CurrencyDefault,
		LastAmount: "0",
		LastResult: "0",
		LastFrom:   CurrencyDefault,
		LastTo:     CurrencyDefault,
		Rates:      DefaultRateTable(),
	}
}

// Phase reports whether the output is currently shown.
func (s ConversionState) Phase() Phase {
	if s.ResultVisible {
		return PhaseShown
	}
	return PhaseIdle
}

// Summary is the trailing "Last Conversion" line.
func (s ConversionState) Summary() string {
	return fmt.Sprintf("Last Conversion: %s %s = %s %s", s.LastAmount, s.LastFrom, s.LastResult, s.LastTo)
}

// Snapshot is the persisted record of the last successful conversion.
type Snapshot struct {
	Input        string `json:"input"`
	Output       string `json:"output"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
}

// Snapshot captures the last submitted conversion of s.
func (s ConversionState) Snapshot() Snapshot {
	return Snapshot{
		Input:        s.LastAmount,
		Output:       s.LastResult,
		FromCurrency: string(s.LastFrom),
		ToCurrency:   string(s.LastTo),
	}
}

// Validate checks that a snapshot read back from storage is usable.
func (s Snapshot) Validate() error {
	if _, err := ParseCurrency(s.FromCurrency); err != nil {
		return fmt.Errorf("snapshot fromCurrency: %w", err)
	}
	if _, err := ParseCurrency(s.ToCurrency); err != nil {
		return fmt.Errorf("snapshot toCurrency: %w", err)
	}
	if _, err := ValidateAmount(s.Input); err != nil {
		return fmt.Errorf("snapshot input: %w", err)
	}
	if !validResult(s.Output) {
		return fmt.Errorf("snapshot output: %w", apperrors.ErrInvalidNumber)
	}
	return nil
}
