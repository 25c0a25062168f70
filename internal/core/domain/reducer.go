package domain

import (
	"errors"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Action is a user or lifecycle event fed to Reduce.
type Action interface {
	isAction()
}

// AmountEdited carries raw text typed into the amount field.
type AmountEdited struct{ Text string }

// FromSelected picks the source endpoint.
type FromSelected struct{ Currency Currency }

// ToSelected picks the target endpoint.
type ToSelected struct{ Currency Currency }

// Reversed swaps the two endpoints.
type Reversed struct{}

// Submitted asks for a conversion of the current amount.
type Submitted struct{}

// Cleared resets the form and forgets the persisted snapshot.
type Cleared struct{}

// Restored replays a snapshot loaded at startup.
type Restored struct{ Snapshot Snapshot }

// RatesLoaded installs a rate table read from storage.
type RatesLoaded struct{ Rates RateTable }

// RateUpdated replaces a single pair of the rate table.
type RateUpdated struct {
	From Currency
	To   Currency
	Rate float64
}

func (AmountEdited) isAction() {}
func (FromSelected) isAction() {}
func (ToSelected) isAction()   {}
func (Reversed) isAction()     {}
func (Submitted) isAction()    {}
func (Cleared) isAction()      {}
func (Restored) isAction()     {}
func (RatesLoaded) isAction()  {}
func (RateUpdated) isAction()  {}

// Effect is a persistence side effect requested by a transition.
type Effect interface {
	isEffect()
}

// SaveSnapshot persists the last successful conversion.
type SaveSnapshot struct{ Snapshot Snapshot }

// RemoveSnapshot deletes the persisted conversion.
type RemoveSnapshot struct{}

// SaveRates persists the rate table.
type SaveRates struct{ Rates RateTable }

func (SaveSnapshot) isEffect()   {}
func (RemoveSnapshot) isEffect() {}
func (SaveRates) isEffect()      {}

// Transition is the outcome of one Reduce call. Err is a validation notice for
// the user; State is still meaningful when Err is set.
type Transition struct {
	State   ConversionState
	Effects []Effect
	Err     error
}

// Reduce applies action to state. It performs no I/O.
func Reduce(state ConversionState, action Action) Transition {
	switch a := action.(type) {
	case AmountEdited:
		return reduceAmount(state, a.Text)

	case FromSelected:
		if a.Currency != CurrencyDefault && !a.Currency.IsSupported() {
			return Transition{State: state, Err: apperrors.NewValidationError("unsupported currency " + string(a.Currency))}
		}
		state.From = a.Currency
		return Transition{State: state}

	case ToSelected:
		if a.Currency != CurrencyDefault && !a.Currency.IsSupported() {
			return Transition{State: state, Err: apperrors.NewValidationError("unsupported currency " + string(a.Currency))}
		}
		state.To = a.Currency
		return Transition{State: state}

	case Reversed:
		state.From, state.To = state.To, state.From
		return Transition{State: state}

	case Submitted:
		return reduceSubmit(state)

	case Cleared:
		next := NewConversionState()
		next.Rates = state.Rates
		return Transition{State: next, Effects: []Effect{RemoveSnapshot{}}}

	case Restored:
		return reduceRestore(state, a.Snapshot)

	case RatesLoaded:
		if err := a.Rates.Validate(); err != nil {
			return Transition{State: state, Err: err}
		}
		state.Rates = a.Rates.Clone()
		return Transition{State: state}

	case RateUpdated:
		rates, err := state.Rates.With(a.From, a.To, a.Rate)
		if err != nil {
			return Transition{State: state, Err: err}
		}
		state.Rates = rates
		return Transition{State: state, Effects: []Effect{SaveRates{Rates: rates.Clone()}}}
	}
	return Transition{State: state, Err: apperrors.NewValidationError("unknown action")}
}

func reduceAmount(state ConversionState, text string) Transition {
	accepted, err := ValidateAmount(text)
	if err != nil {
		// Pure punctuation empties the field; other garbage leaves the last
		// accepted value in place.
		if errors.Is(err, apperrors.ErrSpecialCharacters) {
			state.AmountText = ""
		}
		return Transition{State: state, Err: err}
	}
	state.AmountText = accepted
	return Transition{State: state}
}

func reduceSubmit(state ConversionState) Transition {
	if state.AmountText == "" {
		return Transition{State: state, Err: apperrors.ErrMissingAmount}
	}
	if _, err := ValidateAmount(state.AmountText); err != nil {
		return Transition{State: state, Err: apperrors.ErrInvalidNumber}
	}
	amount, err := decimal.NewFromString(state.AmountText)
	if err != nil {
		return Transition{State: state, Err: apperrors.ErrInvalidNumber}
	}
	if !state.From.IsChosen() || !state.To.IsChosen() {
		return Transition{State: state, Err: errSelectBoth}
	}
	result, err := Convert(amount, state.From, state.To, state.Rates)
	if err != nil {
		return Transition{State: state, Err: err}
	}

	state.LastAmount = state.AmountText
	state.LastResult = FormatAmount(result)
	state.LastFrom = state.From
	state.LastTo = state.To
	state.ResultVisible = true
	return Transition{State: state, Effects: []Effect{SaveSnapshot{Snapshot: state.Snapshot()}}}
}

func reduceRestore(state ConversionState, snap Snapshot) Transition {
	if err := snap.Validate(); err != nil {
		return Transition{State: state, Err: err}
	}
	from, _ := ParseCurrency(snap.FromCurrency)
	to, _ := ParseCurrency(snap.ToCurrency)
	input, _ := ValidateAmount(snap.Input)

	state.AmountText = input
	state.LastAmount = input
	state.LastResult = snap.Output
	state.From = from
	state.To = to
	state.LastFrom = from
	state.LastTo = to
	state.ResultVisible = true
	return Transition{State: state}
}
