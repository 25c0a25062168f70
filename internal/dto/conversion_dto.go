package dto

import (
	"github.com/SscSPs/currency_convertor/internal/core/domain"
)

// UpdateAmountRequest carries raw amount text as typed by the user.
// Empty text is allowed and clears the field.
type UpdateAmountRequest struct {
	Amount string `json:"amount"`
}

// SelectCurrencyRequest picks an endpoint: "default", "USD", "EUR" or "GBP".
type SelectCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}

// UpdateRateRequest replaces the multiplier of one currency pair.
type UpdateRateRequest struct {
	Rate float64 `json:"rate" binding:"required,gt=0"`
}

// LastConversionResponse is the last successfully submitted conversion.
type LastConversionResponse struct {
	Input        string `json:"input"`
	Output       string `json:"output"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
}

// ConversionStateResponse is what the form currently displays.
type ConversionStateResponse struct {
	Amount         string                 `json:"amount"`
	FromCurrency   string                 `json:"fromCurrency"`
	ToCurrency     string                 `json:"toCurrency"`
	Phase          string                 `json:"phase"`
	OutputVisible  bool                   `json:"outputVisible"`
	Output         *string                `json:"output,omitempty"`
	LastConversion LastConversionResponse `json:"lastConversion"`
	Summary        string                 `json:"summary"`
}

// RatesResponse lists the rate table keyed "<FROM>_<TO>".
type RatesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// ErrorResponse is returned for rejected actions. State is set for validation
// rejections, which may still have changed the form (e.g. a cleared amount).
type ErrorResponse struct {
	Error string                   `json:"error"`
	State *ConversionStateResponse `json:"state,omitempty"`
}

// ToConversionStateResponse converts a domain.ConversionState to its API view.
func ToConversionStateResponse(s domain.ConversionState) ConversionStateResponse {
	resp := ConversionStateResponse{
		Amount:        s.AmountText,
		FromCurrency:  string(s.From),
		ToCurrency:    string(s.To),
		Phase:         string(s.Phase()),
		OutputVisible: s.ResultVisible,
		LastConversion: LastConversionResponse{
			Input:        s.LastAmount,
			Output:       s.LastResult,
			FromCurrency: string(s.LastFrom),
			ToCurrency:   string(s.LastTo),
		},
		Summary: s.Summary(),
	}
	if s.ResultVisible {
		out := s.LastResult
		resp.Output = &out
	}
	return resp
}

// ToRatesResponse converts a rate table to its API view.
func ToRatesResponse(t domain.RateTable) RatesResponse {
	return RatesResponse{Rates: t.Clone()}
}
