package services

import (
	"context"

	"github.com/SscSPs/currency_convertor/internal/core/domain"
)

// ConversionFormReaderSvc exposes the current form state.
type ConversionFormReaderSvc interface {
	// State returns the current form state.
	State() domain.ConversionState
}

// ConversionFormEditorSvc covers the edits that never touch storage.
type ConversionFormEditorSvc interface {
	EditAmount(ctx context.Context, text string) (domain.ConversionState, error)
	SelectFrom(ctx context.Context, currency domain.Currency) (domain.ConversionState, error)
	SelectTo(ctx context.Context, currency domain.Currency) (domain.ConversionState, error)
	Reverse(ctx context.Context) (domain.ConversionState, error)
}

// ConversionFormWriterSvc covers the transitions that persist something.
type ConversionFormWriterSvc interface {
	// Submit converts the current amount and persists the snapshot on success.
	Submit(ctx context.Context) (domain.ConversionState, error)
	// Clear resets the form and removes the persisted snapshot.
	Clear(ctx context.Context) (domain.ConversionState, error)
	// UpdateRate replaces one rate pair and persists the rate table.
	UpdateRate(ctx context.Context, from, to domain.Currency, rate float64) (domain.ConversionState, error)
}

// ConversionFormSvcFacade combines all conversion form service interfaces.
type ConversionFormSvcFacade interface {
	ConversionFormReaderSvc
	ConversionFormEditorSvc
	ConversionFormWriterSvc
}
