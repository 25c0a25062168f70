package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
)

// ConversionFormService drives the form's state machine and runs the
// persistence effects requested by its transitions.
type ConversionFormService struct {
	BaseService
	gateway *PersistenceGateway

	// mu serializes transitions so concurrent callers see one event loop.
	mu    sync.Mutex
	state domain.ConversionState
}

// NewConversionFormService creates a service in the Idle state with the default rates.
// Call Start to restore persisted data.
func NewConversionFormService(gateway *PersistenceGateway, logger *slog.Logger) *ConversionFormService {
	return &ConversionFormService{
		BaseService: BaseService{Logger: logger},
		gateway:     gateway,
		state:       domain.NewConversionState(),
	}
}

// Start loads the rate table override and then the last snapshot. Load
// failures leave the defaults in place.
func (s *ConversionFormService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rates, ok := s.gateway.LoadConversionRates(ctx); ok {
		s.apply(ctx, domain.RatesLoaded{Rates: rates})
		s.LogInfo(ctx, "Loaded persisted conversion rates", slog.Int("pairs", len(rates)))
	}
	if snap, ok := s.gateway.LoadState(ctx); ok {
		if err := s.apply(ctx, domain.Restored{Snapshot: snap}); err == nil {
			s.LogInfo(ctx, "Restored last conversion",
				slog.String("from", snap.FromCurrency),
				slog.String("to", snap.ToCurrency),
			)
		}
	}
	return nil
}

// State returns a copy of the current state.
func (s *ConversionFormService) State() domain.ConversionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// EditAmount validates raw amount text.
func (s *ConversionFormService) EditAmount(ctx context.Context, text string) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.AmountEdited{Text: text})
}

// SelectFrom sets the source endpoint.
func (s *ConversionFormService) SelectFrom(ctx context.Context, currency domain.Currency) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.FromSelected{Currency: currency})
}

// SelectTo sets the target endpoint.
func (s *ConversionFormService) SelectTo(ctx context.Context, currency domain.Currency) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.ToSelected{Currency: currency})
}

// Reverse swaps the endpoints.
func (s *ConversionFormService) Reverse(ctx context.Context) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.Reversed{})
}

// Submit converts the current amount; success shows and persists the result.
func (s *ConversionFormService) Submit(ctx context.Context) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.Submitted{})
}

// Clear resets the form and removes the persisted snapshot.
func (s *ConversionFormService) Clear(ctx context.Context) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.Cleared{})
}

// UpdateRate replaces one pair of the rate table and persists the table.
func (s *ConversionFormService) UpdateRate(ctx context.Context, from, to domain.Currency, rate float64) (domain.ConversionState, error) {
	return s.dispatch(ctx, domain.RateUpdated{From: from, To: to, Rate: rate})
}

func (s *ConversionFormService) dispatch(ctx context.Context, action domain.Action) (domain.ConversionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.apply(ctx, action)
	if err != nil {
		s.LogDebug(ctx, "Action rejected", slog.String("action", actionName(action)), slog.String("error", err.Error()))
	}
	return s.snapshotLocked(), err
}

// apply must be called with mu held.
func (s *ConversionFormService) apply(ctx context.Context, action domain.Action) error {
	tr := domain.Reduce(s.state, action)
	s.state = tr.State

	for _, effect := range tr.Effects {
		switch e := effect.(type) {
		case domain.SaveSnapshot:
			s.gateway.SaveState(ctx, e.Snapshot)
		case domain.RemoveSnapshot:
			s.gateway.ClearState(ctx)
		case domain.SaveRates:
			s.gateway.SaveConversionRates(ctx, e.Rates)
		}
	}
	return tr.Err
}

func (s *ConversionFormService) snapshotLocked() domain.ConversionState {
	out := s.state
	out.Rates = s.state.Rates.Clone()
	return out
}

func actionName(a domain.Action) string {
	switch a.(type) {
	case domain.AmountEdited:
		return "edit_amount"
	case domain.FromSelected:
		return "select_from"
	case domain.ToSelected:
		return "select_to"
	case domain.Reversed:
		return "reverse"
	case domain.Submitted:
		return "submit"
	case domain.Cleared:
		return "clear"
	case domain.Restored:
		return "restore"
	case domain.RatesLoaded:
		return "load_rates"
	case domain.RateUpdated:
		return "update_rate"
	}
	return "unknown"
}

var (
	_ portssvc.ConversionFormSvcFacade = (*ConversionFormService)(nil)
	_ portssvc.Starter                 = (*ConversionFormService)(nil)
)
