package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	"github.com/SscSPs/currency_convertor/internal/core/services"
	"github.com/SscSPs/currency_convertor/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFormService(t *testing.T, store *memory.KVRepository) *services.ConversionFormService {
	t.Helper()
	gateway := services.NewPersistenceGateway(store, services.WithGatewayLogger(discardLogger()))
	svc := services.NewConversionFormService(gateway, discardLogger())
	require.NoError(t, svc.Start(context.Background()))
	return svc
}

func storedSnapshot(t *testing.T, store *memory.KVRepository) (domain.Snapshot, bool) {
	t.Helper()
	raw, found, err := store.Get(context.Background(), services.DefaultStateKey)
	require.NoError(t, err)
	if !found {
		return domain.Snapshot{}, false
	}
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))
	return snap, true
}

func TestConversionFormService_StartsIdleWithDefaults(t *testing.T) {
	svc := newFormService(t, memory.NewKVRepository())

	state := svc.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase())
	assert.Equal(t, "", state.AmountText)
	assert.Equal(t, domain.CurrencyDefault, state.From)
	assert.Equal(t, domain.CurrencyDefault, state.To)
	assert.Equal(t, domain.DefaultRateTable(), state.Rates)
}

func TestConversionFormService_SubmitPersistsSnapshot(t *testing.T) {
	store := memory.NewKVRepository()
	svc := newFormService(t, store)
	ctx := context.Background()

	_, err := svc.EditAmount(ctx, "50")
	require.NoError(t, err)
	_, err = svc.SelectFrom(ctx, domain.USD)
	require.NoError(t, err)
	_, err = svc.SelectTo(ctx, domain.GBP)
	require.NoError(t, err)

	_, found := storedSnapshot(t, store)
	assert.False(t, found, "edits alone must not persist anything")

	state, err := svc.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseShown, state.Phase())
	assert.Equal(t, "36", state.LastResult)

	snap, found := storedSnapshot(t, store)
	require.True(t, found)
	assert.Equal(t, domain.Snapshot{Input: "50", Output: "36", FromCurrency: "USD", ToCurrency: "GBP"}, snap)

	// rates are only written when they change
	_, found, _ = store.Get(ctx, services.DefaultRatesKey)
	assert.False(t, found)
}

func TestConversionFormService_ClearRemovesSnapshot(t *testing.T) {
	store := memory.NewKVRepository()
	svc := newFormService(t, store)
	ctx := context.Background()

	_, _ = svc.EditAmount(ctx, "10")
	_, _ = svc.SelectFrom(ctx, domain.EUR)
	_, _ = svc.SelectTo(ctx, domain.USD)
	_, err := svc.Submit(ctx)
	require.NoError(t, err)
	_, err = svc.UpdateRate(ctx, domain.EUR, domain.USD, 1.2)
	require.NoError(t, err)

	state, err := svc.Clear(ctx)
	require.NoError(t, err)

	_, found := storedSnapshot(t, store)
	assert.False(t, found)
	_, found, _ = store.Get(ctx, services.DefaultRatesKey)
	assert.True(t, found, "clear leaves the rate table alone")

	assert.Equal(t, "", state.AmountText)
	assert.Equal(t, domain.CurrencyDefault, state.From)
	assert.Equal(t, domain.CurrencyDefault, state.To)
	assert.False(t, state.ResultVisible)
}

func TestConversionFormService_RestartRestoresShownState(t *testing.T) {
	store := memory.NewKVRepository()
	ctx := context.Background()

	first := newFormService(t, store)
	_, _ = first.EditAmount(ctx, "50")
	_, _ = first.SelectFrom(ctx, domain.USD)
	_, _ = first.SelectTo(ctx, domain.GBP)
	before, err := first.Submit(ctx)
	require.NoError(t, err)

	second := newFormService(t, store)
	after := second.State()

	assert.Equal(t, domain.PhaseShown, after.Phase())
	assert.Equal(t, before.AmountText, after.AmountText)
	assert.Equal(t, before.From, after.From)
	assert.Equal(t, before.To, after.To)
	assert.Equal(t, before.LastResult, after.LastResult)
	assert.Equal(t, before.Summary(), after.Summary())
}

func TestConversionFormService_RestartUsesPersistedRates(t *testing.T) {
	store := memory.NewKVRepository()
	ctx := context.Background()

	first := newFormService(t, store)
	_, err := first.UpdateRate(ctx, domain.USD, domain.EUR, 0.5)
	require.NoError(t, err)

	second := newFormService(t, store)
	_, _ = second.EditAmount(ctx, "10")
	_, _ = second.SelectFrom(ctx, domain.USD)
	_, _ = second.SelectTo(ctx, domain.EUR)
	state, err := second.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", state.LastResult)
}

func TestConversionFormService_CorruptStorageKeepsDefaults(t *testing.T) {
	store := memory.NewKVRepository()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, services.DefaultStateKey, "not json"))
	require.NoError(t, store.Set(ctx, services.DefaultRatesKey, `{"USD_EUR":"cheap"}`))

	svc := newFormService(t, store)

	state := svc.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase())
	assert.Equal(t, domain.DefaultRateTable(), state.Rates)
}

func TestConversionFormService_StoreFailureDoesNotFailSubmit(t *testing.T) {
	store := new(MockKeyValueStore)
	store.On("Get", mock.Anything, mock.Anything).Return("", false, errors.New("unreachable"))
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("unreachable"))

	gateway := services.NewPersistenceGateway(store, services.WithGatewayLogger(discardLogger()))
	svc := services.NewConversionFormService(gateway, discardLogger())
	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))

	_, _ = svc.EditAmount(ctx, "100")
	_, _ = svc.SelectFrom(ctx, domain.USD)
	_, _ = svc.SelectTo(ctx, domain.EUR)
	state, err := svc.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, "85", state.LastResult)
	store.AssertCalled(t, "Set", mock.Anything, services.DefaultStateKey, mock.Anything)
}

func TestConversionFormService_Rejections(t *testing.T) {
	svc := newFormService(t, memory.NewKVRepository())
	ctx := context.Background()

	_, err := svc.Submit(ctx)
	assert.ErrorIs(t, err, apperrors.ErrMissingAmount)

	_, _ = svc.EditAmount(ctx, "5")
	state, err := svc.EditAmount(ctx, "5x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidNumber)
	assert.Equal(t, "5", state.AmountText)

	state, err = svc.EditAmount(ctx, "#!")
	assert.ErrorIs(t, err, apperrors.ErrSpecialCharacters)
	assert.Equal(t, "", state.AmountText)

	_, _ = svc.EditAmount(ctx, "5")
	_, err = svc.Submit(ctx)
	assert.ErrorIs(t, err, apperrors.ErrUndefinedConversion)
	assert.False(t, svc.State().ResultVisible)
}

func TestConversionFormService_StateIsACopy(t *testing.T) {
	svc := newFormService(t, memory.NewKVRepository())

	state := svc.State()
	state.Rates["USD_EUR"] = 100

	assert.Equal(t, 0.85, svc.State().Rates["USD_EUR"])
}

func TestConversionFormService_ConcurrentReverse(t *testing.T) {
	svc := newFormService(t, memory.NewKVRepository())
	ctx := context.Background()
	_, _ = svc.SelectFrom(ctx, domain.USD)
	_, _ = svc.SelectTo(ctx, domain.EUR)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Reverse(ctx)
		}()
	}
	wg.Wait()

	// an even number of swaps is the identity
	state := svc.State()
	assert.Equal(t, domain.USD, state.From)
	assert.Equal(t, domain.EUR, state.To)
}
