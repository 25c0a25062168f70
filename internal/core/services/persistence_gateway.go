package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
)

const (
	// DefaultStateKey is the storage key of the conversion snapshot.
	DefaultStateKey = "appState"
	// DefaultRatesKey is the storage key of the rate table.
	DefaultRatesKey = "conversionRates"
	// DefaultStoreTimeout bounds every single store call.
	DefaultStoreTimeout = 3 * time.Second
)

// PersistenceGateway reads and writes the two persisted records as JSON.
// It never returns store, encoding or decoding failures: they are logged and
// the caller carries on with its in-memory state.
type PersistenceGateway struct {
	BaseService
	store    portsrepo.KeyValueStore
	stateKey string
	ratesKey string
	timeout  time.Duration
}

// PersistenceGatewayOption configures a PersistenceGateway.
type PersistenceGatewayOption func(*PersistenceGateway)

// WithStorageKeys overrides the snapshot and rate table keys. Empty values keep the defaults.
func WithStorageKeys(stateKey, ratesKey string) PersistenceGatewayOption {
	return func(g *PersistenceGateway) {
		if stateKey != "" {
			g.stateKey = stateKey
		}
		if ratesKey != "" {
			g.ratesKey = ratesKey
		}
	}
}

// WithStoreTimeout bounds each store call. Non-positive durations disable the bound.
func WithStoreTimeout(d time.Duration) PersistenceGatewayOption {
	return func(g *PersistenceGateway) {
		g.timeout = d
	}
}

// WithGatewayLogger sets the fallback logger used outside of requests.
func WithGatewayLogger(logger *slog.Logger) PersistenceGatewayOption {
	return func(g *PersistenceGateway) {
		g.Logger = logger
	}
}

// NewPersistenceGateway creates a gateway over store.
func NewPersistenceGateway(store portsrepo.KeyValueStore, opts ...PersistenceGatewayOption) *PersistenceGateway {
	g := &PersistenceGateway{
		store:    store,
		stateKey: DefaultStateKey,
		ratesKey: DefaultRatesKey,
		timeout:  DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoadState returns the persisted snapshot, if there is a usable one.
func (g *PersistenceGateway) LoadState(ctx context.Context) (domain.Snapshot, bool) {
	var snap domain.Snapshot
	if !g.load(ctx, g.stateKey, &snap) {
		return domain.Snapshot{}, false
	}
	if err := snap.Validate(); err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), "Error loading state", slog.String("key", g.stateKey))
		return domain.Snapshot{}, false
	}
	return snap, true
}

// SaveState persists snap.
func (g *PersistenceGateway) SaveState(ctx context.Context, snap domain.Snapshot) {
	g.save(ctx, g.stateKey, snap, "Error saving state")
}

// ClearState removes the persisted snapshot. The rate table is left alone.
func (g *PersistenceGateway) ClearState(ctx context.Context) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.store.Remove(ctx, g.stateKey); err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), "Error clearing state", slog.String("key", g.stateKey))
		return
	}
	g.LogDebug(ctx, "Cleared persisted state", slog.String("key", g.stateKey))
}

// LoadConversionRates returns the persisted rate table, if there is a valid one.
func (g *PersistenceGateway) LoadConversionRates(ctx context.Context) (domain.RateTable, bool) {
	var rates domain.RateTable
	if !g.load(ctx, g.ratesKey, &rates) {
		return nil, false
	}
	if err := rates.Validate(); err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), "Error loading conversion rates", slog.String("key", g.ratesKey))
		return nil, false
	}
	return rates, true
}

// SaveConversionRates persists rates.
func (g *PersistenceGateway) SaveConversionRates(ctx context.Context, rates domain.RateTable) {
	g.save(ctx, g.ratesKey, rates, "Error saving conversion rates")
}

func (g *PersistenceGateway) load(ctx context.Context, key string, dst any) bool {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	raw, found, err := g.store.Get(ctx, key)
	if err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), "Error reading from store", slog.String("key", key))
		return false
	}
	if !found {
		g.LogDebug(ctx, "Nothing persisted", slog.String("key", key))
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), "Error decoding stored record", slog.String("key", key))
		return false
	}
	return true
}

func (g *PersistenceGateway) save(ctx context.Context, key string, v any, msg string) {
	data, err := json.Marshal(v)
	if err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), msg, slog.String("key", key))
		return
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.store.Set(ctx, key, string(data)); err != nil {
		g.LogError(ctx, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err), msg, slog.String("key", key))
		return
	}
	g.LogDebug(ctx, "Persisted record", slog.String("key", key))
}

func (g *PersistenceGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}
