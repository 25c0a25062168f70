package memory_test

import (
	"context"
	"testing"

	"github.com/SscSPs/currency_convertor/internal/repositories/database/kvtest"
	"github.com/SscSPs/currency_convertor/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
)

func TestKVRepository_Contract(t *testing.T) {
	kvtest.RunContract(t, memory.NewKVRepository())
}

func TestKVRepository_CancelledContext(t *testing.T) {
	repo := memory.NewKVRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Remove(ctx, "k"), context.Canceled)
}
