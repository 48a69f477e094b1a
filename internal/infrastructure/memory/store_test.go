package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
)

func TestRun_ErrorRestauraElEstado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p-1", Name: "Beans", CurrentStock: 5}))

	err := store.Run(ctx, func(r inventory.Repos) error {
		require.NoError(t, r.Products.IncrementStock(ctx, "p-1", 10))
		return errors.New("boom")
	})
	require.Error(t, err)

	p, err := store.Products().GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.CurrentStock, "el incremento se revierte")
}

func TestRun_RollbackNoBorraEscriturasConcurrentes(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = store.Run(ctx, func(inventory.Repos) error {
			close(started)
			<-release
			return errors.New("rollback")
		})
	}()
	<-started
	go func() {
		defer wg.Done()
		assert.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "s-1", Name: "Acme", TotalDebt: decimal.Zero}))
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	s, err := store.Suppliers().GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.NotNil(t, s, "el alta hecha durante la transacción fallida se conserva")
}
