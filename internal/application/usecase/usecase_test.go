package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
)

// countingCache cuenta las invalidaciones del cache de reportes.
type countingCache struct {
	invalidations int
	err           error
}

func (c *countingCache) Get(context.Context, string, any) (int64, bool, error) { return 0, false, nil }
func (c *countingCache) Set(context.Context, string, int64, any) error         { return nil }
func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return c.err
}

func intPtr(v int) *int { return &v }

// ─────────────────────────────────────────────────────────────────────────────
// Productos
// ─────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateValoresPorDefecto(t *testing.T) {
	store := memory.NewStore()
	cache := &countingCache{}
	uc := usecase.NewProductUseCase(store.Products(), store, cache, zerolog.Nop())

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:      "  Beans ",
		Category:  "Food",
		UnitPrice: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Beans", p.Name, "el nombre se recorta")
	assert.Equal(t, entity.DefaultMinStockLevel, p.MinStockLevel)
	assert.Equal(t, 0, p.CurrentStock)
	assert.Equal(t, entity.StockStatusOutOfStock, p.StockStatus)
	assert.Equal(t, 1, cache.invalidations)
}

func TestProduct_FalloDeInvalidacionSeRegistra(t *testing.T) {
	store := memory.NewStore()
	cache := &countingCache{err: errors.New("redis: connection refused")}
	var buf bytes.Buffer
	uc := usecase.NewProductUseCase(store.Products(), store, cache, zerolog.New(&buf))

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Beans", Category: "Food"})
	require.NoError(t, err, "la mutación ya está confirmada")
	assert.Equal(t, 1, cache.invalidations)
	assert.Contains(t, buf.String(), "report cache invalidation failed")
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestProduct_CreateDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Beans", Category: "Food"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Beans", Category: "Other"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_CreateValidaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store, nil, zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Beans"})
	assert.ErrorIs(t, err, domain.ErrValidation, "category es obligatoria")

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "Beans", Category: "Food", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProduct_AjusteManualDeStockMueveOpeningStock(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store, nil, zerolog.Nop())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Beans", Category: "Food", CurrentStock: intPtr(5)})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{CurrentStock: intPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.CurrentStock)

	stored, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.OpeningStock, "5 iniciales + ajuste de 7")

	// La reconciliación no debe ver el ajuste como diferencia
	rec := inventory.NewReconcileUseCase(store, nil, nil, zerolog.Nop())
	report, err := rec.Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, report.StockDrifts)
}

func TestProduct_UpdateNombreDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Beans", Category: "Food"})
	require.NoError(t, err)
	rice, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Rice", Category: "Food"})
	require.NoError(t, err)

	name := "Beans"
	_, err = uc.Update(ctx, rice.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_ListLowStockYDelete(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store, nil, zerolog.Nop())
	ctx := context.Background()

	low, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Beans", Category: "Food", CurrentStock: intPtr(3)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Rice", Category: "Food", CurrentStock: intPtr(50)})
	require.NoError(t, err)

	list, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)

	require.NoError(t, uc.Delete(ctx, low.ID))
	_, err = uc.GetByID(ctx, low.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, low.ID), domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Proveedores
// ─────────────────────────────────────────────────────────────────────────────

func TestSupplier_CreateDuplicadoEsValidacion(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.StockIns(), nil, zerolog.Nop())
	ctx := context.Background()

	s, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.True(t, s.TotalDebt.IsZero())

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Acme"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "A supplier with this name already exists", domain.Message(err))
}

func TestSupplier_DeleteConEntregasNoPermitido(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	suppliers := usecase.NewSupplierUseCase(store.Suppliers(), store.StockIns(), nil, zerolog.Nop())
	products := usecase.NewProductUseCase(store.Products(), store, nil, zerolog.Nop())
	stockIn := inventory.NewStockInUseCase(store, store.StockIns(), inventory.NewConsistencyRules(zerolog.Nop()), nil)

	s, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Beans", Category: "Food"})
	require.NoError(t, err)
	in, err := stockIn.Create(ctx, "u-admin", dto.CreateStockInRequest{
		ProductID: p.ID, SupplierID: s.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	err = suppliers.Delete(ctx, s.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	withDeliveries, err := suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, withDeliveries.Deliveries, 1)

	withDebt, err := suppliers.ListWithDebt(ctx)
	require.NoError(t, err)
	assert.Len(t, withDebt, 1)

	require.NoError(t, stockIn.Delete(ctx, in.ID))
	require.NoError(t, suppliers.Delete(ctx, s.ID), "sin entregas se puede borrar")
}
