package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fixture: store en memoria con un producto (stock 0) y un proveedor (deuda 0)
// ─────────────────────────────────────────────────────────────────────────────

type ledger struct {
	store     *memory.Store
	stockIn   *inventory.StockInUseCase
	stockOut  *inventory.StockOutUseCase
	reconcile *inventory.ReconcileUseCase
	product   string
	supplier  string
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	rules := inventory.NewConsistencyRules(zerolog.Nop())

	now := time.Now()
	product := &entity.Product{ID: "p-beans", Name: "Beans", Category: "Food", MinStockLevel: 10, CreatedAt: now, UpdatedAt: now}
	supplier := &entity.Supplier{ID: "s-acme", Name: "Acme", TotalDebt: decimal.Zero, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Products().Create(ctx, product))
	require.NoError(t, store.Suppliers().Create(ctx, supplier))

	return &ledger{
		store:     store,
		stockIn:   inventory.NewStockInUseCase(store, store.StockIns(), rules, nil),
		stockOut:  inventory.NewStockOutUseCase(store, store.StockOuts(), rules, nil),
		reconcile: inventory.NewReconcileUseCase(store, nil, nil, zerolog.Nop()),
		product:   product.ID,
		supplier:  supplier.ID,
	}
}

func (l *ledger) stock(t *testing.T) int {
	t.Helper()
	p, err := l.store.Products().GetByID(context.Background(), l.product)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (l *ledger) debt(t *testing.T) decimal.Decimal {
	t.Helper()
	s, err := l.store.Suppliers().GetByID(context.Background(), l.supplier)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.TotalDebt
}

func (l *ledger) receive(t *testing.T, qty int, price int64, status string) *dto.StockInResponse {
	t.Helper()
	res, err := l.stockIn.Create(context.Background(), "u-admin", dto.CreateStockInRequest{
		ProductID:     l.product,
		SupplierID:    l.supplier,
		Quantity:      qty,
		UnitPrice:     decimal.NewFromInt(price),
		PaymentStatus: status,
	})
	require.NoError(t, err)
	return res
}

func (l *ledger) sell(qty int, price int64) (*dto.StockOutResponse, error) {
	return l.stockOut.Create(context.Background(), "u-admin", dto.CreateStockOutRequest{
		ProductID: l.product,
		Quantity:  qty,
		SalePrice: decimal.NewFromInt(price),
	})
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ─────────────────────────────────────────────────────────────────────────────
// Entradas
// ─────────────────────────────────────────────────────────────────────────────

func TestStockIn_CreateSumaStockYDeuda(t *testing.T) {
	l := newLedger(t)

	in := l.receive(t, 10, 80, entity.PaymentUnpaid)

	assert.True(t, d(800).Equal(in.TotalAmount), "total = cantidad × precio")
	assert.True(t, d(800).Equal(in.RemainingDebt))
	require.NotNil(t, in.Product, "la respuesta trae el producto poblado")
	assert.Equal(t, "Beans", in.Product.Name)
	require.NotNil(t, in.Supplier)
	assert.Equal(t, "Acme", in.Supplier.Name)

	assert.Equal(t, 10, l.stock(t))
	assert.True(t, d(800).Equal(l.debt(t)), "deuda: %s", l.debt(t))
}

func TestStockIn_PartialSinMontoSeRechazaSinEfectos(t *testing.T) {
	l := newLedger(t)

	_, err := l.stockIn.Create(context.Background(), "u-admin", dto.CreateStockInRequest{
		ProductID:     l.product,
		SupplierID:    l.supplier,
		Quantity:      5,
		UnitPrice:     d(10),
		PaymentStatus: entity.PaymentPartial,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Amount paid must be provided for partial payment", domain.Message(err))

	assert.Equal(t, 0, l.stock(t))
	assert.True(t, l.debt(t).IsZero())
}

func TestStockIn_ReferenciasInexistentes(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	_, err := l.stockIn.Create(ctx, "u-admin", dto.CreateStockInRequest{ProductID: "nope", SupplierID: l.supplier, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = l.stockIn.Create(ctx, "u-admin", dto.CreateStockInRequest{ProductID: l.product, SupplierID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := l.stockIn.List(ctx, dto.StockInListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list, "ninguna entrada debe persistir tras un error")
}

func TestStockIn_UpdatePagoAjustaDeuda(t *testing.T) {
	l := newLedger(t)
	in := l.receive(t, 10, 80, entity.PaymentUnpaid)

	paid := entity.PaymentPaid
	res, err := l.stockIn.Update(context.Background(), in.ID, dto.UpdateStockInRequest{PaymentStatus: &paid})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentPaid, res.PaymentStatus)
	assert.True(t, res.RemainingDebt.IsZero())
	assert.True(t, l.debt(t).IsZero(), "la deuda baja 800 al pagar")
	assert.Equal(t, 10, l.stock(t), "el pago no toca el stock")

	// Pago parcial sobre una entrada ya pagada: la deuda vuelve a subir
	partial := entity.PaymentPartial
	amount := d(300)
	_, err = l.stockIn.Update(context.Background(), in.ID, dto.UpdateStockInRequest{PaymentStatus: &partial, AmountPaid: &amount})
	require.NoError(t, err)
	assert.True(t, d(500).Equal(l.debt(t)), "deuda: %s", l.debt(t))
}

func TestStockIn_UpdateProductoOCantidadNoPermitido(t *testing.T) {
	l := newLedger(t)
	in := l.receive(t, 10, 80, entity.PaymentUnpaid)

	qty := 20
	_, err := l.stockIn.Update(context.Background(), in.ID, dto.UpdateStockInRequest{Quantity: &qty})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	other := "p-other"
	_, err = l.stockIn.Update(context.Background(), in.ID, dto.UpdateStockInRequest{ProductID: &other})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	assert.Equal(t, 10, l.stock(t))
}

func TestUpdate_RegistroInexistenteAntesQueCamposInmutables(t *testing.T) {
	l := newLedger(t)
	qty := 20

	_, err := l.stockIn.Update(context.Background(), "missing", dto.UpdateStockInRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Stock-in record not found", domain.Message(err))

	_, err = l.stockOut.Update(context.Background(), "missing", dto.UpdateStockOutRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Stock-out record not found", domain.Message(err))
}

func TestStockIn_DeleteRevierteContadores(t *testing.T) {
	l := newLedger(t)
	in := l.receive(t, 10, 80, entity.PaymentUnpaid)

	require.NoError(t, l.stockIn.Delete(context.Background(), in.ID))

	assert.Equal(t, 0, l.stock(t))
	assert.True(t, l.debt(t).IsZero())

	_, err := l.stockIn.Get(context.Background(), in.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = l.stockIn.Delete(context.Background(), in.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar dos veces no vuelve a revertir")
	assert.Equal(t, 0, l.stock(t))
}

// ─────────────────────────────────────────────────────────────────────────────
// Salidas
// ─────────────────────────────────────────────────────────────────────────────

func TestStockOut_VentaDescuentaStock(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentUnpaid)

	sale, err := l.sell(4, 100)
	require.NoError(t, err)

	assert.True(t, d(400).Equal(sale.TotalAmount))
	assert.Equal(t, 6, l.stock(t))
	assert.True(t, d(800).Equal(l.debt(t)), "una venta no toca la deuda")
}

func TestStockOut_StockInsuficiente(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentUnpaid)
	_, err := l.sell(4, 100)
	require.NoError(t, err)

	_, err = l.sell(7, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Not enough stock. Available: 6, Requested: 7", domain.Message(err))

	assert.Equal(t, 6, l.stock(t), "el rechazo no modifica el stock")
	list, err := l.stockOut.List(context.Background(), dto.StockOutListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStockOut_VenderTodoElStock(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 3, 80, entity.PaymentPaid)

	_, err := l.sell(3, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, l.stock(t))
}

func TestStockOut_UpdateRecalculaTotal(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentPaid)
	sale, err := l.sell(4, 100)
	require.NoError(t, err)

	price := d(120)
	customer := "Jane"
	res, err := l.stockOut.Update(context.Background(), sale.ID, dto.UpdateStockOutRequest{SalePrice: &price, Customer: &customer})
	require.NoError(t, err)
	assert.True(t, d(480).Equal(res.TotalAmount), "total recalculado con la cantidad original")
	assert.Equal(t, "Jane", res.Customer)
	assert.Equal(t, 6, l.stock(t))

	qty := 1
	_, err = l.stockOut.Update(context.Background(), sale.ID, dto.UpdateStockOutRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestStockOut_DeleteDevuelveStock(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentPaid)
	sale, err := l.sell(4, 100)
	require.NoError(t, err)

	require.NoError(t, l.stockOut.Delete(context.Background(), sale.ID))
	assert.Equal(t, 10, l.stock(t))
}

func TestStockOut_Today(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentPaid)
	_, err := l.sell(2, 100)
	require.NoError(t, err)
	_, err = l.stockOut.Create(context.Background(), "u-admin", dto.CreateStockOutRequest{
		ProductID: l.product,
		Quantity:  1,
		SalePrice: d(100),
		SaleDate:  &dto.Date{Time: time.Now().AddDate(0, 0, -3)},
	})
	require.NoError(t, err)

	today, err := l.stockOut.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, today.Count, "la venta de hace tres días no cuenta")
	assert.True(t, d(200).Equal(today.TotalRevenue))
}

func TestStockOut_TodayEnUTC(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentPaid)
	// 23:30 del 10 de marzo en UTC-5 ya es 11 de marzo en UTC.
	l.stockOut.SetClock(func() time.Time {
		return time.Date(2024, 3, 10, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	})
	for _, saleDate := range []time.Time{
		time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC),
	} {
		_, err := l.stockOut.Create(context.Background(), "u-admin", dto.CreateStockOutRequest{
			ProductID: l.product, Quantity: 1, SalePrice: d(100), SaleDate: &dto.Date{Time: saleDate},
		})
		require.NoError(t, err)
	}

	today, err := l.stockOut.Today(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, today.Count)
	assert.Equal(t, time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC), today.Data[0].SaleDate.UTC())
}

// ─────────────────────────────────────────────────────────────────────────────
// Importación y reconciliación
// ─────────────────────────────────────────────────────────────────────────────

func TestImport_BackfillYReconciliacion(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	// Contadores previos al libro: 8 unidades en stock y 50 de deuda.
	require.NoError(t, l.store.Products().SetStock(ctx, l.product, 8))
	require.NoError(t, l.store.Products().IncrementOpeningStock(ctx, l.product, 8))
	require.NoError(t, l.store.Suppliers().SetDebt(ctx, l.supplier, d(50)))
	require.NoError(t, l.store.Suppliers().IncrementOpeningDebt(ctx, l.supplier, d(50)))

	res, err := l.stockIn.Import(ctx, "u-admin", dto.ImportStockInRequest{
		Backfill: true,
		Entries: []dto.CreateStockInRequest{
			{ProductID: l.product, SupplierID: l.supplier, Quantity: 5, UnitPrice: d(10)},
			{ProductID: l.product, SupplierID: l.supplier, Quantity: 3, UnitPrice: d(10), PaymentStatus: entity.PaymentPaid},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.True(t, res.Backfill)
	assert.Equal(t, 8, l.stock(t), "backfill no toca los contadores")
	assert.True(t, d(50).Equal(l.debt(t)))

	report, err := l.reconcile.Run(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, report.StockDrifts, "las entradas históricas no se cuentan dos veces")
	assert.Empty(t, report.DebtDrifts)
	assert.Equal(t, 8, l.stock(t))
	assert.True(t, d(50).Equal(l.debt(t)))

	// Borrar una entrada histórica revierte sus contadores y el libro sigue cuadrando.
	require.NoError(t, l.stockIn.Delete(ctx, res.Data[0].ID))
	assert.Equal(t, 3, l.stock(t))
	assert.True(t, l.debt(t).IsZero())

	l.receive(t, 2, 10, entity.PaymentUnpaid)
	report, err = l.reconcile.Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, report.StockDrifts)
	assert.Empty(t, report.DebtDrifts)
	assert.Equal(t, 5, l.stock(t))
}

func TestReconcile_DetectaYCorrigeDiferencias(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	l.receive(t, 10, 80, entity.PaymentUnpaid)
	require.NoError(t, l.store.Products().SetStock(ctx, l.product, 99))
	require.NoError(t, l.store.Suppliers().SetDebt(ctx, l.supplier, d(1)))

	report, err := l.reconcile.Run(ctx, false)
	require.NoError(t, err)
	require.Len(t, report.StockDrifts, 1)
	assert.Equal(t, "99", report.StockDrifts[0].Stored)
	assert.Equal(t, "10", report.StockDrifts[0].Expected)
	require.Len(t, report.DebtDrifts, 1)
	assert.Equal(t, "800", report.DebtDrifts[0].Expected)
	assert.Equal(t, 99, l.stock(t), "sin fix solo se reporta")

	report, err = l.reconcile.Run(ctx, true)
	require.NoError(t, err)
	assert.True(t, report.Fixed)
	assert.Equal(t, 10, l.stock(t))
	assert.True(t, d(800).Equal(l.debt(t)))

	report, err = l.reconcile.Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, report.StockDrifts, "tras el fix no quedan diferencias")
	assert.Empty(t, report.DebtDrifts)
}

func TestImport_ErrorRevierteTodo(t *testing.T) {
	l := newLedger(t)

	_, err := l.stockIn.Import(context.Background(), "u-admin", dto.ImportStockInRequest{
		Entries: []dto.CreateStockInRequest{
			{ProductID: l.product, SupplierID: l.supplier, Quantity: 5, UnitPrice: d(10)},
			{ProductID: "nope", SupplierID: l.supplier, Quantity: 1, UnitPrice: d(10)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "entry 2: Product not found", domain.Message(err))

	assert.Equal(t, 0, l.stock(t), "la primera entrada se revierte con la transacción")
	list, err := l.stockIn.List(context.Background(), dto.StockInListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReconcile_LibroConsistenteSinDiferencias(t *testing.T) {
	l := newLedger(t)
	l.receive(t, 10, 80, entity.PaymentUnpaid)
	_, err := l.sell(4, 100)
	require.NoError(t, err)

	report, err := l.reconcile.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ProductsChecked)
	assert.Equal(t, 1, report.SuppliersChecked)
	assert.Empty(t, report.StockDrifts)
	assert.Empty(t, report.DebtDrifts)
}

type busyLocker struct{}

func (busyLocker) Obtain(context.Context, string, time.Duration) (ports.Lock, error) {
	return nil, ports.ErrLockNotObtained
}

func TestReconcile_LockOcupado(t *testing.T) {
	l := newLedger(t)
	uc := inventory.NewReconcileUseCase(l.store, busyLocker{}, nil, zerolog.Nop())

	_, err := uc.Run(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
