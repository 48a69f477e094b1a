package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockInFilter filtros del libro de entradas. Campos vacíos/nil no filtran.
type StockInFilter struct {
	From          *time.Time // delivery_date >= From
	To            *time.Time // delivery_date <= To
	SupplierID    string
	ProductID     string
	PaymentStatus string
}

// StockInRepository define el puerto de persistencia del libro de entradas.
// Las lecturas devuelven las referencias a producto, proveedor y usuario resueltas.
type StockInRepository interface {
	Create(ctx context.Context, in *entity.StockIn) error
	GetByID(ctx context.Context, id string) (*entity.StockIn, error)
	// Update persiste los campos editables: estado de pago, montos, fecha y notas.
	Update(ctx context.Context, in *entity.StockIn) error
	Delete(ctx context.Context, id string) error
	// List ordena por delivery_date descendente.
	List(ctx context.Context, filter StockInFilter) ([]*entity.StockIn, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
	// ListUnpaid devuelve entradas con payment_status <> 'Paid' y remaining_debt > 0.
	ListUnpaid(ctx context.Context) ([]*entity.StockIn, error)
	// UnitPricesByProduct devuelve el precio unitario de TODAS las entradas de un producto (sin rango).
	UnitPricesByProduct(ctx context.Context, productID string) ([]decimal.Decimal, error)
	// SumQuantityByProduct y SumDebtBySupplier alimentan la reconciliación.
	SumQuantityByProduct(ctx context.Context) (map[string]int, error)
	SumDebtBySupplier(ctx context.Context) (map[string]decimal.Decimal, error)
}
