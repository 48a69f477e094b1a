package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	// ListWithDebt devuelve proveedores con total_debt > 0 ordenados por deuda descendente.
	ListWithDebt(ctx context.Context) ([]*entity.Supplier, error)
	// IncrementDebt suma delta (puede ser negativo) a total_debt de forma atómica.
	IncrementDebt(ctx context.Context, id string, delta decimal.Decimal) error
	// IncrementOpeningDebt suma delta a opening_debt (carga de históricos).
	IncrementOpeningDebt(ctx context.Context, id string, delta decimal.Decimal) error
	// SetDebt sobrescribe total_debt (solo reconciliación).
	SetDebt(ctx context.Context, id string, debt decimal.Decimal) error
}
