package inventory

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products  repository.ProductRepository
	Suppliers repository.SupplierRepository
	StockIns  repository.StockInRepository
	StockOuts repository.StockOutRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; ninguna de las dos fases queda aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
