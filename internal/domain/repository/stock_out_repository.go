package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// StockOutFilter filtros del libro de salidas.
type StockOutFilter struct {
	From      *time.Time // sale_date >= From
	To        *time.Time // sale_date <= To
	ProductID string
	Customer  string // coincidencia exacta
}

// StockOutRepository define el puerto de persistencia del libro de salidas (ventas).
type StockOutRepository interface {
	Create(ctx context.Context, out *entity.StockOut) error
	GetByID(ctx context.Context, id string) (*entity.StockOut, error)
	// Update persiste precio, total, cliente, fecha y notas. Nunca producto ni cantidad.
	Update(ctx context.Context, out *entity.StockOut) error
	Delete(ctx context.Context, id string) error
	// List ordena por sale_date descendente.
	List(ctx context.Context, filter StockOutFilter) ([]*entity.StockOut, error)
	SumQuantityByProduct(ctx context.Context) (map[string]int, error)
}
