package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// ProductFilter filtros opcionales para el listado de productos.
type ProductFilter struct {
	Category string
	Search   string // coincidencia parcial por nombre, sin distinguir mayúsculas
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea el registro hasta el fin de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// List devuelve los productos ordenados por (category, name).
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// IncrementStock suma delta (puede ser negativo) a current_stock de forma atómica.
	IncrementStock(ctx context.Context, id string, delta int) error
	// IncrementOpeningStock suma delta a opening_stock (carga de históricos).
	IncrementOpeningStock(ctx context.Context, id string, delta int) error
	// SetStock sobrescribe current_stock (solo reconciliación).
	SetStock(ctx context.Context, id string, stock int) error
}
