package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStockLevel umbral de stock bajo cuando el producto no define uno.
const DefaultMinStockLevel = 10

// Estados de stock derivados (ver Product.StockStatus).
const (
	StockStatusOutOfStock = "Out of Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusHealthy    = "In Stock"
)

// Product representa un producto del inventario.
// CurrentStock es un contador mantenido por las reglas de consistencia (entradas y salidas);
// OpeningStock acumula el stock inicial y los ajustes manuales para poder reconciliar.
type Product struct {
	ID            string
	Name          string // único
	Category      string
	UnitPrice     decimal.Decimal
	CurrentStock  int
	MinStockLevel int
	OpeningStock  int
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus clasifica el stock actual contra el mínimo configurado.
func (p *Product) StockStatus() string {
	switch {
	case p.CurrentStock <= 0:
		return StockStatusOutOfStock
	case p.CurrentStock < p.MinStockLevel:
		return StockStatusLowStock
	default:
		return StockStatusHealthy
	}
}

// ProductRef referencia "poblada" a un producto dentro de un registro del libro.
// Es nil cuando el producto referenciado ya no existe.
type ProductRef struct {
	ID        string
	Name      string
	Category  string
	UnitPrice decimal.Decimal
}
