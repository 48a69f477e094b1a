package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"required,min=1,max=100"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	CurrentStock  *int            `json:"currentStock"`
	MinStockLevel *int            `json:"minStockLevel" validate:"omitempty,gte=0"`
	Description   string          `json:"description" validate:"max=2000"`
}

// UpdateProductRequest entrada para actualizar un producto. CurrentStock aquí es un ajuste manual.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,min=1,max=100"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	CurrentStock  *int             `json:"currentStock"`
	MinStockLevel *int             `json:"minStockLevel" validate:"omitempty,gte=0"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
}

// ProductListQuery filtros del listado de productos.
type ProductListQuery struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	CurrentStock  int             `json:"currentStock"`
	MinStockLevel int             `json:"minStockLevel"`
	StockStatus   string          `json:"stockStatus"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ProductRefResponse referencia poblada a un producto dentro de un registro del libro.
type ProductRefResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}
