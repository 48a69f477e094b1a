package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOut salida de mercancía (venta).
type StockOut struct {
	ID          string
	ProductID   string
	Quantity    int
	SalePrice   decimal.Decimal
	TotalAmount decimal.Decimal
	Customer    string
	SaleDate    time.Time
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time

	Product       *ProductRef // nil si el producto ya no existe
	CreatedByName string
}
