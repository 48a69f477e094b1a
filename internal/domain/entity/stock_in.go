package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una entrada.
const (
	PaymentPaid    = "Paid"
	PaymentPartial = "Partial"
	PaymentUnpaid  = "Unpaid"
)

// StockIn entrada de mercancía (compra a proveedor).
// Invariante: AmountPaid + RemainingDebt == TotalAmount.
type StockIn struct {
	ID            string
	ProductID     string
	SupplierID    string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaymentStatus string
	AmountPaid    decimal.Decimal
	RemainingDebt decimal.Decimal
	DeliveryDate  time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time

	// Referencias resueltas al leer (nil si la referencia quedó colgando).
	Product       *ProductRef
	Supplier      *SupplierRef
	CreatedByName string
}
