package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor. TotalDebt es la suma corriente de RemainingDebt
// de sus entradas; no se recalcula al leer. OpeningDebt compensa las entradas cargadas
// como histórico (TotalDebt = OpeningDebt + Σ RemainingDebt).
type Supplier struct {
	ID            string
	Name          string // único
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	TotalDebt     decimal.Decimal
	OpeningDebt   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SupplierRef referencia poblada a un proveedor (nil si ya no existe).
type SupplierRef struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
}
