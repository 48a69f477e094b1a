package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockInRequest body para POST /api/stock-in.
type CreateStockInRequest struct {
	ProductID     string           `json:"product" validate:"required"`
	SupplierID    string           `json:"supplier" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice     decimal.Decimal  `json:"unitPrice"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	PaymentStatus string           `json:"paymentStatus" validate:"omitempty,oneof=Paid Partial Unpaid"`
	AmountPaid    *decimal.Decimal `json:"amountPaid"`
	DeliveryDate  *Date            `json:"deliveryDate"`
	Notes         string           `json:"notes" validate:"max=2000"`
}

// UpdateStockInRequest body para PUT /api/stock-in/:id.
// Product y Quantity existen solo para detectar y rechazar su modificación.
type UpdateStockInRequest struct {
	ProductID     *string          `json:"product"`
	Quantity      *int             `json:"quantity"`
	PaymentStatus *string          `json:"paymentStatus" validate:"omitempty,oneof=Paid Partial Unpaid"`
	AmountPaid    *decimal.Decimal `json:"amountPaid"`
	DeliveryDate  *Date            `json:"deliveryDate"`
	Notes         *string          `json:"notes" validate:"omitempty,max=2000"`
}

// ImportStockInRequest body para POST /api/stock-in/import.
// Con Backfill=true no se ajustan stock ni deuda (carga de históricos).
type ImportStockInRequest struct {
	Entries  []CreateStockInRequest `json:"entries" validate:"required,min=1,dive"`
	Backfill bool                   `json:"backfill"`
}

// StockInListQuery filtros del listado de entradas.
type StockInListQuery struct {
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
	Supplier      string `query:"supplier"`
	Product       string `query:"product"`
	PaymentStatus string `query:"paymentStatus"`
}

// UserRefResponse referencia poblada al usuario creador.
type UserRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockInResponse salida de una entrada con referencias pobladas.
type StockInResponse struct {
	ID            string               `json:"id"`
	Product       *ProductRefResponse  `json:"product"`
	Supplier      *SupplierRefResponse `json:"supplier"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     decimal.Decimal      `json:"unitPrice"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	PaymentStatus string               `json:"paymentStatus"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	RemainingDebt decimal.Decimal      `json:"remainingDebt"`
	DeliveryDate  time.Time            `json:"deliveryDate"`
	Notes         string               `json:"notes,omitempty"`
	CreatedBy     *UserRefResponse     `json:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ImportStockInResponse resultado de una importación.
type ImportStockInResponse struct {
	Envelope
	Count    int               `json:"count"`
	Backfill bool              `json:"backfill"`
	Data     []StockInResponse `json:"data"`
}

// CreateStockOutRequest body para POST /api/stock-out.
type CreateStockOutRequest struct {
	ProductID   string           `json:"product" validate:"required"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	SalePrice   decimal.Decimal  `json:"salePrice"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	Customer    string           `json:"customer" validate:"max=200"`
	SaleDate    *Date            `json:"saleDate"`
	Notes       string           `json:"notes" validate:"max=2000"`
}

// UpdateStockOutRequest body para PUT /api/stock-out/:id.
type UpdateStockOutRequest struct {
	ProductID   *string          `json:"product"`
	Quantity    *int             `json:"quantity"`
	SalePrice   *decimal.Decimal `json:"salePrice"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	Customer    *string          `json:"customer" validate:"omitempty,max=200"`
	SaleDate    *Date            `json:"saleDate"`
	Notes       *string          `json:"notes" validate:"omitempty,max=2000"`
}

// StockOutListQuery filtros del listado de salidas.
type StockOutListQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Product   string `query:"product"`
	Customer  string `query:"customer"`
}

// StockOutResponse salida de una venta con referencias pobladas.
type StockOutResponse struct {
	ID          string              `json:"id"`
	Product     *ProductRefResponse `json:"product"`
	Quantity    int                 `json:"quantity"`
	SalePrice   decimal.Decimal     `json:"salePrice"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Customer    string              `json:"customer,omitempty"`
	SaleDate    time.Time           `json:"saleDate"`
	Notes       string              `json:"notes,omitempty"`
	CreatedBy   *UserRefResponse    `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// TodaySalesResponse ventas del día con ingreso total.
type TodaySalesResponse struct {
	Envelope
	Count        int                `json:"count"`
	TotalRevenue decimal.Decimal    `json:"totalRevenue"`
	Data         []StockOutResponse `json:"data"`
}
