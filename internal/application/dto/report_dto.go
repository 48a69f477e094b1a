package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Reporte de ventas ───────────────────────────────────────────────────────

// ProductSalesLine agregado de ventas por producto.
type ProductSalesLine struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// DailySalesLine agregado de ventas por día (YYYY-MM-DD).
type DailySalesLine struct {
	Date        string          `json:"date"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SalesCount  int             `json:"salesCount"`
}

// SalesReport GET /api/reports/sales.
type SalesReport struct {
	Envelope
	TotalSales    int                `json:"totalSales"`
	TotalRevenue  decimal.Decimal    `json:"totalRevenue"`
	DanglingCount int                `json:"danglingCount"`
	ProductSales  []ProductSalesLine `json:"productSales"`
	DailySales    []DailySalesLine   `json:"dailySales"`
	Data          []StockOutResponse `json:"data"`
}

// ─── Estado de stock ─────────────────────────────────────────────────────────

// StockStatusReport GET /api/reports/stock-status.
type StockStatusReport struct {
	Envelope
	TotalProducts       int                          `json:"totalProducts"`
	OutOfStockCount     int                          `json:"outOfStockCount"`
	LowStockCount       int                          `json:"lowStockCount"`
	HealthyStockCount   int                          `json:"healthyStockCount"`
	NegativeStock       []ProductResponse            `json:"negativeStock"`
	CategorizedProducts map[string][]ProductResponse `json:"categorizedProducts"`
	Data                []ProductResponse            `json:"data"`
}

// ─── Entregas de proveedores ─────────────────────────────────────────────────

// SupplierDeliveryLine agregado de entregas por proveedor.
type SupplierDeliveryLine struct {
	SupplierID    string          `json:"supplierId"`
	SupplierName  string          `json:"supplierName"`
	DeliveryCount int             `json:"deliveryCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	RemainingDebt decimal.Decimal `json:"remainingDebt"`
}

// SupplierDeliveriesReport GET /api/reports/supplier-deliveries.
type SupplierDeliveriesReport struct {
	Envelope
	TotalDeliveries    int                    `json:"totalDeliveries"`
	TotalAmount        decimal.Decimal        `json:"totalAmount"`
	TotalPaid          decimal.Decimal        `json:"totalPaid"`
	TotalDebt          decimal.Decimal        `json:"totalDebt"`
	DanglingCount      int                    `json:"danglingCount"`
	SupplierDeliveries []SupplierDeliveryLine `json:"supplierDeliveries"`
	Data               []StockInResponse      `json:"data"`
}

// ─── Rentabilidad ────────────────────────────────────────────────────────────

// Period rango efectivo de un reporte.
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ProductProfitLine rentabilidad por producto.
type ProductProfitLine struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold int             `json:"quantitySold"`
	AvgCost      decimal.Decimal `json:"avgCost"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// ProfitReport GET /api/reports/profit.
type ProfitReport struct {
	Envelope
	Period               Period              `json:"period"`
	TotalRevenue         decimal.Decimal     `json:"totalRevenue"`
	CostOfGoodsSold      decimal.Decimal     `json:"costOfGoodsSold"`
	GrossProfit          decimal.Decimal     `json:"grossProfit"`
	ProfitMargin         decimal.Decimal     `json:"profitMargin"`
	SalesCount           int                 `json:"salesCount"`
	DanglingCount        int                 `json:"danglingCount"`
	ProductProfitability []ProductProfitLine `json:"productProfitability"`
}

// ─── Deudas pendientes ───────────────────────────────────────────────────────

// DebtDelivery entrega con saldo pendiente.
type DebtDelivery struct {
	ID            string          `json:"id"`
	ProductName   string          `json:"productName"`
	DeliveryDate  time.Time       `json:"deliveryDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	RemainingDebt decimal.Decimal `json:"remainingDebt"`
}

// SupplierDebtLine deuda agrupada por proveedor.
type SupplierDebtLine struct {
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	TotalDebt    decimal.Decimal `json:"totalDebt"`
	Deliveries   []DebtDelivery  `json:"deliveries"`
}

// OutstandingDebtsReport GET /api/reports/outstanding-debts.
type OutstandingDebtsReport struct {
	Envelope
	TotalDebt              decimal.Decimal    `json:"totalDebt"`
	SuppliersWithDebtCount int                `json:"suppliersWithDebtCount"`
	UnpaidDeliveriesCount  int                `json:"unpaidDeliveriesCount"`
	DanglingCount          int                `json:"danglingCount"`
	Suppliers              []SupplierResponse `json:"suppliers"`
	SupplierDebts          []SupplierDebtLine `json:"supplierDebts"`
	UnpaidDeliveries       []StockInResponse  `json:"unpaidDeliveries"`
}

// ─── Ventas por producto ─────────────────────────────────────────────────────

// ProductSalesRow métricas de venta de un producto en el periodo.
type ProductSalesRow struct {
	ID            string          `json:"id"`
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	QuantitySold  int             `json:"quantitySold"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	CurrentStock  int             `json:"currentStock"`
	RevenueChange decimal.Decimal `json:"revenueChange"`
}

// ProductSalesReport GET /api/reports/product-sales.
type ProductSalesReport struct {
	Envelope
	Period            Period            `json:"period"`
	TotalProducts     int               `json:"totalProducts"`
	TotalProductsSold int               `json:"totalProductsSold"`
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	AverageSalePrice  decimal.Decimal   `json:"averageSalePrice"`
	Products          []ProductSalesRow `json:"products"`
}

// ─── Reconciliación ──────────────────────────────────────────────────────────

// CounterDrift diferencia entre el contador almacenado y el recalculado desde el libro.
type CounterDrift struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stored   string `json:"stored"`
	Expected string `json:"expected"`
}

// ReconcileReport POST /api/admin/reconcile.
type ReconcileReport struct {
	Envelope
	Fixed            bool           `json:"fixed"`
	ProductsChecked  int            `json:"productsChecked"`
	SuppliersChecked int            `json:"suppliersChecked"`
	StockDrifts      []CounterDrift `json:"stockDrifts"`
	DebtDrifts       []CounterDrift `json:"debtDrifts"`
}
