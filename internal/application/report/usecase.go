// Package report contiene el motor de reportes: consultas de solo lectura sobre
// el registro de productos, proveedores y los libros de entradas y salidas.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/period"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	inv "github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

const (
	dayLayout = "2006-01-02"

	cacheKeyStockStatus      = "report:stock-status"
	cacheKeyOutstandingDebts = "report:outstanding-debts"
)

var hundred = decimal.NewFromInt(100)

// ReportUseCase genera los seis reportes. Nunca modifica datos.
// Las filas cuya referencia (producto o proveedor) ya no existe se excluyen de los
// agregados y se cuentan en DanglingCount.
type ReportUseCase struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	stockIns  repository.StockInRepository
	stockOuts repository.StockOutRepository
	cache     ports.ReportCache
	log       zerolog.Logger
}

// NewReportUseCase construye el caso de uso. cache nil desactiva el cacheo.
func NewReportUseCase(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	stockIns repository.StockInRepository,
	stockOuts repository.StockOutRepository,
	cache ports.ReportCache,
	log zerolog.Logger,
) *ReportUseCase {
	if cache == nil {
		cache = ports.NoopReportCache{}
	}
	return &ReportUseCase{
		products:  products,
		suppliers: suppliers,
		stockIns:  stockIns,
		stockOuts: stockOuts,
		cache:     cache,
		log:       log,
	}
}

// ─── Ventas ──────────────────────────────────────────────────────────────────

// Sales reporte de ventas del periodo: totales, ventas por producto y por día.
func (uc *ReportUseCase) Sales(ctx context.Context, q dto.DateRangeQuery) (*dto.SalesReport, error) {
	start, end, err := period.Parse(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	sales, err := uc.stockOuts.List(ctx, repository.StockOutFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	out := &dto.SalesReport{
		Envelope:     dto.OK(),
		TotalSales:   len(sales),
		TotalRevenue: decimal.Zero,
		ProductSales: []dto.ProductSalesLine{},
		DailySales:   []dto.DailySalesLine{},
		Data:         dto.FromStockOuts(sales),
	}
	byProduct := map[string]*dto.ProductSalesLine{}
	byDay := map[string]*dto.DailySalesLine{}
	for _, s := range sales {
		if s.Product == nil {
			out.DanglingCount++
			continue
		}
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalAmount)

		line, ok := byProduct[s.ProductID]
		if !ok {
			line = &dto.ProductSalesLine{
				ProductID:   s.ProductID,
				ProductName: s.Product.Name,
				Category:    s.Product.Category,
				TotalAmount: decimal.Zero,
			}
			byProduct[s.ProductID] = line
		}
		line.TotalQuantity += s.Quantity
		line.TotalAmount = line.TotalAmount.Add(s.TotalAmount)

		day := s.SaleDate.UTC().Format(dayLayout)
		d, ok := byDay[day]
		if !ok {
			d = &dto.DailySalesLine{Date: day, TotalAmount: decimal.Zero}
			byDay[day] = d
		}
		d.SalesCount++
		d.TotalAmount = d.TotalAmount.Add(s.TotalAmount)
	}
	for _, l := range byProduct {
		out.ProductSales = append(out.ProductSales, *l)
	}
	sort.Slice(out.ProductSales, func(i, j int) bool {
		a, b := out.ProductSales[i], out.ProductSales[j]
		if !a.TotalAmount.Equal(b.TotalAmount) {
			return a.TotalAmount.GreaterThan(b.TotalAmount)
		}
		return a.ProductName < b.ProductName
	})
	for _, d := range byDay {
		out.DailySales = append(out.DailySales, *d)
	}
	sort.Slice(out.DailySales, func(i, j int) bool { return out.DailySales[i].Date < out.DailySales[j].Date })
	return out, nil
}

// ─── Estado de stock ─────────────────────────────────────────────────────────

// StockStatus clasifica todos los productos por estado de stock y los agrupa por categoría.
// Los productos con stock negativo se listan aparte como anomalía (no se recortan a 0).
func (uc *ReportUseCase) StockStatus(ctx context.Context) (*dto.StockStatusReport, error) {
	var cached dto.StockStatusReport
	gen, hit := uc.fromCache(ctx, cacheKeyStockStatus, &cached)
	if hit {
		return &cached, nil
	}
	products, err := uc.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.StockStatusReport{
		Envelope:            dto.OK(),
		TotalProducts:       len(products),
		NegativeStock:       []dto.ProductResponse{},
		CategorizedProducts: map[string][]dto.ProductResponse{},
		Data:                dto.FromProducts(products),
	}
	for _, p := range out.Data {
		switch p.StockStatus {
		case entity.StockStatusOutOfStock:
			out.OutOfStockCount++
		case entity.StockStatusLowStock:
			out.LowStockCount++
		default:
			out.HealthyStockCount++
		}
		if p.CurrentStock < 0 {
			out.NegativeStock = append(out.NegativeStock, p)
		}
		out.CategorizedProducts[p.Category] = append(out.CategorizedProducts[p.Category], p)
	}
	if len(out.NegativeStock) > 0 {
		uc.log.Warn().Int("count", len(out.NegativeStock)).Msg("products with negative stock")
	}
	uc.toCache(ctx, cacheKeyStockStatus, gen, out)
	return out, nil
}

// ─── Entregas de proveedores ─────────────────────────────────────────────────

// SupplierDeliveries entregas del periodo, opcionalmente de un solo proveedor.
func (uc *ReportUseCase) SupplierDeliveries(ctx context.Context, q dto.DateRangeQuery, supplierID string) (*dto.SupplierDeliveriesReport, error) {
	start, end, err := period.Parse(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	deliveries, err := uc.stockIns.List(ctx, repository.StockInFilter{From: &start, To: &end, SupplierID: supplierID})
	if err != nil {
		return nil, err
	}
	out := &dto.SupplierDeliveriesReport{
		Envelope:           dto.OK(),
		TotalDeliveries:    len(deliveries),
		TotalAmount:        decimal.Zero,
		TotalPaid:          decimal.Zero,
		TotalDebt:          decimal.Zero,
		SupplierDeliveries: []dto.SupplierDeliveryLine{},
		Data:               dto.FromStockIns(deliveries),
	}
	bySupplier := map[string]*dto.SupplierDeliveryLine{}
	for _, d := range deliveries {
		out.TotalAmount = out.TotalAmount.Add(d.TotalAmount)
		out.TotalPaid = out.TotalPaid.Add(d.AmountPaid)
		out.TotalDebt = out.TotalDebt.Add(d.RemainingDebt)
		if d.Supplier == nil {
			out.DanglingCount++
			continue
		}
		line, ok := bySupplier[d.SupplierID]
		if !ok {
			line = &dto.SupplierDeliveryLine{
				SupplierID:    d.SupplierID,
				SupplierName:  d.Supplier.Name,
				TotalAmount:   decimal.Zero,
				AmountPaid:    decimal.Zero,
				RemainingDebt: decimal.Zero,
			}
			bySupplier[d.SupplierID] = line
		}
		line.DeliveryCount++
		line.TotalAmount = line.TotalAmount.Add(d.TotalAmount)
		line.AmountPaid = line.AmountPaid.Add(d.AmountPaid)
		line.RemainingDebt = line.RemainingDebt.Add(d.RemainingDebt)
	}
	for _, l := range bySupplier {
		out.SupplierDeliveries = append(out.SupplierDeliveries, *l)
	}
	sort.Slice(out.SupplierDeliveries, func(i, j int) bool {
		a, b := out.SupplierDeliveries[i], out.SupplierDeliveries[j]
		if !a.TotalAmount.Equal(b.TotalAmount) {
			return a.TotalAmount.GreaterThan(b.TotalAmount)
		}
		return a.SupplierName < b.SupplierName
	})
	return out, nil
}

// ─── Rentabilidad ────────────────────────────────────────────────────────────

// Profit ingreso, costo de ventas y margen del periodo. El costo unitario de un producto es
// la media simple de los precios de TODAS sus entradas (sin filtrar por fecha), calculada
// una sola vez por producto.
func (uc *ReportUseCase) Profit(ctx context.Context, q dto.DateRangeQuery) (*dto.ProfitReport, error) {
	start, end, err := period.Parse(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	sales, err := uc.stockOuts.List(ctx, repository.StockOutFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	out := &dto.ProfitReport{
		Envelope:             dto.OK(),
		Period:               dto.Period{StartDate: start, EndDate: end},
		TotalRevenue:         decimal.Zero,
		CostOfGoodsSold:      decimal.Zero,
		GrossProfit:          decimal.Zero,
		ProfitMargin:         decimal.Zero,
		SalesCount:           len(sales),
		ProductProfitability: []dto.ProductProfitLine{},
	}
	avgCost := map[string]decimal.Decimal{}
	byProduct := map[string]*dto.ProductProfitLine{}
	for _, s := range sales {
		if s.Product == nil {
			out.DanglingCount++
			continue
		}
		cost, ok := avgCost[s.ProductID]
		if !ok {
			prices, err := uc.stockIns.UnitPricesByProduct(ctx, s.ProductID)
			if err != nil {
				return nil, err
			}
			cost = inv.AverageUnitCost(prices)
			avgCost[s.ProductID] = cost
		}
		lineCost := cost.Mul(decimal.NewFromInt(int64(s.Quantity)))
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalAmount)
		out.CostOfGoodsSold = out.CostOfGoodsSold.Add(lineCost)

		line, ok := byProduct[s.ProductID]
		if !ok {
			line = &dto.ProductProfitLine{
				ProductID:   s.ProductID,
				ProductName: s.Product.Name,
				Revenue:     decimal.Zero,
				AvgCost:     cost.Round(2),
				Cost:        decimal.Zero,
			}
			byProduct[s.ProductID] = line
		}
		line.QuantitySold += s.Quantity
		line.Revenue = line.Revenue.Add(s.TotalAmount)
		line.Cost = line.Cost.Add(lineCost)
	}
	out.GrossProfit = out.TotalRevenue.Sub(out.CostOfGoodsSold)
	out.ProfitMargin = margin(out.GrossProfit, out.TotalRevenue)

	for _, l := range byProduct {
		l.Profit = l.Revenue.Sub(l.Cost)
		l.ProfitMargin = margin(l.Profit, l.Revenue)
		out.ProductProfitability = append(out.ProductProfitability, *l)
	}
	sort.Slice(out.ProductProfitability, func(i, j int) bool {
		a, b := out.ProductProfitability[i], out.ProductProfitability[j]
		if !a.Profit.Equal(b.Profit) {
			return a.Profit.GreaterThan(b.Profit)
		}
		return a.ProductName < b.ProductName
	})
	return out, nil
}

// margin porcentaje profit/revenue con 2 decimales; 0 si no hay ingreso.
func margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}

// ─── Deudas pendientes ───────────────────────────────────────────────────────

// OutstandingDebts proveedores con deuda y entregas no pagadas agrupadas por proveedor.
func (uc *ReportUseCase) OutstandingDebts(ctx context.Context) (*dto.OutstandingDebtsReport, error) {
	var cached dto.OutstandingDebtsReport
	gen, hit := uc.fromCache(ctx, cacheKeyOutstandingDebts, &cached)
	if hit {
		return &cached, nil
	}

	// Dos consultas independientes en paralelo
	type suppliersResult struct {
		rows []*entity.Supplier
		err  error
	}
	type deliveriesResult struct {
		rows []*entity.StockIn
		err  error
	}
	supChan := make(chan suppliersResult, 1)
	delChan := make(chan deliveriesResult, 1)
	go func() {
		rows, err := uc.suppliers.ListWithDebt(ctx)
		supChan <- suppliersResult{rows, err}
	}()
	go func() {
		rows, err := uc.stockIns.ListUnpaid(ctx)
		delChan <- deliveriesResult{rows, err}
	}()
	supRes := <-supChan
	delRes := <-delChan
	if supRes.err != nil {
		return nil, supRes.err
	}
	if delRes.err != nil {
		return nil, delRes.err
	}

	out := &dto.OutstandingDebtsReport{
		Envelope:               dto.OK(),
		TotalDebt:              decimal.Zero,
		SuppliersWithDebtCount: len(supRes.rows),
		UnpaidDeliveriesCount:  len(delRes.rows),
		Suppliers:              dto.FromSuppliers(supRes.rows),
		SupplierDebts:          []dto.SupplierDebtLine{},
		UnpaidDeliveries:       dto.FromStockIns(delRes.rows),
	}
	for _, s := range supRes.rows {
		out.TotalDebt = out.TotalDebt.Add(s.TotalDebt)
	}

	bySupplier := map[string]*dto.SupplierDebtLine{}
	var order []string
	for _, d := range delRes.rows {
		if d.Supplier == nil {
			out.DanglingCount++
			continue
		}
		line, ok := bySupplier[d.SupplierID]
		if !ok {
			line = &dto.SupplierDebtLine{
				SupplierID:   d.SupplierID,
				SupplierName: d.Supplier.Name,
				TotalDebt:    decimal.Zero,
				Deliveries:   []dto.DebtDelivery{},
			}
			bySupplier[d.SupplierID] = line
			order = append(order, d.SupplierID)
		}
		productName := ""
		if d.Product != nil {
			productName = d.Product.Name
		}
		line.TotalDebt = line.TotalDebt.Add(d.RemainingDebt)
		line.Deliveries = append(line.Deliveries, dto.DebtDelivery{
			ID:            d.ID,
			ProductName:   productName,
			DeliveryDate:  d.DeliveryDate,
			TotalAmount:   d.TotalAmount,
			AmountPaid:    d.AmountPaid,
			RemainingDebt: d.RemainingDebt,
		})
	}
	for _, id := range order {
		out.SupplierDebts = append(out.SupplierDebts, *bySupplier[id])
	}
	sort.SliceStable(out.SupplierDebts, func(i, j int) bool {
		return out.SupplierDebts[i].TotalDebt.GreaterThan(out.SupplierDebts[j].TotalDebt)
	})
	uc.toCache(ctx, cacheKeyOutstandingDebts, gen, out)
	return out, nil
}

// ─── Ventas por producto ─────────────────────────────────────────────────────

// ProductSales métricas de venta del periodo para TODOS los productos (también los que no vendieron).
// revenueChange es siempre 0: no hay línea base para comparar periodos.
func (uc *ReportUseCase) ProductSales(ctx context.Context, q dto.DateRangeQuery) (*dto.ProductSalesReport, error) {
	start, end, err := period.Parse(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	sales, err := uc.stockOuts.List(ctx, repository.StockOutFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	type agg struct {
		qty     int
		revenue decimal.Decimal
	}
	byProduct := make(map[string]*agg, len(products))
	for _, s := range sales {
		if s.Product == nil {
			continue
		}
		a, ok := byProduct[s.ProductID]
		if !ok {
			a = &agg{revenue: decimal.Zero}
			byProduct[s.ProductID] = a
		}
		a.qty += s.Quantity
		a.revenue = a.revenue.Add(s.TotalAmount)
	}

	out := &dto.ProductSalesReport{
		Envelope:         dto.OK(),
		Period:           dto.Period{StartDate: start, EndDate: end},
		TotalProducts:    len(products),
		TotalRevenue:     decimal.Zero,
		AverageSalePrice: decimal.Zero,
		Products:         make([]dto.ProductSalesRow, 0, len(products)),
	}
	for _, p := range products {
		row := dto.ProductSalesRow{
			ID:            p.ID,
			ProductName:   p.Name,
			Category:      p.Category,
			CurrentStock:  p.CurrentStock,
			TotalRevenue:  decimal.Zero,
			AveragePrice:  decimal.Zero,
			RevenueChange: decimal.Zero,
		}
		if a, ok := byProduct[p.ID]; ok {
			row.QuantitySold = a.qty
			row.TotalRevenue = a.revenue
			row.AveragePrice = averagePrice(a.revenue, a.qty)
		}
		out.TotalProductsSold += row.QuantitySold
		out.TotalRevenue = out.TotalRevenue.Add(row.TotalRevenue)
		out.Products = append(out.Products, row)
	}
	out.AverageSalePrice = averagePrice(out.TotalRevenue, out.TotalProductsSold)
	return out, nil
}

func averagePrice(revenue decimal.Decimal, qty int) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(qty))).Round(2)
}

// ─── Cache ───────────────────────────────────────────────────────────────────

// fromCache devuelve la generación leída; -1 si el cache no respondió.
func (uc *ReportUseCase) fromCache(ctx context.Context, key string, dst any) (int64, bool) {
	gen, ok, err := uc.cache.Get(ctx, key, dst)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		return -1, false
	}
	return gen, ok
}

func (uc *ReportUseCase) toCache(ctx context.Context, key string, gen int64, value any) {
	if gen < 0 {
		return
	}
	if err := uc.cache.Set(ctx, key, gen, value); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

// now reloj de los nombres de archivo exportados.
var now = time.Now
