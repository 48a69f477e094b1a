package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
)

// Formatos de exportación aceptados por ?format=.
const (
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var printer = message.NewPrinter(language.English)

// money formatea un importe con separador de miles y 2 decimales (1,234.50).
func money(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func percent(d decimal.Decimal) string {
	return printer.Sprintf("%.2f%%", d.InexactFloat64())
}

func count(n int) string {
	return printer.Sprintf("%d", n)
}

// FileName nombre de descarga para un reporte exportado.
func FileName(kind, ext string) string {
	return fmt.Sprintf("%s-report-%s.%s", kind, now().Format("20060102-150405"), ext)
}

// Document convierte un reporte en su representación tabular para los exportadores.
func Document(v any) (ports.ReportDocument, error) {
	switch r := v.(type) {
	case *dto.SalesReport:
		return salesDocument(r), nil
	case *dto.StockStatusReport:
		return stockStatusDocument(r), nil
	case *dto.SupplierDeliveriesReport:
		return supplierDeliveriesDocument(r), nil
	case *dto.ProfitReport:
		return profitDocument(r), nil
	case *dto.OutstandingDebtsReport:
		return outstandingDebtsDocument(r), nil
	case *dto.ProductSalesReport:
		return productSalesDocument(r), nil
	}
	return ports.ReportDocument{}, fmt.Errorf("report: tipo no exportable %T", v)
}

func salesDocument(r *dto.SalesReport) ports.ReportDocument {
	doc := ports.ReportDocument{
		Title: "Sales Report",
		Summary: []ports.SummaryItem{
			{Label: "Total sales", Value: count(r.TotalSales)},
			{Label: "Total revenue", Value: money(r.TotalRevenue)},
			{Label: "Unresolved product references", Value: count(r.DanglingCount)},
		},
		Columns: []string{"Product", "Category", "Quantity", "Amount"},
	}
	for _, l := range r.ProductSales {
		doc.Rows = append(doc.Rows, []string{l.ProductName, l.Category, count(l.TotalQuantity), money(l.TotalAmount)})
	}
	return doc
}

func stockStatusDocument(r *dto.StockStatusReport) ports.ReportDocument {
	doc := ports.ReportDocument{
		Title: "Stock Status Report",
		Summary: []ports.SummaryItem{
			{Label: "Products", Value: count(r.TotalProducts)},
			{Label: "Out of stock", Value: count(r.OutOfStockCount)},
			{Label: "Low stock", Value: count(r.LowStockCount)},
			{Label: "In stock", Value: count(r.HealthyStockCount)},
			{Label: "Negative stock", Value: count(len(r.NegativeStock))},
		},
		Columns: []string{"Category", "Product", "Stock", "Min level", "Status"},
	}
	categories := make([]string, 0, len(r.CategorizedProducts))
	for c := range r.CategorizedProducts {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		for _, p := range r.CategorizedProducts[c] {
			doc.Rows = append(doc.Rows, []string{c, p.Name, strconv.Itoa(p.CurrentStock), strconv.Itoa(p.MinStockLevel), p.StockStatus})
		}
	}
	return doc
}

func supplierDeliveriesDocument(r *dto.SupplierDeliveriesReport) ports.ReportDocument {
	doc := ports.ReportDocument{
		Title: "Supplier Deliveries Report",
		Summary: []ports.SummaryItem{
			{Label: "Deliveries", Value: count(r.TotalDeliveries)},
			{Label: "Total amount", Value: money(r.TotalAmount)},
			{Label: "Total paid", Value: money(r.TotalPaid)},
			{Label: "Total debt", Value: money(r.TotalDebt)},
		},
		Columns: []string{"Supplier", "Deliveries", "Amount", "Paid", "Debt"},
	}
	for _, l := range r.SupplierDeliveries {
		doc.Rows = append(doc.Rows, []string{l.SupplierName, count(l.DeliveryCount), money(l.TotalAmount), money(l.AmountPaid), money(l.RemainingDebt)})
	}
	return doc
}

func profitDocument(r *dto.ProfitReport) ports.ReportDocument {
	doc := ports.ReportDocument{
		Title:    "Profit Report",
		Subtitle: fmt.Sprintf("%s to %s", r.Period.StartDate.Format(dayLayout), r.Period.EndDate.Format(dayLayout)),
		Summary: []ports.SummaryItem{
			{Label: "Revenue", Value: money(r.TotalRevenue)},
			{Label: "Cost of goods sold", Value: money(r.CostOfGoodsSold)},
			{Label: "Gross profit", Value: money(r.GrossProfit)},
			{Label: "Profit margin", Value: percent(r.ProfitMargin)},
			{Label: "Sales", Value: count(r.SalesCount)},
		},
		Columns: []string{"Product", "Qty sold", "Revenue", "Avg cost", "Cost", "Profit", "Margin"},
	}
	for _, l := range r.ProductProfitability {
		doc.Rows = append(doc.Rows, []string{
			l.ProductName, count(l.QuantitySold), money(l.Revenue), money(l.AvgCost),
			money(l.Cost), money(l.Profit), percent(l.ProfitMargin),
		})
	}
	return doc
}

func outstandingDebtsDocument(r *dto.OutstandingDebtsReport) ports.ReportDocument {
	doc := ports.ReportDocument{
		Title: "Outstanding Debts Report",
		Summary: []ports.SummaryItem{
			{Label: "Total debt", Value: money(r.TotalDebt)},
			{Label: "Suppliers with debt", Value: count(r.SuppliersWithDebtCount)},
			{Label: "Unpaid deliveries", Value: count(r.UnpaidDeliveriesCount)},
		},
		Columns: []string{"Supplier", "Product", "Delivery date", "Amount", "Paid", "Debt"},
	}
	for _, s := range r.SupplierDebts {
		for _, d := range s.Deliveries {
			doc.Rows = append(doc.Rows, []string{
				s.SupplierName, d.ProductName, d.DeliveryDate.Format(dayLayout),
				money(d.TotalAmount), money(d.AmountPaid), money(d.RemainingDebt),
			})
		}
	}
	return doc
}

func productSalesDocument(r *dto.ProductSalesReport) ports.ReportDocument {
	doc := ports.ReportDocument{
		Title:    "Product Sales Report",
		Subtitle: fmt.Sprintf("%s to %s", r.Period.StartDate.Format(dayLayout), r.Period.EndDate.Format(dayLayout)),
		Summary: []ports.SummaryItem{
			{Label: "Products", Value: count(r.TotalProducts)},
			{Label: "Units sold", Value: count(r.TotalProductsSold)},
			{Label: "Revenue", Value: money(r.TotalRevenue)},
			{Label: "Average sale price", Value: money(r.AverageSalePrice)},
		},
		Columns: []string{"Product", "Category", "Qty sold", "Revenue", "Avg price", "Stock"},
	}
	for _, p := range r.Products {
		doc.Rows = append(doc.Rows, []string{
			p.ProductName, p.Category, count(p.QuantitySold), money(p.TotalRevenue),
			money(p.AveragePrice), strconv.Itoa(p.CurrentStock),
		})
	}
	return doc
}
