package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	appreport "github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/domain"
)

// ReportHandler expone los reportes en JSON o exportados (?format=pdf|xlsx).
type ReportHandler struct {
	uc        *appreport.ReportUseCase
	renderers map[string]ports.ReportRenderer
	log       zerolog.Logger
}

// NewReportHandler registra cada renderer bajo su extensión.
func NewReportHandler(uc *appreport.ReportUseCase, log zerolog.Logger, renderers ...ports.ReportRenderer) *ReportHandler {
	h := &ReportHandler{uc: uc, renderers: map[string]ports.ReportRenderer{}, log: log}
	for _, r := range renderers {
		h.renderers[r.Extension()] = r
	}
	return h
}

// send responde el reporte en el formato pedido.
func (h *ReportHandler) send(c *fiber.Ctx, kind string, report any) error {
	format := c.Query("format", appreport.FormatJSON)
	if format == appreport.FormatJSON {
		return c.JSON(report)
	}
	renderer, ok := h.renderers[format]
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION", "Unsupported format: "+format)
	}
	doc, err := appreport.Document(report)
	if err != nil {
		return respondError(c, h.log, err)
	}
	body, err := renderer.Render(doc)
	if err != nil {
		h.log.Error().Err(err).Str("report", kind).Str("format", format).Msg("exportar reporte")
		return writeError(c, fiber.StatusInternalServerError, "EXPORT_FAILED", "Error exporting report")
	}
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Attachment(appreport.FileName(kind, renderer.Extension()))
	return c.Send(body)
}

func (h *ReportHandler) dateRange(c *fiber.Ctx) (dto.DateRangeQuery, error) {
	var q dto.DateRangeQuery
	err := c.QueryParser(&q)
	return q, err
}

// Sales godoc
// @Summary      Reporte de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  true   "YYYY-MM-DD"
// @Param        endDate    query  string  true   "YYYY-MM-DD"
// @Param        format     query  string  false  "json | pdf | xlsx"
// @Success      200        {object}  dto.SalesReport
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	q, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Sales(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.send(c, "sales", out)
}

// StockStatus godoc
// @Summary      Estado del stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json | pdf | xlsx"
// @Success      200     {object}  dto.StockStatusReport
// @Router       /api/reports/stock-status [get]
func (h *ReportHandler) StockStatus(c *fiber.Ctx) error {
	out, err := h.uc.StockStatus(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.send(c, "stock-status", out)
}

// SupplierDeliveries godoc
// @Summary      Entregas por proveedor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  true   "YYYY-MM-DD"
// @Param        endDate    query  string  true   "YYYY-MM-DD"
// @Param        supplierId query  string  false  "ID del proveedor"
// @Param        format     query  string  false  "json | pdf | xlsx"
// @Success      200        {object}  dto.SupplierDeliveriesReport
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/supplier-deliveries [get]
func (h *ReportHandler) SupplierDeliveries(c *fiber.Ctx) error {
	var q dto.SupplierDeliveriesQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.SupplierDeliveries(c.UserContext(), q.Range(), q.SupplierID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.send(c, "supplier-deliveries", out)
}

// Profit godoc
// @Summary      Reporte de ganancias
// @Description  Costo de lo vendido con el costo unitario promedio simple de todas las entradas del producto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  true   "YYYY-MM-DD"
// @Param        endDate    query  string  true   "YYYY-MM-DD"
// @Param        format     query  string  false  "json | pdf | xlsx"
// @Success      200        {object}  dto.ProfitReport
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	q, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Profit(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.send(c, "profit", out)
}

// OutstandingDebts godoc
// @Summary      Deudas pendientes con proveedores
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json | pdf | xlsx"
// @Success      200     {object}  dto.OutstandingDebtsReport
// @Router       /api/reports/outstanding-debts [get]
func (h *ReportHandler) OutstandingDebts(c *fiber.Ctx) error {
	out, err := h.uc.OutstandingDebts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.send(c, "outstanding-debts", out)
}

// ProductSales godoc
// @Summary      Ventas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  true   "YYYY-MM-DD"
// @Param        endDate    query  string  true   "YYYY-MM-DD"
// @Param        format     query  string  false  "json | pdf | xlsx"
// @Success      200        {object}  dto.ProductSalesReport
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      500        {object}  dto.ErrorResponse
// @Router       /api/reports/product-sales [get]
func (h *ReportHandler) ProductSales(c *fiber.Ctx) error {
	q, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.ProductSales(c.UserContext(), q)
	if err != nil {
		// Solo los errores de validación se exponen; el resto no filtra detalles.
		if errors.Is(err, domain.ErrValidation) {
			return respondError(c, h.log, err)
		}
		h.log.Error().Err(err).Msg("reporte de ventas por producto")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL", "Error generating product sales report")
	}
	return h.send(c, "product-sales", out)
}
