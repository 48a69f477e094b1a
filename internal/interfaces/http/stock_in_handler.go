package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// StockInHandler libro de entradas (compras a proveedores).
type StockInHandler struct {
	uc  *inventory.StockInUseCase
	log zerolog.Logger
}

func NewStockInHandler(uc *inventory.StockInUseCase, log zerolog.Logger) *StockInHandler {
	return &StockInHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar entrada de mercancía
// @Description  Suma la cantidad al stock del producto y la deuda pendiente al proveedor.
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "product, supplier, quantity, unitPrice, paymentStatus, amountPaid"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *StockInHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Envelope: dto.OK(), Data: out})
}

// Import godoc
// @Summary      Importar entradas históricas
// @Description  Con backfill=true no se tocan stock ni deuda; las entradas se descuentan del stock y la deuda iniciales.
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportStockInRequest  true  "entries, backfill"
// @Success      201   {object}  dto.ImportStockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-in/import [post]
func (h *StockInHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportStockInRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [get]
func (h *StockInHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Envelope: dto.OK(), Data: out})
}

// List godoc
// @Summary      Listar entradas
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        startDate      query  string  false  "YYYY-MM-DD"
// @Param        endDate        query  string  false  "YYYY-MM-DD"
// @Param        supplier       query  string  false  "ID del proveedor"
// @Param        product        query  string  false  "ID del producto"
// @Param        paymentStatus  query  string  false  "Paid | Partial | Unpaid"
// @Success      200            {object}  dto.ListResponse
// @Failure      400            {object}  dto.ErrorResponse
// @Router       /api/stock-in [get]
func (h *StockInHandler) List(c *fiber.Ctx) error {
	var q dto.StockInListQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ListResponse{Envelope: dto.OK(), Count: len(out), Data: out})
}

// Update godoc
// @Summary      Actualizar pago de una entrada
// @Description  Solo campos de pago, fecha y notas; producto y cantidad son inmutables.
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrada"
// @Param        body  body  dto.UpdateStockInRequest  true  "paymentStatus, amountPaid, deliveryDate, notes"
// @Success      200   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [put]
func (h *StockInHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockInRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Envelope: dto.OK(), Data: out})
}

// Delete godoc
// @Summary      Eliminar entrada
// @Description  Revierte el stock y la deuda que la entrada había sumado.
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [delete]
func (h *StockInHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Envelope: dto.OK(), Data: fiber.Map{}})
}
