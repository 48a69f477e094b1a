package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// StockOutHandler libro de salidas (ventas).
type StockOutHandler struct {
	uc  *inventory.StockOutUseCase
	log zerolog.Logger
}

func NewStockOutHandler(uc *inventory.StockOutUseCase, log zerolog.Logger) *StockOutHandler {
	return &StockOutHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOutRequest  true  "product, quantity, salePrice"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse  "stock insuficiente"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *StockOutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Envelope: dto.OK(), Data: out})
}

// Today godoc
// @Summary      Ventas de hoy
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TodaySalesResponse
// @Router       /api/stock-out/today [get]
func (h *StockOutHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [get]
func (h *StockOutHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Envelope: dto.OK(), Data: out})
}

// List godoc
// @Summary      Listar ventas
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        product    query  string  false  "ID del producto"
// @Param        customer   query  string  false  "Búsqueda parcial por cliente"
// @Success      200        {object}  dto.ListResponse
// @Router       /api/stock-out [get]
func (h *StockOutHandler) List(c *fiber.Ctx) error {
	var q dto.StockOutListQuery
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
// @Summary      Actualizar venta
// @Description  Precio, total, cliente, fecha y notas. Producto y cantidad son inmutables.
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateStockOutRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [put]
func (h *StockOutHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockOutRequest
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
// @Summary      Eliminar venta
// @Description  Devuelve la cantidad vendida al stock del producto.
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [delete]
func (h *StockOutHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Envelope: dto.OK(), Data: fiber.Map{}})
}
