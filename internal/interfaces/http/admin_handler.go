package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// AdminHandler operaciones de mantenimiento.
type AdminHandler struct {
	reconcile *inventory.ReconcileUseCase
	log       zerolog.Logger
}

func NewAdminHandler(reconcile *inventory.ReconcileUseCase, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{reconcile: reconcile, log: log}
}

// Reconcile godoc
// @Summary      Reconciliar contadores
// @Description  Recalcula stock y deuda desde los libros y reporta diferencias; con fix=true las corrige.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        fix  query  bool  false  "Sobrescribir los contadores"
// @Success      200  {object}  dto.ReconcileReport
// @Failure      409  {object}  dto.ErrorResponse  "reconciliación en curso"
// @Router       /api/admin/reconcile [post]
func (h *AdminHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Run(c.UserContext(), c.QueryBool("fix", false))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
