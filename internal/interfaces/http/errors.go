package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/domain"
)

// errorStatus status HTTP y código por tipo de error de dominio.
var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidOperation, fiber.StatusBadRequest, "INVALID_OPERATION"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError traduce err a la respuesta HTTP. Los errores no clasificados
// responden 400 con el mensaje subyacente.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			return writeError(c, e.status, e.code, domain.Message(err))
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no clasificado")
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
}

// errorHandler ErrorHandler de Fiber para errores fuera de los handlers (404 de ruta, panics recuperados).
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return writeError(c, fe.Code, "HTTP_ERROR", fe.Message)
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL", "Server Error")
	}
}
