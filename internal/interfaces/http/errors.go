package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/profit-ledger/internal/application/dto"
	"github.com/jhoicas/profit-ledger/internal/domain"
	"github.com/jhoicas/profit-ledger/pkg/logger"
)

// writeError traduce errores de dominio a HTTP:
//   - 400 VALIDATION           → entrada inválida, Details con campo -> regla.
//   - 422 NO_COST_BASIS        → venta sin compras previas del SKU (nunca costo cero).
//   - 503 STORAGE_UNAVAILABLE  → el almacén no respondió; no se guardó nada.
//   - 500 INTERNAL             → cualquier otro error.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		inv *domain.InvalidInputError
		nc  *domain.NoCostBasisError
	)
	switch {
	case errors.As(err, &inv):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Details: inv.Fields,
		})
	case errors.As(err, &nc):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "NO_COST_BASIS",
			Message: nc.Error(),
			Details: map[string]string{"sku": nc.SKU, "date": nc.Date.Format(domain.DateLayout)},
		})
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("almacén no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible, intente más tarde",
		})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
