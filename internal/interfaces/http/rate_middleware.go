package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
)

// rateChecker contrato mínimo para verificar el tipo de cambio. Lo implementa *settings.UseCase.
type rateChecker interface {
	CurrentPair(ctx context.Context) (currency.Pair, error)
}

// RequireExchangeRate bloquea las rutas que cobran en dos monedas si el tipo de cambio
// remoto no está configurado. Debe usarse después de AuthMiddleware (necesita el token).
//
// Comportamiento:
//   - 409 Conflict → tipo de cambio ausente o no positivo.
//   - Error de red o sesión → se traduce como cualquier otro error de la API.
func RequireExchangeRate(checker rateChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := checker.CurrentPair(c.UserContext())
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "RATE_NOT_CONFIGURED",
				Message: "configure el tipo de cambio antes de cobrar",
			})
		}
		return respondError(c, err)
	}
}
