package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/settings"
)

// ConfigHandler tipo de cambio del negocio.
type ConfigHandler struct {
	uc *settings.UseCase
}

// NewConfigHandler construye el handler.
func NewConfigHandler(uc *settings.UseCase) *ConfigHandler {
	return &ConfigHandler{uc: uc}
}

// GetExchangeRate godoc
// @Summary      Tipo de cambio vigente
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExchangeRateResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/config/tipo-cambio [get]
func (h *ConfigHandler) GetExchangeRate(c *fiber.Ctx) error {
	out, err := h.uc.ExchangeRate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateExchangeRate godoc
// @Summary      Actualizar tipo de cambio
// @Description  Solo administradores. El nuevo valor aplica a los cobros siguientes; los pagos ya registrados conservan la tasa capturada.
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExchangeRateRequest  true  "tipoCambio > 0"
// @Success      200   {object}  dto.ExchangeRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/config/tipo-cambio [put]
func (h *ConfigHandler) UpdateExchangeRate(c *fiber.Ctx) error {
	var in dto.ExchangeRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateExchangeRate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
