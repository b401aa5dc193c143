package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/sales"
)

// SalesHandler cobro en mostrador y calculadora de cambio.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Checkout godoc
// @Summary      Cobrar venta
// @Description  Concilia los pagos (hasta uno por moneda) contra el total del carrito. Un pago insuficiente se rechaza sin llamar a la API.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito y pagos"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Checkout(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CalculateChange godoc
// @Summary      Calcular cambio
// @Description  Solo conciliación: no registra nada.
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangeRequest  true  "Total y pagos"
// @Success      200   {object}  dto.ChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/caja/calcular-cambio [post]
func (h *SalesHandler) CalculateChange(c *fiber.Ctx) error {
	var in dto.ChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CalculateChange(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
