package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/finance"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

const dateLayout = "2006-01-02"

// FinanceHandler caja y planilla.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// cashFilter lee desde, hasta y tipo del query string.
func cashFilter(c *fiber.Ctx) (entity.CashFilter, error) {
	var f entity.CashFilter
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, domain.Invalid("desde", "formato esperado AAAA-MM-DD")
		}
		f.From = t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, domain.Invalid("hasta", "formato esperado AAAA-MM-DD")
		}
		f.To = t
	}
	f.Type = c.Query("tipo")
	return f, nil
}

// ListCash godoc
// @Summary      Movimientos de caja con totales
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Fecha inicial AAAA-MM-DD"
// @Param        hasta  query  string  false  "Fecha final AAAA-MM-DD"
// @Param        tipo   query  string  false  "ingreso | egreso"
// @Success      200  {object}  dto.CashSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/caja [get]
func (h *FinanceHandler) ListCash(c *fiber.Ctx) error {
	f, err := cashFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Cash(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterCash godoc
// @Summary      Registrar movimiento de caja
// @Description  Los filtros del query indican el listado que se está mostrando para invalidarlo.
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        desde  query  string                   false  "Fecha inicial del listado mostrado"
// @Param        hasta  query  string                   false  "Fecha final del listado mostrado"
// @Param        tipo   query  string                   false  "Tipo del listado mostrado"
// @Param        body   body   dto.CashMovementRequest  true   "tipo, monto, moneda, concepto"
// @Success      201    {object}  entity.CashMovement
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/caja [post]
func (h *FinanceHandler) RegisterCash(c *fiber.Ctx) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	f, err := cashFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterCash(c.UserContext(), in, GetUserID(c), optional.Some(f))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayroll godoc
// @Summary      Listar planilla
// @Tags         planilla
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.PayrollEntry
// @Router       /api/planilla [get]
func (h *FinanceHandler) ListPayroll(c *fiber.Ctx) error {
	out, err := h.uc.ListPayroll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SavePayroll godoc
// @Summary      Crear o actualizar registro de planilla
// @Tags         planilla
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              false  "ID del registro (solo al actualizar)"
// @Param        body  body  dto.PayrollRequest  true   "Empleado, periodo y montos"
// @Success      200   {object}  entity.PayrollEntry
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/planilla/{id} [put]
// @Router       /api/planilla [post]
func (h *FinanceHandler) SavePayroll(c *fiber.Ctx) error {
	var in dto.PayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SavePayroll(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePayroll godoc
// @Summary      Eliminar registro de planilla
// @Tags         planilla
// @Security     Bearer
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Router       /api/planilla/{id} [delete]
func (h *FinanceHandler) DeletePayroll(c *fiber.Ctx) error {
	if err := h.uc.DeletePayroll(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
