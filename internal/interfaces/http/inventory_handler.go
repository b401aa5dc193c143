package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/inventory"
)

// InventoryHandler insumos, compras, producción y mermas (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListIngredients godoc
// @Summary      Listar insumos
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Ingredient
// @Router       /api/insumos [get]
func (h *InventoryHandler) ListIngredients(c *fiber.Ctx) error {
	out, err := h.uc.ListIngredients(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetIngredient godoc
// @Summary      Obtener insumo
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  entity.Ingredient
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [get]
func (h *InventoryHandler) GetIngredient(c *fiber.Ctx) error {
	out, err := h.uc.GetIngredient(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateIngredient godoc
// @Summary      Crear insumo
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngredientRequest  true  "Datos del insumo"
// @Success      201   {object}  entity.Ingredient
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/insumos [post]
func (h *InventoryHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateIngredient(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateIngredient godoc
// @Summary      Actualizar insumo
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del insumo"
// @Param        body  body  dto.IngredientRequest  true  "Datos del insumo"
// @Success      200   {object}  entity.Ingredient
// @Router       /api/insumos/{id} [put]
func (h *InventoryHandler) UpdateIngredient(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateIngredient(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteIngredient godoc
// @Summary      Eliminar insumo
// @Tags         insumos
// @Security     Bearer
// @Param        id   path  string  true  "ID del insumo"
// @Success      204
// @Router       /api/insumos/{id} [delete]
func (h *InventoryHandler) DeleteIngredient(c *fiber.Ctx) error {
	if err := h.uc.DeleteIngredient(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterPurchase godoc
// @Summary      Registrar compra de insumo
// @Description  Devuelve la proyección local de stock y costo promedio junto con el insumo que devuelve el servidor.
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "insumoId, cantidad, costoTotal"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/compras [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterPurchase(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Replenishment godoc
// @Summary      Sugerencia de compra de insumos
// @Description  Insumos bajo su stock mínimo, ordenados por urgencia.
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/insumos/reabastecimiento [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.uc.Replenishment(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListProduction godoc
// @Summary      Listar producción
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.ProductionBatch
// @Router       /api/produccion [get]
func (h *InventoryHandler) ListProduction(c *fiber.Ctx) error {
	out, err := h.uc.ListProduction(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PreviewProduction godoc
// @Summary      Consumo esperado de una producción
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionRequest  true  "productoId, tandas"
// @Success      200   {object}  dto.ProductionPreview
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/produccion/previsualizar [post]
func (h *InventoryHandler) PreviewProduction(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PreviewProduction(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterProduction godoc
// @Summary      Registrar producción
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionRequest  true  "productoId, tandas"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produccion [post]
func (h *InventoryHandler) RegisterProduction(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterProduction(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListWaste godoc
// @Summary      Listar mermas
// @Tags         mermas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.WasteEntry
// @Router       /api/mermas [get]
func (h *InventoryHandler) ListWaste(c *fiber.Ctx) error {
	out, err := h.uc.ListWaste(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterWaste godoc
// @Summary      Registrar merma
// @Tags         mermas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteRequest  true  "productoId, cantidad, motivo"
// @Success      201   {object}  entity.WasteEntry
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/mermas [post]
func (h *InventoryHandler) RegisterWaste(c *fiber.Ctx) error {
	var in dto.WasteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterWaste(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
