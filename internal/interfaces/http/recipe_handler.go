package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/catalog"
	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain"
)

// RecipeHandler recetas y costeo.
type RecipeHandler struct {
	catalog *catalog.UseCase
	costing *costing.UseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(cat *catalog.UseCase, cost *costing.UseCase) *RecipeHandler {
	return &RecipeHandler{catalog: cat, costing: cost}
}

// List godoc
// @Summary      Listar recetas
// @Tags         recetas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Recipe
// @Router       /api/recetas [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	out, err := h.catalog.ListRecipes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta
// @Tags         recetas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  entity.Recipe
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.costing.Recipe(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Receta de un producto
// @Tags         recetas
// @Security     Bearer
// @Produce      json
// @Param        productoId  path  string  true  "ID del producto"
// @Success      200  {object}  entity.Recipe
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/producto/{productoId} [get]
func (h *RecipeHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.costing.RecipeForProduct(c.UserContext(), c.Params("productoId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear receta
// @Description  Las unidades de cada línea se validan contra la tabla de conversiones antes de enviar.
// @Tags         recetas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecipeRequest  true  "Receta"
// @Success      201   {object}  entity.Recipe
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/recetas [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.SaveRecipe(c.UserContext(), "", in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Tags         recetas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la receta"
// @Param        body  body  dto.RecipeRequest  true  "Receta"
// @Success      200   {object}  entity.Recipe
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/recetas/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.SaveRecipe(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar receta
// @Tags         recetas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la receta"
// @Success      204
// @Router       /api/recetas/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteRecipe(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost godoc
// @Summary      Costo de receta (cálculo local)
// @Description  Costea con los costos promedio vigentes y la tabla de conversiones. Una unidad sin conversión devuelve 422 con la línea afectada.
// @Tags         costeo
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id}/costo [get]
func (h *RecipeHandler) Cost(c *fiber.Ctx) error {
	out, err := h.costing.RecipeCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ServerCost godoc
// @Summary      Costo de receta informado por el servidor
// @Tags         costeo
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  entity.RecipeCostReport
// @Router       /api/recetas/{id}/costo-servidor [get]
func (h *RecipeHandler) ServerCost(c *fiber.Ctx) error {
	out, err := h.costing.ServerCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SuggestPrice godoc
// @Summary      Precio sugerido para un margen
// @Tags         costeo
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "ID de la receta"
// @Param        margen  query  number  true  "Margen objetivo en porcentaje (0 a 100, exclusivo)"
// @Success      200  {object}  dto.PriceSuggestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id}/precio-sugerido [get]
func (h *RecipeHandler) SuggestPrice(c *fiber.Ctx) error {
	margin, err := decimal.NewFromString(c.Query("margen"))
	if err != nil {
		return respondError(c, domain.Invalid("margen", "debe ser un número"))
	}
	out, err := h.costing.SuggestPrice(c.UserContext(), c.Params("id"), margin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CostSheet godoc
// @Summary      Hoja de costo en PDF
// @Tags         costeo
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {file}    binary
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id}/costo/pdf [get]
func (h *RecipeHandler) CostSheet(c *fiber.Ctx) error {
	body, name, err := h.costing.CostSheetPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(body)
}

// ProductCost godoc
// @Summary      Costo y margen de un producto según su receta
// @Tags         costeo
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.RecipeCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/costo [get]
func (h *RecipeHandler) ProductCost(c *fiber.Ctx) error {
	out, err := h.costing.ProductCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir cantidad entre unidades
// @Tags         costeo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertRequest  true  "cantidad, desde, hacia"
// @Success      200   {object}  dto.ConvertResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/conversiones/convertir [post]
func (h *RecipeHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.costing.Convert(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
