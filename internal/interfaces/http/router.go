package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/auth"
	"github.com/jhoicas/panaderia-erp/internal/application/catalog"
	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/application/finance"
	"github.com/jhoicas/panaderia-erp/internal/application/inventory"
	"github.com/jhoicas/panaderia-erp/internal/application/orders"
	"github.com/jhoicas/panaderia-erp/internal/application/sales"
	"github.com/jhoicas/panaderia-erp/internal/application/settings"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	SettingsUC  *settings.UseCase
	SalesUC     *sales.UseCase
	CatalogUC   *catalog.UseCase
	CostingUC   *costing.UseCase
	InventoryUC *inventory.UseCase
	OrdersUC    *orders.UseCase
	FinanceUC   *finance.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	const (
		admin    = entity.RoleAdmin
		cajero   = entity.RoleCajero
		panadero = entity.RolePanadero
	)
	anyRole := RequireRole(admin, cajero, panadero)
	adminOnly := RequireRole(admin)
	counter := RequireRole(admin, cajero)
	kitchen := RequireRole(admin, panadero)
	withRate := RequireExchangeRate(deps.SettingsUC)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	users := protected.Group("/usuarios", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	configHandler := NewConfigHandler(deps.SettingsUC)
	protected.Get("/config/tipo-cambio", anyRole, configHandler.GetExchangeRate)
	protected.Put("/config/tipo-cambio", adminOnly, configHandler.UpdateExchangeRate)

	// Ventas y caja
	salesHandler := NewSalesHandler(deps.SalesUC)
	protected.Post("/ventas", counter, withRate, salesHandler.Checkout)
	protected.Post("/caja/calcular-cambio", counter, withRate, salesHandler.CalculateChange)

	financeHandler := NewFinanceHandler(deps.FinanceUC)
	protected.Get("/caja", counter, withRate, financeHandler.ListCash)
	protected.Post("/caja", counter, withRate, financeHandler.RegisterCash)

	payroll := protected.Group("/planilla", adminOnly)
	payroll.Get("/", financeHandler.ListPayroll)
	payroll.Post("/", financeHandler.SavePayroll)
	payroll.Put("/:id", financeHandler.SavePayroll)
	payroll.Delete("/:id", financeHandler.DeletePayroll)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup := protected.Group("/pedidos", counter)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Post("/:id/abonos", withRate, orderHandler.AddDeposit)
	ordersGroup.Post("/:id/finalizar", withRate, orderHandler.Finalize)

	// Catálogo
	productHandler := NewProductHandler(deps.CatalogUC)
	recipeHandler := NewRecipeHandler(deps.CatalogUC, deps.CostingUC)
	products := protected.Group("/productos")
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Get("/:id/costo", kitchen, recipeHandler.ProductCost)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categories := protected.Group("/categorias")
	categories.Get("/", anyRole, productHandler.ListCategories)
	categories.Post("/", adminOnly, productHandler.SaveCategory)
	categories.Put("/:id", adminOnly, productHandler.SaveCategory)
	categories.Delete("/:id", adminOnly, productHandler.DeleteCategory)

	providers := protected.Group("/proveedores")
	providers.Get("/", anyRole, productHandler.ListProviders)
	providers.Post("/", adminOnly, productHandler.SaveProvider)
	providers.Put("/:id", adminOnly, productHandler.SaveProvider)
	providers.Delete("/:id", adminOnly, productHandler.DeleteProvider)

	// Recetas y costeo
	recipes := protected.Group("/recetas", kitchen)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/producto/:productoId", recipeHandler.ByProduct)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Get("/:id/costo", recipeHandler.Cost)
	recipes.Get("/:id/costo/pdf", recipeHandler.CostSheet)
	recipes.Get("/:id/costo-servidor", recipeHandler.ServerCost)
	recipes.Get("/:id/precio-sugerido", recipeHandler.SuggestPrice)
	recipes.Post("/", recipeHandler.Create)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
	protected.Post("/conversiones/convertir", anyRole, recipeHandler.Convert)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	ingredients := protected.Group("/insumos")
	ingredients.Get("/", anyRole, inventoryHandler.ListIngredients)
	ingredients.Get("/reabastecimiento", kitchen, inventoryHandler.Replenishment)
	ingredients.Get("/:id", anyRole, inventoryHandler.GetIngredient)
	ingredients.Post("/", kitchen, inventoryHandler.CreateIngredient)
	ingredients.Post("/compras", kitchen, inventoryHandler.RegisterPurchase)
	ingredients.Put("/:id", kitchen, inventoryHandler.UpdateIngredient)
	ingredients.Delete("/:id", adminOnly, inventoryHandler.DeleteIngredient)

	production := protected.Group("/produccion", kitchen)
	production.Get("/", inventoryHandler.ListProduction)
	production.Post("/previsualizar", inventoryHandler.PreviewProduction)
	production.Post("/", inventoryHandler.RegisterProduction)

	protected.Get("/mermas", anyRole, inventoryHandler.ListWaste)
	protected.Post("/mermas", anyRole, inventoryHandler.RegisterWaste)
}
