package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func send[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	var out T
	err := c.do(ctx, method, path, in, &out)
	return out, err
}

func id(s string) string { return url.PathEscape(s) }

// ── Auth ─────────────────────────────────────────────────────────────────────

// LoginResult respuesta de POST /auth/login.
type LoginResult struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	return send[LoginResult](ctx, c, http.MethodPost, "/auth/login", in)
}

// ── Configuración ────────────────────────────────────────────────────────────

func (c *Client) GetConfig(ctx context.Context) (entity.AppConfig, error) {
	return get[entity.AppConfig](ctx, c, "/config")
}

func (c *Client) UpdateConfig(ctx context.Context, cfg entity.AppConfig) (entity.AppConfig, error) {
	return send[entity.AppConfig](ctx, c, http.MethodPut, "/config", cfg)
}

func (c *Client) ListConversions(ctx context.Context) ([]entity.UnitConversion, error) {
	return get[[]entity.UnitConversion](ctx, c, "/conversiones")
}

// ── Insumos ──────────────────────────────────────────────────────────────────

func (c *Client) ListIngredients(ctx context.Context) ([]entity.Ingredient, error) {
	return get[[]entity.Ingredient](ctx, c, "/insumos")
}

func (c *Client) GetIngredient(ctx context.Context, ingredientID string) (entity.Ingredient, error) {
	return get[entity.Ingredient](ctx, c, "/insumos/"+id(ingredientID))
}

func (c *Client) CreateIngredient(ctx context.Context, in entity.Ingredient) (entity.Ingredient, error) {
	return send[entity.Ingredient](ctx, c, http.MethodPost, "/insumos", in)
}

func (c *Client) UpdateIngredient(ctx context.Context, in entity.Ingredient) (entity.Ingredient, error) {
	return send[entity.Ingredient](ctx, c, http.MethodPut, "/insumos/"+id(in.ID), in)
}

func (c *Client) DeleteIngredient(ctx context.Context, ingredientID string) error {
	return c.do(ctx, http.MethodDelete, "/insumos/"+id(ingredientID), nil, nil)
}

// RegisterPurchase registra una compra; el servidor actualiza stock y costo promedio.
func (c *Client) RegisterPurchase(ctx context.Context, p entity.Purchase) (entity.Ingredient, error) {
	return send[entity.Ingredient](ctx, c, http.MethodPost, "/insumos/compras", p)
}

// ── Productos ────────────────────────────────────────────────────────────────

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return get[[]entity.Product](ctx, c, "/productos")
}

func (c *Client) GetProduct(ctx context.Context, productID string) (entity.Product, error) {
	return get[entity.Product](ctx, c, "/productos/"+id(productID))
}

func (c *Client) CreateProduct(ctx context.Context, in entity.Product) (entity.Product, error) {
	return send[entity.Product](ctx, c, http.MethodPost, "/productos", in)
}

func (c *Client) UpdateProduct(ctx context.Context, in entity.Product) (entity.Product, error) {
	return send[entity.Product](ctx, c, http.MethodPut, "/productos/"+id(in.ID), in)
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/productos/"+id(productID), nil, nil)
}

// ── Recetas ──────────────────────────────────────────────────────────────────

func (c *Client) ListRecipes(ctx context.Context) ([]entity.Recipe, error) {
	return get[[]entity.Recipe](ctx, c, "/recetas")
}

func (c *Client) GetRecipe(ctx context.Context, recipeID string) (entity.Recipe, error) {
	return get[entity.Recipe](ctx, c, "/recetas/"+id(recipeID))
}

// RecipeByProduct receta asociada al producto (ErrNotFound si no tiene).
func (c *Client) RecipeByProduct(ctx context.Context, productID string) (entity.Recipe, error) {
	return get[entity.Recipe](ctx, c, "/recetas/producto/"+id(productID))
}

// CreateProductRecipe crea la receta de un producto que aún no la tiene.
func (c *Client) CreateProductRecipe(ctx context.Context, r entity.Recipe) (entity.Recipe, error) {
	return send[entity.Recipe](ctx, c, http.MethodPost, "/productos/"+id(r.ProductID)+"/receta", r)
}

// UpsertRecipe actualiza una receta existente (POST /recetas con id).
func (c *Client) UpsertRecipe(ctx context.Context, r entity.Recipe) (entity.Recipe, error) {
	return send[entity.Recipe](ctx, c, http.MethodPost, "/recetas", r)
}

func (c *Client) DeleteRecipe(ctx context.Context, recipeID string) error {
	return c.do(ctx, http.MethodDelete, "/recetas/"+id(recipeID), nil, nil)
}

// RecipeCost desglose de costo calculado por el servidor.
func (c *Client) RecipeCost(ctx context.Context, recipeID string) (entity.RecipeCostReport, error) {
	return get[entity.RecipeCostReport](ctx, c, "/recetas/"+id(recipeID)+"/costo")
}

// ── Categorías, proveedores y usuarios ───────────────────────────────────────

func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return get[[]entity.Category](ctx, c, "/categorias")
}

func (c *Client) SaveCategory(ctx context.Context, in entity.Category) (entity.Category, error) {
	if in.ID == "" {
		return send[entity.Category](ctx, c, http.MethodPost, "/categorias", in)
	}
	return send[entity.Category](ctx, c, http.MethodPut, "/categorias/"+id(in.ID), in)
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.do(ctx, http.MethodDelete, "/categorias/"+id(categoryID), nil, nil)
}

func (c *Client) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	return get[[]entity.Provider](ctx, c, "/proveedores")
}

func (c *Client) SaveProvider(ctx context.Context, in entity.Provider) (entity.Provider, error) {
	if in.ID == "" {
		return send[entity.Provider](ctx, c, http.MethodPost, "/proveedores", in)
	}
	return send[entity.Provider](ctx, c, http.MethodPut, "/proveedores/"+id(in.ID), in)
}

func (c *Client) DeleteProvider(ctx context.Context, providerID string) error {
	return c.do(ctx, http.MethodDelete, "/proveedores/"+id(providerID), nil, nil)
}

// UserInput alta o edición de usuario; la contraseña solo viaja hacia la API.
type UserInput struct {
	entity.User
	Password string `json:"password,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	return get[[]entity.User](ctx, c, "/usuarios")
}

// SaveUser crea (sin id) o actualiza un usuario. password vacío no cambia la contraseña.
func (c *Client) SaveUser(ctx context.Context, u entity.User, password string) (entity.User, error) {
	in := UserInput{User: u, Password: password}
	if in.ID == "" {
		return send[entity.User](ctx, c, http.MethodPost, "/usuarios", in)
	}
	return send[entity.User](ctx, c, http.MethodPut, "/usuarios/"+id(in.ID), in)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/usuarios/"+id(userID), nil, nil)
}

// ── Planilla y caja ──────────────────────────────────────────────────────────

func (c *Client) ListPayroll(ctx context.Context) ([]entity.PayrollEntry, error) {
	return get[[]entity.PayrollEntry](ctx, c, "/planilla")
}

func (c *Client) SavePayroll(ctx context.Context, in entity.PayrollEntry) (entity.PayrollEntry, error) {
	if in.ID == "" {
		return send[entity.PayrollEntry](ctx, c, http.MethodPost, "/planilla", in)
	}
	return send[entity.PayrollEntry](ctx, c, http.MethodPut, "/planilla/"+id(in.ID), in)
}

func (c *Client) DeletePayroll(ctx context.Context, entryID string) error {
	return c.do(ctx, http.MethodDelete, "/planilla/"+id(entryID), nil, nil)
}

// ListCash movimientos de caja con los filtros opcionales desde/hasta/tipo.
func (c *Client) ListCash(ctx context.Context, f entity.CashFilter) ([]entity.CashMovement, error) {
	q := url.Values{}
	if !f.From.IsZero() {
		q.Set("desde", f.From.Format(time.DateOnly))
	}
	if !f.To.IsZero() {
		q.Set("hasta", f.To.Format(time.DateOnly))
	}
	if f.Type != "" {
		q.Set("tipo", f.Type)
	}
	path := "/caja"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return get[[]entity.CashMovement](ctx, c, path)
}

func (c *Client) CreateCashMovement(ctx context.Context, in entity.CashMovement) (entity.CashMovement, error) {
	return send[entity.CashMovement](ctx, c, http.MethodPost, "/caja", in)
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return get[[]entity.Order](ctx, c, "/pedidos")
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (entity.Order, error) {
	return get[entity.Order](ctx, c, "/pedidos/"+id(orderID))
}

func (c *Client) SaveOrder(ctx context.Context, in entity.Order) (entity.Order, error) {
	if in.ID == "" {
		return send[entity.Order](ctx, c, http.MethodPost, "/pedidos", in)
	}
	return send[entity.Order](ctx, c, http.MethodPut, "/pedidos/"+id(in.ID), in)
}

func (c *Client) AddDeposit(ctx context.Context, orderID string, d entity.Deposit) (entity.Order, error) {
	return send[entity.Order](ctx, c, http.MethodPost, "/pedidos/"+id(orderID)+"/abonos", d)
}

// FinalizeOrder entrega el pedido registrando el pago del saldo.
func (c *Client) FinalizeOrder(ctx context.Context, orderID string, payments []entity.SalePayment) (entity.Order, error) {
	in := map[string]any{"pagos": payments}
	return send[entity.Order](ctx, c, http.MethodPost, "/pedidos/"+id(orderID)+"/finalizar", in)
}

// ── Producción, mermas y ventas ──────────────────────────────────────────────

func (c *Client) ListProduction(ctx context.Context) ([]entity.ProductionBatch, error) {
	return get[[]entity.ProductionBatch](ctx, c, "/produccion")
}

func (c *Client) RegisterProduction(ctx context.Context, in entity.ProductionBatch) (entity.ProductionBatch, error) {
	return send[entity.ProductionBatch](ctx, c, http.MethodPost, "/produccion", in)
}

func (c *Client) ListWaste(ctx context.Context) ([]entity.WasteEntry, error) {
	return get[[]entity.WasteEntry](ctx, c, "/mermas")
}

func (c *Client) RegisterWaste(ctx context.Context, in entity.WasteEntry) (entity.WasteEntry, error) {
	return send[entity.WasteEntry](ctx, c, http.MethodPost, "/mermas", in)
}

// CreateSale registra la venta; el servidor descuenta stock.
func (c *Client) CreateSale(ctx context.Context, in entity.Sale) (entity.Sale, error) {
	return send[entity.Sale](ctx, c, http.MethodPost, "/ventas", in)
}
