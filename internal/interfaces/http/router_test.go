package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/sales"
	"github.com/jhoicas/panaderia-erp/internal/application/settings"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
	apphttp "github.com/jhoicas/panaderia-erp/internal/interfaces/http"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// remoteAPI API remota en memoria con lo mínimo para costeo, cobro y configuración.
type remoteAPI struct {
	rate     decimal.Decimal
	products []entity.Product
	sales    []entity.Sale
}

func (r *remoteAPI) GetConfig(context.Context) (entity.AppConfig, error) {
	return entity.AppConfig{ExchangeRate: r.rate}, nil
}

func (r *remoteAPI) UpdateConfig(_ context.Context, cfg entity.AppConfig) (entity.AppConfig, error) {
	r.rate = cfg.ExchangeRate
	return cfg, nil
}

func (r *remoteAPI) ListProducts(context.Context) ([]entity.Product, error) { return r.products, nil }

func (r *remoteAPI) CreateSale(_ context.Context, s entity.Sale) (entity.Sale, error) {
	s.ID = "venta-1"
	r.sales = append(r.sales, s)
	return s, nil
}

func (r *remoteAPI) GetRecipe(_ context.Context, id string) (entity.Recipe, error) {
	if id != "rec-1" {
		return entity.Recipe{}, domain.ErrNotFound
	}
	return entity.Recipe{
		ID:           "rec-1",
		ProductID:    "pan-1",
		Yield:        d("4"),
		LaborCost:    d("10"),
		OverheadCost: d("5"),
		Lines:        []entity.RecipeLine{{IngredientID: "X", Quantity: d("2"), Unit: "LB"}},
	}, nil
}

func (r *remoteAPI) RecipeByProduct(ctx context.Context, productID string) (entity.Recipe, error) {
	return r.GetRecipe(ctx, "rec-1")
}

func (r *remoteAPI) ListIngredients(context.Context) ([]entity.Ingredient, error) {
	return []entity.Ingredient{{ID: "X", Name: "Harina", Unit: "KG", AverageCost: d("50")}}, nil
}

func (r *remoteAPI) ListConversions(context.Context) ([]entity.UnitConversion, error) {
	return []entity.UnitConversion{{From: "LB", To: "KG", Factor: d("0.4536")}}, nil
}

func (r *remoteAPI) RecipeCost(context.Context, string) (entity.RecipeCostReport, error) {
	return entity.RecipeCostReport{}, nil
}

type fakeSheet struct{}

func (fakeSheet) GenerateCostSheet(context.Context, costing.CostSheet) ([]byte, error) {
	return []byte("%PDF-1.4 hoja"), nil
}

func newRouterApp(t *testing.T, rate string) (*fiber.App, *remoteAPI) {
	t.Helper()
	api := &remoteAPI{
		rate:     d(rate),
		products: []entity.Product{{ID: "pan-1", Name: "Pan de yema", Price: d("20"), Active: true}},
	}
	store := cachestore.NewMemoryStore(0)
	runner := mutation.NewRunner(store, nil, nil)
	settingsUC := settings.NewUseCase(api, store, runner, "NIO", "USD")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SettingsUC: settingsUC,
		SalesUC:    sales.NewUseCase(api, settingsUC, store, runner),
		CostingUC:  costing.NewUseCase(api, store, fakeSheet{}, "Panadería La Espiga", "NIO"),
		JWTSecret:  testJWTSecret,
	})
	return app, api
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRouter_CostoDeReceta(t *testing.T) {
	app, _ := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodGet, "/api/recetas/rec-1/costo", "panadero", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.RecipeCostResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, d("60.36").Equal(out.Cost.TotalCost), out.Cost.TotalCost.String())
	assert.True(t, d("15.09").Equal(out.Cost.UnitCost), out.Cost.UnitCost.String())
	assert.True(t, out.Pricing.IsSome())
}

func TestRouter_CajeroNoVeRecetas(t *testing.T) {
	app, _ := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodGet, "/api/recetas/rec-1/costo", "cajero", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_RecetaInexistente(t *testing.T) {
	app, _ := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodGet, "/api/recetas/rec-9/costo", "admin", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_HojaDeCostoPDF(t *testing.T) {
	app, _ := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodGet, "/api/recetas/rec-1/costo/pdf", "admin", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "costo-receta-rec-1.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestRouter_CobroInsuficiente(t *testing.T) {
	app, api := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodPost, "/api/ventas", "cajero",
		`{"items":[{"productoId":"pan-1","cantidad":5}],"pagos":[{"moneda":"NIO","monto":50}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apphttp.CodeInsufficient, body.Code)
	assert.Empty(t, api.sales)
}

func TestRouter_CobroMixtoConCambio(t *testing.T) {
	app, api := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodPost, "/api/ventas", "cajero",
		`{"items":[{"productoId":"pan-1","cantidad":5}],"pagos":[{"moneda":"NIO","monto":50},{"moneda":"USD","monto":2}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CheckoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, d("23").Equal(out.Payment.Change), out.Payment.Change.String())
	assert.Len(t, api.sales, 1)
}

func TestRouter_SinTipoDeCambioNoCobra(t *testing.T) {
	app, api := newRouterApp(t, "0")

	resp := call(t, app, http.MethodPost, "/api/ventas", "cajero",
		`{"items":[{"productoId":"pan-1","cantidad":1}],"pagos":[{"moneda":"NIO","monto":20}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "RATE_NOT_CONFIGURED")
	assert.Empty(t, api.sales)
}

func TestRouter_CuerpoInvalido(t *testing.T) {
	app, _ := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodPost, "/api/caja/calcular-cambio", "cajero", `{"total":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), apphttp.CodeInvalidBody)
}

func TestRouter_TipoDeCambioSoloAdmin(t *testing.T) {
	app, api := newRouterApp(t, "36.5")

	resp := call(t, app, http.MethodPut, "/api/config/tipo-cambio", "cajero", `{"tipoCambio":37}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/config/tipo-cambio", "admin", `{"tipoCambio":37}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, d("37").Equal(api.rate))
}
