package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/orders"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixedRates struct{}

func (fixedRates) CurrentPair(context.Context) (currency.Pair, error) {
	return currency.Pair{Primary: "NIO", Secondary: "USD", Rate: d("36.5")}, nil
}

type stubAPI struct {
	orders    map[string]entity.Order
	deposits  []entity.Deposit
	finalized [][]entity.SalePayment
	gets      int
}

func (s *stubAPI) ListOrders(context.Context) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubAPI) GetOrder(_ context.Context, id string) (entity.Order, error) {
	s.gets++
	o, ok := s.orders[id]
	if !ok {
		return entity.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (s *stubAPI) SaveOrder(_ context.Context, o entity.Order) (entity.Order, error) {
	if o.ID == "" {
		o.ID = "ped-2"
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *stubAPI) AddDeposit(_ context.Context, id string, dep entity.Deposit) (entity.Order, error) {
	s.deposits = append(s.deposits, dep)
	o := s.orders[id]
	o.Deposits = append(o.Deposits, dep)
	s.orders[id] = o
	return o, nil
}

func (s *stubAPI) FinalizeOrder(_ context.Context, id string, payments []entity.SalePayment) (entity.Order, error) {
	s.finalized = append(s.finalized, payments)
	o := s.orders[id]
	o.Status = entity.OrderStatusFinalized
	s.orders[id] = o
	return o, nil
}

func setup() (*orders.UseCase, *stubAPI, *cachestore.MemoryStore) {
	api := &stubAPI{orders: map[string]entity.Order{
		"ped-1": {
			ID:       "ped-1",
			Customer: entity.Customer{Name: "Doña Marta"},
			Items:    []entity.OrderItem{{ProductID: "pastel", Quantity: d("1"), UnitPrice: d("1000")}},
			Total:    d("1000"),
			Deposits: []entity.Deposit{{Currency: "NIO", Amount: d("400"), PrimaryAmount: d("400")}},
			Status:   entity.OrderStatusPending,
		},
	}}
	store := cachestore.NewMemoryStore(0)
	return orders.NewUseCase(api, fixedRates{}, store, mutation.NewRunner(store, nil, nil)), api, store
}

func TestGet_EstadoDeCuenta(t *testing.T) {
	uc, api, _ := setup()

	out, err := uc.Get(context.Background(), "ped-1")
	require.NoError(t, err)
	assert.True(t, d("400").Equal(out.Paid))
	assert.True(t, d("600").Equal(out.Balance))

	_, err = uc.Get(context.Background(), "ped-1")
	require.NoError(t, err)
	assert.Equal(t, 1, api.gets, "el detalle queda cacheado")
}

func TestAddDeposit_DolaresConTasaCapturada(t *testing.T) {
	uc, api, store := setup()
	ctx := context.Background()
	_, err := uc.Get(ctx, "ped-1")
	require.NoError(t, err)

	out, err := uc.AddDeposit(ctx, "ped-1", dto.PaymentInput{Currency: "usd", Amount: d("10")})
	require.NoError(t, err)
	require.Len(t, api.deposits, 1)
	dep := api.deposits[0]
	assert.Equal(t, "USD", dep.Currency)
	rate, ok := dep.Rate.Get()
	require.True(t, ok)
	assert.True(t, d("36.5").Equal(rate))
	assert.True(t, d("365").Equal(dep.PrimaryAmount))
	assert.True(t, d("235").Equal(out.Balance))

	e, ok, err := store.Get(ctx, cache.OrderKey("ped-1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, e.Stale)
}

func TestAddDeposit_SuperaSaldo(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.AddDeposit(context.Background(), "ped-1", dto.PaymentInput{Currency: "NIO", Amount: d("600.01")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.deposits)
}

func TestAddDeposit_MonedaNoSoportada(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.AddDeposit(context.Background(), "ped-1", dto.PaymentInput{Currency: "EUR", Amount: d("5")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.deposits)
}

func TestAddDeposit_TasaDistintaALaVigente(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.AddDeposit(context.Background(), "ped-1", dto.PaymentInput{Currency: "USD", Amount: d("1"), Rate: optional.Some(d("600"))})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.deposits)
}

func TestFinalize_TasaDistintaALaVigente(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.Finalize(context.Background(), "ped-1", dto.FinalizeRequest{Payments: []dto.PaymentInput{
		{Currency: "USD", Amount: d("1"), Rate: optional.Some(d("1000"))},
	}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.finalized)
}

func TestFinalize_PagoInsuficienteNoLlegaALaRed(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.Finalize(context.Background(), "ped-1", dto.FinalizeRequest{Payments: []dto.PaymentInput{
		{Currency: "NIO", Amount: d("200")},
		{Currency: "USD", Amount: d("10"), Rate: optional.Some(d("36.5"))},
	}})
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
	assert.Empty(t, api.finalized)
}

func TestFinalize_ConCambio(t *testing.T) {
	uc, api, _ := setup()

	out, err := uc.Finalize(context.Background(), "ped-1", dto.FinalizeRequest{Payments: []dto.PaymentInput{
		{Currency: "NIO", Amount: d("300")},
		{Currency: "USD", Amount: d("10")},
	}})
	require.NoError(t, err)
	require.Len(t, api.finalized, 1)
	assert.True(t, d("65").Equal(out.Change), out.Change.String())
	assert.Equal(t, entity.OrderStatusFinalized, out.Order.Status)
}

func TestFinalize_PedidoYaEntregado(t *testing.T) {
	uc, api, _ := setup()
	o := api.orders["ped-1"]
	o.Status = entity.OrderStatusFinalized
	api.orders["ped-1"] = o

	_, err := uc.Finalize(context.Background(), "ped-1", dto.FinalizeRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.finalized)
}

func TestUpdate_TotalMenorQueAbonado(t *testing.T) {
	uc, _, _ := setup()

	_, err := uc.Update(context.Background(), "ped-1", dto.OrderRequest{
		Customer: dto.CustomerInput{Name: "Doña Marta"},
		Items:    []dto.OrderItemInput{{ProductID: "pastel", Quantity: d("1"), UnitPrice: d("300")}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate(t *testing.T) {
	uc, _, _ := setup()

	out, err := uc.Create(context.Background(), dto.OrderRequest{
		Customer: dto.CustomerInput{Name: "Luis"},
		Items:    []dto.OrderItemInput{{ProductID: "pastel", Quantity: d("2"), UnitPrice: d("450")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ped-2", out.Order.ID)
	assert.True(t, d("900").Equal(out.Balance))
	assert.Equal(t, entity.OrderStatusPending, out.Order.Status)
}
