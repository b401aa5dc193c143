package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/finance"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/domain"
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
	movements []entity.CashMovement
	created   []entity.CashMovement
	payroll   []entity.PayrollEntry
	filters   []entity.CashFilter
}

func (s *stubAPI) ListCash(_ context.Context, f entity.CashFilter) ([]entity.CashMovement, error) {
	s.filters = append(s.filters, f)
	return s.movements, nil
}

func (s *stubAPI) CreateCashMovement(_ context.Context, m entity.CashMovement) (entity.CashMovement, error) {
	m.ID = "mov-9"
	s.created = append(s.created, m)
	return m, nil
}

func (s *stubAPI) ListPayroll(context.Context) ([]entity.PayrollEntry, error) { return s.payroll, nil }

func (s *stubAPI) SavePayroll(_ context.Context, e entity.PayrollEntry) (entity.PayrollEntry, error) {
	s.payroll = append(s.payroll, e)
	return e, nil
}

func (s *stubAPI) DeletePayroll(context.Context, string) error { return nil }

func setup() (*finance.UseCase, *stubAPI, *cachestore.MemoryStore) {
	api := &stubAPI{movements: []entity.CashMovement{
		{ID: "m1", Type: entity.CashMovementIn, Amount: d("500"), Currency: "NIO"},
		{ID: "m2", Type: entity.CashMovementIn, Amount: d("10"), Currency: "USD", Rate: optional.Some(d("36"))},
		{ID: "m3", Type: entity.CashMovementOut, Amount: d("2"), Currency: "USD"},
	}}
	store := cachestore.NewMemoryStore(0)
	return finance.NewUseCase(api, fixedRates{}, store, mutation.NewRunner(store, nil, nil)), api, store
}

func TestCash_TotalesEnMonedaPrimaria(t *testing.T) {
	uc, _, _ := setup()

	out, err := uc.Cash(context.Background(), entity.CashFilter{})
	require.NoError(t, err)
	assert.True(t, d("860").Equal(out.TotalIn), out.TotalIn.String())
	assert.True(t, d("73").Equal(out.TotalOut), out.TotalOut.String())
	assert.True(t, d("787").Equal(out.Net))
}

func TestCash_FiltrosSonParteDeLaLlave(t *testing.T) {
	uc, api, _ := setup()
	ctx := context.Background()
	may := entity.CashFilter{From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

	_, err := uc.Cash(ctx, may)
	require.NoError(t, err)
	_, err = uc.Cash(ctx, may)
	require.NoError(t, err)
	_, err = uc.Cash(ctx, entity.CashFilter{Type: entity.CashMovementOut})
	require.NoError(t, err)
	assert.Len(t, api.filters, 2)
}

func TestCash_RangoInvertido(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.Cash(context.Background(), entity.CashFilter{
		From: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.filters)
}

func TestRegisterCash_CapturaTasaVigente(t *testing.T) {
	uc, api, _ := setup()

	m, err := uc.RegisterCash(context.Background(), dto.CashMovementRequest{
		Type: entity.CashMovementOut, Amount: d("20"), Currency: "usd", Concept: "pago a proveedor",
	}, "u-1", optional.None[entity.CashFilter]())
	require.NoError(t, err)
	require.Len(t, api.created, 1)
	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, "u-1", m.UserID)
	rate, ok := m.Rate.Get()
	require.True(t, ok)
	assert.True(t, d("36.5").Equal(rate))
}

func TestRegisterCash_TasaDistintaALaVigente(t *testing.T) {
	uc, api, _ := setup()

	_, err := uc.RegisterCash(context.Background(), dto.CashMovementRequest{
		Type: entity.CashMovementIn, Amount: d("1"), Currency: "USD", Concept: "venta", Rate: optional.Some(d("1000")),
	}, "", optional.None[entity.CashFilter]())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.created)
}

func TestRegisterCash_ListadoSinFiltrosSeVuelveAConsultar(t *testing.T) {
	uc, api, _ := setup()
	ctx := context.Background()

	before, err := uc.Cash(ctx, entity.CashFilter{})
	require.NoError(t, err)
	require.Len(t, before.Movements, 3)

	_, err = uc.RegisterCash(ctx, dto.CashMovementRequest{
		Type: entity.CashMovementIn, Amount: d("40"), Currency: "NIO", Concept: "venta de mostrador",
	}, "u-1", optional.Some(entity.CashFilter{Type: entity.CashMovementIn}))
	require.NoError(t, err)
	api.movements = append(api.movements, entity.CashMovement{ID: "m4", Type: entity.CashMovementIn, Amount: d("40"), Currency: "NIO"})

	after, err := uc.Cash(ctx, entity.CashFilter{})
	require.NoError(t, err)
	assert.Len(t, after.Movements, 4)
	assert.True(t, d("900").Equal(after.TotalIn), after.TotalIn.String())
	assert.Len(t, api.filters, 2)
}

func TestRegisterCash_Validaciones(t *testing.T) {
	uc, api, _ := setup()
	cases := []dto.CashMovementRequest{
		{Type: "retiro", Amount: d("1"), Currency: "NIO", Concept: "x"},
		{Type: entity.CashMovementIn, Amount: decimal.Zero, Currency: "NIO", Concept: "x"},
		{Type: entity.CashMovementIn, Amount: d("1"), Currency: "EUR", Concept: "x"},
		{Type: entity.CashMovementIn, Amount: d("1"), Currency: "USD", Concept: "x", Rate: optional.Some(d("-1"))},
	}
	for _, in := range cases {
		_, err := uc.RegisterCash(context.Background(), in, "", optional.None[entity.CashFilter]())
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", in)
	}
	assert.Empty(t, api.created)
}

func TestSavePayroll(t *testing.T) {
	uc, api, _ := setup()

	e, err := uc.SavePayroll(context.Background(), "", dto.PayrollRequest{
		Employee: "Ana", Period: "2024-05", BaseSalary: d("9000"), Bonuses: d("500"), Deductions: d("650"),
	})
	require.NoError(t, err)
	assert.True(t, d("8850").Equal(e.NetPay))

	_, err = uc.SavePayroll(context.Background(), "", dto.PayrollRequest{
		Employee: "Ana", Period: "2024-05", BaseSalary: d("100"), Deductions: d("200"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, api.payroll, 1)
}
