package payment_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/payment"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var rc = payment.NewReconciler("NIO", "USD")

func nio(v string) payment.Tender { return payment.Tender{Currency: "NIO", Amount: d(v)} }

func usd(v, rate string) payment.Tender {
	return payment.Tender{Currency: "USD", Amount: d(v), Rate: optional.Some(d(rate))}
}

// Escenario A: 60 NIO + 1 USD a 40 cubren exactamente 100.
func TestReconcile_PagoMixtoExacto(t *testing.T) {
	res, err := rc.Reconcile(d("100"), []payment.Tender{nio("60"), usd("1", "40")})
	require.NoError(t, err)
	assert.True(t, d("100").Equal(res.TotalTendered))
	assert.True(t, res.Sufficient)
	assert.True(t, res.Change.IsZero())
	assert.NoError(t, res.Err())
}

// Escenario B: 50 NIO no cubren 100.
func TestReconcile_Insuficiente(t *testing.T) {
	res, err := rc.Reconcile(d("100"), []payment.Tender{nio("50")})
	require.NoError(t, err)
	assert.False(t, res.Sufficient)
	assert.True(t, res.Change.IsZero(), "el cambio se recorta a cero")

	err = res.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
	var ie *payment.InsufficientError
	require.True(t, errors.As(err, &ie))
	assert.True(t, d("50").Equal(ie.Shortfall))
}

func TestReconcile_ConCambio(t *testing.T) {
	res, err := rc.Reconcile(d("85.50"), []payment.Tender{nio("20"), usd("2", "36.6243")})
	require.NoError(t, err)
	assert.True(t, res.Sufficient)
	assert.True(t, d("93.2486").Equal(res.TotalTendered), res.TotalTendered.String())
	assert.True(t, d("7.7486").Equal(res.Change), res.Change.String())
}

func TestReconcile_SinPagos(t *testing.T) {
	res, err := rc.Reconcile(d("10"), nil)
	require.NoError(t, err)
	assert.True(t, res.TotalTendered.IsZero())
	assert.False(t, res.Sufficient)

	// Total cero sin pagos: verdadero por vacuidad.
	res, err = rc.Reconcile(decimal.Zero, nil)
	require.NoError(t, err)
	assert.True(t, res.Sufficient)
	assert.True(t, res.Change.IsZero())
}

func TestReconcile_Validaciones(t *testing.T) {
	cases := map[string][]payment.Tender{
		"duplicado":     {nio("1"), nio("2")},
		"sin tasa":      {{Currency: "USD", Amount: d("1")}},
		"tasa cero":     {usd("1", "0")},
		"negativo":      {nio("-1")},
		"moneda ajena":  {{Currency: "EUR", Amount: d("1")}},
		"demasiados":    {nio("1"), usd("1", "40"), nio("3")},
	}
	for name, tenders := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rc.Reconcile(d("10"), tenders)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	_, err := rc.Reconcile(d("-1"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCalculateTotalPayment(t *testing.T) {
	cases := []struct{ nio, usd, rate, want string }{
		{"0", "0", "36.5", "0"},
		{"100", "0", "36.5", "100"},
		{"0", "2", "36.5", "73"},
		{"12.25", "3.10", "36.6243", "125.78533"},
	}
	for _, c := range cases {
		got, err := payment.CalculateTotalPayment(d(c.nio), d(c.usd), d(c.rate))
		require.NoError(t, err)
		assert.True(t, d(c.want).Equal(got), "%v => %s", c, got)
		assert.True(t, d(c.nio).Add(d(c.usd).Mul(d(c.rate))).Equal(got))
	}
}

func TestCalculateChange(t *testing.T) {
	cases := []struct{ total, nio, usd, rate, want string }{
		{"100", "60", "1", "40", "0"},
		{"100", "50", "0", "40", "0"},
		{"100", "80", "1", "40", "20"},
		{"0", "0", "0", "40", "0"},
		{"35.75", "0", "1", "36.50", "0.75"},
	}
	for _, c := range cases {
		got, err := payment.CalculateChange(d(c.total), d(c.nio), d(c.usd), d(c.rate))
		require.NoError(t, err)
		assert.True(t, d(c.want).Equal(got), "%v => %s", c, got)
	}

	_, err := payment.CalculateChange(d("1"), d("1"), d("1"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
