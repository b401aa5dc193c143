package money_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/panaderia-erp/pkg/money"
)

func TestFormat(t *testing.T) {
	s := money.Format(decimal.RequireFromString("1234.5"), "USD")
	assert.Contains(t, s, "234")
	assert.Contains(t, s, "50")
	assert.NotEqual(t, "1234.5", s)
}

func TestFormat_CodigoDesconocido(t *testing.T) {
	s := money.Format(decimal.NewFromInt(10), "XYZ1")
	assert.True(t, strings.HasPrefix(s, "XYZ1 "))
}

func TestQuantity(t *testing.T) {
	assert.True(t, strings.HasSuffix(money.Quantity(decimal.RequireFromString("0.9072"), "KG"), " KG"))
	assert.Contains(t, money.Quantity(decimal.RequireFromString("0.9072"), ""), "9072")
}

func TestPercent(t *testing.T) {
	assert.True(t, strings.HasSuffix(money.Percent(decimal.RequireFromString("25")), " %"))
}
