package sales

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/payment"
)

// ToTenders convierte los pagos de la petición. Un pago en moneda secundaria captura el
// tipo de cambio vigente; en moneda primaria la tasa se descarta.
func ToTenders(payments []dto.PaymentInput, pair currency.Pair) ([]payment.Tender, error) {
	out := make([]payment.Tender, 0, len(payments))
	for i, p := range payments {
		code := currency.Code(p.Currency).Normalize()
		t := payment.Tender{Currency: code, Amount: p.Amount}
		if code == pair.Secondary.Normalize() {
			rate, err := pair.Capture(p.Rate, fmt.Sprintf("pagos[%d].tasaCambio", i))
			if err != nil {
				return nil, err
			}
			t.Rate = optional.Some(rate)
		}
		out = append(out, t)
	}
	return out, nil
}

// ToSalePayments pagos tal como se registran en la venta (con la tasa capturada).
func ToSalePayments(tenders []payment.Tender) []entity.SalePayment {
	out := make([]entity.SalePayment, len(tenders))
	for i, t := range tenders {
		out[i] = entity.SalePayment{Currency: string(t.Currency), Amount: t.Amount, Rate: t.Rate}
	}
	return out
}

// PrimaryAmount monto del pago expresado en moneda primaria.
func PrimaryAmount(t payment.Tender, pair currency.Pair) (decimal.Decimal, error) {
	if t.Currency.Normalize() != pair.Secondary.Normalize() {
		return t.Amount, nil
	}
	return currency.ToPrimary(t.Amount, t.Rate.OrElse(pair.Rate))
}
