// Package sales cobra ventas en caja: arma la venta desde el catálogo, concilia los pagos
// en dos monedas y registra la venta en la API remota.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/ports"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/payment"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// SalesAPI operaciones remotas que usa el cobro.
type SalesAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	CreateSale(ctx context.Context, sale entity.Sale) (entity.Sale, error)
}

const msgSaleProcessed = "Venta procesada"

// UseCase cobro de ventas.
type UseCase struct {
	api    SalesAPI
	rates  ports.RateProvider
	store  cachestore.Store
	runner *mutation.Runner
}

// NewUseCase construye el caso de uso.
func NewUseCase(api SalesAPI, rates ports.RateProvider, store cachestore.Store, runner *mutation.Runner) *UseCase {
	return &UseCase{api: api, rates: rates, store: store, runner: runner}
}

// Checkout valida el carrito, concilia los pagos y, solo si alcanzan, registra la venta.
// Un pago insuficiente devuelve *payment.InsufficientError sin llamar a la API.
func (uc *UseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "el carrito está vacío")
	}
	pair, err := uc.rates.CurrentPair(ctx)
	if err != nil {
		return nil, err
	}
	products, err := cachestore.Fetch(ctx, uc.store, cache.ProductsKey(), uc.api.ListProducts)
	if err != nil {
		return nil, err
	}

	items, total, err := buildItems(in.Items, products)
	if err != nil {
		return nil, err
	}

	tenders, err := ToTenders(in.Payments, pair)
	if err != nil {
		return nil, err
	}
	res, err := payment.NewReconciler(pair.Primary, pair.Secondary).Reconcile(total, tenders)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	sale := entity.Sale{
		Items:    items,
		Total:    total,
		Payments: ToSalePayments(tenders),
		Change:   res.Change,
		Date:     time.Now(),
	}
	created, err := mutation.Run(ctx, uc.runner, cache.Checkout,
		func(ctx context.Context) (entity.Sale, error) { return uc.api.CreateSale(ctx, sale) },
		nil, msgSaleProcessed)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{Sale: created, Payment: res, Rate: pair.Rate, Message: msgSaleProcessed}, nil
}

// CalculateChange concilia sin registrar nada (vista previa del cambio en caja).
func (uc *UseCase) CalculateChange(ctx context.Context, in dto.ChangeRequest) (*dto.ChangeResponse, error) {
	pair, err := uc.rates.CurrentPair(ctx)
	if err != nil {
		return nil, err
	}
	tenders, err := ToTenders(in.Payments, pair)
	if err != nil {
		return nil, err
	}
	res, err := payment.NewReconciler(pair.Primary, pair.Secondary).Reconcile(in.Total, tenders)
	if err != nil {
		return nil, err
	}
	out := &dto.ChangeResponse{Result: res, Rate: pair.Rate, Shortfall: decimal.Zero}
	if !res.Sufficient {
		out.Shortfall = res.TotalDue.Sub(res.TotalTendered)
	}
	return out, nil
}

func buildItems(cart []dto.CartItem, products []entity.Product) ([]entity.SaleItem, decimal.Decimal, error) {
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	items := make([]entity.SaleItem, 0, len(cart))
	total := decimal.Zero
	for i, it := range cart {
		field := fmt.Sprintf("items[%d]", i)
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, decimal.Zero, domain.Invalid(field+".cantidad", "debe ser mayor que cero")
		}
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, decimal.Zero, domain.Invalid(field+".productoId", fmt.Sprintf("producto %q no existe", it.ProductID))
		}
		if !p.Active {
			return nil, decimal.Zero, domain.Invalid(field+".productoId", fmt.Sprintf("producto %q inactivo", p.Name))
		}
		subtotal := p.Price.Mul(it.Quantity)
		items = append(items, entity.SaleItem{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}
