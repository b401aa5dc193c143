// Package orders administra pedidos por encargo con abonos parciales.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/ports"
	"github.com/jhoicas/panaderia-erp/internal/application/sales"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/payment"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// OrdersAPI operaciones remotas de pedidos.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	GetOrder(ctx context.Context, orderID string) (entity.Order, error)
	SaveOrder(ctx context.Context, in entity.Order) (entity.Order, error)
	AddDeposit(ctx context.Context, orderID string, d entity.Deposit) (entity.Order, error)
	FinalizeOrder(ctx context.Context, orderID string, payments []entity.SalePayment) (entity.Order, error)
}

// UseCase casos de uso de pedidos.
type UseCase struct {
	api    OrdersAPI
	rates  ports.RateProvider
	store  cachestore.Store
	runner *mutation.Runner
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(api OrdersAPI, rates ports.RateProvider, store cachestore.Store, runner *mutation.Runner) *UseCase {
	return &UseCase{api: api, rates: rates, store: store, runner: runner, now: time.Now}
}

// List pedidos (cacheado).
func (uc *UseCase) List(ctx context.Context) ([]entity.Order, error) {
	return cachestore.Fetch(ctx, uc.store, cache.OrdersKey(), uc.api.ListOrders)
}

// Get pedido con su estado de cuenta (cacheado por id).
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.order(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(o, "", nil), nil
}

func (uc *UseCase) order(ctx context.Context, id string) (entity.Order, error) {
	return cachestore.Fetch(ctx, uc.store, cache.OrderKey(id), func(ctx context.Context) (entity.Order, error) {
		return uc.api.GetOrder(ctx, id)
	})
}

// Create alta de pedido.
func (uc *UseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	const msg = "Pedido creado"
	o, err := mutation.Run(ctx, uc.runner, cache.OrderCreate,
		func(ctx context.Context) (entity.Order, error) { return uc.api.SaveOrder(ctx, in.ToEntity("")) },
		orderTarget, msg)
	if err != nil {
		return nil, err
	}
	return toResponse(o, msg, nil), nil
}

// Update edita un pedido pendiente. El nuevo total no puede quedar por debajo de lo abonado.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	o := in.ToEntity(id)
	o.Deposits = current.Deposits
	if o.Total.LessThan(current.Paid()) {
		return nil, domain.Invalid("items", fmt.Sprintf("el total %s es menor que lo abonado %s",
			o.Total.StringFixed(2), current.Paid().StringFixed(2)))
	}
	const msg = "Pedido actualizado"
	out, err := mutation.Run(ctx, uc.runner, cache.OrderUpdate,
		func(ctx context.Context) (entity.Order, error) { return uc.api.SaveOrder(ctx, o) },
		orderTarget, msg)
	if err != nil {
		return nil, err
	}
	return toResponse(out, msg, nil), nil
}

// AddDeposit registra un abono. El abono, convertido a moneda primaria con el tipo de
// cambio capturado, no puede superar el saldo.
func (uc *UseCase) AddDeposit(ctx context.Context, id string, in dto.PaymentInput) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("monto", "debe ser mayor que cero")
	}
	o, err := uc.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	pair, err := uc.rates.CurrentPair(ctx)
	if err != nil {
		return nil, err
	}
	tenders, err := sales.ToTenders([]dto.PaymentInput{in}, pair)
	if err != nil {
		return nil, err
	}
	// valida moneda y tasa
	if _, err := payment.NewReconciler(pair.Primary, pair.Secondary).Reconcile(o.Balance(), tenders); err != nil {
		return nil, err
	}
	t := tenders[0]
	primary, err := sales.PrimaryAmount(t, pair)
	if err != nil {
		return nil, err
	}
	if primary.GreaterThan(o.Balance()) {
		return nil, domain.Invalid("monto", fmt.Sprintf("el abono %s supera el saldo %s",
			primary.StringFixed(2), o.Balance().StringFixed(2)))
	}

	dep := entity.Deposit{
		Currency:      string(t.Currency),
		Amount:        t.Amount,
		Rate:          t.Rate,
		PrimaryAmount: primary,
		Date:          uc.now(),
	}
	const msg = "Abono registrado"
	out, err := mutation.Run(ctx, uc.runner, cache.OrderDeposit,
		func(ctx context.Context) (entity.Order, error) { return uc.api.AddDeposit(ctx, id, dep) },
		orderTarget, msg)
	if err != nil {
		return nil, err
	}
	return toResponse(out, msg, nil), nil
}

// Finalize entrega el pedido cubriendo el saldo con los pagos recibidos. Un pago
// insuficiente se rechaza antes de llamar a la API.
func (uc *UseCase) Finalize(ctx context.Context, id string, in dto.FinalizeRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	o, err := uc.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	pair, err := uc.rates.CurrentPair(ctx)
	if err != nil {
		return nil, err
	}
	tenders, err := sales.ToTenders(in.Payments, pair)
	if err != nil {
		return nil, err
	}
	res, err := payment.NewReconciler(pair.Primary, pair.Secondary).Reconcile(o.Balance(), tenders)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	const msg = "Pedido entregado"
	out, err := mutation.Run(ctx, uc.runner, cache.OrderFinalize,
		func(ctx context.Context) (entity.Order, error) {
			return uc.api.FinalizeOrder(ctx, id, sales.ToSalePayments(tenders))
		},
		orderTarget, msg)
	if err != nil {
		return nil, err
	}
	return toResponse(out, msg, &res), nil
}

func (uc *UseCase) pending(ctx context.Context, id string) (entity.Order, error) {
	if id == "" {
		return entity.Order{}, domain.Invalid("id", "requerido")
	}
	o, err := uc.order(ctx, id)
	if err != nil {
		return entity.Order{}, err
	}
	if o.Status != entity.OrderStatusPending {
		return entity.Order{}, domain.Invalid("estado", fmt.Sprintf("el pedido está %s", o.Status))
	}
	return o, nil
}

func orderTarget(o entity.Order) cache.Target { return cache.Target{ID: o.ID} }

func toResponse(o entity.Order, msg string, res *payment.Result) *dto.OrderResponse {
	out := &dto.OrderResponse{Order: o, Paid: o.Paid(), Balance: o.Balance(), Message: msg}
	if res != nil {
		out.Change = res.Change
	}
	return out
}
