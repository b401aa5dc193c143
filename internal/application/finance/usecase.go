// Package finance administra movimientos de caja y planilla.
package finance

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
	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// FinanceAPI operaciones remotas de caja y planilla.
type FinanceAPI interface {
	ListCash(ctx context.Context, f entity.CashFilter) ([]entity.CashMovement, error)
	CreateCashMovement(ctx context.Context, in entity.CashMovement) (entity.CashMovement, error)
	ListPayroll(ctx context.Context) ([]entity.PayrollEntry, error)
	SavePayroll(ctx context.Context, in entity.PayrollEntry) (entity.PayrollEntry, error)
	DeletePayroll(ctx context.Context, entryID string) error
}

// UseCase casos de uso de finanzas.
type UseCase struct {
	api    FinanceAPI
	rates  ports.RateProvider
	store  cachestore.Store
	runner *mutation.Runner
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(api FinanceAPI, rates ports.RateProvider, store cachestore.Store, runner *mutation.Runner) *UseCase {
	return &UseCase{api: api, rates: rates, store: store, runner: runner, now: time.Now}
}

// Cash movimientos filtrados (cacheados por filtro) con totales en moneda primaria.
func (uc *UseCase) Cash(ctx context.Context, f entity.CashFilter) (*dto.CashSummary, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return nil, domain.Invalid("hasta", "no puede ser anterior a desde")
	}
	if f.Type != "" && f.Type != entity.CashMovementIn && f.Type != entity.CashMovementOut {
		return nil, domain.Invalid("tipo", "debe ser ingreso o egreso")
	}
	list, err := cachestore.Fetch(ctx, uc.store, cache.CashKey(f), func(ctx context.Context) ([]entity.CashMovement, error) {
		return uc.api.ListCash(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	pair, err := uc.rates.CurrentPair(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.CashSummary{Movements: list, TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, m := range list {
		amount, err := primaryAmount(m, pair)
		if err != nil {
			return nil, fmt.Errorf("movimiento %s: %w", m.ID, err)
		}
		if m.Type == entity.CashMovementOut {
			out.TotalOut = out.TotalOut.Add(amount)
		} else {
			out.TotalIn = out.TotalIn.Add(amount)
		}
	}
	out.Net = out.TotalIn.Sub(out.TotalOut)
	return out, nil
}

// primaryAmount usa la tasa capturada del movimiento; los registros viejos sin tasa
// se convierten con la vigente.
func primaryAmount(m entity.CashMovement, pair currency.Pair) (decimal.Decimal, error) {
	if currency.Code(m.Currency).Normalize() != pair.Secondary {
		return m.Amount, nil
	}
	return currency.ToPrimary(m.Amount, m.Rate.OrElse(pair.Rate))
}

// RegisterCash registra un ingreso o egreso. En moneda secundaria se guarda el tipo de
// cambio vigente. filter es el listado que se está mostrando.
func (uc *UseCase) RegisterCash(ctx context.Context, in dto.CashMovementRequest, userID string, filter optional.Value[entity.CashFilter]) (entity.CashMovement, error) {
	if err := dto.Validate(in); err != nil {
		return entity.CashMovement{}, err
	}
	pair, err := uc.rates.CurrentPair(ctx)
	if err != nil {
		return entity.CashMovement{}, err
	}
	code := currency.Code(in.Currency).Normalize()
	m := entity.CashMovement{
		Type:     in.Type,
		Amount:   in.Amount,
		Currency: string(code),
		Concept:  in.Concept,
		Date:     uc.now(),
		UserID:   userID,
	}
	switch code {
	case pair.Primary:
	case pair.Secondary:
		rate, err := pair.Capture(in.Rate, "tasaCambio")
		if err != nil {
			return entity.CashMovement{}, err
		}
		m.Rate = optional.Some(rate)
	default:
		return entity.CashMovement{}, domain.Invalid("moneda", fmt.Sprintf("moneda %q no soportada", in.Currency))
	}

	return mutation.Run(ctx, uc.runner, cache.CashRegister,
		func(ctx context.Context) (entity.CashMovement, error) { return uc.api.CreateCashMovement(ctx, m) },
		func(entity.CashMovement) cache.Target { return cache.Target{CashFilter: filter} },
		"Movimiento de caja registrado")
}

// ListPayroll planilla (cacheada).
func (uc *UseCase) ListPayroll(ctx context.Context) ([]entity.PayrollEntry, error) {
	return cachestore.Fetch(ctx, uc.store, cache.PayrollKey(), uc.api.ListPayroll)
}

// SavePayroll crea (id vacío) o actualiza una entrada de planilla. El neto no puede ser negativo.
func (uc *UseCase) SavePayroll(ctx context.Context, id string, in dto.PayrollRequest) (entity.PayrollEntry, error) {
	if err := dto.Validate(in); err != nil {
		return entity.PayrollEntry{}, err
	}
	e := in.ToEntity(id)
	if e.NetPay.IsNegative() {
		return entity.PayrollEntry{}, domain.Invalid("deducciones", "el salario neto no puede ser negativo")
	}
	m, msg := cache.PayrollCreate, "Planilla registrada"
	if id != "" {
		m, msg = cache.PayrollUpdate, "Planilla actualizada"
	}
	return mutation.Run(ctx, uc.runner, m,
		func(ctx context.Context) (entity.PayrollEntry, error) { return uc.api.SavePayroll(ctx, e) },
		nil, msg)
}

// DeletePayroll baja de una entrada de planilla.
func (uc *UseCase) DeletePayroll(ctx context.Context, id string) error {
	_, err := mutation.Run(ctx, uc.runner, cache.PayrollDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeletePayroll(ctx, id) },
		nil, "Planilla eliminada")
	return err
}
