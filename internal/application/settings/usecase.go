// Package settings administra el tipo de cambio del negocio.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/ports"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// ConfigAPI operaciones remotas de configuración.
type ConfigAPI interface {
	GetConfig(ctx context.Context) (entity.AppConfig, error)
	UpdateConfig(ctx context.Context, cfg entity.AppConfig) (entity.AppConfig, error)
}

var _ ports.RateProvider = (*UseCase)(nil)

// UseCase tipo de cambio vigente y su actualización.
type UseCase struct {
	api       ConfigAPI
	store     cachestore.Store
	runner    *mutation.Runner
	primary   currency.Code
	secondary currency.Code
}

// NewUseCase construye el caso de uso.
func NewUseCase(api ConfigAPI, store cachestore.Store, runner *mutation.Runner, primary, secondary string) *UseCase {
	return &UseCase{
		api:       api,
		store:     store,
		runner:    runner,
		primary:   currency.Code(primary).Normalize(),
		secondary: currency.Code(secondary).Normalize(),
	}
}

// CurrentPair par de monedas con el tipo de cambio de la configuración remota.
func (uc *UseCase) CurrentPair(ctx context.Context) (currency.Pair, error) {
	cfg, err := cachestore.Fetch(ctx, uc.store, cache.ConfigKey(), uc.api.GetConfig)
	if err != nil {
		return currency.Pair{}, err
	}
	pair := currency.Pair{Primary: uc.primary, Secondary: uc.secondary, Rate: cfg.ExchangeRate}
	if err := pair.Validate(); err != nil {
		return currency.Pair{}, fmt.Errorf("configuración remota: %w", err)
	}
	return pair, nil
}

// ExchangeRate tipo de cambio vigente.
func (uc *UseCase) ExchangeRate(ctx context.Context) (*dto.ExchangeRateResponse, error) {
	cfg, err := cachestore.Fetch(ctx, uc.store, cache.ConfigKey(), uc.api.GetConfig)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(cfg), nil
}

// UpdateExchangeRate valida y publica el nuevo tipo de cambio.
func (uc *UseCase) UpdateExchangeRate(ctx context.Context, in dto.ExchangeRateRequest) (*dto.ExchangeRateResponse, error) {
	if err := currency.ValidateRate(in.Rate); err != nil {
		return nil, err
	}
	cfg, err := mutation.Run(ctx, uc.runner, cache.ConfigUpdate,
		func(ctx context.Context) (entity.AppConfig, error) {
			return uc.api.UpdateConfig(ctx, entity.AppConfig{ExchangeRate: in.Rate, UpdatedAt: time.Now()})
		}, nil, "Tipo de cambio actualizado")
	if err != nil {
		return nil, err
	}
	return uc.toResponse(cfg), nil
}

func (uc *UseCase) toResponse(cfg entity.AppConfig) *dto.ExchangeRateResponse {
	return &dto.ExchangeRateResponse{
		Primary:   string(uc.primary),
		Secondary: string(uc.secondary),
		Rate:      cfg.ExchangeRate,
		UpdatedAt: cfg.UpdatedAt,
	}
}
