// Package mutation ejecuta las escrituras contra la API remota y aplica la invalidación
// de caché declarada en cache.Rules antes de notificar el éxito.
package mutation

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/pkg/logger"
)

// Invalidator marca llaves como obsoletas (cachestore.Store lo implementa).
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...cache.Key) (int, error)
}

// Notifier recibe el resultado de cada mutación (toast en la UI, log en el BFF).
type Notifier interface {
	Success(ctx context.Context, m cache.Mutation, message string)
	Failure(ctx context.Context, m cache.Mutation, err error)
}

// Runner punto central post-mutación.
type Runner struct {
	cache    Invalidator
	notifier Notifier
	log      *logger.Logger
}

// NewRunner construye el runner. notifier puede ser nil.
func NewRunner(c Invalidator, n Notifier, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{cache: c, notifier: n, log: log.Component("mutation")}
}

// Run ejecuta fn sin propagar la cancelación del llamador: una escritura ya iniciada
// termina e invalida aunque el cliente se haya ido. Orden garantizado:
// llamada remota OK → invalidación → notificación de éxito.
func Run[T any](ctx context.Context, r *Runner, m cache.Mutation, fn func(ctx context.Context) (T, error), target func(T) cache.Target, message string) (T, error) {
	var zero T
	// sin regla no se ejecuta la escritura
	if _, ok := cache.Rules[m]; !ok {
		return zero, fmt.Errorf("mutation: %s sin regla de invalidación", m)
	}

	wctx := context.WithoutCancel(ctx)
	out, err := fn(wctx)
	if err != nil {
		r.log.Warn().Err(err).Str("mutation", string(m)).Msg("mutación fallida")
		if r.notifier != nil {
			r.notifier.Failure(wctx, m, err)
		}
		return zero, err
	}

	var t cache.Target
	if target != nil {
		t = target(out)
	}
	keys, err := cache.KeysFor(m, t)
	if err != nil {
		return zero, err
	}
	n, err := r.cache.Invalidate(wctx, keys...)
	if err != nil {
		// la escritura ya ocurrió; el éxito no se reporta hasta haber emitido la invalidación
		r.log.Error().Err(err).Str("mutation", string(m)).Msg("invalidación de caché fallida")
		return out, fmt.Errorf("mutation %s: invalidar caché: %w", m, err)
	}
	r.log.Debug().Str("mutation", string(m)).Int("stale", n).Strs("keys", keyStrings(keys)).Msg("caché invalidada")

	if r.notifier != nil {
		r.notifier.Success(wctx, m, message)
	}
	return out, nil
}

func keyStrings(keys []cache.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

// LogNotifier notificador que solo registra en el log.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notify")}
}

func (n *LogNotifier) Success(_ context.Context, m cache.Mutation, message string) {
	n.log.Info().Str("mutation", string(m)).Msg(message)
}

func (n *LogNotifier) Failure(_ context.Context, m cache.Mutation, err error) {
	n.log.Error().Err(err).Str("mutation", string(m)).Msg("operación fallida")
}
