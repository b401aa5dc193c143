// Package cachestore guarda localmente las colecciones remotas bajo sus llaves de caché.
// Una invalidación marca las entradas afectadas como obsoletas; la siguiente lectura las vuelve a pedir.
package cachestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
)

// Entry valor cacheado (JSON) y su estado.
type Entry struct {
	Data      []byte
	Stale     bool
	FetchedAt time.Time
}

// Store almacén de caché. Cada invalidación incrementa una generación global; Set solo
// escribe si la generación no cambió desde que empezó la lectura.
type Store interface {
	Get(ctx context.Context, key cache.Key) (Entry, bool, error)
	Set(ctx context.Context, key cache.Key, data []byte, gen uint64) (bool, error)
	Invalidate(ctx context.Context, keys ...cache.Key) (int, error)
	Generation(ctx context.Context) (uint64, error)
}

// Fetch devuelve el valor cacheado si está vigente; si no, lo carga y lo guarda.
// Una lectura cancelada o solapada con una invalidación no escribe en la caché.
func Fetch[T any](ctx context.Context, s Store, key cache.Key, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if e, ok, err := s.Get(ctx, key); err == nil && ok && !e.Stale {
		if v, err := Decode[T](e); err == nil {
			return v, nil
		}
	}

	gen, genErr := s.Generation(ctx)
	v, err := load(ctx)
	if err != nil {
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if genErr != nil {
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	// la caché es best-effort: un fallo al guardar no invalida la lectura
	_, _ = s.Set(ctx, key, data, gen)
	return v, nil
}

// Decode deserializa el valor de una entrada, vigente u obsoleta.
func Decode[T any](e Entry) (T, error) {
	var v T
	err := json.Unmarshal(e.Data, &v)
	return v, err
}
