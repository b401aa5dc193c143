package cachestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
)

const (
	redisPrefix = "erp:cache:"
	redisGenKey = "erp:cache-gen"
)

// setIfGeneration escribe la entrada solo si la generación no cambió.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current == false then current = '0' end
if current ~= ARGV[1] then return 0 end
redis.call('HSET', KEYS[1], 'key', ARGV[2], 'data', ARGV[3], 'fetched', ARGV[4], 'stale', '0')
if tonumber(ARGV[5]) > 0 then redis.call('PEXPIRE', KEYS[1], ARGV[5]) end
return 1
`)

// RedisStore caché compartida entre instancias del BFF.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis crea y valida la conexión a Redis.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// NewRedisStore construye el almacén sobre un cliente ya conectado.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key cache.Key) (Entry, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, redisPrefix+key.String()).Result()
	if err != nil {
		return Entry{}, false, err
	}
	data, ok := fields["data"]
	if !ok {
		return Entry{}, false, nil
	}
	ms, _ := strconv.ParseInt(fields["fetched"], 10, 64)
	return Entry{
		Data:      []byte(data),
		Stale:     fields["stale"] == "1",
		FetchedAt: time.UnixMilli(ms),
	}, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key cache.Key, data []byte, gen uint64) (bool, error) {
	rawKey, err := json.Marshal(key)
	if err != nil {
		return false, err
	}
	n, err := setIfGeneration.Run(ctx, r.rdb,
		[]string{redisPrefix + key.String(), redisGenKey},
		strconv.FormatUint(gen, 10), string(rawKey), string(data),
		time.Now().UnixMilli(), r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cachestore: set %s: %w", key, err)
	}
	return n == 1, nil
}

// Invalidate incrementa la generación y marca obsoletas las entradas de las colecciones
// afectadas cuya llave coincide.
func (r *RedisStore) Invalidate(ctx context.Context, keys ...cache.Key) (int, error) {
	if err := r.rdb.Incr(ctx, redisGenKey).Err(); err != nil {
		return 0, err
	}
	seen := make(map[string]bool)
	n := 0
	for _, k := range keys {
		coll := k.Collection()
		if coll == "" || seen[coll] {
			continue
		}
		seen[coll] = true
		iter := r.rdb.Scan(ctx, 0, redisPrefix+coll+"*", 100).Iterator()
		for iter.Next(ctx) {
			marked, err := r.markIfMatches(ctx, iter.Val(), keys)
			if err != nil {
				return n, err
			}
			if marked {
				n++
			}
		}
		if err := iter.Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *RedisStore) markIfMatches(ctx context.Context, redisKey string, keys []cache.Key) (bool, error) {
	raw, err := r.rdb.HGet(ctx, redisKey, "key").Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var stored cache.Key
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// entrada corrupta: se descarta
		return false, r.rdb.Del(ctx, redisKey).Err()
	}
	for _, k := range keys {
		if k.Matches(stored) {
			return true, r.rdb.HSet(ctx, redisKey, "stale", "1").Err()
		}
	}
	return false, nil
}

func (r *RedisStore) Generation(ctx context.Context) (uint64, error) {
	g, err := r.rdb.Get(ctx, redisGenKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return g, err
}
