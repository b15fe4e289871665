package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "facturador:idempotency:"

// record es lo que se guarda bajo la clave: solo fingerprint mientras está en curso,
// la respuesta completa al terminar.
type record struct {
	Pending bool `json:"pending,omitempty"`
	Response
}

// RedisStore implementa Store sobre Redis, compartido entre réplicas.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore conecta con Redis a partir de una URL (redis://...) y verifica la conexión.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("idempotency: REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("idempotency: no se pudo conectar a Redis: %w", err)
	}
	return NewRedisStoreWithClient(client, "", ttl), nil
}

// NewRedisStoreWithClient usa un cliente existente. Prefijo vacío = "facturador:idempotency:".
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisStore) Begin(ctx context.Context, key, fingerprint string) (*Response, error) {
	k := s.keyPrefix + key
	marker, err := json.Marshal(record{Pending: true, Response: Response{Fingerprint: fingerprint}})
	if err != nil {
		return nil, fmt.Errorf("idempotency: serializar marca: %w", err)
	}
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, marker, s.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("idempotency: reservar clave: %w", err)
		}
		if ok {
			return nil, nil
		}

		raw, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue // expiró entre SETNX y GET
		}
		if err != nil {
			return nil, fmt.Errorf("idempotency: leer clave: %w", err)
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("idempotency: respuesta corrupta: %w", err)
		}
		if rec.Fingerprint != fingerprint {
			return nil, ErrKeyReused
		}
		if rec.Pending {
			return nil, ErrInFlight
		}
		return &rec.Response, nil
	}
	return nil, ErrInFlight
}

func (s *RedisStore) Complete(ctx context.Context, key string, resp Response) error {
	data, err := json.Marshal(record{Response: resp})
	if err != nil {
		return fmt.Errorf("idempotency: serializar respuesta: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency: guardar respuesta: %w", err)
	}
	return nil
}

func (s *RedisStore) Abort(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency: liberar clave: %w", err)
	}
	return nil
}

// Close cierra el cliente Redis.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
