package idempotency

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type pending struct{ fingerprint string }

// MemoryStore implementa Store en memoria del proceso con go-cache.
// Sirve para una sola instancia; con varias réplicas usar RedisStore.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryStore crea el store. Las claves expiran tras ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, 2*ttl), ttl: ttl}
}

func (s *MemoryStore) Begin(_ context.Context, key, fingerprint string) (*Response, error) {
	// Add es atómico: falla si la clave existe y no expiró.
	if err := s.cache.Add(key, pending{fingerprint}, s.ttl); err == nil {
		return nil, nil
	}
	v, ok := s.cache.Get(key)
	if !ok {
		// expiró entre Add y Get
		if err := s.cache.Add(key, pending{fingerprint}, s.ttl); err != nil {
			return nil, ErrInFlight
		}
		return nil, nil
	}
	switch rec := v.(type) {
	case Response:
		if rec.Fingerprint != fingerprint {
			return nil, ErrKeyReused
		}
		return &rec, nil
	case pending:
		if rec.fingerprint != fingerprint {
			return nil, ErrKeyReused
		}
	}
	return nil, ErrInFlight
}

func (s *MemoryStore) Complete(_ context.Context, key string, resp Response) error {
	resp.Body = append([]byte(nil), resp.Body...)
	s.cache.Set(key, resp, s.ttl)
	return nil
}

func (s *MemoryStore) Abort(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
