package storage

import (
	"context"
	"time"

	"github.com/cleberrangel/project-estimator-api/internal/cache"
)

// MemoryStore mantém o estado apenas em memória (perdido ao reiniciar)
type MemoryStore struct {
	items *cache.Cache
}

// NewMemoryStore cria um store em memória
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.NewCache(0)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.items.Set(key, value)
	return nil
}

// CachedStore é um cache de leitura na frente de outro Store (escrita direta)
type CachedStore struct {
	next  Store
	items *cache.Cache
}

// NewCachedStore envolve next com um cache de TTL ttl
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	return &CachedStore{next: next, items: cache.NewCache(ttl)}
}

type cachedValue struct {
	value string
	found bool
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.items.Get(key); ok {
		cv := v.(cachedValue)
		return cv.value, cv.found, nil
	}

	value, found, err := s.next.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	s.items.Set(key, cachedValue{value: value, found: found})
	return value, found, nil
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.items.Delete(key)
		return err
	}
	s.items.Set(key, cachedValue{value: value, found: true})
	return nil
}

// Ping delega ao store subjacente
func (s *CachedStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Stats expõe as estatísticas do cache
func (s *CachedStore) Stats() cache.Stats {
	return s.items.Stats()
}

// Close encerra a limpeza periódica do cache
func (s *CachedStore) Close() error {
	s.items.Stop()
	return nil
}
