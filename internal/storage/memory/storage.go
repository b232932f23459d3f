package memory

import (
	"context"
	"slices"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers cannot alias them.
type Storage struct {
	cache *gocache.Cache
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	return slices.Clone(data), nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.cache.Set(key, slices.Clone(value), gocache.NoExpiration)
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// Keys returns the stored keys, for tests and diagnostics
func (s *Storage) Keys() []string {
	items := s.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
