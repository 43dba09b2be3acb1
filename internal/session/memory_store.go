package session

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	// mu pairs the read with its TTL refresh so a concurrent Save is never overwritten.
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, ttl/2), ttl: ttl}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*State, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(id)
	if !ok {
		return &State{}, nil
	}
	s.cache.Set(id, v, s.ttl)
	// Callers get a copy, never the cached pointer.
	st := *v.(*State)
	return &st, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, st *State) error {
	if id == "" {
		return ErrInvalidID
	}
	cp := *st
	s.mu.Lock()
	s.cache.Set(id, &cp, s.ttl)
	s.mu.Unlock()
	return nil
}
