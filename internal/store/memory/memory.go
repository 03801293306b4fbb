// Package memory holds in-memory store adapters, used by tests and as the
// fallback when no data directory is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hamed0406/domainwatch/internal/domain"
)

type IgnoreStore struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

func NewIgnoreStore() *IgnoreStore {
	return &IgnoreStore{set: make(map[string]struct{})}
}

func (s *IgnoreStore) Add(ctx context.Context, hostname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set[hostname] = struct{}{}
	return nil
}

func (s *IgnoreStore) Remove(ctx context.Context, hostname string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[hostname]
	delete(s.set, hostname)
	return ok, nil
}

func (s *IgnoreStore) Contains(ctx context.Context, hostname string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[hostname]
	return ok, nil
}

func (s *IgnoreStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.set))
	for h := range s.set {
		out = append(out, h)
	}
	sort.Strings(out)
	return out, nil
}

type AdminStore struct {
	mu     sync.RWMutex
	admins map[string]domain.Admin
}

func NewAdminStore() *AdminStore {
	return &AdminStore{admins: make(map[string]domain.Admin)}
}

func (s *AdminStore) Put(ctx context.Context, a domain.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[a.Phone] = a
	return nil
}

func (s *AdminStore) Get(ctx context.Context, phone string) (*domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[phone]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (s *AdminStore) List(ctx context.Context) ([]domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}
