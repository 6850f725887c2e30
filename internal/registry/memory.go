package registry

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps domains in process memory. It backs the registry when
// no database is configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byASCII map[string]*Domain
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byASCII: make(map[string]*Domain)}
}

func (s *MemoryStore) Insert(_ context.Context, d *Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byASCII[d.ASCIIName]; ok {
		return ErrAlreadyRegistered
	}
	d.CreatedAt = time.Now().UTC()
	cp := *d
	s.byASCII[d.ASCIIName] = &cp
	s.order = append(s.order, d.ASCIIName)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, asciiName string) (*Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.byASCII[asciiName]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]*Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.order) {
		return []*Domain{}, nil
	}
	end := min(offset+limit, len(s.order))

	out := make([]*Domain, 0, end-offset)
	for _, name := range s.order[offset:end] {
		cp := *s.byASCII[name]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, asciiName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byASCII[asciiName]; !ok {
		return ErrNotFound
	}
	delete(s.byASCII, asciiName)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == asciiName })
	return nil
}

func (s *MemoryStore) MarkVerified(_ context.Context, asciiName string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byASCII[asciiName]
	if !ok {
		return ErrNotFound
	}
	at = at.UTC()
	d.VerifiedAt = &at
	return nil
}

var _ Store = (*MemoryStore)(nil)
