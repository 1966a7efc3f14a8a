package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jsonvault/jsonvault/internal/apidoc"
)

// MemoryRepo is a map-backed repository used for unit tests and for
// store-less development mode. The mutex gives it the same per-document
// atomicity the Mongo unique index provides.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*apidoc.ApiDocument
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*apidoc.ApiDocument)}
}

func (m *MemoryRepo) Create(_ context.Context, doc *apidoc.ApiDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[doc.Slug]; ok {
		return ErrAlreadyExists
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	cp := *doc
	m.store[doc.Slug] = &cp
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, slug string) (*apidoc.ApiDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[slug]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *MemoryRepo) List(_ context.Context) ([]*apidoc.ApiDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*apidoc.ApiDocument, 0, len(m.store))
	for _, d := range m.store {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, slug string, jsonData string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[slug]
	if !ok {
		return ErrNotFound
	}
	d.JSONData = jsonData
	// updatedAt must end up strictly after createdAt even on a coarse clock
	now := time.Now().UTC()
	if !now.After(d.UpdatedAt) {
		now = d.UpdatedAt.Add(time.Nanosecond)
	}
	d.UpdatedAt = now
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[slug]; !ok {
		return ErrNotFound
	}
	delete(m.store, slug)
	return nil
}

func (m *MemoryRepo) Ping(_ context.Context) error {
	return nil
}
