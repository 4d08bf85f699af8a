package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

// --- Mock implementations ---

// mockFetcher implements driven.DatasetFetcher for testing. The lock only
// guards bookkeeping, so concurrent fetches do not serialise.
type mockFetcher struct {
	mu      sync.Mutex
	bodies  map[string][]byte
	errs    map[string]error
	gates   map[string]chan struct{}
	fetched []string
	done    chan string
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		bodies: make(map[string][]byte),
		errs:   make(map[string]error),
		gates:  make(map[string]chan struct{}),
	}
}

func (m *mockFetcher) with(location, body string) *mockFetcher {
	m.bodies[location] = []byte(body)
	return m
}

func (m *mockFetcher) failing(location string, err error) *mockFetcher {
	m.errs[location] = err
	return m
}

// blocking makes fetches of location wait until gate is closed.
func (m *mockFetcher) blocking(location string, gate chan struct{}) *mockFetcher {
	m.gates[location] = gate
	return m
}

// notifying reports every finished fetch's location on done.
func (m *mockFetcher) notifying(done chan string) *mockFetcher {
	m.done = done
	return m
}

func (m *mockFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, location)
	gate := m.gates[location]
	err, failing := m.errs[location]
	body, found := m.bodies[location]
	done := m.done
	m.mu.Unlock()

	if done != nil {
		defer func() { done <- location }()
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failing {
		return nil, err
	}
	if found {
		return body, nil
	}
	return nil, domain.NewHTTPError(404)
}

// mockLoader implements driving.CatalogLoader for testing.
type mockLoader struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (m *mockLoader) LoadCategories(_ context.Context) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog.Categories, nil
}

func (m *mockLoader) LoadGroupDefinitions(_ context.Context) domain.GroupDefinitions {
	if m.catalog == nil {
		return domain.GroupDefinitions{}
	}
	return m.catalog.Groups
}

func (m *mockLoader) Load(_ context.Context) (*domain.Catalog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

// mockOpener implements driven.LinkOpener for testing.
type mockOpener struct {
	opened []string
	err    error
}

func (m *mockOpener) Open(url string) error {
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, url)
	return nil
}

// mockClipboard implements driven.Clipboard for testing.
type mockClipboard struct {
	text string
	err  error
}

func (m *mockClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

var errBoom = errors.New("boom")

// svc builds a service with an optional group label.
func svc(name string, group ...string) domain.Service {
	s := domain.Service{Name: name, Link: "https://example.com/" + name}
	if len(group) > 0 {
		s.Group = group[0]
	}
	return s
}

// names returns the service names of a group.
func names(g domain.ResolvedGroup) []string {
	out := make([]string, len(g.Services))
	for i := range g.Services {
		out[i] = g.Services[i].Name
	}
	return out
}
