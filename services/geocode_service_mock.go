package services

import (
	"sync"
)

// MockGeocoder is a mock implementation of Geocoder for testing
type MockGeocoder struct {
	results map[string]Coordinates // map of query to canned result
	err     error
	calls   []string
	mu      sync.Mutex
}

// NewMockGeocoder creates a new mock geocoder
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		results: make(map[string]Coordinates),
	}
}

// SetAsMockForTesting sets this mock as the global geocoder instance for testing
func (m *MockGeocoder) SetAsMockForTesting() {
	SetGeocoder(m)
}

// AddResult registers a canned result for a query
func (m *MockGeocoder) AddResult(query string, coords Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[query] = coords
}

// FailWith makes every lookup return the given error
func (m *MockGeocoder) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Resolve returns the canned result for a query, or (nil, nil) when none is registered
func (m *MockGeocoder) Resolve(query string) (*Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}
	if coords, ok := m.results[query]; ok {
		return &coords, nil
	}
	return nil, nil
}

// Calls returns the queries resolved so far
func (m *MockGeocoder) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
