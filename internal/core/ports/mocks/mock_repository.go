package mocks

import (
	"context"
	"fmt"
	"io/fs"
	"sync"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
)

// MockCatalogRepository is an in-memory CatalogRepository for testing
type MockCatalogRepository struct {
	mu     sync.RWMutex
	assets []domain.Asset
	err    error
}

// NewMockCatalogRepository creates a catalog holding the given assets
func NewMockCatalogRepository(assets ...domain.Asset) *MockCatalogRepository {
	return &MockCatalogRepository{assets: assets}
}

// Add appends an asset to the catalog
func (m *MockCatalogRepository) Add(name string, kind domain.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, domain.Asset{Name: name, Kind: kind})
}

// SetError makes every List call fail with err
func (m *MockCatalogRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// List returns a copy of the catalog
func (m *MockCatalogRepository) List(ctx context.Context) ([]domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}

	assets := make([]domain.Asset, len(m.assets))
	copy(assets, m.assets)
	return assets, nil
}

// MockOutputRepository is an in-memory OutputRepository for testing
type MockOutputRepository struct {
	mu     sync.RWMutex
	files  map[string][]byte
	Writes int
}

// NewMockOutputRepository creates an empty output store
func NewMockOutputRepository() *MockOutputRepository {
	return &MockOutputRepository{
		files: make(map[string][]byte),
	}
}

// Read returns the stored content for path
func (m *MockOutputRepository) Read(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

// Write stores content under path
func (m *MockOutputRepository) Write(ctx context.Context, path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = append([]byte(nil), content...)
	m.Writes++
	return nil
}
