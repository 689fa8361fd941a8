package ports

import (
	"context"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
)

// CatalogRepository defines the port for reading an asset catalog
type CatalogRepository interface {
	// List returns every catalog entry in emission order
	List(ctx context.Context) ([]domain.Asset, error)
}

// Emitter defines the port for turning symbols into source text
type Emitter interface {
	// Format returns the output format name (e.g. "go", "objc")
	Format() string

	// Emit renders one declaration per symbol, preserving order
	Emit(symbols []domain.AssetSymbol) ([]byte, error)

	// Parse recovers the (identifier, value) pairs from emitted text
	Parse(content []byte) ([]domain.AssetSymbol, error)
}

// OutputRepository defines the port for persisting generated files
type OutputRepository interface {
	// Read returns the stored content; a missing file yields an error
	// matching fs.ErrNotExist
	Read(ctx context.Context, path string) ([]byte, error)

	// Write replaces the stored content atomically
	Write(ctx context.Context, path string, content []byte) error
}
