package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/ports"
)

// CheckService reports whether a generated file matches the catalog
type CheckService struct {
	catalog ports.CatalogRepository
	emitter ports.Emitter
	output  ports.OutputRepository
	naming  domain.Naming
}

// NewCheckService creates a new check service
func NewCheckService(
	catalog ports.CatalogRepository,
	emitter ports.Emitter,
	output ports.OutputRepository,
	naming domain.Naming,
) *CheckService {
	return &CheckService{
		catalog: catalog,
		emitter: emitter,
		output:  output,
		naming:  naming,
	}
}

// CheckRequest represents a request to verify a generated file
type CheckRequest struct {
	Output string
}

// SymbolChange is an identifier whose literal value differs
type SymbolChange struct {
	Identifier string
	Old        string
	New        string
}

// CheckResponse describes how the stored file differs from the catalog
type CheckResponse struct {
	UpToDate    bool
	Missing     bool // Output file does not exist
	Unparseable bool // Output file exists but holds no recognisable declarations
	Added       []domain.AssetSymbol
	Removed     []domain.AssetSymbol
	Changed     []SymbolChange
}

// Execute regenerates in memory and compares with the stored output
func (s *CheckService) Execute(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	if req.Output == "" {
		return nil, errors.New("output path is required")
	}

	fresh, content, err := render(ctx, s.catalog, s.emitter, s.naming)
	if err != nil {
		return nil, err
	}

	existing, err := s.output.Read(ctx, req.Output)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &CheckResponse{Missing: true, Added: fresh}, nil
		}
		return nil, fmt.Errorf("failed to read existing output: %w", err)
	}

	if bytes.Equal(existing, content) {
		return &CheckResponse{UpToDate: true}, nil
	}

	stored, err := s.emitter.Parse(existing)
	if err != nil {
		return &CheckResponse{Unparseable: true, Added: fresh}, nil
	}

	return diffSymbols(stored, fresh), nil
}

// diffSymbols compares by identifier. Identical symbol sets with
// different bytes (formatting drift) still count as stale.
func diffSymbols(stored, fresh []domain.AssetSymbol) *CheckResponse {
	resp := &CheckResponse{}

	old := make(map[string]domain.AssetSymbol, len(stored))
	for _, sym := range stored {
		old[sym.Identifier] = sym
	}

	current := make(map[string]bool, len(fresh))
	for _, sym := range fresh {
		current[sym.Identifier] = true

		prev, ok := old[sym.Identifier]
		switch {
		case !ok:
			resp.Added = append(resp.Added, sym)
		case prev.Value != sym.Value:
			resp.Changed = append(resp.Changed, SymbolChange{
				Identifier: sym.Identifier,
				Old:        prev.Value,
				New:        sym.Value,
			})
		}
	}

	for _, sym := range stored {
		if !current[sym.Identifier] {
			resp.Removed = append(resp.Removed, sym)
		}
	}

	return resp
}
