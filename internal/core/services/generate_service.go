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

// GenerateService turns the asset catalog into a generated source file
type GenerateService struct {
	catalog ports.CatalogRepository
	emitter ports.Emitter
	output  ports.OutputRepository
	naming  domain.Naming
}

// NewGenerateService creates a new generate service
func NewGenerateService(
	catalog ports.CatalogRepository,
	emitter ports.Emitter,
	output ports.OutputRepository,
	naming domain.Naming,
) *GenerateService {
	return &GenerateService{
		catalog: catalog,
		emitter: emitter,
		output:  output,
		naming:  naming,
	}
}

// GenerateRequest represents a request to generate the symbol file
type GenerateRequest struct {
	Output string // Destination path; empty only renders
	DryRun bool   // Render and compare without writing
}

// GenerateResponse represents the outcome of a generation
type GenerateResponse struct {
	Symbols []domain.AssetSymbol
	Content []byte
	Changed bool // Content differs from what is stored
	Written bool
}

// Execute renders the catalog and writes it when the stored file is stale.
// Generation is all-or-nothing: nothing is written if any asset fails.
func (s *GenerateService) Execute(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	symbols, content, err := render(ctx, s.catalog, s.emitter, s.naming)
	if err != nil {
		return nil, err
	}

	resp := &GenerateResponse{
		Symbols: symbols,
		Content: content,
		Changed: true,
	}

	if req.Output == "" {
		return resp, nil
	}

	existing, err := s.output.Read(ctx, req.Output)
	switch {
	case err == nil:
		resp.Changed = !bytes.Equal(existing, content)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read existing output: %w", err)
	}

	if !resp.Changed || req.DryRun {
		return resp, nil
	}

	if err := s.output.Write(ctx, req.Output, content); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	resp.Written = true

	return resp, nil
}

// render lists the catalog, derives unique symbols grouped by kind and emits them
func render(
	ctx context.Context,
	catalog ports.CatalogRepository,
	emitter ports.Emitter,
	naming domain.Naming,
) ([]domain.AssetSymbol, []byte, error) {
	assets, err := catalog.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	symbols, err := naming.Symbols(assets)
	if err != nil {
		return nil, nil, err
	}

	if err := domain.CheckUnique(symbols); err != nil {
		return nil, nil, err
	}
	domain.SortByKind(symbols)

	content, err := emitter.Emit(symbols)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to emit %s output: %w", emitter.Format(), err)
	}

	return symbols, content, nil
}
