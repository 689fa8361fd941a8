package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
)

// manifest is the on-disk shape of a YAML catalog:
//
//	assets:
//	  - name: airplane
//	  - name: accent-blue
//	    kind: color
type manifest struct {
	Assets []struct {
		Name string `yaml:"name"`
		Kind string `yaml:"kind"`
	} `yaml:"assets"`
}

// ManifestCatalogRepository reads assets from a YAML manifest.
// Entries keep the order in which they are listed.
type ManifestCatalogRepository struct {
	path string
}

func NewManifestCatalogRepository(path string) *ManifestCatalogRepository {
	return &ManifestCatalogRepository{path: path}
}

func (r *ManifestCatalogRepository) List(ctx context.Context) ([]domain.Asset, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	assets := make([]domain.Asset, 0, len(m.Assets))
	for i, entry := range m.Assets {
		kind, err := domain.ParseKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d (%q): %w", i+1, entry.Name, err)
		}
		assets = append(assets, domain.Asset{Name: entry.Name, Kind: kind})
	}

	return assets, nil
}
