package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/ports"
)

// imageExtensions are loose files picked up outside of an .imageset
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".pdf":  true,
	".webp": true,
	".heic": true,
}

// "icon@2x" and "icon@3x" are scale variants of "icon"
var scaleSuffix = regexp.MustCompile(`@\d+(\.\d+)?x$`)

// folderContents is the subset of an asset catalog Contents.json we read
type folderContents struct {
	Properties struct {
		ProvidesNamespace bool `json:"provides-namespace"`
	} `json:"properties"`
}

// DirectoryCatalogRepository reads an .xcassets style directory
type DirectoryCatalogRepository struct {
	root string
}

func NewDirectoryCatalogRepository(root string) *DirectoryCatalogRepository {
	return &DirectoryCatalogRepository{root: root}
}

// NewCatalogRepository picks the repository for a catalog path:
// YAML files are manifests, anything else is a directory
func NewCatalogRepository(path string) ports.CatalogRepository {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewManifestCatalogRepository(path)
	default:
		return NewDirectoryCatalogRepository(path)
	}
}

// List walks the catalog and returns its assets sorted by name
func (r *DirectoryCatalogRepository) List(ctx context.Context) ([]domain.Asset, error) {
	info, err := os.Stat(r.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, r.root)
		}
		return nil, fmt.Errorf("failed to stat catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog %s is not a directory", r.root)
	}

	var assets []domain.Asset
	seen := make(map[string]bool)
	if err := r.walk(ctx, r.root, "", &assets, seen); err != nil {
		return nil, err
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].Name < assets[j].Name
	})

	return assets, nil
}

func (r *DirectoryCatalogRepository) walk(ctx context.Context, dir, namespace string, assets *[]domain.Asset, seen map[string]bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		// Skip hidden files and editor droppings
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
			continue
		}

		if entry.IsDir() {
			ext := filepath.Ext(name)
			base := strings.TrimSuffix(name, ext)

			switch {
			case ext == ".imageset":
				*assets = append(*assets, domain.Asset{Name: namespace + base, Kind: domain.KindImage, Path: path})
			case ext == ".colorset":
				*assets = append(*assets, domain.Asset{Name: namespace + base, Kind: domain.KindColor, Path: path})
			case strings.HasSuffix(ext, "set"):
				// appiconset, dataset, symbolset... carry no symbols
			default:
				child := namespace
				if providesNamespace(path) {
					child = namespace + name + "/"
				}
				if err := r.walk(ctx, path, child, assets, seen); err != nil {
					return err
				}
			}
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		if !imageExtensions[ext] {
			continue
		}

		assetName := namespace + scaleSuffix.ReplaceAllString(strings.TrimSuffix(name, filepath.Ext(name)), "")
		if seen[assetName] {
			continue
		}
		seen[assetName] = true

		*assets = append(*assets, domain.Asset{Name: assetName, Kind: domain.KindImage, Path: path})
	}

	return nil
}

// providesNamespace reports whether a folder's Contents.json enables
// "Provides Namespace"; a missing or unreadable file means no
func providesNamespace(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, "Contents.json"))
	if err != nil {
		return false
	}

	var contents folderContents
	if err := json.Unmarshal(data, &contents); err != nil {
		return false
	}
	return contents.Properties.ProvidesNamespace
}
