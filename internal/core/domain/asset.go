package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the resource type of an asset catalog entry
type Kind string

const (
	KindImage Kind = "image"
	KindColor Kind = "color"
)

// ParseKind converts a user supplied kind into a Kind.
// An empty string defaults to KindImage.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "image":
		return KindImage, nil
	case "color", "colour":
		return KindColor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Asset represents a named entry in an asset catalog
type Asset struct {
	Name string `yaml:"name"` // Catalog lookup key (e.g. letter-a-eyes-wide 1)
	Kind Kind   `yaml:"kind"`
	Path string `yaml:"-"` // On-disk location, empty for manifest entries
}

// AssetSymbol pairs a generated identifier with the literal lookup key it names
type AssetSymbol struct {
	SourceName string
	Identifier string
	Value      string
	Kind       Kind
}

// rank orders kinds in generated files: colors, then images
func (k Kind) rank() int {
	if k == KindColor {
		return 0
	}
	return 1
}

// SortByKind groups symbols by kind, keeping their relative order within a kind
func SortByKind(symbols []AssetSymbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Kind.rank() < symbols[j].Kind.rank()
	})
}
