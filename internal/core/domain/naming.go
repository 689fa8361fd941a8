package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Visibility controls whether generated identifiers are exported
type Visibility string

const (
	VisibilityExported   Visibility = "exported"
	VisibilityUnexported Visibility = "unexported"
)

// Naming holds the identifier rules applied to every asset
type Naming struct {
	ImagePrefix string
	ColorPrefix string
	Visibility  Visibility
}

// DefaultNaming returns the naming used when nothing is configured
func DefaultNaming() Naming {
	return Naming{
		ImagePrefix: "ImageName",
		ColorPrefix: "ColorName",
		Visibility:  VisibilityExported,
	}
}

// Prefix returns the identifier prefix for a kind
func (n Naming) Prefix(kind Kind) string {
	if kind == KindColor {
		return n.ColorPrefix
	}
	return n.ImagePrefix
}

// Sanitize turns a catalog entry name into an identifier fragment.
// "-", "_" and "/" start a new word whose first letter is upper-cased.
// Any other rune that is not a letter or digit is dropped, so
// "letter-a-eyes-wide 1" becomes "LetterAEyesWide1".
// Names are NFC-normalized first: macOS file systems hand back
// decomposed names whose combining accents would otherwise be dropped.
func Sanitize(sourceName string) string {
	name := norm.NFC.String(sourceName)

	var sb strings.Builder
	sb.Grow(len(name))

	nextUpper := true
	for _, r := range name {
		if isWordBoundary(r) {
			nextUpper = true
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}

		if nextUpper {
			r = unicode.ToUpper(r)
			nextUpper = false
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func isWordBoundary(r rune) bool {
	return r == '-' || r == '_' || r == '/'
}

// Identifier builds the full identifier for an asset name
func (n Naming) Identifier(kind Kind, sourceName string) string {
	id := n.Prefix(kind) + Sanitize(sourceName)
	if n.Visibility == VisibilityUnexported {
		id = lowerFirst(id)
	}
	return id
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Symbol derives the AssetSymbol for a single asset
func (n Naming) Symbol(asset Asset) (AssetSymbol, error) {
	if asset.Name == "" {
		return AssetSymbol{}, ErrEmptyName
	}

	kind := asset.Kind
	if kind == "" {
		kind = KindImage
	}

	id := n.Identifier(kind, asset.Name)
	if id == "" {
		return AssetSymbol{}, fmt.Errorf("%w: %q", ErrEmptyIdentifier, asset.Name)
	}

	first, _ := utf8.DecodeRuneInString(id)
	if unicode.IsDigit(first) {
		id = "_" + id
	}

	return AssetSymbol{
		SourceName: asset.Name,
		Identifier: id,
		Value:      asset.Name,
		Kind:       kind,
	}, nil
}

// Symbols derives symbols for every asset, preserving order
func (n Naming) Symbols(assets []Asset) ([]AssetSymbol, error) {
	symbols := make([]AssetSymbol, 0, len(assets))
	for _, asset := range assets {
		sym, err := n.Symbol(asset)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}
