package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/ports"
)

// ListService handles listing and searching catalog symbols
type ListService struct {
	catalog ports.CatalogRepository
	naming  domain.Naming
}

// NewListService creates a new list service
func NewListService(catalog ports.CatalogRepository, naming domain.Naming) *ListService {
	return &ListService{
		catalog: catalog,
		naming:  naming,
	}
}

// ListRequest represents a request to list symbols
type ListRequest struct {
	Query string      // Fuzzy filter on name and identifier (optional)
	Kind  domain.Kind // Restrict to one kind (optional)
}

// ListResponse represents the symbols found in the catalog
type ListResponse struct {
	Symbols    []domain.AssetSymbol
	Paths      map[string]string // SourceName -> on-disk path
	Collisions []domain.Collision
	Total      int
}

// Execute lists catalog symbols. Collisions are reported, not fatal,
// so that they can be inspected.
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	assets, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	symbols, err := s.naming.Symbols(assets)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]string, len(assets))
	for _, a := range assets {
		if a.Path != "" {
			paths[a.Name] = a.Path
		}
	}

	collisions := domain.FindCollisions(symbols)

	if req.Kind != "" {
		symbols = filterByKind(symbols, req.Kind)
	}

	if strings.TrimSpace(req.Query) != "" {
		symbols = fuzzySearch(symbols, req.Query)
	}

	return &ListResponse{
		Symbols:    symbols,
		Paths:      paths,
		Collisions: collisions,
		Total:      len(symbols),
	}, nil
}

func filterByKind(symbols []domain.AssetSymbol, kind domain.Kind) []domain.AssetSymbol {
	var filtered []domain.AssetSymbol
	for _, sym := range symbols {
		if sym.Kind == kind {
			filtered = append(filtered, sym)
		}
	}
	return filtered
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	symbol domain.AssetSymbol
	score  int
}

// fuzzySearch ranks symbols by how well the source name or identifier
// matches the query. Ties keep catalog order.
func fuzzySearch(symbols []domain.AssetSymbol, query string) []domain.AssetSymbol {
	query = strings.TrimSpace(query)

	var matches []fuzzyMatch
	for _, sym := range symbols {
		if score := fuzzyMatchScore(sym.SourceName, query); score > 0 {
			matches = append(matches, fuzzyMatch{symbol: sym, score: score + 500})
			continue
		}

		if score := fuzzyMatchScore(sym.Identifier, query); score > 0 {
			matches = append(matches, fuzzyMatch{symbol: sym, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.AssetSymbol, len(matches))
	for i, m := range matches {
		result[i] = m.symbol
	}
	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if text == query {
		return 10000
	}

	if textLower == queryLower {
		return 9000
	}

	if strings.Contains(textLower, queryLower) {
		score := 5000
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	// Character-by-character subsequence match
	score := 0
	origRunes := []rune(text)
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutive := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] != queryRunes[queryIdx] {
			continue
		}

		score += 100

		if textIdx == lastMatchIdx+1 {
			consecutive++
			score += consecutive * 50
		} else {
			consecutive = 0
		}

		// Word boundary in either spelling: letter-a-base or LetterABase
		if textIdx == 0 || isSeparator(textRunes[textIdx-1]) ||
			(textIdx < len(origRunes) && unicode.IsUpper(origRunes[textIdx])) {
			score += 200
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	if queryIdx != len(queryRunes) {
		return 0
	}

	if lastMatchIdx >= 0 {
		score -= (lastMatchIdx + 1 - len(queryRunes)) * 10
	}

	return score
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '/'
}
