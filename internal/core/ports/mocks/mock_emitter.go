package mocks

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
)

// MockEmitter renders one "Identifier=quoted value" line per symbol
type MockEmitter struct{}

// NewMockEmitter creates a new mock emitter
func NewMockEmitter() *MockEmitter {
	return &MockEmitter{}
}

func (m *MockEmitter) Format() string {
	return "mock"
}

func (m *MockEmitter) Emit(symbols []domain.AssetSymbol) ([]byte, error) {
	var buf bytes.Buffer
	for _, sym := range symbols {
		fmt.Fprintf(&buf, "%s=%s\n", sym.Identifier, strconv.Quote(sym.Value))
	}
	return buf.Bytes(), nil
}

func (m *MockEmitter) Parse(content []byte) ([]domain.AssetSymbol, error) {
	var symbols []domain.AssetSymbol

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		id, quoted, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			return nil, fmt.Errorf("malformed line: %q", scanner.Text())
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, fmt.Errorf("malformed value in %q: %w", scanner.Text(), err)
		}
		symbols = append(symbols, domain.AssetSymbol{
			SourceName: value,
			Identifier: id,
			Value:      value,
		})
	}
	return symbols, scanner.Err()
}
