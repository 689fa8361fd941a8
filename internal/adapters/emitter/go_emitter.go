package emitter

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strconv"
	"text/template"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
)

var goTemplate = mustParse("go.tmpl", template.FuncMap{
	"quote": strconv.Quote,
})

// GoEmitter renders symbols as a gofmt'd Go const block
type GoEmitter struct {
	pkg string
}

// NewGoEmitter creates a Go emitter for the given package name
func NewGoEmitter(pkg string) *GoEmitter {
	if pkg == "" {
		pkg = "assets"
	}
	return &GoEmitter{pkg: pkg}
}

func (e *GoEmitter) Format() string {
	return FormatGo
}

// Emit renders one constant per symbol in input order
func (e *GoEmitter) Emit(symbols []domain.AssetSymbol) ([]byte, error) {
	var buf bytes.Buffer

	err := goTemplate.Execute(&buf, map[string]any{
		"Package": e.pkg,
		"Symbols": withKinds(symbols),
	})
	if err != nil {
		return nil, fmt.Errorf("could not execute template: %w", err)
	}

	source, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not format source: %w", err)
	}

	return source, nil
}

// Parse collects every string constant declared in content
func (e *GoEmitter) Parse(content []byte) ([]domain.AssetSymbol, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", content, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("could not parse source: %w", err)
	}

	var symbols []domain.AssetSymbol
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}

		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != len(vs.Values) {
				continue
			}

			for i, name := range vs.Names {
				lit, ok := vs.Values[i].(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}

				value, err := strconv.Unquote(lit.Value)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", fset.Position(lit.Pos()), err)
				}

				symbols = append(symbols, domain.AssetSymbol{
					SourceName: value,
					Identifier: name.Name,
					Value:      value,
				})
			}
		}
	}

	return symbols, nil
}
