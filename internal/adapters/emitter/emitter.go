package emitter

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
	"github.com/kamal-hamza/assetsym/internal/core/ports"
)

const (
	FormatGo   = "go"
	FormatObjC = "objc"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options configures the emitted file
type Options struct {
	Package   string // Go package clause
	Namespace string // ObjC identifier namespace (e.g. "AC")
}

// New returns the emitter for a format name
func New(format string, opts Options) (ports.Emitter, error) {
	switch strings.ToLower(format) {
	case FormatGo:
		return NewGoEmitter(opts.Package), nil
	case FormatObjC:
		return NewObjCEmitter(opts.Namespace), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

// Formats lists the supported format names
func Formats() []string {
	return []string{FormatGo, FormatObjC}
}

func mustParse(name string, funcs template.FuncMap) *template.Template {
	return must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+name))
}

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}

	return value
}

// withKinds fills in the default kind so templates never render an empty one
func withKinds(symbols []domain.AssetSymbol) []domain.AssetSymbol {
	out := make([]domain.AssetSymbol, len(symbols))
	for i, sym := range symbols {
		if sym.Kind == "" {
			sym.Kind = domain.KindImage
		}
		out[i] = sym
	}
	return out
}
