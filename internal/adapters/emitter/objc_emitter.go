package emitter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/kamal-hamza/assetsym/internal/core/domain"
)

var objcTemplate = mustParse("objc.tmpl", template.FuncMap{
	"objcQuote":  objcQuote,
	"objcEscape": objcEscaper.Replace,
})

var objcDecl = regexp.MustCompile(`(?m)^static NSString \* const ([\p{L}\p{N}_]+) AC_SWIFT_PRIVATE = @"((?:[^"\\]|\\.)*)";$`)

// ObjCEmitter renders symbols as an Objective-C header of NSString constants.
// The AC_SWIFT_PRIVATE marker is defined at the top and undefined at the end.
type ObjCEmitter struct {
	namespace string
}

// NewObjCEmitter creates an emitter whose identifiers start with namespace
func NewObjCEmitter(namespace string) *ObjCEmitter {
	return &ObjCEmitter{namespace: namespace}
}

func (e *ObjCEmitter) Format() string {
	return FormatObjC
}

func (e *ObjCEmitter) Emit(symbols []domain.AssetSymbol) ([]byte, error) {
	var buf bytes.Buffer

	err := objcTemplate.Execute(&buf, map[string]any{
		"Namespace": e.namespace,
		"Symbols":   withKinds(symbols),
	})
	if err != nil {
		return nil, fmt.Errorf("could not execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// Parse recovers declarations, stripping the namespace from identifiers
func (e *ObjCEmitter) Parse(content []byte) ([]domain.AssetSymbol, error) {
	if !bytes.Contains(content, []byte("#undef AC_SWIFT_PRIVATE")) {
		return nil, errors.New("not an asset symbol header")
	}

	var symbols []domain.AssetSymbol
	for _, m := range objcDecl.FindAllSubmatch(content, -1) {
		value := objcUnquote(string(m[2]))
		symbols = append(symbols, domain.AssetSymbol{
			SourceName: value,
			Identifier: strings.TrimPrefix(string(m[1]), e.namespace),
			Value:      value,
		})
	}

	return symbols, nil
}

var (
	objcEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	objcUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\t`, "\t", `\r`, "\r")
)

func objcQuote(s string) string {
	return `"` + objcEscaper.Replace(s) + `"`
}

func objcUnquote(s string) string {
	return objcUnescaper.Replace(s)
}
