// Package golang renders the semantic model as Go source: structs, interfaces,
// net/http handlers and go.mod files. Every Go file is run through goimports.
package golang

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/template"
)

// Scope keys read by the Go strategies.
const (
	// KeyPackage overrides the package clause of emitted files.
	KeyPackage = "package"
	// KeyGoVersion is the go directive of emitted go.mod files.
	KeyGoVersion = "goVersion"

	keyImports = "golang.imports"
)

// DefaultGoVersion is used when the scope carries no go version.
const DefaultGoVersion = "1.24"

// ErrFormat is returned when emitted source does not parse as Go.
var ErrFormat = errors.New("generated Go source does not parse")

// Register adds the Go strategies to r. Route handlers are expanded from the
// "handler.go" skeleton of skeletons.
//
// There is deliberately no DbContext strategy: persistence in Go is left to the
// store interfaces the handlers depend on.
func Register(r *generator.Registry, skeletons *template.Manager) {
	generator.Register[*model.TypeDecl](r, declStrategy{})
	generator.Register[*model.Field](r, fieldStrategy{})
	generator.Register[*model.Property](r, propertyStrategy{})
	generator.Register[*model.Method](r, methodStrategy{})
	generator.Register[*model.Constructor](r, constructorStrategy{})
	generator.Register[*model.Param](r, paramStrategy{})
	generator.Register[*model.Attribute](r, attributeStrategy{})
	generator.Register[*model.Project](r, projectStrategy{})
	generator.Register[*model.Route](r, routeStrategy{skeletons: skeletons})
}

// Format runs goimports over src.
func Format(filename string, src string) (string, error) {
	out, err := imports.Process(filename, []byte(src), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return "", errors.WithDetail(errors.Mark(errors.Wrapf(err, "format %s", filename), ErrFormat), src)
	}
	return string(out), nil
}

// packageFor picks the package clause: the scope override, else the last
// element of the namespace, else fallback.
func packageFor(scope generator.Scope, namespace, fallback string) string {
	if pkg := scope.String(KeyPackage); pkg != "" {
		return pkg
	}
	if namespace != "" {
		if i := strings.LastIndexAny(namespace, "./"); i >= 0 {
			namespace = namespace[i+1:]
		}
		return strings.ToLower(strings.ReplaceAll(namespace, "-", ""))
	}
	return fallback
}

func formatterFor(scope generator.Scope) *TypeFormatter {
	im, _ := scope.Value(keyImports)
	m, _ := im.(*ImportManager)
	return NewTypeFormatter(m)
}
