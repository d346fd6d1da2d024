// Package csharp renders the semantic model as C# source, project files and
// minimal-API endpoints.
package csharp

import (
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

const indent = "    "

// Scope keys read by the C# strategies.
const (
	// KeyTargetFramework is the default target framework moniker for projects.
	KeyTargetFramework = "targetFramework"
	// keyFragment suppresses the using block and namespace header of a TypeDecl so
	// several declarations can share one file.
	keyFragment = "csharp.fragment"
)

// DefaultTargetFramework is used when neither the project nor the scope names one.
const DefaultTargetFramework = "net8.0"

// Register adds the C# strategies for declarations, members and artifact
// descriptors to r.
func Register(r *generator.Registry) {
	generator.Register[*model.TypeDecl](r, declStrategy{})
	generator.Register[*model.Field](r, fieldStrategy{})
	generator.Register[*model.Property](r, propertyStrategy{})
	generator.Register[*model.Method](r, methodStrategy{})
	generator.Register[*model.Constructor](r, constructorStrategy{})
	generator.Register[*model.Param](r, paramStrategy{})
	generator.Register[*model.Attribute](r, attributeStrategy{})
	generator.Register[*model.Project](r, projectStrategy{})
	generator.Register[*model.DbContext](r, dbContextStrategy{})
	registerRoutes(r)
}

// fileHeader renders the using block and file-scoped namespace.
func fileHeader(usings []string, namespace string) string {
	var sb strings.Builder
	for _, u := range usings {
		sb.WriteString("using ")
		sb.WriteString(u)
		sb.WriteString(";\n")
	}
	if len(usings) > 0 {
		sb.WriteByte('\n')
	}
	if namespace != "" {
		sb.WriteString("namespace ")
		sb.WriteString(namespace)
		sb.WriteString(";\n\n")
	}
	return sb.String()
}

func fragment(scope generator.Scope) generator.Scope {
	return scope.With(keyFragment, true)
}

func isFragment(scope generator.Scope) bool {
	v, _ := scope.Value(keyFragment)
	b, _ := v.(bool)
	return b
}
