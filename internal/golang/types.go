package golang

import (
	"strings"

	"github.com/origadmin/syngen/internal/model"
)

// goType is the Go spelling of a neutral type, with the package it lives in.
type goType struct {
	path string
	name string
}

var builtins = map[string]goType{
	model.TypeString:   {name: "string"},
	model.TypeBool:     {name: "bool"},
	model.TypeInt:      {name: "int"},
	model.TypeLong:     {name: "int64"},
	model.TypeDecimal:  {name: "float64"},
	model.TypeDouble:   {name: "float64"},
	model.TypeObject:   {name: "any"},
	model.TypeGuid:     {path: "github.com/google/uuid", name: "UUID"},
	model.TypeDateTime: {path: "time", name: "Time"},
	"short":            {name: "int16"},
	"byte":             {name: "byte"},
	"float":            {name: "float32"},
	"TimeSpan":         {path: "time", name: "Duration"},
	"String":           {name: "string"},
	"Boolean":          {name: "bool"},
	"Int32":            {name: "int"},
	"Int64":            {name: "int64"},
	"Object":           {name: "any"},
}

// TypeFormatter renders type references in Go syntax, qualifying package types
// with the names an ImportManager assigned.
type TypeFormatter struct {
	imports *ImportManager
}

// NewTypeFormatter creates a formatter over imports. A nil manager qualifies with
// default package names.
func NewTypeFormatter(imports *ImportManager) *TypeFormatter {
	return &TypeFormatter{imports: imports}
}

// Format renders ref; void renders as "".
//
// List<T> becomes []T, Dictionary<K, V> becomes map[K]V and Task<T> becomes T.
// A nullable reference becomes a pointer unless the Go type is already nilable.
// A qualified name, "example.com/pkg.Type", is resolved through the imports.
func (f *TypeFormatter) Format(ref *model.TypeRef) string {
	if ref.IsVoid() {
		return ""
	}
	switch ref.Name {
	case model.TypeList:
		return "[]" + f.arg(ref, 0)
	case model.TypeDict:
		return "map[" + f.arg(ref, 0) + "]" + f.arg(ref, 1)
	case model.TypeTask:
		if len(ref.Args) == 0 {
			return ""
		}
		return f.Format(ref.Args[0])
	}

	var s string
	if t, ok := builtins[ref.Name]; ok {
		s = f.qualify(t)
	} else if pkg, name, ok := splitQualified(ref.Name); ok {
		s = f.qualify(goType{path: pkg, name: name})
	} else {
		s = ref.Name
	}
	if ref.Nullable && s != "any" {
		s = "*" + s
	}
	return s
}

func (f *TypeFormatter) arg(ref *model.TypeRef, i int) string {
	if i >= len(ref.Args) {
		return "any"
	}
	if s := f.Format(ref.Args[i]); s != "" {
		return s
	}
	return "struct{}"
}

func (f *TypeFormatter) qualify(t goType) string {
	if t.path == "" {
		return t.name
	}
	return f.imports.Name(t.path) + "." + t.name
}

// splitQualified splits "example.com/pkg.Type" or "sync.Mutex" into its import
// path and type name.
func splitQualified(name string) (string, string, bool) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot < strings.LastIndex(name, "/") {
		return "", "", false
	}
	return name[:dot], name[dot+1:], true
}

// TypeImports returns the import paths ref needs, in order of first use.
func TypeImports(ref *model.TypeRef) []string {
	var out []string
	var walk func(*model.TypeRef)
	walk = func(r *model.TypeRef) {
		if r == nil {
			return
		}
		if t, ok := builtins[r.Name]; ok && t.path != "" {
			out = append(out, t.path)
		} else if pkg, _, ok := splitQualified(r.Name); ok {
			out = append(out, pkg)
		}
		for _, a := range r.Args {
			walk(a)
		}
	}
	walk(ref)
	return out
}
