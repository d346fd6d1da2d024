package analyzer

import (
	"go/types"
	"log/slog"

	"github.com/origadmin/syngen/internal/model"
)

// wellKnown maps qualified Go types to neutral names.
var wellKnown = map[string]string{
	"time.Time":                             model.TypeDateTime,
	"time.Duration":                         "TimeSpan",
	"github.com/google/uuid.UUID":           model.TypeGuid,
	"github.com/shopspring/decimal.Decimal": model.TypeDecimal,
}

var basics = map[types.BasicKind]string{
	types.Bool:    model.TypeBool,
	types.String:  model.TypeString,
	types.Int:     model.TypeInt,
	types.Int8:    model.TypeInt,
	types.Int16:   model.TypeInt,
	types.Int32:   model.TypeInt,
	types.Uint8:   model.TypeInt,
	types.Uint16:  model.TypeInt,
	types.Uint32:  model.TypeInt,
	types.Int64:   model.TypeLong,
	types.Uint:    model.TypeLong,
	types.Uint64:  model.TypeLong,
	types.Float32: model.TypeDouble,
	types.Float64: model.TypeDouble,
}

// resolveType maps a Go type to a neutral reference. Types of the analyzed
// packages keep their bare name; types of other packages are qualified with
// their import path.
func (a *TypeAnalyzer) resolveType(typ types.Type) *model.TypeRef {
	if cached, ok := a.typeCache[typ]; ok {
		return cached
	}
	ref := a.convert(typ)
	a.typeCache[typ] = ref
	return ref
}

func (a *TypeAnalyzer) convert(typ types.Type) *model.TypeRef {
	switch t := typ.(type) {
	case *types.Alias:
		return a.resolveType(types.Unalias(t))
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			// Universe types such as error.
			return model.Ref(obj.Name())
		}
		qualified := obj.Pkg().Path() + "." + obj.Name()
		if name, ok := wellKnown[qualified]; ok {
			return model.Ref(name)
		}
		name := obj.Name()
		if !a.loaded(obj.Pkg().Path()) {
			name = qualified
		}
		ref := model.Ref(name)
		for i := 0; i < t.TypeArgs().Len(); i++ {
			ref.Args = append(ref.Args, a.resolveType(t.TypeArgs().At(i)))
		}
		return ref
	case *types.Pointer:
		return a.resolveType(t.Elem()).Optional()
	case *types.Slice:
		if b, ok := t.Elem().(*types.Basic); ok && b.Kind() == types.Byte {
			return model.Ref("byte[]")
		}
		return model.ListOf(a.resolveType(t.Elem()))
	case *types.Array:
		return model.ListOf(a.resolveType(t.Elem()))
	case *types.Map:
		return model.Ref(model.TypeDict, a.resolveType(t.Key()), a.resolveType(t.Elem()))
	case *types.Basic:
		if name, ok := basics[t.Kind()]; ok {
			return model.Ref(name)
		}
	case *types.Interface:
		return model.Ref(model.TypeObject)
	}
	slog.Warn("Unmapped type, using object", "type", typ.String())
	return model.Ref(model.TypeObject)
}

func (a *TypeAnalyzer) loaded(path string) bool {
	for _, pkg := range a.pkgs {
		if pkg.PkgPath == path {
			return true
		}
	}
	return false
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	return ok && named.Obj().Pkg() != nil && named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}
