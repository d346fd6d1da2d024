// Package analyzer loads Go packages and turns their exported named types into
// declarations: structs become classes and interfaces become interfaces. Field
// and method types are mapped to neutral type references so either backend can
// render them.
package analyzer

import (
	"context"
	"go/ast"
	"go/types"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/origadmin/syngen/internal/model"
)

// BuildTag is set while loading, so files can carry declarations meant only for
// generation.
const BuildTag = "syngen"

// TypeAnalyzer walks loaded packages and builds declarations.
type TypeAnalyzer struct {
	pkgs      []*packages.Package
	typeCache map[types.Type]*model.TypeRef
}

// NewTypeAnalyzer creates a new TypeAnalyzer.
func NewTypeAnalyzer() *TypeAnalyzer {
	return &TypeAnalyzer{
		typeCache: make(map[types.Type]*model.TypeRef),
	}
}

// Load is shorthand for NewTypeAnalyzer().Load.
func Load(ctx context.Context, dir string, patterns ...string) ([]*model.TypeDecl, error) {
	return NewTypeAnalyzer().Load(ctx, dir, patterns...)
}

// Load type-checks the packages matching patterns, relative to dir, and returns
// their exported structs and interfaces. Packages are visited in load order and
// types in name order. A package that fails to load fails the call.
func (a *TypeAnalyzer) Load(ctx context.Context, dir string, patterns ...string) ([]*model.TypeDecl, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        dir,
		Mode:       packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Tests:      false,
		BuildFlags: []string{"-tags=" + BuildTag},
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "load packages in %s", dir)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("load package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}
	a.pkgs = pkgs

	var decls []*model.TypeDecl
	for _, pkg := range pkgs {
		decls = append(decls, a.analyzePackage(pkg)...)
	}
	slog.Debug("Analyzed packages", "dir", dir, "packages", len(pkgs), "declarations", len(decls))
	return decls, nil
}

func (a *TypeAnalyzer) analyzePackage(pkg *packages.Package) []*model.TypeDecl {
	docs := typeDocs(pkg.Syntax)
	scope := pkg.Types.Scope()

	var decls []*model.TypeDecl
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() || obj.IsAlias() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		d := parseDirectives(docs[name])
		if d.skip {
			slog.Debug("Skipping type", "pkg", pkg.PkgPath, "type", name)
			continue
		}

		var decl *model.TypeDecl
		switch u := named.Underlying().(type) {
		case *types.Struct:
			decl = a.structDecl(named, u)
		case *types.Interface:
			decl = a.interfaceDecl(named, u)
		default:
			continue
		}
		decl.Namespace = pkg.PkgPath
		if d.name != "" {
			decl.Name = d.name
		}
		decl.AddAttribute(d.attributes...)
		decls = append(decls, decl)
	}
	return decls
}

func (a *TypeAnalyzer) structDecl(named *types.Named, s *types.Struct) *model.TypeDecl {
	decl := model.NewClass(named.Obj().Name())
	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		if !f.Exported() {
			continue
		}
		if f.Embedded() {
			if decl.BaseType == nil {
				decl.BaseType = a.resolveType(f.Type())
			}
			continue
		}
		tag := reflect.StructTag(s.Tag(i)).Get("json")
		if tag == "-" {
			continue
		}
		prop := model.NewProperty(f.Name(), a.resolveType(f.Type()))
		prop.Required = !prop.Type.Nullable && !strings.Contains(tag, "omitempty")
		decl.Add(prop)
	}

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		// Promoted methods belong to the embedded type.
		if !ok || !fn.Exported() || len(mset.At(i).Index()) > 1 {
			continue
		}
		decl.Add(a.method(fn))
	}
	return decl
}

func (a *TypeAnalyzer) interfaceDecl(named *types.Named, iface *types.Interface) *model.TypeDecl {
	decl := model.NewInterface(named.Obj().Name())
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if _, ok := iface.EmbeddedType(i).(*types.Named); ok {
			decl.Implement(a.resolveType(iface.EmbeddedType(i)))
		}
	}
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		if fn := iface.ExplicitMethod(i); fn.Exported() {
			decl.Add(a.method(fn))
		}
	}
	return decl
}

// method maps a Go signature. A leading context.Context parameter together with
// a trailing error result marks the method async; both are dropped. A remaining
// error result is dropped too, since the backends add it back for async methods.
func (a *TypeAnalyzer) method(fn *types.Func) *model.Method {
	sig := fn.Type().(*types.Signature)
	params, results := sig.Params(), sig.Results()

	first := 0
	lastResult := results.Len()
	hasErr := lastResult > 0 && isError(results.At(lastResult-1).Type())
	if hasErr {
		lastResult--
	}
	async := params.Len() > 0 && isContext(params.At(0).Type()) && hasErr
	if async {
		first = 1
	}

	var returns *model.TypeRef
	if lastResult > 0 {
		returns = a.resolveType(results.At(0).Type())
	}
	m := model.NewMethod(fn.Name(), returns)
	m.Async = async
	for i := first; i < params.Len(); i++ {
		p := params.At(i)
		name := p.Name()
		if name == "" || name == "_" {
			name = "arg" + strconv.Itoa(i-first)
		}
		m.AddParam(model.NewParam(name, a.resolveType(p.Type())))
	}
	return m
}

// typeDocs maps type names to their doc comments. A lone type spec takes the
// comment of its declaration.
func typeDocs(files []*ast.File) map[string]*ast.CommentGroup {
	docs := make(map[string]*ast.CommentGroup)
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				docs[ts.Name.Name] = doc
			}
		}
	}
	return docs
}
