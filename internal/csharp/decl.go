package csharp

import (
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

type declStrategy struct {
	generator.Default[*model.TypeDecl]
}

// Generate renders the declaration with its using block and namespace, unless the
// scope marks it as a fragment of a larger file.
func (declStrategy) Generate(g *generator.Generator, scope generator.Scope, d *model.TypeDecl) (string, error) {
	attrs, err := renderAttributes(g, scope, d.Attributes())
	if err != nil {
		return "", err
	}
	members, err := generator.RenderMembers(g, scope, d)
	if err != nil {
		return "", err
	}

	body := generator.Block(declHeader(d), strings.Join(members, "\n\n"), indent)
	decl := generator.JoinNonEmpty("\n", attrs, body)
	if isFragment(scope) {
		return decl, nil
	}
	ns := d.Namespace
	if ns == "" {
		ns = scope.String(generator.KeyNamespace)
	}
	return fileHeader(model.AllUsings(d), ns) + decl + "\n", nil
}

func declHeader(d *model.TypeDecl) string {
	words := []string{d.Access.String()}
	switch {
	case d.Static:
		words = append(words, "static")
	case d.IsAbstract():
		words = append(words, "abstract")
	}
	if d.Partial {
		words = append(words, "partial")
	}
	words = append(words, d.Kind.String(), d.Name)
	header := strings.Join(words, " ")

	var bases []string
	if d.Kind == model.Class && d.BaseType != nil {
		bases = append(bases, Type(d.BaseType))
	}
	for _, ref := range d.Implements() {
		bases = append(bases, Type(ref))
	}
	if len(bases) > 0 {
		header += " : " + strings.Join(bases, ", ")
	}
	return header
}

type attributeStrategy struct {
	generator.Default[*model.Attribute]
}

func (attributeStrategy) Generate(_ *generator.Generator, _ generator.Scope, a *model.Attribute) (string, error) {
	args := append([]string(nil), a.Args...)
	for _, n := range a.Named {
		args = append(args, n.Name+" = "+n.Value)
	}
	if len(args) == 0 {
		return "[" + a.Name + "]", nil
	}
	return "[" + a.Name + "(" + strings.Join(args, ", ") + ")]", nil
}

type paramStrategy struct {
	generator.Default[*model.Param]
}

func (paramStrategy) Generate(_ *generator.Generator, _ generator.Scope, p *model.Param) (string, error) {
	s := Type(p.Type) + " " + p.Name
	if p.Default != "" {
		s += " = " + p.Default
	}
	return s, nil
}

// renderAttributes renders one attribute per line.
func renderAttributes(g *generator.Generator, scope generator.Scope, attrs []*model.Attribute) (string, error) {
	lines := make([]string, 0, len(attrs))
	for _, a := range attrs {
		s, err := g.Render(scope, a)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}

func renderParams(g *generator.Generator, scope generator.Scope, params []*model.Param) (string, error) {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s, err := g.Render(scope, p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}
