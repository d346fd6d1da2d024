package golang

import (
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/naming"
)

type declStrategy struct {
	generator.Default[*model.TypeDecl]
}

// Generate renders a struct or an interface as one formatted Go file.
//
// Fields and properties go into the struct body and everything else follows the
// type; within each group members keep their insertion order. Imports are
// collected from the whole declaration before any member is rendered, so the
// member strategies only read the import manager.
func (declStrategy) Generate(g *generator.Generator, scope generator.Scope, d *model.TypeDecl) (string, error) {
	im := NewImportManager()
	for _, p := range declImports(d) {
		im.Add(p)
	}
	inner := scope.With(keyImports, im)

	rendered, err := generator.RenderMembers(g, inner, d)
	if err != nil {
		return "", err
	}
	doc, err := renderComments(g, inner, d.Attributes())
	if err != nil {
		return "", err
	}

	var body, after []string
	for i, m := range d.Members() {
		if inStruct(d, m) {
			body = append(body, rendered[i])
		} else {
			after = append(after, rendered[i])
		}
	}

	var sb strings.Builder
	sb.WriteString("package " + packageFor(scope, d.Namespace, "model") + "\n\n")
	sb.WriteString(im.Block())
	if doc != "" {
		sb.WriteString(doc + "\n")
	}
	keyword := "struct"
	if d.Kind == model.Interface {
		keyword = "interface"
	}
	sb.WriteString("type " + exported(d.Name, d.Access) + " " + keyword)
	sb.WriteString(" {\n")
	if d.BaseType != nil && d.Kind == model.Class {
		sb.WriteString("\t" + formatterFor(inner).Format(d.BaseType) + "\n")
	}
	if d.Kind == model.Interface {
		for _, ref := range d.Implements() {
			sb.WriteString("\t" + formatterFor(inner).Format(ref) + "\n")
		}
	}
	for _, line := range body {
		sb.WriteString(generator.Indent(line, "\t") + "\n")
	}
	sb.WriteString("}\n")
	if d.Kind == model.Class {
		name := exported(d.Name, d.Access)
		for _, ref := range d.Implements() {
			sb.WriteString("\nvar _ " + formatterFor(inner).Format(ref) + " = (*" + name + ")(nil)\n")
		}
	}
	for _, s := range after {
		sb.WriteString("\n" + s + "\n")
	}
	return Format(strings.ToLower(d.Name)+".go", sb.String())
}

// inStruct reports whether m is rendered inside the type body.
func inStruct(d *model.TypeDecl, m model.Member) bool {
	switch m := m.(type) {
	case *model.Field:
		return !m.Static
	case *model.Property:
		return !m.Static
	case *model.Method:
		return d.Kind == model.Interface
	default:
		return false
	}
}

// declImports walks the declaration and collects the import paths of every type
// it mentions. Usings declared on the nodes are treated as import paths.
func declImports(d *model.TypeDecl) []string {
	paths := model.AllUsings(d)
	add := func(ref *model.TypeRef) {
		paths = append(paths, TypeImports(ref)...)
	}
	add(d.BaseType)
	for _, ref := range d.Implements() {
		add(ref)
	}
	for _, n := range model.Descendants(d) {
		switch n := n.(type) {
		case *model.Field:
			add(n.Type)
		case *model.Property:
			add(n.Type)
		case *model.Param:
			add(n.Type)
		case *model.Method:
			add(n.Returns)
			if n.Async {
				paths = append(paths, "context")
			}
		}
	}
	return paths
}

// exported spells name for access: public names are exported, everything else
// starts lowercase.
func exported(name string, access model.Access) string {
	if access == model.Public {
		return naming.Pascal(name)
	}
	return naming.Camel(name)
}

func receiverName(typeName string) string {
	n := naming.Derive(typeName)
	if n.Camel == "" {
		return "x"
	}
	return strings.ToLower(n.Camel[:1])
}

type attributeStrategy struct {
	generator.Default[*model.Attribute]
}

// Generate renders an attribute as a directive-style comment.
func (attributeStrategy) Generate(_ *generator.Generator, _ generator.Scope, a *model.Attribute) (string, error) {
	args := append([]string(nil), a.Args...)
	for _, n := range a.Named {
		args = append(args, n.Name+"="+n.Value)
	}
	if len(args) == 0 {
		return "// +" + a.Name, nil
	}
	return "// +" + a.Name + "(" + strings.Join(args, ", ") + ")", nil
}

func renderComments(g *generator.Generator, scope generator.Scope, attrs []*model.Attribute) (string, error) {
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

type paramStrategy struct {
	generator.Default[*model.Param]
}

func (paramStrategy) Generate(_ *generator.Generator, scope generator.Scope, p *model.Param) (string, error) {
	return naming.Camel(p.Name) + " " + formatterFor(scope).Format(p.Type), nil
}

func renderParams(g *generator.Generator, scope generator.Scope, params []*model.Param) ([]string, error) {
	out := make([]string, 0, len(params))
	for _, p := range params {
		s, err := g.Render(scope, p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
