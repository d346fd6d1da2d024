package golang

import (
	"strconv"
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/naming"
)

type fieldStrategy struct {
	generator.Default[*model.Field]
}

// Generate renders a struct field, or a package variable for a static field.
func (fieldStrategy) Generate(g *generator.Generator, scope generator.Scope, f *model.Field) (string, error) {
	doc, err := renderComments(g, scope, f.Attributes())
	if err != nil {
		return "", err
	}
	typ := formatterFor(scope).Format(f.Type)
	name := exported(f.Name, f.Access)
	if f.Static {
		return generator.JoinNonEmpty("\n", doc, packageVar(name, typ, f.Value)), nil
	}
	return generator.JoinNonEmpty("\n", doc, name+" "+typ), nil
}

type propertyStrategy struct {
	generator.Default[*model.Property]
}

// Generate renders an exported field with a json tag, or a getter inside an
// interface.
func (propertyStrategy) Generate(g *generator.Generator, scope generator.Scope, p *model.Property) (string, error) {
	doc, err := renderComments(g, scope, p.Attributes())
	if err != nil {
		return "", err
	}
	typ := formatterFor(scope).Format(p.Type)
	name := naming.Pascal(p.Name)
	if declaringKind(p) == model.Interface {
		return generator.JoinNonEmpty("\n", doc, name+"() "+typ), nil
	}
	if p.Static {
		return generator.JoinNonEmpty("\n", doc, packageVar(name, typ, p.Value)), nil
	}
	tag := naming.Camel(p.Name)
	if p.Type != nil && p.Type.Nullable {
		tag += ",omitempty"
	}
	return generator.JoinNonEmpty("\n", doc, name+" "+typ+" `json:"+strconv.Quote(tag)+"`"), nil
}

func packageVar(name, typ, value string) string {
	if value == "" {
		return "var " + name + " " + typ
	}
	return "var " + name + " " + typ + " = " + value
}

type methodStrategy struct {
	generator.Default[*model.Method]
}

// Generate renders a method. Inside an interface only the signature is emitted.
// Static methods become package functions; async methods take a context and
// return an error.
func (methodStrategy) Generate(g *generator.Generator, scope generator.Scope, m *model.Method) (string, error) {
	doc, err := renderComments(g, scope, m.Attributes())
	if err != nil {
		return "", err
	}
	params, err := renderParams(g, scope, m.Params())
	if err != nil {
		return "", err
	}
	if m.Async {
		params = append([]string{"ctx context.Context"}, params...)
	}
	results := formatterFor(scope).Format(m.Returns)
	if m.Async {
		if results == "" {
			results = "error"
		} else {
			results = "(" + results + ", error)"
		}
	}

	name := exported(m.Name, m.Access)
	if m.Conversion != model.NoConversion {
		name = conversionName(m)
	}
	sig := name + "(" + strings.Join(params, ", ") + ")"
	if results != "" {
		sig += " " + results
	}
	if m.DeclaringKind() == model.Interface {
		return generator.JoinNonEmpty("\n", doc, sig), nil
	}

	head := "func "
	if d, ok := model.Enclosing[*model.TypeDecl](m); ok && !m.Static && m.Conversion == model.NoConversion {
		head += "(" + receiverName(d.Name) + " *" + exported(d.Name, d.Access) + ") "
	}
	body := m.Body
	if body == "" && (results != "" || m.Abstract) {
		body = `panic("not implemented")`
	}
	return generator.JoinNonEmpty("\n", doc, goBlock(head+sig, body)), nil
}

// conversionName names a conversion function after its source and target types:
// MoneyToString.
func conversionName(m *model.Method) string {
	from := "Value"
	if ps := m.Params(); len(ps) > 0 && ps[0].Type != nil {
		from = naming.Pascal(ps[0].Type.Name)
	}
	to := "Value"
	if m.Returns != nil {
		to = naming.Pascal(m.Returns.Name)
	}
	return from + "To" + to
}

type constructorStrategy struct {
	generator.Default[*model.Constructor]
}

// Generate renders a NewT function. Without a body it returns a zero T.
func (constructorStrategy) Generate(g *generator.Generator, scope generator.Scope, c *model.Constructor) (string, error) {
	params, err := renderParams(g, scope, c.Params())
	if err != nil {
		return "", err
	}
	typeName := naming.Pascal(c.MemberName())
	if d, ok := c.Parent().(*model.TypeDecl); ok {
		typeName = exported(d.Name, d.Access)
	}
	body := c.Body
	if body == "" {
		body = "return &" + typeName + "{}"
	}
	sig := "func New" + naming.Pascal(typeName) + "(" + strings.Join(params, ", ") + ") *" + typeName
	return goBlock(sig, body), nil
}

func goBlock(sig, body string) string {
	if body == "" {
		return sig + " {\n}"
	}
	return sig + " {\n" + generator.Indent(body, "\t") + "\n}"
}

func declaringKind(n model.Node) model.DeclKind {
	if d, ok := model.Enclosing[*model.TypeDecl](n); ok {
		return d.Kind
	}
	return model.Class
}
