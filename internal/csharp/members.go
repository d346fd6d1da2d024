package csharp

import (
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

type fieldStrategy struct {
	generator.Default[*model.Field]
}

func (fieldStrategy) Generate(g *generator.Generator, scope generator.Scope, f *model.Field) (string, error) {
	attrs, err := renderAttributes(g, scope, f.Attributes())
	if err != nil {
		return "", err
	}
	words := []string{f.Access.String()}
	if f.Static {
		words = append(words, "static")
	}
	if f.ReadOnly {
		words = append(words, "readonly")
	}
	words = append(words, Type(f.Type), f.Name)
	line := strings.Join(words, " ")
	if f.Value != "" {
		line += " = " + f.Value
	}
	return generator.JoinNonEmpty("\n", attrs, line+";"), nil
}

type propertyStrategy struct {
	generator.Default[*model.Property]
}

func (propertyStrategy) Generate(g *generator.Generator, scope generator.Scope, p *model.Property) (string, error) {
	attrs, err := renderAttributes(g, scope, p.Attributes())
	if err != nil {
		return "", err
	}
	inInterface := declaringKind(p) == model.Interface

	var words []string
	if !inInterface {
		words = append(words, p.Access.String())
		if p.Static {
			words = append(words, "static")
		}
		if p.Required {
			words = append(words, "required")
		}
		switch {
		case p.Override:
			words = append(words, "override")
		case p.Virtual:
			words = append(words, "virtual")
		}
	}
	words = append(words, Type(p.Type), p.Name, accessors(p.Accessors))
	line := strings.Join(words, " ")
	if p.Value != "" && !inInterface {
		line += " = " + p.Value + ";"
	}
	return generator.JoinNonEmpty("\n", attrs, line), nil
}

func accessors(a model.Accessors) string {
	switch a {
	case model.GetOnly:
		return "{ get; }"
	case model.GetInit:
		return "{ get; init; }"
	default:
		return "{ get; set; }"
	}
}

type methodStrategy struct {
	generator.Default[*model.Method]
}

// Generate renders a method. Whether it gets a body is decided by the declaring
// kind: interface members and abstract methods render as declarations only.
func (methodStrategy) Generate(g *generator.Generator, scope generator.Scope, m *model.Method) (string, error) {
	attrs, err := renderAttributes(g, scope, m.Attributes())
	if err != nil {
		return "", err
	}
	params, err := renderParams(g, scope, m.Params())
	if err != nil {
		return "", err
	}

	declOnly := m.IsDeclarationOnly()
	inInterface := m.DeclaringKind() == model.Interface
	ret := Type(m.Returns)
	if m.Async {
		ret = asyncReturn(m.Returns)
	}

	var words []string
	if !inInterface {
		words = append(words, m.Access.String())
	}
	if m.Static || m.Conversion != model.NoConversion {
		words = append(words, "static")
	}
	switch {
	case m.Abstract && !inInterface:
		words = append(words, "abstract")
	case m.Override:
		words = append(words, "override")
	case m.Virtual:
		words = append(words, "virtual")
	}
	if m.Async && !declOnly {
		words = append(words, "async")
	}
	if m.Conversion != model.NoConversion {
		words = append(words, m.Conversion.String(), "operator", ret+"("+params+")")
	} else {
		words = append(words, ret, m.Name+"("+params+")")
	}
	sig := strings.Join(words, " ")

	if declOnly {
		return generator.JoinNonEmpty("\n", attrs, sig+";"), nil
	}
	return generator.JoinNonEmpty("\n", attrs, generator.Block(sig, m.Body, indent)), nil
}

type constructorStrategy struct {
	generator.Default[*model.Constructor]
}

func (constructorStrategy) Generate(g *generator.Generator, scope generator.Scope, c *model.Constructor) (string, error) {
	params, err := renderParams(g, scope, c.Params())
	if err != nil {
		return "", err
	}
	sig := c.Access.String() + " " + c.MemberName() + "(" + params + ")"
	if len(c.BaseArgs) > 0 {
		sig += " : base(" + strings.Join(c.BaseArgs, ", ") + ")"
	}
	return generator.Block(sig, c.Body, indent), nil
}

func declaringKind(n model.Node) model.DeclKind {
	if d, ok := model.Enclosing[*model.TypeDecl](n); ok {
		return d.Kind
	}
	return model.Class
}
