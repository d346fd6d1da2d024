package analyzer

import (
	"go/ast"
	"strings"

	"github.com/origadmin/syngen/internal/model"
)

// DirectivePrefix starts a directive line in a type's doc comment:
//
//	//syngen:skip                  leave the type out
//	//syngen:name OrderDto         rename the declaration
//	//syngen:attribute Table(orders) attach an attribute
const DirectivePrefix = "//syngen:"

type directives struct {
	skip       bool
	name       string
	attributes []*model.Attribute
}

func parseDirectives(doc *ast.CommentGroup) directives {
	var d directives
	if doc == nil {
		return d
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}
		verb, arg, _ := strings.Cut(strings.TrimPrefix(c.Text, DirectivePrefix), " ")
		arg = strings.TrimSpace(arg)
		switch verb {
		case "skip":
			d.skip = true
		case "name":
			d.name = arg
		case "attribute":
			if a := parseAttribute(arg); a != nil {
				d.attributes = append(d.attributes, a)
			}
		}
	}
	return d
}

// parseAttribute reads "Name" or "Name(arg, key = value)".
func parseAttribute(s string) *model.Attribute {
	name, rest, hasArgs := strings.Cut(s, "(")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if !hasArgs {
		return model.NewAttribute(name)
	}
	a := model.NewAttribute(name)
	for _, arg := range strings.Split(strings.TrimSuffix(strings.TrimSpace(rest), ")"), ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if k, v, ok := strings.Cut(arg, "="); ok {
			a.Named = append(a.Named, model.NamedArg{Name: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
			continue
		}
		a.Args = append(a.Args, arg)
	}
	return a
}
