package csharp

import (
	"strings"

	"github.com/origadmin/syngen/internal/model"
)

// keywords maps CLR and neutral names to their C# keyword spelling.
var keywords = map[string]string{
	"String":  "string",
	"Boolean": "bool",
	"Int32":   "int",
	"Int64":   "long",
	"Int16":   "short",
	"Byte":    "byte",
	"Single":  "float",
	"Double":  "double",
	"Decimal": "decimal",
	"Object":  "object",
	"Void":    "void",
	"any":     "object",
}

// Type renders a type reference in C# syntax: List<Order?>, Dictionary<string, int>.
func Type(ref *model.TypeRef) string {
	if ref == nil {
		return "void"
	}
	var sb strings.Builder
	writeType(&sb, ref)
	return sb.String()
}

func writeType(sb *strings.Builder, ref *model.TypeRef) {
	name := ref.Name
	if kw, ok := keywords[name]; ok {
		name = kw
	}
	sb.WriteString(name)
	if len(ref.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range ref.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, a)
		}
		sb.WriteByte('>')
	}
	if ref.Nullable {
		sb.WriteByte('?')
	}
}

// asyncReturn wraps a return type in Task unless it already is one.
func asyncReturn(ref *model.TypeRef) string {
	switch {
	case ref.IsVoid():
		return model.TypeTask
	case ref.Name == model.TypeTask || ref.Name == "ValueTask":
		return Type(ref)
	default:
		return Type(model.Ref(model.TypeTask, ref))
	}
}
