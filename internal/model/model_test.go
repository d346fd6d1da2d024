package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderClass() *TypeDecl {
	class := NewClass("Order")
	class.AddUsing("System", "System.Collections.Generic", "System")
	class.AddAttribute(NewAttribute("Table", `"orders"`))
	class.Add(
		NewField("_total", Ref(TypeDecimal)),
		NewProperty("Id", Ref(TypeGuid)),
		NewMethod("Total", Ref(TypeDecimal)).AddParam(NewParam("taxRate", Ref(TypeDecimal))),
	)
	return class
}

func TestTypeDecl_MemberOrderIsInsertionOrder(t *testing.T) {
	class := newOrderClass()

	var names []string
	for _, m := range class.Members() {
		names = append(names, m.MemberName())
	}
	assert.Equal(t, []string{"_total", "Id", "Total"}, names)
	assert.Len(t, class.Fields(), 1)
	assert.Len(t, class.Properties(), 1)
	assert.Len(t, class.Methods(), 1)
	assert.Empty(t, class.Constructors())
}

func TestBase_UsingsHaveSetSemantics(t *testing.T) {
	class := newOrderClass()
	assert.Equal(t, []string{"System", "System.Collections.Generic"}, class.Usings())

	class.AddUsing("System.Linq", "")
	assert.Equal(t, []string{"System", "System.Collections.Generic", "System.Linq"}, class.Usings())
}

func TestAdd_SetsParent(t *testing.T) {
	class := newOrderClass()
	for _, m := range class.Members() {
		assert.Same(t, class, m.Parent())
	}
	method := class.Methods()[0]
	assert.Same(t, method, method.Params()[0].Parent())
	assert.Nil(t, class.Parent())
}

func TestAdd_RejectsReparenting(t *testing.T) {
	prop := NewProperty("Name", Ref(TypeString))
	NewClass("A").Add(prop)

	assert.Panics(t, func() { NewClass("B").Add(prop) })
}

func TestInterface_RejectsFieldsAndConstructors(t *testing.T) {
	iface := NewInterface("IOrderService")
	assert.Panics(t, func() { iface.Add(NewField("_x", Ref(TypeInt))) })
	assert.Panics(t, func() { iface.Add(NewConstructor()) })
	assert.NotPanics(t, func() { iface.Add(NewProperty("Count", Ref(TypeInt))) })
}

func TestMethod_DeclarationOnlyFollowsContainerKind(t *testing.T) {
	inClass := NewMethod("Run", nil)
	NewClass("Job").Add(inClass)
	assert.False(t, inClass.IsDeclarationOnly())

	abstract := NewMethod("Plan", nil)
	abstract.Abstract = true
	NewClass("BaseJob").Add(abstract)
	assert.True(t, abstract.IsDeclarationOnly())

	inInterface := NewMethod("Run", nil)
	NewInterface("IJob").Add(inInterface)
	assert.True(t, inInterface.IsDeclarationOnly())
	assert.Equal(t, Interface, inInterface.DeclaringKind())

	detached := NewMethod("Orphan", nil)
	assert.False(t, detached.IsDeclarationOnly())
}

func TestFreeze(t *testing.T) {
	class := newOrderClass()
	Freeze(class)

	assert.True(t, class.Frozen())
	assert.Panics(t, func() { class.Add(NewProperty("Late", Ref(TypeString))) })
	assert.Panics(t, func() { class.AddUsing("System.Text") })
	assert.Panics(t, func() { class.Methods()[0].AddParam(NewParam("x", Ref(TypeInt))) })
	assert.NotPanics(t, func() { Freeze(class) })
}

func TestConstructor_MemberNameIsDeclaringType(t *testing.T) {
	ctor := NewConstructor()
	assert.Equal(t, "", ctor.MemberName())
	NewClass("Customer").Add(ctor)
	assert.Equal(t, "Customer", ctor.MemberName())
}

func TestDescendants_ParentBeforeChildren(t *testing.T) {
	class := newOrderClass()
	nodes := Descendants(class)

	require.Len(t, nodes, 5)
	assert.IsType(t, &Attribute{}, nodes[0])
	assert.IsType(t, &Field{}, nodes[1])
	assert.IsType(t, &Property{}, nodes[2])
	assert.IsType(t, &Method{}, nodes[3])
	assert.IsType(t, &Param{}, nodes[4])
}

func TestImportsAndAllUsings(t *testing.T) {
	class := newOrderClass()
	method := class.Methods()[0]
	method.AddUsing("System.Threading.Tasks", "System")

	assert.True(t, Imports(class, "System.Threading.Tasks"))
	assert.False(t, Imports(class, "System.Text"))
	assert.Equal(t, []string{"System", "System.Collections.Generic", "System.Threading.Tasks"}, AllUsings(class))
}

func TestRootAndEnclosing(t *testing.T) {
	class := newOrderClass()
	param := class.Methods()[0].Params()[0]

	assert.Same(t, class, Root(param))
	decl, ok := Enclosing[*TypeDecl](param)
	require.True(t, ok)
	assert.Same(t, class, decl)

	_, ok = Enclosing[*Method](class)
	assert.False(t, ok)
}

func TestParseRef(t *testing.T) {
	testCases := []struct {
		input    string
		expected *TypeRef
	}{
		{"string", Ref("string")},
		{"Guid?", Ref("Guid").Optional()},
		{"List<Order>", ListOf(Ref("Order"))},
		{"Dictionary<string, List<int?>>", Ref("Dictionary", Ref("string"), ListOf(Ref("int").Optional()))},
		{" Task < Order > ", Ref("Task", Ref("Order"))},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseRef(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equals(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "List<", "List<Order", "List<>", "A>B", "A,B"} {
		_, err := ParseRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestTypeRef_String(t *testing.T) {
	ref := Ref("Dictionary", Ref("string"), ListOf(Ref("Order").Optional()))
	assert.Equal(t, "Dictionary<string, List<Order?>>", ref.String())
	assert.Equal(t, "void", (*TypeRef)(nil).String())
	assert.True(t, (*TypeRef)(nil).IsVoid())
}

func TestParseEnums(t *testing.T) {
	kind, err := ParseRouteKind("GetById")
	require.NoError(t, err)
	assert.Equal(t, RouteGetByID, kind)
	assert.Equal(t, "GET", kind.Verb())

	format, err := ParseSettingsFormat("toml")
	require.NoError(t, err)
	assert.Equal(t, TOML, format)

	project, err := ParseProjectKind("webapi")
	require.NoError(t, err)
	assert.Equal(t, WebAPI, project)

	_, err = ParseRouteKind("explode")
	assert.Error(t, err)
}

func TestRoute_KeyDefaultsToGuid(t *testing.T) {
	r := &Route{Entity: "order"}
	assert.Equal(t, TypeGuid, r.Key().Name)
	r.KeyType = Ref(TypeInt)
	assert.Equal(t, TypeInt, r.Key().Name)
}

func TestTypeDecl_IsAbstract(t *testing.T) {
	assert.False(t, NewClass("Job").Add(NewMethod("Run", nil)).IsAbstract())

	flagged := NewClass("Job")
	flagged.Abstract = true
	assert.True(t, flagged.IsAbstract())

	plan := NewMethod("Plan", nil)
	plan.Abstract = true
	assert.True(t, NewClass("BaseJob").Add(plan).IsAbstract())

	iface := NewInterface("IJob")
	iface.Abstract = true
	assert.False(t, iface.IsAbstract())
}
