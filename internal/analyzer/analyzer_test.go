package analyzer

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/syngen/internal/model"
)

func loadShop(t *testing.T) map[string]*model.TypeDecl {
	t.Helper()
	decls, err := Load(context.Background(), "testdata/shop")
	require.NoError(t, err)

	byName := make(map[string]*model.TypeDecl, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}
	return byName
}

func TestLoad_Declarations(t *testing.T) {
	decls := loadShop(t)

	assert.Len(t, decls, 5)
	for _, name := range []string{"Entity", "OrderDto", "Line", "Reader", "Store"} {
		require.Contains(t, decls, name)
		assert.Equal(t, "example.com/shop", decls[name].Namespace)
	}
	assert.NotContains(t, decls, "Ignored")
	assert.NotContains(t, decls, "Status")
	assert.NotContains(t, decls, "unexported")
}

func TestLoad_Struct(t *testing.T) {
	order := loadShop(t)["OrderDto"]
	require.NotNil(t, order)

	assert.Equal(t, model.Class, order.Kind)
	assert.Equal(t, "Entity", order.BaseType.String())

	var props []string
	for _, p := range order.Properties() {
		props = append(props, p.Name+":"+p.Type.String())
	}
	assert.Equal(t, []string{
		"ID:long",
		"Customer:string",
		"Lines:List<Line?>",
		"Notes:string?",
		"Tags:Dictionary<string, int>",
	}, props)
	assert.True(t, order.Properties()[1].Required)
	assert.False(t, order.Properties()[3].Required)

	methods := order.Methods()
	require.Len(t, methods, 1)
	assert.Equal(t, "Total", methods[0].Name)
	assert.Equal(t, model.TypeDouble, methods[0].Returns.Name)

	attrs := order.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "Table", attrs[0].Name)
	assert.Equal(t, []string{"orders"}, attrs[0].Args)
	assert.Equal(t, []model.NamedArg{{Name: "Schema", Value: `"sales"`}}, attrs[0].Named)

	entity := loadShop(t)["Entity"]
	assert.Equal(t, model.TypeDateTime, entity.Properties()[0].Type.Name)
}

func TestLoad_Interface(t *testing.T) {
	decls := loadShop(t)

	store := decls["Store"]
	assert.Equal(t, model.Interface, store.Kind)
	assert.Equal(t, []*model.TypeRef{model.Ref("Reader")}, store.Implements())

	methods := store.Methods()
	require.Len(t, methods, 2)
	save, validate := methods[0], methods[1]
	assert.True(t, save.Async)
	assert.True(t, save.Returns.IsVoid())
	assert.Equal(t, "o", save.Params()[0].Name)
	assert.Equal(t, "Order?", save.Params()[0].Type.String())
	assert.True(t, save.IsDeclarationOnly())
	assert.False(t, validate.Async)

	get := decls["Reader"].Methods()[0]
	assert.True(t, get.Async)
	assert.Equal(t, "Order?", get.Returns.String())
	require.Len(t, get.Params(), 1)
	assert.Equal(t, "long", get.Params()[0].Type.String())
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(context.Background(), "testdata/missing")
	assert.Error(t, err)
}

func TestParseDirectives(t *testing.T) {
	src := `package p

// Doc line.
//syngen:name Renamed
//syngen:attribute Serializable
//syngen:attribute Index(Name, IsUnique = true)
//syngen:unknown
type A struct{}
`
	file, err := parser.ParseFile(token.NewFileSet(), "a.go", src, parser.ParseComments)
	require.NoError(t, err)

	d := parseDirectives(typeDocs([]*ast.File{file})["A"])
	assert.False(t, d.skip)
	assert.Equal(t, "Renamed", d.name)
	require.Len(t, d.attributes, 2)
	assert.Equal(t, "Serializable", d.attributes[0].Name)
	assert.Empty(t, d.attributes[0].Args)
	assert.Equal(t, []string{"Name"}, d.attributes[1].Args)
	assert.Equal(t, []model.NamedArg{{Name: "IsUnique", Value: "true"}}, d.attributes[1].Named)
}

func TestParseAttribute_Empty(t *testing.T) {
	assert.Nil(t, parseAttribute(""))
	assert.Nil(t, parseAttribute("(x)"))
}
