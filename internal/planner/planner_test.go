package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/syngen/internal/config"
	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

const shop = `
namespace: Shop
dbContext: ShopContext
entities:
  - name: order
    key: int
    interface: true
    properties:
      - name: customer
        required: true
      - name: total
        type: decimal
    routes: [create, getById, page]
projects:
  - name: Shop.Api
    kind: webapi
settings:
  - name: appsettings
    format: json
    directory: src
    sections:
      - name: Logging
        entries:
          level: Information
files:
  - name: Program
    skeleton: Program.cs
  - name: .gitignore
    skeleton: gitignore
    tokens:
      projectTitleCase: Storefront
`

func plan(t *testing.T, src string, extra ...*model.TypeDecl) []Job {
	t.Helper()
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)
	jobs, err := Plan(cfg, extra...)
	require.NoError(t, err)
	return jobs
}

func paths(jobs []Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Path
	}
	return out
}

func TestPlan_CSharp(t *testing.T) {
	jobs := plan(t, shop)

	assert.Equal(t, []string{
		"Models/IOrder.cs",
		"Models/Order.cs",
		"Endpoints/Orders/CreateOrderEndpoint.cs",
		"Endpoints/Orders/GetOrderByIdEndpoint.cs",
		"Endpoints/Orders/PageOrdersEndpoint.cs",
		"Data/ShopContext.cs",
		"Shop.Api/Shop.Api.csproj",
		"src/appsettings.json",
		"Program.cs",
		".gitignore",
	}, paths(jobs))

	class, ok := jobs[1].Node.(*model.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Shop.Models", class.Namespace)
	assert.Equal(t, []*model.TypeRef{model.Ref("IOrder")}, class.Implements())
	props := class.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "Id", props[0].Name)
	assert.Equal(t, model.TypeInt, props[0].Type.Name)
	assert.Equal(t, "Customer", props[1].Name)
	assert.Equal(t, model.TypeString, props[1].Type.Name)
	assert.True(t, props[1].Required)

	iface := jobs[0].Node.(*model.TypeDecl)
	assert.Equal(t, model.Interface, iface.Kind)
	for _, p := range iface.Properties() {
		assert.Equal(t, model.GetOnly, p.Accessors)
	}

	route := jobs[2].Node.(*model.Route)
	assert.Equal(t, model.RouteCreate, route.Kind)
	assert.Equal(t, "Shop.Endpoints", route.Namespace)
	assert.Equal(t, "ShopContext", route.DbContext)

	db := jobs[5].Node.(*model.DbContext)
	assert.Equal(t, []string{"Order"}, db.Entities)
	assert.Equal(t, "Shop.Data", db.Namespace)

	assert.Equal(t, model.WebAPI, jobs[6].Node.(*model.Project).Kind)
	assert.Equal(t, "Shop", jobs[0].Scope.String(generator.KeyNamespace))
}

func TestPlan_FileTokens(t *testing.T) {
	jobs := plan(t, shop)

	program := jobs[8].Node.(*model.File)
	assert.Equal(t, "cs", program.Extension)
	assert.Equal(t, "Shop Api", program.Tokens.Get("projectTitleCase"))
	assert.Equal(t, "ShopContext", program.Tokens.Get("dbContext"))
	assert.Equal(t, "Order", program.Tokens.Get("entities"))

	ignore := jobs[9].Node.(*model.File)
	assert.Empty(t, ignore.Extension)
	assert.Equal(t, "Storefront", ignore.Tokens.Get("projectTitleCase"))
}

func TestPlan_Go(t *testing.T) {
	jobs := plan(t, `
language: go
namespace: shop
module: example.com/shop
dbContext: ShopContext
entities:
  - name: order-line
    routes: [getById, page]
projects:
  - name: example.com/shop
`)

	assert.Equal(t, []string{
		"internal/shop/order_line.go",
		"internal/shop/order_line_store.go",
		"internal/shop/order_line_get_by_id.go",
		"internal/shop/order_line_page.go",
		"go.mod",
	}, paths(jobs))

	store := jobs[1].Node.(*model.TypeDecl)
	assert.Equal(t, "OrderLineStore", store.Name)
	var names []string
	for _, m := range store.Methods() {
		names = append(names, m.Name)
		assert.True(t, m.Async)
	}
	assert.Equal(t, []string{"Get", "Page", "Count"}, names)
	assert.Equal(t, model.TypeGuid, store.Methods()[0].Params()[0].Type.Name)

	for _, j := range jobs {
		_, isDb := j.Node.(*model.DbContext)
		assert.False(t, isDb, "go plans carry no db context")
	}
}

func TestPlan_ExtraDeclarations(t *testing.T) {
	decl := model.NewClass("Invoice")
	decl.Namespace = "Shop.Billing"

	jobs := plan(t, "namespace: Shop\n", decl)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Billing/Invoice.cs", jobs[0].Path)
	assert.Same(t, decl, jobs[0].Node)
}

func TestPlan_GoExtraDeclarationPath(t *testing.T) {
	decl := model.NewClass("HTTPServer")
	decl.Namespace = "example.com/app/api"

	jobs := plan(t, "language: go\n", decl)
	require.Len(t, jobs, 1)
	assert.Equal(t, "internal/api/http_server.go", jobs[0].Path)
}
