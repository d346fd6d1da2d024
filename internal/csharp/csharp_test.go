package csharp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

func newGenerator() *generator.Generator {
	r := generator.NewRegistry()
	Register(r)
	return generator.New(r)
}

func TestType(t *testing.T) {
	tests := []struct {
		ref  *model.TypeRef
		want string
	}{
		{nil, "void"},
		{model.Ref("String"), "string"},
		{model.Ref("Int64").Optional(), "long?"},
		{model.ListOf(model.Ref("Order").Optional()), "List<Order?>"},
		{model.Ref(model.TypeDict, model.Ref("Int32"), model.ListOf(model.Ref("Guid"))), "Dictionary<int, List<Guid>>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Type(tt.ref))
	}

	assert.Equal(t, "Task", asyncReturn(nil))
	assert.Equal(t, "Task<int>", asyncReturn(model.Ref("int")))
	assert.Equal(t, "Task<int>", asyncReturn(model.Ref(model.TypeTask, model.Ref("int"))))
}

func TestClass(t *testing.T) {
	decl := model.NewClass("Order")
	decl.Namespace = "Shop.Models"
	decl.AddUsing("System")
	decl.Implement(model.Ref("IEntity"))
	decl.AddAttribute(model.NewAttribute("Table", `"orders"`))

	name := model.NewProperty("Name", model.Ref("string"))
	name.Value = "string.Empty"
	count := model.NewField("_count", model.Ref("int"))
	count.ReadOnly = true
	decl.Add(model.NewProperty("Id", model.Ref(model.TypeGuid)), name, count)

	out, err := newGenerator().Generate(decl)
	require.NoError(t, err)
	assert.Equal(t, `using System;

namespace Shop.Models;

[Table("orders")]
public class Order : IEntity
{
    public Guid Id { get; set; }

    public string Name { get; set; } = string.Empty;

    private readonly int _count;
}
`, out)
}

func TestClass_NamespaceFromScope(t *testing.T) {
	decl := model.NewClass("Empty")
	decl.Partial = true
	decl.BaseType = model.Ref("EntityBase")

	out, err := newGenerator().GenerateScoped(generator.NewScope(generator.KeyNamespace, "Shop"), decl)
	require.NoError(t, err)
	assert.Equal(t, "namespace Shop;\n\npublic partial class Empty : EntityBase\n{\n}\n", out)
}

func TestInterface_MethodsAreDeclarationOnly(t *testing.T) {
	find := model.NewMethod("Find", model.Ref("Order").Optional())
	find.Async = true
	find.Body = "return null;"
	find.AddParam(model.NewParam("id", model.Ref(model.TypeGuid)))
	count := model.NewProperty("Count", model.Ref("int"))
	count.Accessors = model.GetOnly
	iface := model.NewInterface("IOrderService").Add(find, count)

	out, err := newGenerator().Generate(iface)
	require.NoError(t, err)
	assert.Equal(t, "public interface IOrderService\n{\n    Task<Order?> Find(Guid id);\n\n    int Count { get; }\n}\n", out)
}

func TestMethod_SameNodeRendersByDeclaringKind(t *testing.T) {
	build := func() *model.Method {
		m := model.NewMethod("Find", model.Ref("Order").Optional())
		m.Async = true
		m.Body = "return null;"
		return m.AddParam(model.NewParam("id", model.Ref(model.TypeGuid)))
	}
	g := newGenerator()

	inClass, err := g.Generate(model.NewClass("OrderService").Add(build()))
	require.NoError(t, err)
	assert.Contains(t, inClass, "    public async Task<Order?> Find(Guid id)\n    {\n        return null;\n    }")

	abstract := build()
	abstract.Abstract = true
	abstract.Async = false
	inAbstract, err := g.Generate(model.NewClass("Base").Add(abstract))
	require.NoError(t, err)
	assert.Contains(t, inAbstract, "    public abstract Order? Find(Guid id);")
	assert.Contains(t, inAbstract, "public abstract class Base\n")
}

func TestClass_AbstractHeader(t *testing.T) {
	g := newGenerator()

	area := model.NewMethod("Area", model.Ref(model.TypeDouble))
	area.Abstract = true
	shape := model.NewClass("Shape").Add(area)
	shape.Partial = true
	out, err := g.Generate(shape)
	require.NoError(t, err)
	assert.Contains(t, out, "public abstract partial class Shape\n{")
	assert.Contains(t, out, "    public abstract double Area();")

	flagged := model.NewClass("Handler")
	flagged.Abstract = true
	out, err = g.Generate(flagged)
	require.NoError(t, err)
	assert.Contains(t, out, "public abstract class Handler")

	out, err = g.Generate(model.NewClass("Order"))
	require.NoError(t, err)
	assert.NotContains(t, out, "abstract")
}

func TestMembers(t *testing.T) {
	conv := model.NewMethod("", model.Ref("string"))
	conv.Conversion = model.Implicit
	conv.Body = "return value.ToString();"
	conv.AddParam(model.NewParam("value", model.Ref("Money")))

	toString := model.NewMethod("ToString", model.Ref("string"))
	toString.Override = true
	toString.Body = "return $\"{Amount} {Currency}\";"

	ctor := model.NewConstructor().AddParam(model.NewParam("amount", model.Ref("decimal")))
	ctor.BaseArgs = []string{"amount"}
	ctor.Body = "Amount = amount;"

	amount := model.NewProperty("Amount", model.Ref("decimal"))
	amount.Accessors = model.GetInit
	amount.Required = true
	amount.AddAttribute(&model.Attribute{Name: "Range", Args: []string{"0", "100"}, Named: []model.NamedArg{{Name: "ErrorMessage", Value: `"bad"`}}})

	zero := model.NewField("Zero", model.Ref("Money"))
	zero.Access = model.Public
	zero.Static = true
	zero.ReadOnly = true
	zero.Value = "new(0)"

	decl := model.NewClass("Money").Add(ctor, amount, zero, toString, conv)
	out, err := newGenerator().Generate(decl)
	require.NoError(t, err)

	for _, want := range []string{
		"    public Money(decimal amount) : base(amount)\n    {\n        Amount = amount;\n    }",
		"    [Range(0, 100, ErrorMessage = \"bad\")]\n    public required decimal Amount { get; init; }",
		"    public static readonly Money Zero = new(0);",
		"    public override string ToString()\n    {",
		"    public static implicit operator string(Money value)\n    {\n        return value.ToString();\n    }",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "public Money("), strings.Index(out, "Amount { get; init; }"))
	assert.Less(t, strings.Index(out, "Zero ="), strings.Index(out, "ToString()"))
}

func TestProject(t *testing.T) {
	p := &model.Project{
		Name:       "Shop.Api",
		Kind:       model.WebAPI,
		Packages:   []model.PackageRef{{Name: "Microsoft.EntityFrameworkCore", Version: "8.0.0"}, {Name: "Swashbuckle.AspNetCore"}},
		References: []string{"Shop.Domain"},
	}
	out, err := newGenerator().GenerateScoped(generator.NewScope(generator.KeyNamespace, "Shop.Api"), p)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<Project Sdk="Microsoft.NET.Sdk.Web">`))
	assert.Contains(t, out, "<TargetFramework>net8.0</TargetFramework>")
	assert.Contains(t, out, "<RootNamespace>Shop.Api</RootNamespace>")
	assert.Contains(t, out, `<PackageReference Include="Microsoft.EntityFrameworkCore" Version="8.0.0" />`)
	assert.Contains(t, out, `<PackageReference Include="Swashbuckle.AspNetCore" />`)
	assert.Contains(t, out, `<ProjectReference Include="..\Shop.Domain\Shop.Domain.csproj" />`)
	assert.True(t, strings.HasSuffix(out, "</Project>\n"))
}

func TestProject_Kinds(t *testing.T) {
	g := newGenerator()
	scope := generator.NewScope(KeyTargetFramework, "net9.0")

	console, err := g.GenerateScoped(scope, &model.Project{Name: "Tool", Kind: model.Console})
	require.NoError(t, err)
	assert.Contains(t, console, `Sdk="Microsoft.NET.Sdk"`)
	assert.Contains(t, console, "<OutputType>Exe</OutputType>")
	assert.Contains(t, console, "<TargetFramework>net9.0</TargetFramework>")

	tests, err := g.GenerateScoped(scope, &model.Project{Name: "Tool.Tests", Kind: model.TestProject, TargetFramework: "net8.0"})
	require.NoError(t, err)
	assert.Contains(t, tests, "<IsTestProject>true</IsTestProject>")
	assert.Contains(t, tests, "<TargetFramework>net8.0</TargetFramework>")
	assert.NotContains(t, tests, "<ItemGroup>")

	worker, err := g.Generate(&model.Project{Name: "Jobs", Kind: model.Worker})
	require.NoError(t, err)
	assert.Contains(t, worker, `Sdk="Microsoft.NET.Sdk.Worker"`)
}

func TestRoute_PerKind(t *testing.T) {
	tests := []struct {
		kind    model.RouteKind
		class   string
		mapping string
		handle  string
	}{
		{model.RouteCreate, "CreateOrderItemEndpoint", `app.MapPost("/api/order-items", Handle)`, "Handle(OrderItem request, IShopContext db, CancellationToken cancellationToken)"},
		{model.RouteUpdate, "UpdateOrderItemEndpoint", `app.MapPut("/api/order-items/{id}", Handle)`, "Handle(Guid id, OrderItem request, IShopContext db"},
		{model.RouteDelete, "DeleteOrderItemEndpoint", `app.MapDelete("/api/order-items/{id}", Handle)`, "db.OrderItems.Remove(entity);"},
		{model.RouteGetByID, "GetOrderItemByIdEndpoint", `app.MapGet("/api/order-items/{id}", Handle)`, "Results.Ok(entity)"},
		{model.RouteList, "ListOrderItemsEndpoint", `app.MapGet("/api/order-items", Handle)`, "ToListAsync(cancellationToken)"},
		{model.RoutePage, "PageOrderItemsEndpoint", `app.MapGet("/api/order-items", Handle)`, "Handle(IShopContext db, CancellationToken cancellationToken, int page = 1, int pageSize = 20)"},
	}
	g := newGenerator()
	scope := generator.NewScope(generator.KeyNamespace, "Shop")
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			out, err := g.GenerateScoped(scope, &model.Route{Kind: tt.kind, Entity: "order_item", DbContext: "ShopContext"})
			require.NoError(t, err)
			assert.Contains(t, out, "public static class "+tt.class+"\n")
			assert.Contains(t, out, tt.mapping)
			assert.Contains(t, out, tt.handle)
			assert.Contains(t, out, "public static async Task<IResult> Handle(")
			assert.Contains(t, out, "using Shop.Data;\nusing Shop.Models;\n")
			assert.Contains(t, out, "namespace Shop;\n")
		})
	}
}

func TestRoute_KeyTypeAndNamespace(t *testing.T) {
	out, err := newGenerator().Generate(&model.Route{
		Kind:      model.RouteGetByID,
		Entity:    "Customer",
		Namespace: "Shop.Endpoints",
		KeyType:   model.Ref("long"),
		DbContext: "ShopContext",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "namespace Shop.Endpoints;")
	assert.Contains(t, out, "Handle(long id, IShopContext db")
}

func TestRoute_WithoutDbContextFallsBackToStub(t *testing.T) {
	out, err := newGenerator().Generate(&model.Route{Kind: model.RouteDelete, Entity: "order_item"})
	require.NoError(t, err)
	assert.Contains(t, out, "public static class DeleteOrderItemEndpoint")
	assert.Contains(t, out, `app.MapDelete("/api/order-items/{id}", Handle)`)
	assert.Contains(t, out, "public static IResult Handle(Guid id)")
	assert.Contains(t, out, "Status501NotImplemented")
	assert.NotContains(t, out, "async")
}

func TestDbContext(t *testing.T) {
	ctx := &model.DbContext{
		Name:      "ShopContext",
		Namespace: "Shop.Data",
		Schema:    "shop",
		Entities:  []string{"category", "order_item"},
	}
	out, err := newGenerator().GenerateScoped(generator.NewScope(generator.KeyNamespace, "Shop"), ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "using Microsoft.EntityFrameworkCore;\nusing Shop.Models;\n\nnamespace Shop.Data;\n\npublic interface IShopContext\n{\n"))
	assert.Equal(t, 1, strings.Count(out, "namespace "))
	for _, want := range []string{
		"    DbSet<Category> Categories { get; }",
		"    DbSet<OrderItem> OrderItems { get; }",
		"    Task<int> SaveChangesAsync(CancellationToken cancellationToken = default);",
		"public class ShopContext : DbContext, IShopContext\n{",
		"    public ShopContext(DbContextOptions<ShopContext> options) : base(options)\n    {\n    }",
		"    public DbSet<Category> Categories { get; set; } = null!;",
		"    protected override void OnModelCreating(ModelBuilder modelBuilder)",
		`        modelBuilder.HasDefaultSchema("shop");`,
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "interface IShopContext"), strings.Index(out, "class ShopContext"))
}
