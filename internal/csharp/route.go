package csharp

import (
	"fmt"
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/naming"
)

// endpoint describes the handler of one route kind.
type endpoint struct {
	// class builds the endpoint class name from the entity names.
	class func(n naming.Names) string
	// withID marks routes addressed by /{id}.
	withID bool
	// params are the handler parameters before the db context.
	params func(r *model.Route, n naming.Names) []*model.Param
	body   func(n naming.Names) string
}

var endpoints = map[model.RouteKind]endpoint{
	model.RouteCreate: {
		class: func(n naming.Names) string { return "Create" + n.Pascal + "Endpoint" },
		params: func(_ *model.Route, n naming.Names) []*model.Param {
			return []*model.Param{model.NewParam("request", model.Ref(n.Pascal))}
		},
		body: func(n naming.Names) string {
			return fmt.Sprintf(`db.%s.Add(request);
await db.SaveChangesAsync(cancellationToken);
return Results.Created($"/api/%s/{request.Id}", request);`, n.PascalPlural, routeSegment(n))
		},
	},
	model.RouteUpdate: {
		class:  func(n naming.Names) string { return "Update" + n.Pascal + "Endpoint" },
		withID: true,
		params: func(r *model.Route, n naming.Names) []*model.Param {
			return []*model.Param{model.NewParam("id", r.Key()), model.NewParam("request", model.Ref(n.Pascal))}
		},
		body: func(n naming.Names) string {
			return fmt.Sprintf(`var entity = await db.%s.FindAsync([id], cancellationToken);
if (entity is null)
{
    return Results.NotFound();
}
db.Entry(entity).CurrentValues.SetValues(request);
await db.SaveChangesAsync(cancellationToken);
return Results.NoContent();`, n.PascalPlural)
		},
	},
	model.RouteDelete: {
		class:  func(n naming.Names) string { return "Delete" + n.Pascal + "Endpoint" },
		withID: true,
		params: func(r *model.Route, _ naming.Names) []*model.Param {
			return []*model.Param{model.NewParam("id", r.Key())}
		},
		body: func(n naming.Names) string {
			return fmt.Sprintf(`var entity = await db.%s.FindAsync([id], cancellationToken);
if (entity is null)
{
    return Results.NotFound();
}
db.%s.Remove(entity);
await db.SaveChangesAsync(cancellationToken);
return Results.NoContent();`, n.PascalPlural, n.PascalPlural)
		},
	},
	model.RouteGetByID: {
		class:  func(n naming.Names) string { return "Get" + n.Pascal + "ByIdEndpoint" },
		withID: true,
		params: func(r *model.Route, _ naming.Names) []*model.Param {
			return []*model.Param{model.NewParam("id", r.Key())}
		},
		body: func(n naming.Names) string {
			return fmt.Sprintf(`var entity = await db.%s.FindAsync([id], cancellationToken);
return entity is null ? Results.NotFound() : Results.Ok(entity);`, n.PascalPlural)
		},
	},
	model.RouteList: {
		class: func(n naming.Names) string { return "List" + n.PascalPlural + "Endpoint" },
		params: func(*model.Route, naming.Names) []*model.Param {
			return nil
		},
		body: func(n naming.Names) string {
			return fmt.Sprintf(`var items = await db.%s.AsNoTracking().ToListAsync(cancellationToken);
return Results.Ok(items);`, n.PascalPlural)
		},
	},
	model.RoutePage: {
		class: func(n naming.Names) string { return "Page" + n.PascalPlural + "Endpoint" },
		params: func(*model.Route, naming.Names) []*model.Param {
			page := model.NewParam("page", model.Ref(model.TypeInt))
			page.Default = "1"
			size := model.NewParam("pageSize", model.Ref(model.TypeInt))
			size.Default = "20"
			return []*model.Param{page, size}
		},
		body: func(n naming.Names) string {
			return fmt.Sprintf(`var query = db.%s.AsNoTracking();
var total = await query.CountAsync(cancellationToken);
var items = await query
    .Skip((page - 1) * pageSize)
    .Take(pageSize)
    .ToListAsync(cancellationToken);
return Results.Ok(new { total, page, pageSize, items });`, n.PascalPlural)
		},
	},
}

// routeKinds fixes the registration order of the per-kind strategies.
var routeKinds = []model.RouteKind{
	model.RouteCreate, model.RouteUpdate, model.RouteDelete,
	model.RouteGetByID, model.RouteList, model.RoutePage,
}

func registerRoutes(r *generator.Registry) {
	for _, kind := range routeKinds {
		generator.Register[*model.Route](r, routeStrategy{kind: kind})
	}
	generator.Register[*model.Route](r, stubRouteStrategy{})
}

// routeStrategy renders a persistent endpoint for one route kind. It only accepts
// routes bound to a db context.
type routeStrategy struct {
	kind model.RouteKind
}

func (routeStrategy) Priority() int { return 1 }

func (s routeStrategy) CanHandle(r *model.Route) bool {
	return r.Kind == s.kind && r.DbContext != ""
}

func (s routeStrategy) Generate(g *generator.Generator, scope generator.Scope, r *model.Route) (string, error) {
	ep := endpoints[s.kind]
	n := naming.Derive(r.Entity)

	handle := model.NewMethod("Handle", model.Ref("IResult"))
	handle.Static = true
	handle.Async = true
	handle.Body = ep.body(n)
	// Parameters with defaults must follow the required ones.
	var optional []*model.Param
	for _, p := range ep.params(r, n) {
		if p.Default != "" {
			optional = append(optional, p)
			continue
		}
		handle.AddParam(p)
	}
	handle.AddParam(
		model.NewParam("db", model.Ref("I"+r.DbContext)),
		model.NewParam("cancellationToken", model.Ref("CancellationToken")),
	)
	handle.AddParam(optional...)

	decl := endpointClass(r, scope, ep.class(n), mapBody(r, n, ep.withID), handle)
	if root := scope.String(generator.KeyNamespace); root != "" {
		decl.AddUsing(root+".Data", root+".Models")
	}
	decl.AddUsing("Microsoft.EntityFrameworkCore")
	return g.Render(scope, decl)
}

// stubRouteStrategy handles any route without a db context by answering 501.
type stubRouteStrategy struct {
	generator.Default[*model.Route]
}

func (stubRouteStrategy) Generate(g *generator.Generator, scope generator.Scope, r *model.Route) (string, error) {
	n := naming.Derive(r.Entity)
	class := naming.Pascal(r.Kind.String()) + n.Pascal + "Endpoint"
	withID := r.Kind == model.RouteUpdate || r.Kind == model.RouteDelete || r.Kind == model.RouteGetByID

	handle := model.NewMethod("Handle", model.Ref("IResult"))
	handle.Static = true
	handle.Body = `return Results.StatusCode(StatusCodes.Status501NotImplemented);`
	if withID {
		handle.AddParam(model.NewParam("id", r.Key()))
	}
	return g.Render(scope, endpointClass(r, scope, class, mapBody(r, n, withID), handle))
}

func endpointClass(r *model.Route, scope generator.Scope, class, mapping string, handle *model.Method) *model.TypeDecl {
	mapMethod := model.NewMethod("Map", model.Ref("RouteHandlerBuilder"))
	mapMethod.Static = true
	mapMethod.Body = mapping
	mapMethod.AddParam(model.NewParam("app", model.Ref("IEndpointRouteBuilder")))

	decl := model.NewClass(class)
	decl.Static = true
	decl.Namespace = r.Namespace
	if decl.Namespace == "" {
		decl.Namespace = scope.String(generator.KeyNamespace)
	}
	decl.AddUsing("Microsoft.AspNetCore.Builder", "Microsoft.AspNetCore.Http", "Microsoft.AspNetCore.Routing")
	return decl.Add(mapMethod, handle)
}

func mapBody(r *model.Route, n naming.Names, withID bool) string {
	path := "/api/" + routeSegment(n)
	if withID {
		path += "/{id}"
	}
	verb := strings.ToLower(r.Kind.Verb())
	return fmt.Sprintf("return app.Map%s(%q, Handle);", naming.Pascal(verb), path)
}

// routeSegment is the kebab-case plural used in URLs: order_item -> order-items.
func routeSegment(n naming.Names) string {
	return strings.ReplaceAll(n.SnakePlural, "_", "-")
}
