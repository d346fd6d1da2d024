package core

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/syngen/internal/config"
	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/planner"
	"github.com/origadmin/syngen/internal/template"
)

const shop = `
namespace: Shop
dbContext: ShopContext
entities:
  - name: order
    interface: true
    properties:
      - name: customer
        required: true
    routes: [create, list]
  - name: category
    routes: [getById, delete]
projects:
  - name: Shop.Api
    kind: webapi
settings:
  - name: appsettings
    format: json
    sections:
      - name: Logging
        entries:
          level: Information
files:
  - name: Program
    skeleton: Program.cs
`

func planFor(t *testing.T, src string) []planner.Job {
	t.Helper()
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)
	jobs, err := planner.Plan(cfg)
	require.NoError(t, err)
	return jobs
}

func newGenerator(t *testing.T, language string) *generator.Generator {
	t.Helper()
	gen, err := NewGenerator(language, template.NewManager())
	require.NoError(t, err)
	return gen
}

func outputs(results []Result) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		out[r.Job.Path] = r.Output
	}
	return out
}

func TestNewGenerator_UnknownLanguage(t *testing.T) {
	_, err := NewGenerator("cobol", template.NewManager())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLanguage))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestRun_CSharp(t *testing.T) {
	jobs := planFor(t, shop)
	results, err := Run(context.Background(), newGenerator(t, config.LanguageCSharp), jobs, Options{})
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	assert.Empty(t, Failed(results))

	for i, r := range results {
		assert.Equal(t, jobs[i].Path, r.Job.Path, "results keep job order")
		assert.NotEmpty(t, r.Output, r.Job.Path)
	}

	out := outputs(results)
	assert.Contains(t, out["Models/Order.cs"], "namespace Shop.Models;")
	assert.Contains(t, out["Models/Order.cs"], "public class Order : IOrder")
	assert.Contains(t, out["Models/IOrder.cs"], "public interface IOrder")
	assert.Contains(t, out["Endpoints/Orders/CreateOrderEndpoint.cs"], `app.MapPost("/api/orders", Handle)`)
	assert.Contains(t, out["Endpoints/Categories/DeleteCategoryEndpoint.cs"], `app.MapDelete("/api/categories/{id}", Handle)`)
	assert.Contains(t, out["Data/ShopContext.cs"], "DbSet<Category> Categories")
	assert.Contains(t, out["Shop.Api/Shop.Api.csproj"], `<Project Sdk="Microsoft.NET.Sdk.Web">`)
	assert.Contains(t, out["appsettings.json"], `"Logging": {`)
	assert.Contains(t, out["Program.cs"], "ShopContext")
	assert.NotContains(t, out["Program.cs"], "{{")
}

func TestRun_Go(t *testing.T) {
	jobs := planFor(t, `
language: go
namespace: shop
module: example.com/shop
entities:
  - name: order
    key: int
    properties:
      - name: placedAt
        type: DateTime
    routes: [getById, page]
projects:
  - name: example.com/shop
settings:
  - name: config
    format: yaml
    sections:
      - name: server
        entries:
          addr: ":8080"
`)
	results, err := Run(context.Background(), newGenerator(t, config.LanguageGo), jobs, Options{Concurrency: 2})
	require.NoError(t, err)
	require.Empty(t, Failed(results))

	out := outputs(results)
	assert.Contains(t, out["internal/shop/order.go"], "package shop")
	assert.Contains(t, out["internal/shop/order.go"], "PlacedAt time.Time")
	assert.Contains(t, out["internal/shop/order_store.go"], "type OrderStore interface")
	assert.Contains(t, out["internal/shop/order_store.go"], "Count(ctx context.Context) (int, error)")
	assert.Contains(t, out["internal/shop/order_get_by_id.go"], "func GetOrder(store OrderStore) http.HandlerFunc")
	assert.Contains(t, out["go.mod"], "module example.com/shop")
	assert.Contains(t, out["config.yaml"], "server:")
}

func TestRun_ConcurrentMatchesSequential(t *testing.T) {
	gen := newGenerator(t, config.LanguageCSharp)

	sequential, err := Run(context.Background(), gen, planFor(t, shop), Options{Concurrency: 1})
	require.NoError(t, err)
	concurrent, err := Run(context.Background(), gen, planFor(t, shop), Options{Concurrency: 8})
	require.NoError(t, err)

	assert.Equal(t, outputs(sequential), outputs(concurrent))
}

func failingJobs() []planner.Job {
	ok := func(name string) planner.Job {
		return planner.Job{Name: name, Node: model.NewClass(name)}
	}
	return []planner.Job{
		ok("A"),
		{Name: "Context", Node: &model.DbContext{Name: "ShopContext"}},
		ok("B"),
	}
}

func TestRun_CollectsFailures(t *testing.T) {
	results, err := Run(context.Background(), newGenerator(t, config.LanguageGo), failingJobs(), Options{Concurrency: 1})
	require.NoError(t, err)

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, "Context", failed[0].Job.Name)
	assert.True(t, errors.Is(failed[0].Err, generator.ErrNoStrategy))
	assert.Empty(t, failed[0].Output)

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[2].Err)
	assert.Contains(t, results[2].Output, "type B struct")
}

func TestRun_FailFast(t *testing.T) {
	results, err := Run(context.Background(), newGenerator(t, config.LanguageGo), failingJobs(), Options{Concurrency: 1, FailFast: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generator.ErrNoStrategy))
	assert.Contains(t, err.Error(), "job Context")

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[2].Err, "jobs after the failure do not run")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, newGenerator(t, config.LanguageCSharp), planFor(t, shop), Options{})
	assert.True(t, errors.Is(err, context.Canceled))
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, context.Canceled))
		assert.Empty(t, r.Output)
	}
}
