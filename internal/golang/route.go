package golang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/naming"
	"github.com/origadmin/syngen/internal/template"
)

const handlerSkeleton = "handler.go"

// routeStrategy expands the handler skeleton for any route kind. Handlers depend
// on an <Entity>Store interface with Create, Update, Delete, Get, List, Page and
// Count methods.
type routeStrategy struct {
	generator.Default[*model.Route]

	skeletons *template.Manager
}

func (s routeStrategy) Generate(_ *generator.Generator, scope generator.Scope, r *model.Route) (string, error) {
	n := naming.Derive(r.Entity)
	withID := r.Kind == model.RouteUpdate || r.Kind == model.RouteDelete || r.Kind == model.RouteGetByID

	pattern := r.Kind.Verb() + " /api/" + strings.ReplaceAll(n.SnakePlural, "_", "-")
	if withID {
		pattern += "/{id}"
	}

	im := NewImportManager()
	for _, p := range []string{"encoding/json", "net/http"} {
		im.Add(p)
	}
	if r.Kind == model.RoutePage {
		im.Add("strconv")
	}
	var body strings.Builder
	if withID {
		body.WriteString(parseID(r.Key(), im))
	}
	body.WriteString(handlerBody(r.Kind, n))

	tokens := naming.NewTokens().
		WithNames("entity", n).
		With("package", packageFor(scope, r.Namespace, "handler")).
		With("handler", handlerName(r.Kind, n)).
		With("pattern", pattern).
		With("imports", "\t"+strings.Join(im.Specs(), "\n\t")).
		With("body", body.String()).
		Build()

	src, err := s.skeletons.Render(handlerSkeleton, tokens)
	if err != nil {
		return "", err
	}
	return Format(n.Snake+"_"+naming.Derive(r.Kind.String()).Snake+".go", src)
}

func handlerName(kind model.RouteKind, n naming.Names) string {
	switch kind {
	case model.RouteGetByID:
		return "Get" + n.Pascal
	case model.RouteList:
		return "List" + n.PascalPlural
	case model.RoutePage:
		return "Page" + n.PascalPlural
	default:
		return naming.Pascal(kind.String()) + n.Pascal
	}
}

// parseID reads the {id} path value into the key type.
func parseID(key *model.TypeRef, im *ImportManager) string {
	const fail = `if err != nil {
	http.Error(w, err.Error(), http.StatusBadRequest)
	return
}
`
	switch key.Name {
	case model.TypeGuid:
		return "id, err := " + im.Add("github.com/google/uuid") + `.Parse(r.PathValue("id"))` + "\n" + fail
	case model.TypeInt:
		return "id, err := " + im.Add("strconv") + `.Atoi(r.PathValue("id"))` + "\n" + fail
	case model.TypeLong:
		return "id, err := " + im.Add("strconv") + `.ParseInt(r.PathValue("id"), 10, 64)` + "\n" + fail
	default:
		return `id := r.PathValue("id")` + "\n"
	}
}

func handlerBody(kind model.RouteKind, n naming.Names) string {
	const check = `err != nil {
	http.Error(w, err.Error(), http.StatusInternalServerError)
	return
}
`
	const internal = "if " + check
	decode := fmt.Sprintf(`var item %s
if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
	http.Error(w, err.Error(), http.StatusBadRequest)
	return
}
`, n.Pascal)
	encode := func(status, value string) string {
		return `w.Header().Set("Content-Type", "application/json")
w.WriteHeader(` + status + `)
_ = json.NewEncoder(w).Encode(` + value + `)`
	}

	switch kind {
	case model.RouteCreate:
		return decode + "if err := store.Create(r.Context(), &item); " + check + encode("http.StatusCreated", "item")
	case model.RouteUpdate:
		return decode + "if err := store.Update(r.Context(), id, &item); " + check + "w.WriteHeader(http.StatusNoContent)"
	case model.RouteDelete:
		return "if err := store.Delete(r.Context(), id); " + check + "w.WriteHeader(http.StatusNoContent)"
	case model.RouteGetByID:
		return "item, err := store.Get(r.Context(), id)\n" + internal + `if item == nil {
	http.NotFound(w, r)
	return
}
` + encode("http.StatusOK", "item")
	case model.RouteList:
		return "items, err := store.List(r.Context())\n" + internal + encode("http.StatusOK", "items")
	case model.RoutePage:
		return `page, _ := strconv.Atoi(r.URL.Query().Get("page"))
if page < 1 {
	page = 1
}
size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
if size < 1 {
	size = ` + strconv.Itoa(defaultPageSize) + `
}
items, err := store.Page(r.Context(), page, size)
` + internal + `total, err := store.Count(r.Context())
` + internal + encode("http.StatusOK", `map[string]any{"total": total, "page": page, "pageSize": size, "items": items}`)
	default:
		return "w.WriteHeader(http.StatusNotImplemented)"
	}
}

const defaultPageSize = 20
