// Package planner turns a project file into the ordered list of artifacts to
// generate. It is the factory layer: it builds semantic nodes and the scope they
// are generated in, and suggests where each result belongs. It never generates
// or writes anything itself.
package planner

import (
	"log/slog"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/origadmin/syngen/internal/config"
	"github.com/origadmin/syngen/internal/csharp"
	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/golang"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/naming"
)

// Job is one top-level artifact.
type Job struct {
	// Name identifies the job in logs and reports.
	Name string
	// Path is the suggested output path, slash separated and relative to the
	// configured output directory.
	Path  string
	Node  model.Node
	Scope generator.Scope
}

// Planner builds jobs for one configuration. cfg must have been validated.
type Planner struct {
	cfg   *config.Config
	scope generator.Scope
	jobs  []Job
}

func newPlanner(cfg *config.Config) *Planner {
	scope := generator.NewScope(
		generator.KeyNamespace, cfg.Namespace,
		generator.KeyModule, cfg.Module,
		generator.KeyDbContext, cfg.DbContext,
	)
	if cfg.Language == config.LanguageGo {
		scope = scope.With(golang.KeyGoVersion, cfg.GoVersion)
	} else {
		scope = scope.With(csharp.KeyTargetFramework, cfg.TargetFramework)
	}
	return &Planner{cfg: cfg, scope: scope}
}

// Plan returns the jobs for the configuration, followed by one job per
// declaration in extra. Extra declarations usually come from the analyzer.
//
// Jobs are ordered: entities and their routes, the db context, projects,
// settings files, skeleton files, then extra declarations.
func Plan(cfg *config.Config, extra ...*model.TypeDecl) ([]Job, error) {
	p := newPlanner(cfg)
	if err := p.entities(); err != nil {
		return nil, err
	}
	p.dbContext()
	if err := p.projects(); err != nil {
		return nil, err
	}
	if err := p.settings(); err != nil {
		return nil, err
	}
	p.files()
	for _, d := range extra {
		p.add(d.Name, p.declPath(d.Name, d.Namespace), d)
	}
	slog.Debug("Planned jobs", "count", len(p.jobs), "language", cfg.Language)
	return p.jobs, nil
}

func (p *Planner) isGo() bool {
	return p.cfg.Language == config.LanguageGo
}

func (p *Planner) add(name, path string, node model.Node) {
	p.jobs = append(p.jobs, Job{Name: name, Path: path, Node: node, Scope: p.scope})
}

// modelNamespace is where entity types live: <ns>.Models in C#, the root
// package in Go.
func (p *Planner) modelNamespace() string {
	if p.isGo() {
		return p.cfg.Namespace
	}
	return join(".", p.cfg.Namespace, "Models")
}

func (p *Planner) declPath(name, namespace string) string {
	if p.isGo() {
		dir := ""
		if namespace != "" {
			dir = path.Join("internal", strings.ToLower(namespace[strings.LastIndexAny(namespace, "./")+1:]))
		}
		return path.Join(dir, naming.Derive(name).Snake+".go")
	}
	rel := namespace
	if root := p.cfg.Namespace; root != "" {
		if rel == root {
			rel = ""
		}
		rel = strings.TrimPrefix(rel, root+".")
	}
	return path.Join(strings.ReplaceAll(rel, ".", "/"), naming.Pascal(name)+".cs")
}

func (p *Planner) entities() error {
	for _, e := range p.cfg.Entities {
		n := naming.Derive(e.Name)
		key, err := keyType(e.Key)
		if err != nil {
			return errors.Wrapf(err, "entity %s", e.Name)
		}
		props := make([]*model.Property, 0, len(e.Properties)+1)
		props = append(props, model.NewProperty("Id", key))
		for _, ep := range e.Properties {
			typ, err := model.ParseRef(ep.Type)
			if err != nil {
				return errors.Wrapf(err, "entity %s: property %s", e.Name, ep.Name)
			}
			prop := model.NewProperty(naming.Pascal(ep.Name), typ)
			prop.Required = ep.Required
			props = append(props, prop)
		}

		class := model.NewClass(n.Pascal)
		class.Namespace = p.modelNamespace()
		for _, prop := range props {
			class.Add(prop)
		}
		if e.Interface && !p.isGo() {
			iface := model.NewInterface("I" + n.Pascal)
			iface.Namespace = class.Namespace
			for _, prop := range props {
				get := model.NewProperty(prop.Name, prop.Type)
				get.Accessors = model.GetOnly
				iface.Add(get)
			}
			class.Implement(model.Ref(iface.Name))
			p.add(iface.Name, p.declPath(iface.Name, iface.Namespace), iface)
		}
		p.add(class.Name, p.declPath(class.Name, class.Namespace), class)

		kinds := make([]model.RouteKind, 0, len(e.Routes))
		for _, r := range e.Routes {
			kind, err := model.ParseRouteKind(r)
			if err != nil {
				return errors.Wrapf(err, "entity %s", e.Name)
			}
			kinds = append(kinds, kind)
		}
		if p.isGo() && len(kinds) > 0 {
			store := storeInterface(n, key, kinds)
			store.Namespace = class.Namespace
			p.add(store.Name, p.declPath(store.Name, store.Namespace), store)
		}
		for _, kind := range kinds {
			p.route(n, key, kind)
		}
	}
	return nil
}

func keyType(key string) (*model.TypeRef, error) {
	if key == "" {
		return model.Ref(model.TypeGuid), nil
	}
	return model.ParseRef(key)
}

func (p *Planner) route(n naming.Names, key *model.TypeRef, kind model.RouteKind) {
	r := &model.Route{
		Kind:      kind,
		Entity:    n.Pascal,
		KeyType:   key,
		DbContext: p.cfg.DbContext,
	}
	name := routeName(kind, n)
	if p.isGo() {
		r.Namespace = p.modelNamespace()
		r.Directory = path.Dir(p.declPath(n.Pascal, r.Namespace))
		p.add(name, path.Join(r.Directory, n.Snake+"_"+naming.Derive(kind.String()).Snake+".go"), r)
		return
	}
	r.Namespace = join(".", p.cfg.Namespace, "Endpoints")
	r.Directory = path.Join("Endpoints", n.PascalPlural)
	p.add(name, path.Join(r.Directory, name+"Endpoint.cs"), r)
}

func routeName(kind model.RouteKind, n naming.Names) string {
	switch kind {
	case model.RouteGetByID:
		return "Get" + n.Pascal + "ById"
	case model.RouteList:
		return "List" + n.PascalPlural
	case model.RoutePage:
		return "Page" + n.PascalPlural
	default:
		return naming.Pascal(kind.String()) + n.Pascal
	}
}

// storeInterface declares the persistence methods the Go handlers call.
func storeInterface(n naming.Names, key *model.TypeRef, kinds []model.RouteKind) *model.TypeDecl {
	store := model.NewInterface(n.Pascal + "Store")
	item := model.Ref(n.Pascal)
	method := func(name string, returns *model.TypeRef, params ...*model.Param) *model.Method {
		m := model.NewMethod(name, returns)
		m.Async = true
		return m.AddParam(params...)
	}
	id := func() *model.Param { return model.NewParam("id", key) }
	ref := func() *model.Param { return model.NewParam("item", item.Optional()) }

	for _, kind := range kinds {
		switch kind {
		case model.RouteCreate:
			store.Add(method("Create", nil, ref()))
		case model.RouteUpdate:
			store.Add(method("Update", nil, id(), ref()))
		case model.RouteDelete:
			store.Add(method("Delete", nil, id()))
		case model.RouteGetByID:
			store.Add(method("Get", item.Optional(), id()))
		case model.RouteList:
			store.Add(method("List", model.ListOf(item)))
		case model.RoutePage:
			store.Add(
				method("Page", model.ListOf(item), model.NewParam("page", model.Ref(model.TypeInt)), model.NewParam("size", model.Ref(model.TypeInt))),
				method("Count", model.Ref(model.TypeInt)),
			)
		}
	}
	return store
}

func (p *Planner) dbContext() {
	if p.cfg.DbContext == "" || p.isGo() {
		return
	}
	names := make([]string, 0, len(p.cfg.Entities))
	for _, e := range p.cfg.Entities {
		names = append(names, naming.Pascal(e.Name))
	}
	d := &model.DbContext{
		Name:      p.cfg.DbContext,
		Namespace: join(".", p.cfg.Namespace, "Data"),
		Schema:    p.cfg.Schema,
		Entities:  names,
	}
	p.add(d.Name, path.Join("Data", d.Name+".cs"), d)
}

func (p *Planner) projects() error {
	for _, cp := range p.cfg.Projects {
		kind := model.ClassLibrary
		if cp.Kind != "" {
			k, err := model.ParseProjectKind(cp.Kind)
			if err != nil {
				return errors.Wrapf(err, "project %s", cp.Name)
			}
			kind = k
		}
		proj := &model.Project{
			Name:            cp.Name,
			Directory:       cp.Directory,
			Kind:            kind,
			TargetFramework: cp.TargetFramework,
			References:      cp.References,
		}
		for _, pkg := range cp.Packages {
			proj.Packages = append(proj.Packages, model.PackageRef{Name: pkg.Name, Version: pkg.Version})
		}
		if p.isGo() {
			p.add(proj.Name, path.Join(proj.Directory, "go.mod"), proj)
			continue
		}
		p.add(proj.Name, path.Join(proj.Directory, proj.Name, proj.Name+".csproj"), proj)
	}
	return nil
}

func (p *Planner) settings() error {
	for _, cs := range p.cfg.Settings {
		format, err := model.ParseSettingsFormat(cs.Format)
		if err != nil {
			return errors.Wrapf(err, "settings %s", cs.Name)
		}
		s := &model.Settings{Name: cs.Name, Directory: cs.Directory, Format: format}
		for _, sec := range cs.Sections {
			s.Sections = append(s.Sections, model.Section{Name: sec.Name, Entries: sec.Entries})
		}
		p.add(s.Name, path.Join(s.Directory, s.Name+"."+format.Extension()), s)
	}
	return nil
}

func (p *Planner) files() {
	base := p.tokens()
	for _, cf := range p.cfg.Files {
		b := naming.NewTokens().WithTokens(base)
		for _, k := range slices.Sorted(maps.Keys(cf.Tokens)) {
			b.With(k, cf.Tokens[k])
		}
		ext := strings.TrimPrefix(path.Ext(cf.Skeleton), ".")
		f := &model.File{
			Name:      cf.Name,
			Directory: cf.Directory,
			Extension: ext,
			Skeleton:  cf.Skeleton,
			Tokens:    b.Build(),
		}
		file := f.Name
		if ext != "" && !strings.HasSuffix(file, "."+ext) {
			file += "." + ext
		}
		p.add(f.Name, path.Join(f.Directory, file), f)
	}
}

// tokens are the substitutions every skeleton file sees.
func (p *Planner) tokens() naming.Tokens {
	project := p.cfg.Namespace
	if len(p.cfg.Projects) > 0 {
		project = p.cfg.Projects[0].Name
	}
	entities := make([]string, 0, len(p.cfg.Entities))
	for _, e := range p.cfg.Entities {
		entities = append(entities, naming.Pascal(e.Name))
	}
	return naming.NewTokens().
		WithDerived("project", project).
		With("namespace", p.cfg.Namespace).
		With("module", p.cfg.Module).
		With("dbContext", p.cfg.DbContext).
		With("entities", entities).
		Build()
}

func join(sep string, parts ...string) string {
	return generator.JoinNonEmpty(sep, parts...)
}
