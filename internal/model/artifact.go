package model

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/origadmin/syngen/internal/naming"
)

// Artifact descriptors are flat records consumed directly by one strategy. They are
// not part of a declaration tree: they have no parent and no children. Each one is
// built by a factory, generated once and discarded.

// ProjectKind selects the project template.
type ProjectKind int

const (
	ClassLibrary ProjectKind = iota
	WebAPI
	Console
	TestProject
	Worker
)

var projectKindNames = map[ProjectKind]string{
	ClassLibrary: "classlib",
	WebAPI:       "webapi",
	Console:      "console",
	TestProject:  "test",
	Worker:       "worker",
}

func (k ProjectKind) String() string {
	return projectKindNames[k]
}

// ParseProjectKind parses the configuration spelling of a project kind.
func ParseProjectKind(s string) (ProjectKind, error) {
	return parseEnum(s, projectKindNames, "project kind")
}

// PackageRef is a package dependency of a project.
type PackageRef struct {
	Name    string
	Version string
}

// Project describes a buildable project (a .csproj, a go.mod).
type Project struct {
	Base

	Name            string
	Directory       string
	Kind            ProjectKind
	TargetFramework string
	Packages        []PackageRef
	// References are paths or module paths of sibling projects.
	References []string
}

func (p *Project) Children() []Node { return nil }

// RouteKind is the operation a route handler performs.
type RouteKind int

const (
	RouteCreate RouteKind = iota
	RouteUpdate
	RouteDelete
	RouteGetByID
	RouteList
	RoutePage
)

var routeKindNames = map[RouteKind]string{
	RouteCreate:  "create",
	RouteUpdate:  "update",
	RouteDelete:  "delete",
	RouteGetByID: "getById",
	RouteList:    "list",
	RoutePage:    "page",
}

func (k RouteKind) String() string {
	return routeKindNames[k]
}

// Verb returns the HTTP method the route answers.
func (k RouteKind) Verb() string {
	switch k {
	case RouteCreate:
		return "POST"
	case RouteUpdate:
		return "PUT"
	case RouteDelete:
		return "DELETE"
	default:
		return "GET"
	}
}

// ParseRouteKind parses the configuration spelling of a route kind.
func ParseRouteKind(s string) (RouteKind, error) {
	return parseEnum(s, routeKindNames, "route kind")
}

// Route describes one request handler for an entity.
type Route struct {
	Base

	Kind      RouteKind
	Entity    string
	Namespace string
	Directory string
	// KeyType is the entity's identifier type; Guid when nil.
	KeyType *TypeRef
	// DbContext names the persistence aggregate the handler talks to.
	DbContext string
}

func (r *Route) Children() []Node { return nil }

// Key returns the identifier type, defaulting to Guid.
func (r *Route) Key() *TypeRef {
	if r.KeyType == nil {
		return Ref(TypeGuid)
	}
	return r.KeyType
}

// DbContext describes a persistence aggregate over a set of entities.
type DbContext struct {
	Base

	Name      string
	Namespace string
	Schema    string
	Entities  []string
}

func (d *DbContext) Children() []Node { return nil }

// File is a whole file produced from a static skeleton and a token table.
type File struct {
	Base

	Name      string
	Directory string
	Extension string
	Skeleton  string
	Tokens    naming.Tokens
}

func (f *File) Children() []Node { return nil }

// SettingsFormat is the serialization of a settings file.
type SettingsFormat int

const (
	JSON SettingsFormat = iota
	YAML
	TOML
)

var settingsFormatNames = map[SettingsFormat]string{
	JSON: "json",
	YAML: "yaml",
	TOML: "toml",
}

func (f SettingsFormat) String() string {
	return settingsFormatNames[f]
}

// Extension returns the file extension, without the dot.
func (f SettingsFormat) Extension() string {
	return settingsFormatNames[f]
}

// ParseSettingsFormat parses the configuration spelling of a settings format.
func ParseSettingsFormat(s string) (SettingsFormat, error) {
	return parseEnum(s, settingsFormatNames, "settings format")
}

// Entry is one key of a settings section. Value may be a string, bool, number,
// or a []string.
type Entry struct {
	Key   string
	Value any
}

// Section is an ordered group of settings entries.
type Section struct {
	Name    string
	Entries []Entry
}

// Settings describes a settings file (appsettings.json, config.yaml, ...).
type Settings struct {
	Base

	Name      string
	Directory string
	Format    SettingsFormat
	Sections  []Section
}

func (s *Settings) Children() []Node { return nil }

func parseEnum[T comparable](s string, names map[T]string, what string) (T, error) {
	for k, name := range names {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	var zero T
	return zero, errors.Newf("unknown %s %q", what, s)
}
