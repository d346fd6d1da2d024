package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/origadmin/syngen/internal/model"
)

// Config is the project file.
type Config struct {
	// Language selects the backend: "csharp" or "go".
	Language string `yaml:"language"`
	// Namespace is the root C# namespace, or the root Go package path segment.
	Namespace string `yaml:"namespace"`
	// Module is the Go module path.
	Module string `yaml:"module"`
	// DbContext names the persistence aggregate. Routes are bound to it.
	DbContext string `yaml:"dbContext"`
	Schema    string `yaml:"schema"`

	TargetFramework string `yaml:"targetFramework"`
	GoVersion       string `yaml:"goVersion"`
	// Output is the directory suggested paths are relative to.
	Output string `yaml:"output"`
	// Templates are extra skeleton files or directories.
	Templates []string `yaml:"templates"`

	Entities []*Entity   `yaml:"entities"`
	Projects []*Project  `yaml:"projects"`
	Settings []*Settings `yaml:"settings"`
	Files    []*File     `yaml:"files"`
	Sources  []*Source   `yaml:"sources"`

	// dir is the directory of the loaded file; relative paths resolve against it.
	dir string
}

// Entity is a domain type. Each entity yields a model class, and optionally an
// interface and one route handler per listed route kind.
type Entity struct {
	Name       string      `yaml:"name"`
	Key        string      `yaml:"key"`
	Interface  bool        `yaml:"interface"`
	Properties []*Property `yaml:"properties"`
	Routes     []string    `yaml:"routes"`
}

// Property is an entity property. Type uses the neutral form: List<Order?>.
type Property struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
}

// Project is a buildable project.
type Project struct {
	Name            string       `yaml:"name"`
	Kind            string       `yaml:"kind"`
	Directory       string       `yaml:"directory"`
	TargetFramework string       `yaml:"targetFramework"`
	Packages        []PackageRef `yaml:"packages"`
	References      []string     `yaml:"references"`
}

// PackageRef is a package dependency.
type PackageRef struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Settings is a settings file.
type Settings struct {
	Name      string     `yaml:"name"`
	Format    string     `yaml:"format"`
	Directory string     `yaml:"directory"`
	Sections  []*Section `yaml:"sections"`
}

// Section is a named group of settings. Entries keep the order of the file.
type Section struct {
	Name    string  `yaml:"name"`
	Entries Entries `yaml:"entries"`
}

// File is a whole file expanded from a skeleton.
type File struct {
	Name      string            `yaml:"name"`
	Skeleton  string            `yaml:"skeleton"`
	Directory string            `yaml:"directory"`
	Tokens    map[string]string `yaml:"tokens"`
}

// Source is a Go package pattern the analyzer turns into declarations.
type Source struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns"`
}

// Entries is an ordered YAML mapping.
type Entries []model.Entry

// UnmarshalYAML keeps the mapping order of the document.
func (e *Entries) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Newf("line %d: entries must be a mapping", node.Line)
	}
	out := make(Entries, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return errors.Wrapf(err, "line %d", node.Content[i+1].Line)
		}
		out = append(out, model.Entry{Key: node.Content[i].Value, Value: value})
	}
	*e = out
	return nil
}

// Load reads, defaults and validates the project file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes a project file. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = LanguageCSharp
	}
	if c.TargetFramework == "" {
		c.TargetFramework = "net8.0"
	}
	if c.GoVersion == "" {
		c.GoVersion = "1.24"
	}
	for _, e := range c.Entities {
		if e == nil {
			continue
		}
		for _, p := range e.Properties {
			if p != nil && p.Type == "" {
				p.Type = "string"
			}
		}
	}
	for _, s := range c.Sources {
		if s == nil {
			continue
		}
		if s.Dir == "" {
			s.Dir = "."
		}
		if len(s.Patterns) == 0 {
			s.Patterns = []string{"."}
		}
	}
}

// Validate reports every problem in the file at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Language != LanguageCSharp && c.Language != LanguageGo {
		errs = append(errs, errors.Newf("unknown language %q", c.Language))
	}
	if c.Language == LanguageGo && c.Module == "" && len(c.Projects) > 0 {
		errs = append(errs, errors.New("module is required for go projects"))
	}

	seen := make(map[string]bool)
	for i, e := range c.Entities {
		switch {
		case e == nil || e.Name == "":
			errs = append(errs, errors.Newf("entities[%d]: name is required", i))
			continue
		case seen[e.Name]:
			errs = append(errs, errors.Newf("entities[%d]: duplicate entity %q", i, e.Name))
		}
		seen[e.Name] = true
		if e.Key != "" {
			if _, err := model.ParseRef(e.Key); err != nil {
				errs = append(errs, errors.Wrapf(err, "entity %s: key", e.Name))
			}
		}
		for j, p := range e.Properties {
			if p == nil || p.Name == "" {
				errs = append(errs, errors.Newf("entity %s: properties[%d]: name is required", e.Name, j))
				continue
			}
			if _, err := model.ParseRef(p.Type); err != nil {
				errs = append(errs, errors.Wrapf(err, "entity %s: property %s", e.Name, p.Name))
			}
		}
		for _, r := range e.Routes {
			if _, err := model.ParseRouteKind(r); err != nil {
				errs = append(errs, errors.Wrapf(err, "entity %s", e.Name))
			}
		}
	}

	for i, p := range c.Projects {
		if p == nil || p.Name == "" {
			errs = append(errs, errors.Newf("projects[%d]: name is required", i))
			continue
		}
		if p.Kind != "" {
			if _, err := model.ParseProjectKind(p.Kind); err != nil {
				errs = append(errs, errors.Wrapf(err, "project %s", p.Name))
			}
		}
	}
	for i, s := range c.Settings {
		if s == nil || s.Name == "" {
			errs = append(errs, errors.Newf("settings[%d]: name is required", i))
			continue
		}
		if _, err := model.ParseSettingsFormat(s.Format); err != nil {
			errs = append(errs, errors.Wrapf(err, "settings %s", s.Name))
		}
		for j, sec := range s.Sections {
			if sec == nil {
				errs = append(errs, errors.Newf("settings %s: sections[%d] is empty", s.Name, j))
			}
		}
	}
	for i, f := range c.Files {
		if f == nil || f.Name == "" || f.Skeleton == "" {
			errs = append(errs, errors.Newf("files[%d]: name and skeleton are required", i))
		}
	}
	for i, s := range c.Sources {
		if s == nil {
			errs = append(errs, errors.Newf("sources[%d] is empty", i))
		}
	}
	return errors.Join(errs...)
}

// Resolve returns path relative to the directory of the loaded file.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
