package golang

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// ImportManager assigns a package name to every import path of one Go file.
// Two paths with the same base name get numbered names: c, c1, c2.
type ImportManager struct {
	names   map[string]string // path -> name
	taken   map[string]bool
	counter int
}

// NewImportManager returns an empty manager.
func NewImportManager() *ImportManager {
	return &ImportManager{
		names:   make(map[string]string),
		taken:   make(map[string]bool),
		counter: 1,
	}
}

// Add registers importPath and returns the name to qualify it with.
func (im *ImportManager) Add(importPath string) string {
	if name, ok := im.names[importPath]; ok {
		return name
	}

	base := packageName(importPath)
	if base == "" {
		base = fmt.Sprintf("pkg%d", im.counter)
		im.counter++
	}
	name := base
	for i := 1; im.taken[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	return im.AddAs(importPath, name)
}

// AddAs registers importPath under an explicit name.
func (im *ImportManager) AddAs(importPath, name string) string {
	im.names[importPath] = name
	im.taken[name] = true
	return name
}

// Name returns the name registered for importPath. Unregistered paths get their
// default package name, so lookups never fail.
func (im *ImportManager) Name(importPath string) string {
	if im != nil {
		if name, ok := im.names[importPath]; ok {
			return name
		}
	}
	return packageName(importPath)
}

// Paths returns the registered paths in sorted order.
func (im *ImportManager) Paths() []string {
	paths := make([]string, 0, len(im.names))
	for p := range im.names {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Specs returns one import spec per path, named only when the name differs from
// the package's default name.
func (im *ImportManager) Specs() []string {
	paths := im.Paths()
	specs := make([]string, len(paths))
	for i, p := range paths {
		if name := im.names[p]; name != packageName(p) {
			specs[i] = fmt.Sprintf("%s %q", name, p)
		} else {
			specs[i] = fmt.Sprintf("%q", p)
		}
	}
	return specs
}

// Block renders the import declaration, or "" when nothing is imported.
func (im *ImportManager) Block() string {
	if len(im.names) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("import (\n")
	for _, spec := range im.Specs() {
		sb.WriteString("\t" + spec + "\n")
	}
	sb.WriteString(")\n\n")
	return sb.String()
}

// packageName guesses the package name of an import path: the last element,
// without a major version suffix or a "go-" prefix.
func packageName(importPath string) string {
	base := path.Base(importPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	base = strings.ReplaceAll(base, "-", "")
	base = strings.ReplaceAll(base, ".", "")
	if base == "" || base == "/" {
		return ""
	}
	return base
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
