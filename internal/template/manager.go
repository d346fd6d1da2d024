package template

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/origadmin/syngen/internal/naming"
)

const skeletonExt = ".tpl"

//go:embed skeletons/*.tpl
var builtin embed.FS

// ErrUnknownSkeleton is returned for a skeleton name the manager does not hold.
var ErrUnknownSkeleton = errors.New("unknown skeleton")

// Manager holds named skeletons. The built-in set is embedded; Load adds or
// overrides skeletons from disk. A Manager is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	skeletons map[string][]string
}

// NewManager returns a manager holding the embedded skeletons.
func NewManager() *Manager {
	m := &Manager{skeletons: make(map[string][]string)}
	entries, err := fs.Glob(builtin, "skeletons/*"+skeletonExt)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "glob embedded skeletons"))
	}
	for _, path := range entries {
		data, err := builtin.ReadFile(path)
		if err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "read embedded skeleton %s", path))
		}
		m.skeletons[skeletonName(path)] = splitLines(string(data))
	}
	return m
}

// Load reads skeletons from files or directories. A directory contributes every
// *.tpl file directly inside it. Missing paths are skipped. Loaded skeletons
// replace any existing ones of the same name; nothing is replaced if any file
// fails to read.
func (m *Manager) Load(paths ...string) error {
	loaded := make(map[string][]string)
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			slog.Debug("Skipping skeleton path", "path", path, "error", err)
			continue
		}
		files := []string{path}
		if fi.IsDir() {
			files, err = filepath.Glob(filepath.Join(path, "*"+skeletonExt))
			if err != nil {
				return errors.Wrapf(err, "glob %s", path)
			}
		}
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return errors.Wrapf(err, "read skeleton %s", f)
			}
			loaded[skeletonName(f)] = splitLines(string(data))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, lines := range loaded {
		m.skeletons[name] = lines
	}
	return nil
}

// Names returns the skeleton names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.skeletons))
	for name := range m.skeletons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lines returns a copy of the named skeleton's lines.
func (m *Manager) Lines(name string) ([]string, error) {
	m.mu.RLock()
	lines, ok := m.skeletons[name]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.WithHintf(errors.Wrapf(ErrUnknownSkeleton, "%q", name),
			"available skeletons: %s", strings.Join(m.Names(), ", "))
	}
	return append([]string(nil), lines...), nil
}

// Render expands the named skeleton with tokens and joins the result.
func (m *Manager) Render(name string, tokens naming.Tokens) (string, error) {
	lines, err := m.Lines(name)
	if err != nil {
		return "", err
	}
	if missing := Missing(lines, tokens); len(missing) > 0 {
		slog.Debug("Skeleton has unresolved placeholders", "skeleton", name, "keys", missing)
	}
	return joinLines(Process(lines, tokens)), nil
}

// skeletonName maps "dir/Program.cs.tpl" to "Program.cs".
func skeletonName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), skeletonExt)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// splitLines splits on LF only. A CRLF skeleton keeps the CR at the end of each
// line, so joinLines gives back the original line breaks.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
