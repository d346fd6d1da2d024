// Package settings renders settings descriptors as JSON, YAML or TOML. Sections
// and entries keep their declared order in every format.
package settings

import (
	"bytes"
	"encoding/json"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

// Register adds one strategy per settings format to r.
func Register(r *generator.Registry) {
	generator.Register[*model.Settings](r, format{model.JSON, renderJSON})
	generator.Register[*model.Settings](r, format{model.YAML, renderYAML})
	generator.Register[*model.Settings](r, format{model.TOML, renderTOML})
}

type format struct {
	format model.SettingsFormat
	render func(s *model.Settings) (string, error)
}

func (format) Priority() int { return 0 }

func (f format) CanHandle(s *model.Settings) bool {
	return s.Format == f.format
}

func (f format) Generate(_ *generator.Generator, _ generator.Scope, s *model.Settings) (string, error) {
	out, err := f.render(s)
	if err != nil {
		return "", errors.Wrapf(err, "render %s settings %s", f.format, s.Name)
	}
	return out, nil
}

func renderJSON(s *model.Settings) (string, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	first := true
	writeEntries := func(entries []model.Entry) error {
		for _, e := range entries {
			if !first {
				compact.WriteByte(',')
			}
			first = false
			if err := writeJSONPair(&compact, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	}

	for _, sec := range s.Sections {
		if sec.Name == "" {
			if err := writeEntries(sec.Entries); err != nil {
				return "", err
			}
			continue
		}
		if !first {
			compact.WriteByte(',')
		}
		first = false
		if err := writeJSONValue(&compact, sec.Name); err != nil {
			return "", err
		}
		compact.WriteString(":{")
		for i, e := range sec.Entries {
			if i > 0 {
				compact.WriteByte(',')
			}
			if err := writeJSONPair(&compact, e.Key, e.Value); err != nil {
				return "", err
			}
		}
		compact.WriteByte('}')
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

func writeJSONPair(buf *bytes.Buffer, key string, value any) error {
	if err := writeJSONValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeJSONValue(buf, value)
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func renderYAML(s *model.Settings) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair := func(m *yaml.Node, key string, value any) error {
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		v := &yaml.Node{}
		if err := v.Encode(value); err != nil {
			return errors.Wrapf(err, "encode %s", key)
		}
		m.Content = append(m.Content, k, v)
		return nil
	}

	for _, sec := range s.Sections {
		target := root
		if sec.Name != "" {
			target = &yaml.Node{Kind: yaml.MappingNode}
			root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: sec.Name}, target)
		}
		for _, e := range sec.Entries {
			if err := appendPair(target, e.Key, e.Value); err != nil {
				return "", err
			}
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// renderTOML writes unnamed sections first, since TOML has no way back to the root
// table once a [table] header has been written. Within a table, plain values
// come before nested tables for the same reason. TOML has no null, so a nil
// value is an error rather than a silently dropped key.
func renderTOML(s *model.Settings) (string, error) {
	var sb strings.Builder
	var root []model.Entry
	for _, sec := range s.Sections {
		if sec.Name == "" {
			root = append(root, sec.Entries...)
		}
	}
	if err := writeTOMLTable(&sb, nil, root); err != nil {
		return "", err
	}
	for _, sec := range s.Sections {
		if sec.Name == "" {
			continue
		}
		path := []string{sec.Name}
		writeTOMLHeader(&sb, "[", path, "]")
		if err := writeTOMLTable(&sb, path, sec.Entries); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func writeTOMLTable(sb *strings.Builder, path []string, entries []model.Entry) error {
	var tables, arrays []model.Entry
	for _, e := range entries {
		if e.Value == nil {
			return errors.Newf("%s: TOML cannot encode a null value", tomlPath(append(slices.Clip(path), e.Key)))
		}
		if _, ok := tomlTable(e.Value); ok {
			tables = append(tables, e)
			continue
		}
		if _, ok := tomlTableArray(e.Value); ok {
			arrays = append(arrays, e)
			continue
		}
		line, err := toml.Marshal(map[string]any{e.Key: e.Value})
		if err != nil {
			return errors.Wrapf(err, "encode %s", tomlPath(append(slices.Clip(path), e.Key)))
		}
		sb.Write(line)
	}
	for _, e := range tables {
		sub := append(slices.Clip(path), e.Key)
		m, _ := tomlTable(e.Value)
		writeTOMLHeader(sb, "[", sub, "]")
		if err := writeTOMLTable(sb, sub, sortedEntries(m)); err != nil {
			return err
		}
	}
	for _, e := range arrays {
		sub := append(slices.Clip(path), e.Key)
		items, _ := tomlTableArray(e.Value)
		for _, m := range items {
			writeTOMLHeader(sb, "[[", sub, "]]")
			if err := writeTOMLTable(sb, sub, sortedEntries(m)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTOMLHeader(sb *strings.Builder, open string, path []string, closing string) {
	if sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(open + tomlPath(path) + closing + "\n")
}

// tomlTable reports whether v is written as a [table].
func tomlTable(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

// tomlTableArray reports whether v is a non-empty list of tables, written as [[table]].
func tomlTableArray(v any) ([]map[string]any, bool) {
	switch l := v.(type) {
	case []map[string]any:
		return l, len(l) > 0
	case []any:
		if len(l) == 0 {
			return nil, false
		}
		out := make([]map[string]any, 0, len(l))
		for _, item := range l {
			m, ok := tomlTable(item)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

// sortedEntries orders a decoded mapping by key. Mappings nested below an entry
// carry no declared order.
func sortedEntries(m map[string]any) []model.Entry {
	out := make([]model.Entry, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, model.Entry{Key: k, Value: m[k]})
	}
	return out
}

func tomlPath(path []string) string {
	keys := make([]string, len(path))
	for i, k := range path {
		keys[i] = tomlKey(k)
	}
	return strings.Join(keys, ".")
}

func tomlKey(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return strconv.Quote(k)
}
