package template

import (
	"log/slog"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

// FileStrategy renders a model.File by expanding its skeleton with its tokens. It
// does not depend on the target language.
type FileStrategy struct {
	generator.Default[*model.File]

	Skeletons *Manager
}

// Generate fails for an unknown skeleton. Unresolved placeholders are logged and
// left in the output.
func (s FileStrategy) Generate(_ *generator.Generator, _ generator.Scope, f *model.File) (string, error) {
	lines, err := s.Skeletons.Lines(f.Skeleton)
	if err != nil {
		return "", err
	}
	if missing := Missing(lines, f.Tokens); len(missing) > 0 {
		slog.Warn("File has unresolved placeholders", "file", f.Name, "skeleton", f.Skeleton, "keys", missing)
	}
	return joinLines(Process(lines, f.Tokens)), nil
}
