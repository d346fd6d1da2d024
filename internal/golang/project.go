package golang

import (
	"path"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

// localVersion is required for sibling modules that are replaced by a directory.
const localVersion = "v0.0.0"

type projectStrategy struct {
	generator.Default[*model.Project]
}

// Generate renders a go.mod. The module path is the scope's module, or the
// project name. Packages become requirements; references become requirements on
// sibling modules replaced by ../<name>.
func (projectStrategy) Generate(_ *generator.Generator, scope generator.Scope, p *model.Project) (string, error) {
	modPath := scope.StringOr(generator.KeyModule, p.Name)
	if err := module.CheckImportPath(modPath); err != nil {
		return "", errors.Wrap(err, "module path")
	}

	f := new(modfile.File)
	if err := f.AddModuleStmt(modPath); err != nil {
		return "", err
	}
	goVersion := p.TargetFramework
	if goVersion == "" {
		goVersion = scope.StringOr(KeyGoVersion, DefaultGoVersion)
	}
	if err := f.AddGoStmt(goVersion); err != nil {
		return "", errors.Wrapf(err, "go version %q", goVersion)
	}

	var reqs []*modfile.Require
	for _, pkg := range p.Packages {
		mv := module.Version{Path: pkg.Name, Version: pkg.Version}
		if err := module.Check(mv.Path, mv.Version); err != nil {
			return "", errors.Wrapf(err, "package %s", pkg.Name)
		}
		reqs = append(reqs, &modfile.Require{Mod: mv})
	}
	for _, ref := range p.References {
		reqs = append(reqs, &modfile.Require{Mod: module.Version{Path: ref, Version: localVersion}})
	}
	f.SetRequireSeparateIndirect(reqs)
	for _, ref := range p.References {
		if err := f.AddReplace(ref, "", "../"+path.Base(ref), ""); err != nil {
			return "", errors.Wrapf(err, "replace %s", ref)
		}
	}

	f.Cleanup()
	return string(modfile.Format(f.Syntax)), nil
}
