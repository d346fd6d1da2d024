// Package core wires the language backends into generators and runs planned
// jobs through them.
package core

import (
	"github.com/cockroachdb/errors"

	"github.com/origadmin/syngen/internal/config"
	"github.com/origadmin/syngen/internal/csharp"
	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/golang"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/settings"
	"github.com/origadmin/syngen/internal/template"
)

// ErrUnknownLanguage is returned by NewGenerator for an unsupported language.
var ErrUnknownLanguage = errors.New("unknown language")

// NewRegistry returns a registry holding every strategy of language: its
// declaration, route and project strategies, the settings formats and skeleton
// files.
func NewRegistry(language string, skeletons *template.Manager) (*generator.Registry, error) {
	r := generator.NewRegistry()
	switch language {
	case config.LanguageCSharp:
		csharp.Register(r)
	case config.LanguageGo:
		golang.Register(r, skeletons)
	default:
		return nil, errors.WithHintf(errors.Mark(errors.Newf("unknown language %q", language), ErrUnknownLanguage),
			"use %q or %q", config.LanguageCSharp, config.LanguageGo)
	}
	settings.Register(r)
	generator.Register[*model.File](r, template.FileStrategy{Skeletons: skeletons})
	return r, nil
}

// NewGenerator returns a generator for language.
func NewGenerator(language string, skeletons *template.Manager) (*generator.Generator, error) {
	r, err := NewRegistry(language, skeletons)
	if err != nil {
		return nil, err
	}
	return generator.New(r), nil
}
