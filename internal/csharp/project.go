package csharp

import (
	"bytes"
	"encoding/xml"
	"path"
	"strings"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
)

type projectStrategy struct {
	generator.Default[*model.Project]
}

// Generate renders an SDK-style .csproj.
func (projectStrategy) Generate(_ *generator.Generator, scope generator.Scope, p *model.Project) (string, error) {
	framework := p.TargetFramework
	if framework == "" {
		framework = scope.StringOr(KeyTargetFramework, DefaultTargetFramework)
	}

	props := [][2]string{
		{"TargetFramework", framework},
		{"Nullable", "enable"},
		{"ImplicitUsings", "enable"},
	}
	if ns := scope.String(generator.KeyNamespace); ns != "" {
		props = append(props, [2]string{"RootNamespace", ns})
	}
	switch p.Kind {
	case model.Console:
		props = append(props, [2]string{"OutputType", "Exe"})
	case model.TestProject:
		props = append(props, [2]string{"IsPackable", "false"}, [2]string{"IsTestProject", "true"})
	}

	var sb strings.Builder
	sb.WriteString(`<Project Sdk="` + sdk(p.Kind) + "\">\n\n")
	sb.WriteString("  <PropertyGroup>\n")
	for _, kv := range props {
		sb.WriteString("    <" + kv[0] + ">" + escape(kv[1]) + "</" + kv[0] + ">\n")
	}
	sb.WriteString("  </PropertyGroup>\n")

	if len(p.Packages) > 0 {
		sb.WriteString("\n  <ItemGroup>\n")
		for _, pkg := range p.Packages {
			sb.WriteString(`    <PackageReference Include="` + escape(pkg.Name) + `"`)
			if pkg.Version != "" {
				sb.WriteString(` Version="` + escape(pkg.Version) + `"`)
			}
			sb.WriteString(" />\n")
		}
		sb.WriteString("  </ItemGroup>\n")
	}

	if len(p.References) > 0 {
		sb.WriteString("\n  <ItemGroup>\n")
		for _, ref := range p.References {
			sb.WriteString(`    <ProjectReference Include="` + escape(projectReference(ref)) + "\" />\n")
		}
		sb.WriteString("  </ItemGroup>\n")
	}

	sb.WriteString("\n</Project>\n")
	return sb.String(), nil
}

func sdk(kind model.ProjectKind) string {
	switch kind {
	case model.WebAPI:
		return "Microsoft.NET.Sdk.Web"
	case model.Worker:
		return "Microsoft.NET.Sdk.Worker"
	default:
		return "Microsoft.NET.Sdk"
	}
}

// projectReference turns a bare sibling project name into ..\Name\Name.csproj.
func projectReference(ref string) string {
	if strings.HasSuffix(ref, ".csproj") {
		return ref
	}
	name := path.Base(strings.ReplaceAll(ref, `\`, "/"))
	return `..\` + name + `\` + name + ".csproj"
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
