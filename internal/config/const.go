// Package config loads the project file that describes what syngen generates.
package config

// Global constants for the application.
const (
	Application = "syngen"
	Description = "Generate C# and Go sources, projects and settings from a declarative project file"
	WebSite     = "https://github.com/origadmin/syngen"
	UI          = "syngen"

	// DefaultFile is the project file looked up when none is given.
	DefaultFile = "syngen.yaml"
)

// Target languages.
const (
	LanguageCSharp = "csharp"
	LanguageGo     = "go"
)
