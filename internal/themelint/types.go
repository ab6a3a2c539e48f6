// Package themelint configures Stylelint for CSS themes.
//
// A setup run inspects the project tree, merges the required packages and
// scripts into package.json, and writes three artifacts:
//
//   - .stylelintrc.json, tailored to a plain theme.css or an SCSS source tree
//   - .stylelintignore
//   - scripts/lint-wrapper.mjs, which re-detects the layout at lint time
//
// Every artifact is compared with what is on disk and only written when it
// differs, so running setup twice is a no-op the second time.
package themelint

import "path/filepath"

// ThemeKind classifies the layout of a theme project.
type ThemeKind int

const (
	// ThemeNone means neither theme.css nor src/scss was found.
	ThemeNone ThemeKind = iota
	// ThemePlain is a hand-written theme.css at the project root.
	ThemePlain
	// ThemeScss is a theme compiled from sources under src/scss.
	ThemeScss
)

func (k ThemeKind) String() string {
	switch k {
	case ThemePlain:
		return "plain"
	case ThemeScss:
		return "scss"
	default:
		return "none"
	}
}

// File layout of a theme project, relative to its root.
const (
	ManifestFile     = "package.json"
	ConfigFile       = ".stylelintrc.json"
	LegacyConfigFile = ".stylelintrc"
	IgnoreFile       = ".stylelintignore"
	WrapperDir       = "scripts"
	WrapperFile      = "lint-wrapper.mjs"
	ScssDir          = "src/scss"
	ThemeFile        = "theme.css"
)

// LegacyConfigAlternates are checked, in order, when LegacyConfigFile is absent.
var LegacyConfigAlternates = []string{".stylelintrc.yaml", ".stylelintrc.yml"}

// WrapperPath is the wrapper location relative to the project root.
var WrapperPath = filepath.ToSlash(filepath.Join(WrapperDir, WrapperFile))

// Stylelint plugin, rule and syntax identifiers.
const (
	RecommendedConfig = "stylelint-config-recommended"
	BrowserPlugin     = "stylelint-no-unsupported-browser-features"
	BrowserRule       = "plugin/no-unsupported-browser-features"
	ScssPlugin        = "stylelint-scss"
	ScssSyntax        = "postcss-scss"
	AtRuleRule        = "at-rule-no-unknown"

	// ScssGlob selects the SCSS sources handed to Stylelint.
	ScssGlob = ScssDir + "/**/*.scss"
	// OverrideGlob is the files pattern of the generated customSyntax override.
	OverrideGlob = "**/*.scss"
)

// Package is a devDependency pinned to an exact version range.
type Package struct {
	Name    string
	Version string
}

// Script is an npm script entry.
type Script struct {
	Name    string
	Command string
}

// BaseDependencies are required by every theme.
var BaseDependencies = []Package{
	{Name: "stylelint", Version: "^15.11.0"},
	{Name: RecommendedConfig, Version: "^13.0.0"},
	{Name: BrowserPlugin, Version: "^7.0.0"},
}

// ScssDependencies are only added for SCSS-sourced themes.
var ScssDependencies = []Package{
	{Name: ScssPlugin, Version: "^5.3.0"},
	{Name: ScssSyntax, Version: "^4.0.9"},
}

// Scripts are the npm scripts pointing at the wrapper.
var Scripts = []Script{
	{Name: "lint", Command: "node " + WrapperPath},
	{Name: "lint:fix", Command: "node " + WrapperPath + " --fix"},
}

// Browser support targets and the features the browser rule tolerates.
var (
	TargetBrowsers  = []string{"last 10 Chrome versions", "last 3 iOS versions"}
	IgnoredFeatures = []string{"css-masks", "css-nesting"}
)

// ScssAtRules are the SCSS directives at-rule-no-unknown must accept.
var ScssAtRules = []string{
	"use", "forward", "import", "mixin", "include", "function", "return",
	"if", "else", "each", "for", "while", "extend", "content",
	"debug", "warn", "error",
}

// Status is the outcome of writing one artifact.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
)

// Changed reports whether the artifact was written.
func (s Status) Changed() bool {
	return s == StatusCreated || s == StatusUpdated
}

// Change records one dependency or script entry that was added or rewritten.
type Change struct {
	Name string
	Old  string // empty when the entry was added
	New  string
}

// Result summarizes a setup run.
type Result struct {
	Theme           ThemeKind
	ManifestChanges []Change
	Config          Status
	Ignore          Status
	Wrapper         Status
	MigratedFrom    []string // config files rules were migrated from
	LegacyRemoved   []string // legacy config files deleted after migration
}

// ManifestChanged reports whether package.json was rewritten.
func (r *Result) ManifestChanged() bool {
	return len(r.ManifestChanges) > 0
}

// Changed reports whether any artifact was written.
func (r *Result) Changed() bool {
	return r.ManifestChanged() || r.Config.Changed() || r.Ignore.Changed() || r.Wrapper.Changed()
}
