package themelint

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/yacobolo/themelint/internal/jsonmap"
)

//go:embed templates/lint-wrapper.mjs.tmpl
var templatesFS embed.FS

var wrapperTemplate = template.Must(
	template.New("lint-wrapper.mjs.tmpl").Funcs(template.FuncMap{
		"json": jsLiteral,
	}).ParseFS(templatesFS, "templates/lint-wrapper.mjs.tmpl"),
)

// wrapperData holds the constants baked into the wrapper script.
type wrapperData struct {
	ScssDir        string
	ThemeFile      string
	ScssGlob       string
	ScssSamples    []string
	ScssPlugin     string
	ScssSyntax     string
	ManifestFile   string
	ConfigFile     string
	InstallCommand string
	ExampleConfig  string
}

// GenerateWrapper renders scripts/lint-wrapper.mjs.
func GenerateWrapper() (string, error) {
	example, err := ExampleScssConfig()
	if err != nil {
		return "", err
	}

	data := wrapperData{
		ScssDir:        ScssDir,
		ThemeFile:      ThemeFile,
		ScssGlob:       ScssGlob,
		ScssSamples:    ScssSamplePaths,
		ScssPlugin:     ScssPlugin,
		ScssSyntax:     ScssSyntax,
		ManifestFile:   ManifestFile,
		ConfigFile:     ConfigFile,
		InstallCommand: InstallCommand(ScssDependencies),
		ExampleConfig:  strings.TrimRight(example, "\n"),
	}

	var buf bytes.Buffer
	if err := wrapperTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", WrapperFile, err)
	}
	return buf.String(), nil
}

// ExampleScssConfig is the full configuration shown when SCSS tooling is missing.
func ExampleScssConfig() (string, error) {
	out, err := GenerateLintConfig(nil, ThemeScss).Marshal()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// InstallCommand returns the npm command that installs pkgs as devDependencies.
func InstallCommand(pkgs []Package) string {
	parts := []string{"npm", "install", "--save-dev"}
	for _, p := range pkgs {
		parts = append(parts, p.Name+"@"+p.Version)
	}
	return strings.Join(parts, " ")
}

// jsLiteral renders v as a JavaScript literal.
func jsLiteral(v any) (string, error) {
	out, err := jsonmap.MarshalIndent(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
