package themelint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	code  int
	err   error
	calls []Command
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) (int, error) {
	f.calls = append(f.calls, cmd)
	return f.code, f.err
}

func scssProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, ManifestFile, `{"devDependencies": {"stylelint": "^15.11.0", "stylelint-scss": "^5.3.0", "postcss-scss": "^4.0.9"}}`)
	cfg, err := GenerateLintConfig(nil, ThemeScss).Marshal()
	require.NoError(t, err)
	writeFile(t, root, ConfigFile, string(cfg))
	writeFile(t, root, ScssDir+"/theme.scss", "a { b: c; }")
	return root
}

func TestLintTargets(t *testing.T) {
	tests := []struct {
		name  string
		scss  bool
		theme bool
		want  []string
	}{
		{name: "scss only", scss: true, want: []string{"src/scss/**/*.scss"}},
		{name: "scss and compiled theme", scss: true, theme: true, want: []string{"src/scss/**/*.scss", "theme.css"}},
		{name: "plain", theme: true, want: []string{"theme.css"}},
		{name: "nothing", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.scss {
				mkdir(t, root, ScssDir)
			}
			if tt.theme {
				writeFile(t, root, ThemeFile, "a {}")
			}
			assert.Equal(t, tt.want, LintTargets(OSFS, root))
		})
	}
}

func TestLintNoTheme(t *testing.T) {
	runner := &fakeRunner{}

	code, err := Lint(context.Background(), LintOptions{Root: t.TempDir(), Runner: runner})

	require.Error(t, err)
	assert.Equal(t, ExitFailure, code)
	assert.True(t, IsKind(err, KindLayoutUndetected))
	assert.Empty(t, runner.calls)
}

func TestLintPlainTheme(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ThemeFile, "a {}")
	runner := &fakeRunner{}
	rep, out, _ := captureReporter()

	code, err := Lint(context.Background(), LintOptions{Root: root, Runner: runner, Reporter: rep})

	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, code)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "npx", runner.calls[0].Name)
	assert.Equal(t, []string{"stylelint", "theme.css"}, runner.calls[0].Args)
	assert.Equal(t, root, runner.calls[0].Dir)
	assert.Contains(t, out.String(), "✓ Stylelint found no issues")
}

func TestLintScssPassesArgsAndReportsFix(t *testing.T) {
	root := scssProject(t)
	writeFile(t, root, ThemeFile, "a {}")
	runner := &fakeRunner{}
	rep, out, _ := captureReporter()

	code, err := Lint(context.Background(), LintOptions{
		Root:     root,
		Args:     []string{"--fix", "--formatter", "compact"},
		Command:  `node_modules/.bin/stylelint --cache`,
		Runner:   runner,
		Reporter: rep,
	})

	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, code)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "node_modules/.bin/stylelint", runner.calls[0].Name)
	assert.Equal(t, []string{"--cache", "src/scss/**/*.scss", "theme.css", "--fix", "--formatter", "compact"}, runner.calls[0].Args)
	assert.Contains(t, out.String(), "✓ Stylelint fixed issues automatically")
}

func TestLintPropagatesExitCode(t *testing.T) {
	root := scssProject(t)
	runner := &fakeRunner{code: 2}
	rep, out, errOut := captureReporter()

	code, err := Lint(context.Background(), LintOptions{Root: root, Runner: runner, Reporter: rep})

	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.Equal(t, 2, ExitCode(err))
	assert.True(t, IsSilent(err))
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestLintSignalledDelegateFails(t *testing.T) {
	root := scssProject(t)
	runner := &fakeRunner{code: -1}

	code, err := Lint(context.Background(), LintOptions{Root: root, Runner: runner})

	require.Error(t, err)
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.True(t, IsKind(err, KindDelegateFailure))
}

func TestLintRunnerFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ThemeFile, "a {}")
	runner := &fakeRunner{err: errors.New("executable file not found")}

	code, err := Lint(context.Background(), LintOptions{Root: root, Runner: runner})

	require.Error(t, err)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, err.Error(), "running npx")
}

func TestLintCustomConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ThemeFile, "a {}")
	runner := &fakeRunner{}

	_, err := Lint(context.Background(), LintOptions{Root: root, Config: "config/stylelint.json", Runner: runner})

	require.NoError(t, err)
	assert.Equal(t, []string{"stylelint", "theme.css", "--config", "config/stylelint.json"}, runner.calls[0].Args)
}

func TestLintBadCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ThemeFile, "a {}")

	_, err := Lint(context.Background(), LintOptions{Root: root, Command: `npx "stylelint`, Runner: &fakeRunner{}})
	require.Error(t, err)

	_, err = Lint(context.Background(), LintOptions{Root: root, Command: "   ", Runner: &fakeRunner{}})
	require.Error(t, err)
}

func TestLintMissingScssTooling(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		config   string
		problems []string
	}{
		{
			name:     "nothing installed",
			manifest: `{}`,
			config:   plainConfig,
			problems: []string{
				"stylelint-scss is not listed in package.json",
				"postcss-scss is not listed in package.json",
				"stylelint-scss is not enabled in .stylelintrc.json plugins",
				".stylelintrc.json does not set customSyntax \"postcss-scss\" for SCSS files",
			},
		},
		{
			name:     "override for css only",
			manifest: `{"dependencies": {"stylelint-scss": "^5.3.0", "postcss-scss": "^4.0.9"}}`,
			config:   `{"plugins": ["stylelint-scss"], "overrides": [{"files": ["**/*.css"], "customSyntax": "postcss-scss"}]}`,
			problems: []string{".stylelintrc.json does not set customSyntax \"postcss-scss\" for SCSS files"},
		},
		{
			name:     "config missing",
			manifest: `{"devDependencies": {"stylelint-scss": "^5.3.0", "postcss-scss": "^4.0.9"}}`,
			problems: []string{
				"stylelint-scss is not enabled in .stylelintrc.json plugins",
				".stylelintrc.json does not set customSyntax \"postcss-scss\" for SCSS files",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			mkdir(t, root, ScssDir)
			writeFile(t, root, ManifestFile, tt.manifest)
			if tt.config != "" {
				writeFile(t, root, ConfigFile, tt.config)
			}
			assert.Equal(t, tt.problems, ScssToolingProblems(OSFS, root, ConfigFile))

			runner := &fakeRunner{}
			rep, out, errOut := captureReporter()
			code, err := Lint(context.Background(), LintOptions{Root: root, Runner: runner, Reporter: rep})

			require.Error(t, err)
			assert.Equal(t, ExitFailure, code)
			assert.True(t, IsKind(err, KindToolingMissing))
			assert.Empty(t, runner.calls)
			assert.Contains(t, errOut.String(), "SCSS linting is not set up")
			assert.Contains(t, out.String(), "npm install --save-dev stylelint-scss@^5.3.0 postcss-scss@^4.0.9")
			assert.Contains(t, out.String(), "Example .stylelintrc.json:")
		})
	}
}

func TestLintLegacyTopLevelSyntaxIsAccepted(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, ScssDir)
	writeFile(t, root, ManifestFile, `{"devDependencies": {"stylelint-scss": "^5.3.0", "postcss-scss": "^4.0.9"}}`)
	writeFile(t, root, ConfigFile, `{"plugins": ["stylelint-scss"], "customSyntax": "postcss-scss"}`)

	assert.Empty(t, ScssToolingProblems(OSFS, root, ConfigFile))
}

func TestLintVerboseCountsFiles(t *testing.T) {
	root := scssProject(t)
	writeFile(t, root, ScssDir+"/components/_buttons.scss", "")
	writeFile(t, root, ThemeFile, "a {}")
	writeFile(t, root, IgnoreFile, GenerateIgnore(ThemeScss).String())
	rep, out, _ := captureReporter()

	_, err := Lint(context.Background(), LintOptions{Root: root, Runner: &fakeRunner{}, Reporter: rep, Verbose: true})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "ℹ Linting 2 files (1 ignored)")
}
