package themelint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kballard/go-shellquote"
)

// DefaultLintCommand invokes the project-local Stylelint.
const DefaultLintCommand = "npx stylelint"

// Command is one delegate process invocation.
type Command struct {
	Dir    string
	Name   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner runs a command and returns its exit code. A non-zero exit
// is not an error; err is reserved for failing to run the command at all.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, c Command) (int, error) {
	// #nosec G204 - the delegate command is user configuration
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return ExitFailure, err
	}
	return ExitSuccess, nil
}

// LintOptions configures a lint run.
type LintOptions struct {
	Root string
	// Args are passed through to Stylelint after the targets.
	Args []string
	// Command is the delegate command line; defaults to DefaultLintCommand.
	Command string
	// Config is an alternative Stylelint configuration, relative to Root.
	Config  string
	Verbose bool

	Runner   CommandRunner
	FS       FileSystem
	Reporter *Reporter
	Logger   *slog.Logger
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// Lint detects the theme layout, checks the SCSS tooling and runs Stylelint
// on the theme sources. It returns the linter's exit code; a non-zero code
// comes with a DelegateFailure error.
func Lint(ctx context.Context, opts LintOptions) (int, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = OSFS
	}
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	rep := opts.Reporter
	log := orNop(opts.Logger)

	kind := DetectTheme(fsys, opts.Root)
	if kind == ThemeNone {
		return ExitFailure, newError(KindLayoutUndetected,
			fmt.Sprintf("no theme found: expected a %s/ directory or a %s file in the project root", ScssDir, ThemeFile), nil)
	}
	log.Debug("detected theme", "kind", kind, "root", opts.Root)

	configName := opts.Config
	if configName == "" {
		configName = ConfigFile
	}

	if kind == ThemeScss {
		if problems := ScssToolingProblems(fsys, opts.Root, configName); len(problems) > 0 {
			reportToolingProblems(rep, problems, configName)
			return ExitFailure, newError(KindToolingMissing, "SCSS linting is not set up", nil)
		}
	}

	targets := LintTargets(fsys, opts.Root)
	if opts.Verbose {
		stats, err := countTargets(opts.Root, targets)
		if err != nil {
			log.Debug("expanding lint targets failed", "error", err)
		} else {
			rep.Info("Linting %d files (%d ignored)", stats.Linted, stats.Ignored)
		}
	}

	line := opts.Command
	if line == "" {
		line = DefaultLintCommand
	}
	argv, err := shellquote.Split(line)
	if err != nil {
		return ExitFailure, fmt.Errorf("parsing lint command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return ExitFailure, fmt.Errorf("lint command is empty")
	}

	args := append([]string{}, argv[1:]...)
	args = append(args, targets...)
	if opts.Config != "" {
		args = append(args, "--config", opts.Config)
	}
	args = append(args, opts.Args...)

	log.Debug("running linter", "command", argv[0], "args", args)
	code, err := runner.Run(ctx, Command{
		Dir:    opts.Root,
		Name:   argv[0],
		Args:   args,
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return ExitFailure, fmt.Errorf("running %s: %w", argv[0], err)
	}
	if code != ExitSuccess {
		derr := DelegateFailed(code)
		return derr.Code, derr
	}

	if hasFlag(opts.Args, "--fix") {
		rep.Success("Stylelint fixed issues automatically")
	} else {
		rep.Success("Stylelint found no issues")
	}
	return ExitSuccess, nil
}

// LintTargets returns the globs handed to Stylelint: the SCSS sources when
// present, plus theme.css when it exists.
func LintTargets(fsys FileSystem, root string) []string {
	var targets []string
	if DetectTheme(fsys, root) == ThemeScss {
		targets = append(targets, ScssGlob)
	}
	if HasThemeFile(fsys, root) {
		targets = append(targets, ThemeFile)
	}
	return targets
}

// ScssToolingProblems lists what is missing for Stylelint to parse SCSS.
// Unreadable files count as empty.
func ScssToolingProblems(fsys FileSystem, root, configName string) []string {
	var problems []string

	manifest, err := LoadManifest(fsys, filepath.Join(root, ManifestFile))
	if err != nil {
		manifest, _ = ParseManifest([]byte("{}"))
	}
	for _, name := range []string{ScssPlugin, ScssSyntax} {
		if !manifest.HasDependency(name) {
			problems = append(problems, fmt.Sprintf("%s is not listed in %s", name, ManifestFile))
		}
	}

	// Stylelint reads the config as strict JSON, and so does the wrapper.
	cfg := &LintConfig{}
	if data, err := fsys.ReadFile(filepath.Join(root, configName)); err == nil && json.Valid(data) {
		if parsed, err := ParseLintConfig(data); err == nil {
			cfg = parsed
		}
	}
	if !cfg.HasPlugin(ScssPlugin) {
		problems = append(problems, fmt.Sprintf("%s is not enabled in %s plugins", ScssPlugin, configName))
	}
	if !cfg.DeclaresScssSyntax() {
		problems = append(problems, fmt.Sprintf("%s does not set customSyntax %q for SCSS files", configName, ScssSyntax))
	}
	return problems
}

func reportToolingProblems(rep *Reporter, problems []string, configName string) {
	rep.Error("SCSS linting is not set up:")
	for _, p := range problems {
		rep.Println("  - %s", p)
	}
	rep.Println("")
	rep.Println("Install the SCSS tooling:")
	rep.Hint(InstallCommand(ScssDependencies))
	if example, err := ExampleScssConfig(); err == nil {
		rep.Println("")
		rep.Println("Example %s:", configName)
		rep.Hint(example)
	}
}

// targetStats counts the files a lint run covers.
type targetStats struct {
	Linted  int
	Ignored int
}

// countTargets expands the lint globs under root and filters them through
// .stylelintignore.
func countTargets(root string, patterns []string) (targetStats, error) {
	var stats targetStats

	gi, err := LoadIgnore(root)
	if err != nil {
		return stats, err
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return stats, err
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			info, err := fs.Stat(fsys, match)
			if err != nil || info.IsDir() {
				continue
			}
			if gi != nil && gi.MatchesPath(match) {
				stats.Ignored++
				continue
			}
			stats.Linted++
		}
	}
	return stats, nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
