package themelint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yacobolo/themelint/internal/jsonmap"
)

// Options configures a setup run.
type Options struct {
	Root          string
	SkipNodeCheck bool

	Node     NodeDetector
	FS       FileSystem
	Reporter *Reporter
	Logger   *slog.Logger
}

// Setup wires Stylelint into the theme project at opts.Root. It returns a
// typed *Error for fatal preconditions; artifacts already written by then
// stay written.
func Setup(ctx context.Context, opts Options) (*Result, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = OSFS
	}
	rep := opts.Reporter
	log := orNop(opts.Logger)
	root := opts.Root

	if !opts.SkipNodeCheck {
		detector := opts.Node
		if detector == nil {
			detector = ExecNodeDetector{}
		}
		if err := CheckNodeVersion(ctx, detector, rep, log); err != nil {
			return nil, err
		}
	}

	manifestPath := filepath.Join(root, ManifestFile)
	manifest, err := LoadManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	rules, legacyPaths := migrateExisting(fsys, root, rep, log, result)

	result.Theme = DetectTheme(fsys, root)
	log.Debug("detected theme", "kind", result.Theme, "root", root)
	if result.Theme == ThemeNone {
		rep.Warn("No %s directory or %s found; configuring for a plain CSS theme", ScssDir, ThemeFile)
	}

	result.ManifestChanges = append(result.ManifestChanges, manifest.EnsureDependencies(requiredDependencies(result.Theme))...)
	for _, c := range result.ManifestChanges {
		rep.Success("Added/updated devDependency: %s@%s", c.Name, c.New)
	}
	scriptChanges := manifest.EnsureScripts(Scripts)
	for _, c := range scriptChanges {
		if c.Old == "" {
			rep.Success("Added script: %s", c.Name)
		} else {
			rep.Success("Updated script: %s", c.Name)
		}
	}
	result.ManifestChanges = append(result.ManifestChanges, scriptChanges...)

	if UpgradeBrowserRule(rules) {
		log.Debug("added baseline ignore entries to migrated browser rule")
	}
	result.Config, err = writeLintConfig(fsys, root, GenerateLintConfig(rules, result.Theme), result.Theme, log)
	if err != nil {
		return result, err
	}
	switch result.Config {
	case StatusCreated:
		rep.Success("Created %s configuration file", ConfigFile)
	case StatusUpdated:
		rep.Success("Updated %s configuration file", ConfigFile)
	}

	for _, path := range legacyPaths {
		name := filepath.Base(path)
		if err := fsys.Remove(path); err != nil {
			log.Debug("removing legacy config failed", "path", path, "error", err)
			rep.Warn("Could not remove %s file", name)
			continue
		}
		result.LegacyRemoved = append(result.LegacyRemoved, name)
		rep.Success("Removed legacy %s file (migrated to %s)", name, ConfigFile)
	}

	result.Ignore, err = writeIfChanged(fsys, filepath.Join(root, IgnoreFile), []byte(GenerateIgnore(result.Theme).String()), 0o644)
	if err != nil {
		return result, err
	}
	reportStatus(rep, result.Ignore, IgnoreFile+" file")

	wrapper, err := GenerateWrapper()
	if err != nil {
		return result, err
	}
	result.Wrapper, err = writeIfChanged(fsys, filepath.Join(root, filepath.FromSlash(WrapperPath)), []byte(wrapper), 0o755)
	if err != nil {
		return result, err
	}
	reportStatus(rep, result.Wrapper, WrapperPath+" lint wrapper")

	if result.ManifestChanged() {
		if err := manifest.Write(fsys, manifestPath); err != nil {
			return result, err
		}
		rep.Success("%s updated successfully!", ManifestFile)
	}

	reportSummary(rep, result)
	return result, nil
}

// migrateExisting collects user rules from every legacy config, earlier
// files taking precedence, falling back to the canonical one. It returns
// the legacy files to delete once the new config is written.
func migrateExisting(fsys FileSystem, root string, rep *Reporter, log *slog.Logger, result *Result) (*jsonmap.Map, []string) {
	paths, legacy := migrationSources(fsys, root)
	rules := jsonmap.New()
	if len(paths) == 0 {
		log.Debug("no existing stylelint config")
		return rules, nil
	}
	for _, path := range paths {
		log.Debug("migrating stylelint rules", "path", path, "legacy", legacy)
		mergeRules(rules, MigrateRules(fsys, path, rep, log))
		result.MigratedFrom = append(result.MigratedFrom, filepath.Base(path))
	}
	if !legacy {
		return rules, nil
	}
	return rules, paths
}

func requiredDependencies(kind ThemeKind) []Package {
	deps := append([]Package{}, BaseDependencies...)
	if kind == ThemeScss {
		deps = append(deps, ScssDependencies...)
	}
	return deps
}

// writeLintConfig creates .stylelintrc.json or rewrites it when the existing
// file is stale. A config that is merely formatted differently is left alone.
func writeLintConfig(fsys FileSystem, root string, cfg *LintConfig, kind ThemeKind, log *slog.Logger) (Status, error) {
	path := filepath.Join(root, ConfigFile)
	data, err := cfg.Marshal()
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", ConfigFile, err)
	}

	if !exists(fsys, path) {
		if err := fsys.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", ConfigFile, err)
		}
		return StatusCreated, nil
	}

	existing, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", ConfigFile, err)
	}
	rewrite, reason := NeedsRewrite(existing, cfg, kind)
	if !rewrite {
		return StatusUnchanged, nil
	}
	log.Debug("rewriting stylelint config", "reason", reason)
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", ConfigFile, err)
	}
	return StatusUpdated, nil
}

func reportStatus(rep *Reporter, status Status, what string) {
	switch status {
	case StatusCreated:
		rep.Success("Created %s", what)
	case StatusUpdated:
		rep.Success("Updated %s", what)
	}
}

func reportSummary(rep *Reporter, result *Result) {
	rep.Println("")
	if result.Changed() {
		rep.Success("Stylelint setup complete!")
		rep.Println("")
		rep.Println("Next steps:")
		rep.Println("  1. Run: npm install")
		rep.Println("  2. Run: npm run lint")
		return
	}
	rep.Success("Everything is already set up correctly!")
	rep.Println("  Run: npm run lint")
}

// ResolveRoot picks the project root: dir when set, otherwise the parent of
// the executable's directory when that directory is named "scripts",
// otherwise the working directory.
func ResolveRoot(dir string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return resolveRoot(dir, exe, wd)
}

func resolveRoot(dir, exe, wd string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", dir, err)
		}
		return abs, nil
	}
	if exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir := filepath.Dir(exe)
		if filepath.Base(exeDir) == WrapperDir {
			return filepath.Dir(exeDir), nil
		}
	}
	return wd, nil
}
