package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/themelint/internal/themelint"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".themelint.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set override file and env values;
	// flag defaults are applied by the getXxxWithFallback helpers.
	fs := cmd.Flags()
	changed := func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, changed), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// THEMELINT_SETUP_SKIP_NODE_CHECK -> setup.skip-node-check
	// THEMELINT_LINT_COMMAND -> lint.command
	if err := k.Load(env.Provider("THEMELINT_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. The first underscore
// separates the section, later ones stand for dashes.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "THEMELINT_"))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	switch section {
	case "setup", "lint":
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildSetupOptions constructs themelint.Options from koanf state.
func buildSetupOptions() (themelint.Options, error) {
	root, err := themelint.ResolveRoot(getStringWithFallback("dir", "dir", ""))
	if err != nil {
		return themelint.Options{}, err
	}
	return themelint.Options{
		Root:          root,
		SkipNodeCheck: getBoolWithFallback("skip-node-check", "setup.skip-node-check", false),
		Reporter:      newReporter(),
		Logger:        newLogger(),
	}, nil
}

// buildLintOptions constructs themelint.LintOptions from koanf state.
// args are passed through to Stylelint.
func buildLintOptions(args []string) (themelint.LintOptions, error) {
	root, err := themelint.ResolveRoot(getStringWithFallback("dir", "dir", ""))
	if err != nil {
		return themelint.LintOptions{}, err
	}

	pass := append([]string{}, args...)
	if getBoolWithFallback("fix", "lint.fix", false) {
		pass = append([]string{"--fix"}, pass...)
	}

	return themelint.LintOptions{
		Root:     root,
		Args:     pass,
		Command:  getStringWithFallback("command", "lint.command", themelint.DefaultLintCommand),
		Config:   getStringWithFallback("stylelint-config", "lint.config", ""),
		Verbose:  getBoolWithFallback("verbose", "verbose", false),
		Reporter: newReporter(),
		Logger:   newLogger(),
	}, nil
}

func newReporter() *themelint.Reporter {
	useColors := themelint.ShouldUseColors(getBoolWithFallback("color", "color", false))
	quiet := getBoolWithFallback("quiet", "quiet", false)
	return themelint.NewReporter(os.Stdout, os.Stderr, useColors, quiet)
}

// newLogger returns the debug logger; it only emits with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if getBoolWithFallback("verbose", "verbose", false) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
