package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "themelint",
	Short: "Stylelint setup for CSS and SCSS themes",
	Long: `Configure Stylelint for a theme project in one step.
Detects whether the theme is a plain theme.css or an SCSS source tree,
updates package.json and writes .stylelintrc.json, .stylelintignore and
scripts/lint-wrapper.mjs. Running it again only repairs what is stale.`,
	// Default behavior: run setup when no subcommand is given.
	// loadConfig is called here because PreRunE of setupCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runSetup(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress status output (errors and exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".themelint.yaml", "Config file path")
	rootCmd.PersistentFlags().StringP("dir", "C", "", "Theme project root (default: auto-detect)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
