package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/themelint/internal/themelint"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install or repair the Stylelint setup of a theme",
	Long: `Add the Stylelint packages and lint scripts to package.json, migrate rules
from an existing .stylelintrc, and write .stylelintrc.json, .stylelintignore
and scripts/lint-wrapper.mjs. Files that are already up to date are left alone.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().Bool("skip-node-check", false, "Do not check the installed Node.js version")
}

func runSetup(cmd *cobra.Command, _ []string) error {
	opts, err := buildSetupOptions()
	if err != nil {
		return err
	}
	_, err = themelint.Setup(cmd.Context(), opts)
	return err
}
