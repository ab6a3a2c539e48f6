package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/themelint/internal/themelint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [-- stylelint args...]",
	Short: "Run Stylelint on the theme sources",
	Long: `Detect the theme layout, verify the SCSS tooling and run Stylelint on
src/scss/**/*.scss and theme.css. Arguments after -- are passed to Stylelint.
The exit code of Stylelint is returned unchanged.`,
	Args: cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildLintOptions(args)
		if err != nil {
			return err
		}
		opts.Stdin = os.Stdin
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr

		_, err = themelint.Lint(cmd.Context(), opts)
		return err
	},
}

func init() {
	f := lintCmd.Flags()
	f.Bool("fix", false, "Let Stylelint fix issues automatically")
	f.String("command", themelint.DefaultLintCommand, "Command used to run Stylelint")
	f.String("stylelint-config", "", "Stylelint configuration file (default: .stylelintrc.json)")
}
