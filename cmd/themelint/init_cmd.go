package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .themelint.yaml config file",
	Long:  `Create a .themelint.yaml configuration file in the current directory with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".themelint.yaml"); err == nil && !force {
			return fmt.Errorf(".themelint.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".themelint.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .themelint.yaml")
		return nil
	},
}

const defaultConfig = `# themelint configuration

# Shared settings
dir: ""          # project root; empty = auto-detect
verbose: false
quiet: false
color: false

# Setup settings
setup:
  skip-node-check: false

# Lint settings
lint:
  command: npx stylelint
  config: ""     # empty = .stylelintrc.json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
