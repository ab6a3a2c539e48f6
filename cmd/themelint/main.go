// Package main provides the themelint CLI, which sets up and runs Stylelint
// for CSS and SCSS theme projects.
package main

import (
	"os"

	"github.com/yacobolo/themelint/internal/themelint"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := rootCmd.Execute()
	if err == nil {
		return themelint.ExitSuccess
	}
	if !themelint.IsSilent(err) {
		newReporter().Error("%v", err)
	}
	return themelint.ExitCode(err)
}
