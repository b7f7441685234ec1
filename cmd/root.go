// Package cmd implements the solidforge CLI (§4.9 project build pipeline):
// build, run, fmt, and lint subcommands over a solidforge.yaml project,
// adapted from the teacher's cobra command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solidforge/solidforge/project"
)

var rootCmd = &cobra.Command{
	Use:   "solidforge",
	Short: "solidforge - build tool for the solidforge CSG scripting language",
	Long: `solidforge evaluates declarative CSG scripts into meshes: it lexes,
parses, and evaluates a scripting language of primitives, boolean
operators and sweep builders, then persists the resulting geometry.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getProjectRoot returns the project root directory by looking for
// solidforge.yaml.
func getProjectRoot() (string, error) {
	return project.FindProjectRoot()
}
