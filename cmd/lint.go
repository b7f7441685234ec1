package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solidforge/solidforge/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint the project's scripts for unknown symbols",
	Long:  `Statically checks every .sf script under the project for blocks, commands, and identifiers that don't resolve to a known symbol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := getProjectRoot()
		if err != nil {
			return err
		}

		findings, err := lint.CheckDir(projectRoot)
		if err != nil {
			return err
		}
		if len(findings) > 0 {
			for _, f := range findings {
				fmt.Println(f.String())
			}
			return fmt.Errorf("lint failed: found %d issue(s)", len(findings))
		}

		fmt.Println("no issues found")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
