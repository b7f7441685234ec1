package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solidforge/solidforge/persist"
	"github.com/solidforge/solidforge/project"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate the project's entry script and print a summary",
	Long:  `Builds the project's entry script in memory (ignoring the build cache) and prints a summary of the resulting geometry. Intended for quick iteration during development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("getting project root: %w", err)
		}

		config, err := project.LoadConfig(projectRoot)
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}

		entryPath := config.EntryPath(projectRoot)
		m, err := evaluateEntry(entryPath, config.Seed)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", entryPath, err)
		}

		var buf bytes.Buffer
		if err := persist.Write(&buf, m, nil); err != nil {
			return fmt.Errorf("serializing mesh: %w", err)
		}

		bounds := m.Bounds()
		fmt.Printf("polygons: %d\n", len(m.Polygons()))
		fmt.Printf("watertight: %t\n", m.IsWatertight())
		fmt.Printf("bounds: [%g %g %g] - [%g %g %g]\n",
			bounds.Min.X, bounds.Min.Y, bounds.Min.Z,
			bounds.Max.X, bounds.Max.Y, bounds.Max.Z)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
