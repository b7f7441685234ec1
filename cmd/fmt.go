package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solidforge/solidforge/format"
	"github.com/solidforge/solidforge/project"
)

var fmtCheck bool

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format the project's entry script",
	Long:  `Re-renders the entry script in canonical form. With --check, reports whether the file is already formatted without modifying it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := getProjectRoot()
		if err != nil {
			return err
		}

		config, err := project.LoadConfig(projectRoot)
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		entryPath := config.EntryPath(projectRoot)

		data, err := os.ReadFile(entryPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", entryPath, err)
		}

		formatted, err := format.Source(string(data))
		if err != nil {
			return fmt.Errorf("formatting %s: %w", entryPath, err)
		}

		if fmtCheck {
			if formatted != string(data) {
				return fmt.Errorf("%s is not formatted", entryPath)
			}
			fmt.Println("already formatted")
			return nil
		}

		if err := os.WriteFile(entryPath, []byte(formatted), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", entryPath, err)
		}
		fmt.Printf("formatted %s\n", entryPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without modifying files")
}
