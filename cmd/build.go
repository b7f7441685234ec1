package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/solidforge/solidforge/buildcache"
	"github.com/solidforge/solidforge/eval"
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/lint"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/persist"
	"github.com/solidforge/solidforge/project"
	"github.com/solidforge/solidforge/scene"
)

var buildForce bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Evaluate the project's entry script and write the persisted mesh",
	Long:  `Lints, evaluates, and builds the project's entry script, writing the resulting geometry to the configured output path. Skipped when the content-hash build cache shows nothing changed.`,
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
		outputPath := config.OutputPath(projectRoot)

		fmt.Printf("Linting %s...\n", entryPath)
		findings, err := lint.CheckFile(entryPath)
		if err != nil {
			return fmt.Errorf("linting: %w", err)
		}
		if len(findings) > 0 {
			for _, f := range findings {
				fmt.Println(f.String())
			}
			return fmt.Errorf("lint failed: found %d issue(s)", len(findings))
		}

		digest, err := buildcache.Digest(entryPath)
		if err != nil {
			return fmt.Errorf("computing build digest: %w", err)
		}
		if !buildForce {
			needsRebuild, err := buildcache.NeedsRebuild(outputPath, digest)
			if err != nil {
				return fmt.Errorf("checking build cache: %w", err)
			}
			if !needsRebuild {
				fmt.Println("Build is up to date")
				return nil
			}
		}

		m, err := evaluateEntry(entryPath, config.Seed)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", entryPath, err)
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()

		fm := &persist.FrontMatter{
			Generator:  "solidforge",
			SourceHash: digest,
			Created:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := persist.Write(f, m, fm); err != nil {
			return fmt.Errorf("writing mesh: %w", err)
		}

		if err := buildcache.Save(outputPath, digest); err != nil {
			fmt.Printf("Warning: failed to save build cache: %v\n", err)
		}

		fmt.Printf("Built %s\n", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Rebuild even if the build cache is up to date")
}

// evaluateEntry lexes, parses, and evaluates the project's entry script,
// returning the top-level geometry flattened into a single polygon soup
// (depth-first, §5 ordering).
func evaluateEntry(entryPath string, seed int64) (mesh.Mesh, error) {
	data, err := os.ReadFile(entryPath)
	if err != nil {
		return mesh.Empty, err
	}
	toks, lexErr := lexer.New(string(data)).Tokenize()
	if lexErr != nil {
		return mesh.Empty, lexErr
	}
	stmts, parseErr := parser.New(toks).ParseProgram()
	if parseErr != nil {
		return mesh.Empty, parseErr
	}

	delegate := &fileDelegate{dir: filepath.Dir(entryPath), seed: seed, out: os.Stdout}
	nodes, err := eval.New(delegate).EvalProgram(stmts, seed)
	if err != nil {
		return mesh.Empty, err
	}

	ms, err := scene.ChildMeshes(nodes, nil)
	if err != nil {
		return mesh.Empty, err
	}
	var polys []geom.Polygon
	for _, n := range ms {
		polys = append(polys, n.Polygons()...)
	}
	return mesh.New(polys), nil
}
