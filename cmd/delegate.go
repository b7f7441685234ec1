package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/solidforge/solidforge/eval"
	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/scene"
)

// fileDelegate resolves `import` statements against files on disk relative
// to a script's own directory and prints `print` output to a writer.
type fileDelegate struct {
	dir  string
	seed int64
	out  io.Writer
}

func (d *fileDelegate) ResolveURL(path string) (string, error) {
	resolved := filepath.Join(d.dir, path)
	if _, err := os.Stat(resolved); err != nil {
		return "", fmt.Errorf("resolving import %q: %w", path, err)
	}
	return resolved, nil
}

func (d *fileDelegate) ImportGeometry(url string) (*scene.Scene, error) {
	data, err := os.ReadFile(url)
	if err != nil {
		return nil, err
	}
	toks, lexErr := lexer.New(string(data)).Tokenize()
	if lexErr != nil {
		return nil, lexErr
	}
	stmts, parseErr := parser.New(toks).ParseProgram()
	if parseErr != nil {
		return nil, parseErr
	}
	sub := &fileDelegate{dir: filepath.Dir(url), seed: d.seed, out: d.out}
	nodes, err := eval.New(sub).EvalProgram(stmts, d.seed)
	if err != nil {
		return nil, err
	}
	return &scene.Scene{Children: nodes}, nil
}

func (d *fileDelegate) DebugLog(values []string) {
	fmt.Fprintln(d.out, strings.Join(values, " "))
}

func (d *fileDelegate) IsCancelled() bool { return false }
