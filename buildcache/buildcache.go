// Package buildcache implements the §4.9 content-hash build cache: a
// SHA-256 digest of a script's source plus its transitive imports, stored
// as a sidecar JSON file next to the build output, adapted from the
// teacher's protobuf.Generate timestamp/hash-cache pattern
// (.protobuf-hashes.json) into a single whole-source digest.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/parser"
)

const sidecarSuffix = ".hashes.json"

// entry records the digest of one build's source set.
type entry struct {
	SourceHash string `json:"source_hash"`
}

// Digest computes the content hash of entryPath and every script it
// transitively imports, in first-encountered order, by concatenating file
// contents before hashing. Cyclic or repeated imports are visited once.
func Digest(entryPath string) (string, error) {
	h := sha256.New()
	seen := make(map[string]bool)
	var walk func(path string) error
	walk = func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if seen[abs] {
			return nil
		}
		seen[abs] = true

		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("reading %s: %w", abs, err)
		}
		h.Write(data)

		toks, lexErr := lexer.New(string(data)).Tokenize()
		if lexErr != nil {
			return nil
		}
		stmts, parseErr := parser.New(toks).ParseProgram()
		if parseErr != nil {
			return nil
		}
		dir := filepath.Dir(abs)
		for _, s := range stmts {
			if imp, ok := s.(parser.Import); ok {
				if err := walk(filepath.Join(dir, imp.Path)); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(entryPath); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sidecarPath(outputPath string) string {
	return outputPath + sidecarSuffix
}

// NeedsRebuild reports whether outputPath is missing, or its recorded
// digest no longer matches digest.
func NeedsRebuild(outputPath, digest string) (bool, error) {
	if _, err := os.Stat(outputPath); err != nil {
		return true, nil
	}
	data, err := os.ReadFile(sidecarPath(outputPath))
	if err != nil {
		return true, nil
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return true, nil
	}
	return e.SourceHash != digest, nil
}

// Save records digest as outputPath's current build digest.
func Save(outputPath, digest string) error {
	data, err := json.MarshalIndent(entry{SourceHash: digest}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling build cache: %w", err)
	}
	if err := os.WriteFile(sidecarPath(outputPath), data, 0644); err != nil {
		return fmt.Errorf("writing build cache: %w", err)
	}
	return nil
}

// Clean removes the sidecar cache file for outputPath.
func Clean(outputPath string) error {
	if err := os.Remove(sidecarPath(outputPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing build cache: %w", err)
	}
	return nil
}
