package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solidforge/solidforge/project"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := "name: demo\nentry: main.sf\n"
	if err := os.WriteFile(filepath.Join(dir, "solidforge.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := project.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Detail != 16 {
		t.Errorf("expected default detail 16, got %d", cfg.Detail)
	}
	if cfg.Output != "build/demo.mesh.json" {
		t.Errorf("expected default output, got %q", cfg.Output)
	}
	if got := cfg.EntryPath(dir); got != filepath.Join(dir, "main.sf") {
		t.Errorf("EntryPath = %q", got)
	}
}

func TestLoadConfigRequiresEntry(t *testing.T) {
	dir := t.TempDir()
	yaml := "name: demo\n"
	if err := os.WriteFile(filepath.Join(dir, "solidforge.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := project.LoadConfig(dir); err == nil {
		t.Fatal("expected error for missing entry field")
	}
}

func TestFindProjectRootWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "solidforge.yaml"), []byte("name: demo\nentry: main.sf\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	found, err := project.FindProjectRoot()
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if found != root {
		t.Errorf("FindProjectRoot = %q, want %q", found, root)
	}
}
