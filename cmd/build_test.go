package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateEntryBuildsCube(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.sf")
	require.NoError(t, os.WriteFile(entry, []byte("cube {\n  size 2\n}\n"), 0644))

	m, err := evaluateEntry(entry, 1)
	require.NoError(t, err)
	require.True(t, m.IsWatertight())
}

func TestEvaluateEntryFollowsImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shape.sf"), []byte("cube { size 1 }"), 0644))
	entry := filepath.Join(dir, "main.sf")
	require.NoError(t, os.WriteFile(entry, []byte("import \"shape.sf\"\n"), 0644))

	m, err := evaluateEntry(entry, 1)
	require.NoError(t, err)
	require.NotEmpty(t, m.Polygons())
}
