package buildcache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/buildcache"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDigestFollowsImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shape.sf", "cube { size 1 }")
	entry := writeFile(t, dir, "main.sf", "import \"shape.sf\"\ncube")

	d1, err := buildcache.Digest(entry)
	require.NoError(t, err)

	writeFile(t, dir, "shape.sf", "cube { size 2 }")
	d2, err := buildcache.Digest(entry)
	require.NoError(t, err)

	require.NotEqual(t, d1, d2)
}

func TestNeedsRebuild(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mesh.json")

	needs, err := buildcache.NeedsRebuild(out, "abc")
	require.NoError(t, err)
	require.True(t, needs)

	require.NoError(t, os.WriteFile(out, []byte("{}"), 0644))
	require.NoError(t, buildcache.Save(out, "abc"))

	needs, err = buildcache.NeedsRebuild(out, "abc")
	require.NoError(t, err)
	require.False(t, needs)

	needs, err = buildcache.NeedsRebuild(out, "xyz")
	require.NoError(t, err)
	require.True(t, needs)
}
