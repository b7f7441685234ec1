package persist_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/builder"
	"github.com/solidforge/solidforge/persist"
	"github.com/solidforge/solidforge/vecmath"
)

func TestWriteReadRoundTrip(t *testing.T) {
	m := builder.Cube(vecmath.Vector{X: 2, Y: 2, Z: 2}, &vecmath.DefaultMaterial)

	var buf bytes.Buffer
	fm := &persist.FrontMatter{Generator: "solidforge-test", SourceHash: "abc123", Created: "2026-07-30"}
	require.NoError(t, persist.Write(&buf, m, fm))

	got, gotFM, err := persist.Read(&buf)
	require.NoError(t, err)
	require.NotNil(t, gotFM)
	require.Equal(t, "solidforge-test", gotFM.Generator)
	require.Equal(t, "abc123", gotFM.SourceHash)

	require.Len(t, got.Polygons(), len(m.Polygons()))
	require.True(t, got.Bounds().Max.Equals(m.Bounds().Max))
}

func TestReadWithoutFrontMatter(t *testing.T) {
	m := builder.Cube(vecmath.Vector{X: 1, Y: 1, Z: 1}, &vecmath.DefaultMaterial)

	var buf bytes.Buffer
	require.NoError(t, persist.Write(&buf, m, nil))

	got, gotFM, err := persist.Read(&buf)
	require.NoError(t, err)
	require.Nil(t, gotFM)
	require.Len(t, got.Polygons(), len(m.Polygons()))
}
