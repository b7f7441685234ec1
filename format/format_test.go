package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/format"
)

func TestSourceIsIdempotent(t *testing.T) {
	src := "difference {\n  cube\n  sphere {\n    size 1.2\n  }\n}\n"
	once, err := format.Source(src)
	require.NoError(t, err)
	twice, err := format.Source(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestSourcePreservesOperatorGrouping(t *testing.T) {
	out, err := format.Source("define x (1 + 2) * 3")
	require.NoError(t, err)
	require.Equal(t, "define x (1 + 2) * 3\n", out)
}

func TestSourceRendersControlFlow(t *testing.T) {
	out, err := format.Source("for i in 0 to 3 step 1 {\n  cube\n}")
	require.NoError(t, err)
	require.Equal(t, "for i in 0 to 3 step 1 {\n  cube\n}\n", out)
}
