package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/eval"
	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/scene"
	"github.com/solidforge/solidforge/vecmath"
)

type captureDelegate struct {
	eval.NopDelegate
	logged [][]string
}

func (d *captureDelegate) DebugLog(values []string) { d.logged = append(d.logged, values) }

func run(t *testing.T, src string, delegate eval.Delegate) []*scene.Geometry {
	t.Helper()
	toks, lexErr := lexer.New(src).Tokenize()
	require.Nil(t, lexErr)
	stmts, parseErr := parser.New(toks).ParseProgram()
	require.Nil(t, parseErr)
	e := eval.New(delegate)
	nodes, runErr := e.EvalProgram(stmts, 1)
	require.Nil(t, runErr)
	return nodes
}

func TestEvalCubeProducesCappedBox(t *testing.T) {
	nodes := run(t, "cube {\n  size 2\n}", nil)
	require.Len(t, nodes, 1)
	m, err := nodes[0].Mesh(nil)
	require.NoError(t, err)
	require.True(t, m.IsWatertight())
	b := m.Bounds()
	require.InDelta(t, 1, b.Max.X, 1e-6)
	require.InDelta(t, -1, b.Min.X, 1e-6)
}

func TestEvalDifferenceOfCubeAndSphere(t *testing.T) {
	nodes := run(t, "difference {\n  cube\n  sphere {\n    size 1.2\n  }\n}", nil)
	require.Len(t, nodes, 1)
	m, err := nodes[0].Mesh(nil)
	require.NoError(t, err)
	repaired := m.Repair()
	require.True(t, repaired.IsWatertight())
	require.False(t, repaired.ContainsPoint(vecmath.Vector{}))
	require.True(t, repaired.ContainsPoint(vecmath.Vector{X: 0.45, Y: 0.45, Z: 0.45}))
}

func TestEvalDefineAndPrint(t *testing.T) {
	d := &captureDelegate{}
	run(t, "define x 2 + 3\nprint x", d)
	require.Len(t, d.logged, 1)
	require.Equal(t, []string{"5"}, d.logged[0])
}

func TestEvalForLoopAccumulatesGroupChildren(t *testing.T) {
	nodes := run(t, "group {\n  for i in 0 to 2 {\n    cube\n  }\n}", nil)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 3)
}

func TestEvalAssertFailureIsRuntimeError(t *testing.T) {
	toks, lexErr := lexer.New("assert 1 = 2").Tokenize()
	require.Nil(t, lexErr)
	stmts, parseErr := parser.New(toks).ParseProgram()
	require.Nil(t, parseErr)
	e := eval.New(nil)
	_, err := e.EvalProgram(stmts, 1)
	require.Error(t, err)
}

func TestEvalColorCommandSetsMaterial(t *testing.T) {
	nodes := run(t, "cube {\n  color #ff0000\n}", nil)
	require.Len(t, nodes, 1)
	require.InDelta(t, 1, nodes[0].Material.Color.R, 1e-6)
}

func TestEvalMeshBlockAssemblesPolygonChildren(t *testing.T) {
	nodes := run(t, "mesh {\n  polygon (0 0 0) (1 0 0) (0 1 0)\n}", nil)
	require.Len(t, nodes, 1)
	m, err := nodes[0].Mesh(nil)
	require.NoError(t, err)
	require.Len(t, m.Polygons(), 1)
	require.Len(t, m.Polygons()[0].Vertices, 3)
}
