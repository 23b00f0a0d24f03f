package solve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeqAndGeqDirections(t *testing.T) {
	p := NewProblem[string]()
	p.Leq("a", "b") // a <= b
	p.Geq("c", "d") // c >= d

	require.Len(t, p.Rows, 2)

	row0 := p.Rows[0]
	require.Equal(t, 0.0, row0.L)
	require.True(t, math.IsInf(row0.U, 1))

	row1 := p.Rows[1]
	require.Equal(t, 0.0, row1.L)
	require.True(t, math.IsInf(row1.U, 1))
}

func TestLeqcGeqc(t *testing.T) {
	p := NewProblem[string]()
	p.Leqc("a", "b", 5) // 5 <= b - a
	p.Geqc("a", "b", 5) // 5 <= a - b

	require.Equal(t, 5.0, p.Rows[0].L)
	require.Equal(t, 5.0, p.Rows[1].L)
}

func TestEqAndEqc(t *testing.T) {
	p := NewProblem[string]()
	p.Eq(map[string]float64{"a": 1, "b": -1})
	p.Eqc(map[string]float64{"a": 1}, 3)

	require.Equal(t, 0.0, p.Rows[0].L)
	require.Equal(t, 0.0, p.Rows[0].U)
	require.Equal(t, 3.0, p.Rows[1].L)
	require.Equal(t, 3.0, p.Rows[1].U)
}

func TestBoundAndVarStability(t *testing.T) {
	p := NewProblem[string]()
	p.Bound("x", 0, 1)
	require.Equal(t, p.Var("x"), p.Var("x"))
	require.Equal(t, 0, p.Var("x"))
}

func TestSymIntroducesAuxVariableAndQuadTerm(t *testing.T) {
	p := NewProblem[string]()
	p.Sym("t", "a", "b", 2.0)

	// t - a + b = 0
	require.Len(t, p.Rows, 1)
	require.Equal(t, 0.0, p.Rows[0].L)
	require.Equal(t, 0.0, p.Rows[0].U)

	require.Len(t, p.Quad, 1)
	require.Equal(t, 2.0, p.Quad[0].Coef)
	require.Equal(t, p.Var("t"), p.Quad[0].Var)
}

func TestVarsKeyIsIndexInverse(t *testing.T) {
	v := NewVars[string]()
	ia := v.Index("a")
	ib := v.Index("b")

	require.Equal(t, "a", v.Key(ia))
	require.Equal(t, "b", v.Key(ib))
	require.Equal(t, 2, v.Len())
}

func TestLinearVector(t *testing.T) {
	p := NewProblem[string]()
	p.AddObjective("a", 1)
	p.AddObjective("b", 3)
	p.AddObjective("a", 2) // accumulates

	q := p.LinearVector()
	require.Equal(t, 3.0, q[p.Var("a")])
	require.Equal(t, 3.0, q[p.Var("b")])
}
