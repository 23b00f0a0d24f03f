package solve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsCSCMatrixColumnMajorLayout(t *testing.T) {
	p := NewProblem[string]()
	p.Bound("a", 0, 1)
	p.Bound("b", 0, 1)
	p.Eq(map[string]float64{"a": 1, "b": -1})

	a, l, u := p.AsCSCMatrix()

	require.Equal(t, 3, a.NRows)
	require.Equal(t, 2, a.NCols)
	require.Len(t, l, 3)
	require.Len(t, u, 3)

	// Column 0 ("a") has entries in rows 0 (bound) and 2 (eq).
	require.Equal(t, []int{0, 2, 4}, a.Indptr)
	require.Equal(t, []int{0, 2, 1, 2}, a.Indices)
}

func TestAsDiagCSCMatrixAccumulatesSameColumn(t *testing.T) {
	p := NewProblem[string]()
	p.Sym("t", "a", "b", 1.5)
	p.Quad = append(p.Quad, QuadTerm{Var: p.Var("t"), Coef: 0.5})

	diag := p.AsDiagCSCMatrix()
	tIdx := p.Var("t")
	require.Equal(t, diag.NRows, p.Vars.Len())
	require.Contains(t, diag.Indices, tIdx)

	for i, idx := range diag.Indices {
		if idx == tIdx {
			require.InDelta(t, 2.0, diag.Data[i], 1e-9)
		}
	}
}
