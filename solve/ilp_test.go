package solve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Minimizing x^2 - x, i.e. (x-0.5)^2 without its 0.25 constant, over
// integer x in {0,1} has two equally good optima (x=0 and x=1, both
// giving 0); the relaxation's fractional
// optimum at x=0.5 must force exactly one branching step.
func TestILPDriverBranchesOnFractionalOptimum(t *testing.T) {
	prob := NewProblem[string]()
	prob.Bound("x", 0, 1)
	prob.Quad = append(prob.Quad, QuadTerm{Var: prob.Var("x"), Coef: 2})
	prob.AddObjective("x", -1)

	a, l, u := prob.AsCSCMatrix()
	driver := &ILPDriver{
		P:        prob.AsDiagCSCMatrix(),
		A:        a,
		Q:        prob.LinearVector(),
		L:        l,
		U:        u,
		Settings: DefaultSettings(),
	}

	outcome, err := driver.Run(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 0, outcome.Obj, 1e-6)
	require.Len(t, outcome.X, 1)
	require.Contains(t, []float64{0, 1}, outcome.X[0])
}

// A variable already pinned to an integral value by its own bound never
// triggers a branch: the root relaxation is already acceptable.
func TestILPDriverNoBranchWhenAlreadyIntegral(t *testing.T) {
	prob := NewProblem[string]()
	prob.Bound("x", 1, 1)
	prob.AddObjective("x", 3)

	a, l, u := prob.AsCSCMatrix()
	driver := &ILPDriver{
		P:        prob.AsDiagCSCMatrix(),
		A:        a,
		Q:        prob.LinearVector(),
		L:        l,
		U:        u,
		Settings: DefaultSettings(),
	}

	outcome, err := driver.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0, outcome.X[0])
	require.InDelta(t, 3, outcome.Obj, 1e-6)
}
