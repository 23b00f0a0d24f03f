package solve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict-layout/errs"
)

// Minimizing (x-3)^2 = x^2 - 6x + 9 over a wide-open bound must converge
// to x=3, the unconstrained optimum, since it sits well inside the
// bound interval.
func TestSolveQPConvergesToUnconstrainedMinimum(t *testing.T) {
	prob := NewProblem[string]()
	prob.Bound("x", -100, 100)
	prob.Quad = append(prob.Quad, QuadTerm{Var: prob.Var("x"), Coef: 2})
	prob.AddObjective("x", -6)

	a, l, u := prob.AsCSCMatrix()
	p := prob.AsDiagCSCMatrix()
	q := prob.LinearVector()

	res, err := SolveQP(context.Background(), p, a, q, l, u, DefaultSettings())
	require.NoError(t, err)
	require.True(t, res.Status.Acceptable())
	require.InDelta(t, 3.0, res.X[0], 0.2)
}

// A tight bound that excludes the unconstrained optimum must clamp the
// solution to the nearest feasible point.
func TestSolveQPClampsToBound(t *testing.T) {
	prob := NewProblem[string]()
	prob.Bound("x", 0, 1)
	prob.Quad = append(prob.Quad, QuadTerm{Var: prob.Var("x"), Coef: 2})
	prob.AddObjective("x", -6) // unconstrained optimum at x=3, outside [0,1]

	a, l, u := prob.AsCSCMatrix()
	p := prob.AsDiagCSCMatrix()
	q := prob.LinearVector()

	res, err := SolveQP(context.Background(), p, a, q, l, u, DefaultSettings())
	require.NoError(t, err)
	require.True(t, res.Status.Acceptable())
	require.InDelta(t, 1.0, res.X[0], 0.2)
}

func TestSolveQPRejectsMismatchedDimensions(t *testing.T) {
	p := CSC{NRows: 1, NCols: 1, Indptr: []int{0, 1}, Indices: []int{0}, Data: []float64{2}}
	a := CSC{NRows: 1, NCols: 2, Indptr: []int{0, 1, 1}, Indices: []int{0}, Data: []float64{1}}

	_, err := SolveQP(context.Background(), p, a, []float64{-6}, []float64{0}, []float64{1}, DefaultSettings())
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrSolverSetup))
}

func TestStatusAcceptable(t *testing.T) {
	require.True(t, StatusSolved.Acceptable())
	require.True(t, StatusSolvedInaccurate.Acceptable())
	require.True(t, StatusMaxIterationsReached.Acceptable())
	require.True(t, StatusTimeLimitReached.Acceptable())
	require.False(t, StatusPrimalInfeasible.Acceptable())
	require.False(t, StatusDualInfeasible.Acceptable())
	require.False(t, StatusUnsolved.Acceptable())
}
