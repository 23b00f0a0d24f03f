package solve

import (
	"context"
	"errors"
	"math"
	"math/rand"
)

// ILPStatus is a single branch-and-bound node's outcome classification.
type ILPStatus int

const (
	ILPSolved ILPStatus = iota
	ILPNotAsGood
	ILPNotIntegral
	ILPIntegerInfeasible
)

// ILPOutcome reports a single branch-and-bound node's result. Var is
// populated for ILPNotIntegral, Row for ILPIntegerInfeasible.
type ILPOutcome struct {
	Status ILPStatus
	Obj    float64
	X      []float64
	Var    int
	Row    int
}

// ErrILPInfeasible is returned when the branch-and-bound queue empties
// without ever finding an integral, feasible solution.
var ErrILPInfeasible = errors.New("depict-layout: solve: no integral solution found")

// ILPDriver runs branch-and-bound over the continuous
// relaxation of an ILP instance. Branches are represented as extra
// fixing rows appended to the base problem rather than by mutating it,
// so every node re-solves the same base (P,A,q) with a few more bound
// rows layered on top.
type ILPDriver struct {
	P CSC // diagonal quadratic objective; zero-entry CSC for a pure LP relaxation
	A CSC
	Q []float64
	L []float64
	U []float64

	Settings Settings

	// EpsAbs is the integrality tolerance (default 0.1 if zero).
	EpsAbs float64
	// EpsInfeas is the rounded-feasibility tolerance (default 0.1 if zero).
	EpsInfeas float64

	// Rand, if non-nil, picks the next queue entry at random instead of
	// LIFO order; nil selects deterministic LIFO (depth-first) order with
	// no ordering by relaxation bound, which this repo uses by default
	// since the known lower bound (0
	// crossings) is reached quickly for every scenario this pipeline
	// produces.
	Rand *rand.Rand
}

type ilpInstance struct {
	extraBounds []Row
}

// Run executes the branch-and-bound search and returns the best
// integral solution found, or ErrILPInfeasible if none exists.
func (d *ILPDriver) Run(ctx context.Context) (ILPOutcome, error) {
	globalBest := math.Inf(1)
	var bestX []float64

	queue := []ilpInstance{{}}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return ILPOutcome{}, ctx.Err()
		default:
		}

		if d.Rand != nil {
			i := d.Rand.Intn(len(queue))
			queue[i], queue[len(queue)-1] = queue[len(queue)-1], queue[i]
		}
		inst := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		outcome, ok, err := d.solveNode(ctx, inst, globalBest)
		if err != nil {
			return ILPOutcome{}, err
		}
		if !ok {
			continue
		}

		switch outcome.Status {
		case ILPNotAsGood, ILPIntegerInfeasible:
			continue
		case ILPNotIntegral:
			v := outcome.Var
			zero := ilpInstance{extraBounds: append(append([]Row{}, inst.extraBounds...), Row{L: 0, U: 0, Terms: []Term{{v, 1}}})}
			one := ilpInstance{extraBounds: append(append([]Row{}, inst.extraBounds...), Row{L: 1, U: 1, Terms: []Term{{v, 1}}})}
			queue = append(queue, zero, one)
		case ILPSolved:
			if outcome.Obj < globalBest {
				globalBest = outcome.Obj
				bestX = outcome.X
			}
		}

		if globalBest == 0 {
			break
		}
	}

	if bestX == nil {
		return ILPOutcome{}, ErrILPInfeasible
	}
	return ILPOutcome{Status: ILPSolved, Obj: globalBest, X: bestX}, nil
}

// solveNode solves a single branch-and-bound queue entry's relaxation
// and classifies the result; when it is fractional, the returned Var is
// the variable Run branches on. The bool return is false when the relaxation's
// own status is fatal
// (neither acceptable nor a branchable outcome), signaling the caller
// to silently drop the node.
func (d *ILPDriver) solveNode(ctx context.Context, inst ilpInstance, globalBest float64) (ILPOutcome, bool, error) {
	a, l, u := appendRows(d.A, d.L, d.U, inst.extraBounds)

	epsAbs := d.EpsAbs
	if epsAbs == 0 {
		epsAbs = 0.1
	}
	epsInfeas := d.EpsInfeas
	if epsInfeas == 0 {
		epsInfeas = 0.1
	}

	var res Result
	if len(d.P.Data) == 0 {
		if x, obj, ok := TrySimplexRelaxation(a, d.Q, l, u); ok {
			res = Result{Status: StatusSolved, X: x, Obj: obj}
		}
	}
	if res.X == nil {
		var err error
		res, err = SolveQP(ctx, d.P, a, d.Q, l, u, d.Settings)
		if err != nil {
			return ILPOutcome{}, false, err
		}
	}
	if !res.Status.Acceptable() {
		return ILPOutcome{}, false, nil
	}

	if res.Obj >= globalBest {
		return ILPOutcome{Status: ILPNotAsGood}, true, nil
	}

	for v, xv := range res.X {
		if math.Abs(xv-math.Round(xv)) > epsAbs {
			return ILPOutcome{Status: ILPNotIntegral, Var: v}, true, nil
		}
	}

	rounded := make([]float64, len(res.X))
	for i, xv := range res.X {
		rounded[i] = math.Round(xv)
	}

	rowSums := make([]float64, a.NRows)
	for c := 0; c < a.NCols; c++ {
		for k := a.Indptr[c]; k < a.Indptr[c+1]; k++ {
			rowSums[a.Indices[k]] += a.Data[k] * rounded[c]
		}
	}
	for ri := 0; ri < a.NRows; ri++ {
		if rowSums[ri] < l[ri]-epsInfeas || rowSums[ri] > u[ri]+epsInfeas {
			return ILPOutcome{Status: ILPIntegerInfeasible, Row: ri}, true, nil
		}
	}

	obj := 0.0
	for i, c := range d.Q {
		obj += c * rounded[i]
	}
	for c := 0; c < d.P.NCols; c++ {
		for k := d.P.Indptr[c]; k < d.P.Indptr[c+1]; k++ {
			if d.P.Indices[k] == c {
				obj += 0.5 * d.P.Data[k] * rounded[c] * rounded[c]
			}
		}
	}

	return ILPOutcome{Status: ILPSolved, Obj: obj, X: rounded}, true, nil
}

// appendRows layers extra single/few-term fixing rows (from branch
// bounds) on top of a base CSC constraint matrix without mutating it.
func appendRows(a CSC, l, u []float64, extra []Row) (CSC, []float64, []float64) {
	if len(extra) == 0 {
		return a, l, u
	}

	lNew := append(append([]float64{}, l...), make([]float64, len(extra))...)
	uNew := append(append([]float64{}, u...), make([]float64, len(extra))...)

	extraByCol := make(map[int][]colEntry)
	for i, row := range extra {
		lNew[a.NRows+i] = row.L
		uNew[a.NRows+i] = row.U
		for _, t := range row.Terms {
			extraByCol[t.Var] = append(extraByCol[t.Var], colEntry{a.NRows + i, t.Coef})
		}
	}

	indptr := make([]int, a.NCols+1)
	var indices []int
	var data []float64
	for c := 0; c < a.NCols; c++ {
		for k := a.Indptr[c]; k < a.Indptr[c+1]; k++ {
			indices = append(indices, a.Indices[k])
			data = append(data, a.Data[k])
		}
		for _, e := range extraByCol[c] {
			indices = append(indices, e.row)
			data = append(data, e.val)
		}
		indptr[c+1] = len(indices)
	}

	return CSC{NRows: a.NRows + len(extra), NCols: a.NCols, Indptr: indptr, Indices: indices, Data: data}, lNew, uNew
}
