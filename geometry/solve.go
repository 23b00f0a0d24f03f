package geometry

import (
	"context"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
	"github.com/jsavage/depict-layout/layout"
	"github.com/jsavage/depict-layout/solve"
)

// Solve runs the geometry stage end to end: it builds the geometry
// problem over pl and shr, packs it into CSC matrices, calls the QP
// solver, and unpacks the result into a LayoutSolution plus the
// per-rank top-y offsets. Solve is the one function in this package
// that accepts a context.Context, threading context only through the
// orchestration boundary that actually blocks (here, the single QP
// solve).
func Solve(ctx context.Context, pl *layout.Placement, shr layout.SolvedLocs, widths WidthProvider, labelCounts map[[2]string]int, opts Options) (LayoutSolution, *LayoutProblem, error) {
	prob, lp, err := BuildProblem(pl, shr, widths, opts)
	if err != nil {
		return LayoutSolution{}, nil, err
	}

	a, l, u := prob.AsCSCMatrix()
	p := prob.AsDiagCSCMatrix()
	q := prob.LinearVector()

	settings := solve.Settings{
		EpsAbs:      opts.QPEpsAbs,
		EpsRel:      opts.QPEpsRel,
		MaxIter:     opts.QPMaxIter,
		AdaptiveRho: false,
		Verbose:     true,
	}
	if settings.EpsAbs == 0 {
		settings.EpsAbs = 0.1
	}
	if settings.EpsRel == 0 {
		settings.EpsRel = 0.1
	}
	if settings.MaxIter == 0 {
		settings.MaxIter = 400
	}

	res, err := solve.SolveQP(ctx, p, a, q, l, u, settings)
	if err != nil {
		return LayoutSolution{}, nil, errs.Wrap(errs.ErrSolver, "geometry.Solve", err)
	}
	if !res.Status.Acceptable() {
		return LayoutSolution{}, nil, errs.Wrap(errs.ErrSolver, "geometry.Solve: status "+res.Status.String(), nil)
	}

	sol := LayoutSolution{
		Ls: make([]float64, len(lp.RankOHRs)),
		Rs: make([]float64, len(lp.RankOHRs)),
		Ss: make([]float64, len(lp.Hops)),
		Ts: RowTops(pl, labelCounts, 0, 0),
	}
	for id := range lp.RankOHRs {
		n := index.LocSol(id)
		sol.Ls[n] = res.X[prob.Var(lVar(n))]
		sol.Rs[n] = res.X[prob.Var(rVar(n))]
	}
	for id := range lp.Hops {
		hs := index.HopSol(id)
		sol.Ss[hs] = res.X[prob.Var(sVar(hs))]
	}

	return sol, lp, nil
}
