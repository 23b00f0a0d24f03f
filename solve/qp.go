package solve

import (
	"context"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jsavage/depict-layout/errs"
)

// Settings mirrors the OSQP settings profile this pipeline depends on:
// the crossing minimizer's LP relaxation and the geometry QP both call
// SolveQP with the same tuning knobs.
type Settings struct {
	AdaptiveRho bool
	EpsAbs      float64
	EpsRel      float64
	MaxIter     int
	Verbose     bool

	// Rho and Sigma are ADMM step-size parameters; zero selects the
	// defaults from DefaultSettings.
	Rho   float64
	Sigma float64
}

// DefaultSettings is the profile named in the geometry solver glue:
// loose tolerances and a bounded iteration count, since the ILP driver
// re-verifies integer feasibility independently of the relaxation's
// own convergence.
func DefaultSettings() Settings {
	return Settings{EpsAbs: 0.1, EpsRel: 0.1, MaxIter: 400, Rho: 1.0, Sigma: 1e-6}
}

// Status mirrors the OSQP/MINION status vocabulary.
type Status int

const (
	StatusUnsolved Status = iota
	StatusSolved
	StatusSolvedInaccurate
	StatusMaxIterationsReached
	StatusTimeLimitReached
	StatusPrimalInfeasible
	StatusDualInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusSolvedInaccurate:
		return "solved inaccurate"
	case StatusMaxIterationsReached:
		return "max iterations reached"
	case StatusTimeLimitReached:
		return "time limit reached"
	case StatusPrimalInfeasible:
		return "primal infeasible"
	case StatusDualInfeasible:
		return "dual infeasible"
	default:
		return "unsolved"
	}
}

// Acceptable reports whether the status carries a usable x*: Solved,
// SolvedInaccurate, MaxIterationsReached, and TimeLimitReached all do;
// the infeasible/unsolved statuses don't.
func (s Status) Acceptable() bool {
	switch s {
	case StatusSolved, StatusSolvedInaccurate, StatusMaxIterationsReached, StatusTimeLimitReached:
		return true
	}
	return false
}

// Result is the outcome of a single SolveQP call.
type Result struct {
	Status Status
	X      []float64
	Obj    float64
	Iter   int
}

func denseFromCSC(m CSC) *mat.Dense {
	d := mat.NewDense(m.NRows, m.NCols, nil)
	for c := 0; c < m.NCols; c++ {
		for k := m.Indptr[c]; k < m.Indptr[c+1]; k++ {
			d.Set(m.Indices[k], c, m.Data[k])
		}
	}
	return d
}

// SolveQP finds x minimizing 1/2 x'Px + q'x subject to l ≤ Ax ≤ u.
//
// This is an OSQP-style ADMM iteration, not OSQP itself: no pure-Go QP
// solver with OSQP's constraint contract exists in the examined
// ecosystem, so this reproduces the same {P,q,A,l,u}/Settings/Status
// shape while solving the per-iteration KKT system densely via
// gonum/mat. Problem sizes in this pipeline (one Loc/Hop variable per
// node or hop in a diagram) stay small enough that a dense factorization
// per solve is not a bottleneck.
func SolveQP(ctx context.Context, p, a CSC, q, l, u []float64, settings Settings) (Result, error) {
	n := p.NCols
	m := a.NRows
	if a.NCols != n {
		return Result{}, errs.Scopef(errs.ErrSolverSetup, "SolveQP: A has %d cols, P has %d", a.NCols, n)
	}
	if len(q) != n {
		return Result{}, errs.Scopef(errs.ErrSolverSetup, "SolveQP: q has %d entries, want %d", len(q), n)
	}
	if len(l) != m || len(u) != m {
		return Result{}, errs.Scopef(errs.ErrSolverSetup, "SolveQP: l/u have %d/%d entries, want %d", len(l), len(u), m)
	}
	if settings.MaxIter <= 0 {
		settings.MaxIter = 400
	}
	rho := settings.Rho
	if rho <= 0 {
		rho = 1.0
	}
	sigma := settings.Sigma
	if sigma <= 0 {
		sigma = 1e-6
	}

	P := denseFromCSC(p)
	A := denseFromCSC(a)
	qv := mat.NewVecDense(n, append([]float64(nil), q...))

	x := mat.NewVecDense(n, nil)
	z := mat.NewVecDense(m, nil)
	y := mat.NewVecDense(m, nil)

	factorize := func() *mat.LU {
		var AtA mat.Dense
		AtA.Mul(A.T(), A)

		kkt := mat.NewDense(n, n, nil)
		kkt.Copy(P)
		for i := 0; i < n; i++ {
			kkt.Set(i, i, kkt.At(i, i)+sigma)
		}
		var scaledAtA mat.Dense
		scaledAtA.Scale(rho, &AtA)
		kkt.Add(kkt, &scaledAtA)

		var lu mat.LU
		lu.Factorize(kkt)
		return &lu
	}
	lu := factorize()

	status := StatusMaxIterationsReached
	iter := 0
	for ; iter < settings.MaxIter; iter++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		rhozy := mat.NewVecDense(m, nil)
		rhozy.ScaleVec(rho, z)
		rhozy.SubVec(rhozy, y)
		var atRhozy mat.VecDense
		atRhozy.MulVec(A.T(), rhozy)

		rhs := mat.NewVecDense(n, nil)
		rhs.ScaleVec(sigma, x)
		rhs.SubVec(rhs, qv)
		rhs.AddVec(rhs, &atRhozy)

		var xTilde mat.VecDense
		if err := lu.SolveVecTo(&xTilde, false, rhs); err != nil {
			return Result{}, fmt.Errorf("depict-layout: solve: kkt solve: %w", err)
		}

		var zTilde mat.VecDense
		zTilde.MulVec(A, &xTilde)

		zNew := mat.NewVecDense(m, nil)
		for i := 0; i < m; i++ {
			v := zTilde.AtVec(i) + y.AtVec(i)/rho
			zNew.SetVec(i, clip(v, l[i], u[i]))
		}

		rPrim := mat.NewVecDense(m, nil)
		rPrim.SubVec(&zTilde, zNew)
		rDual := mat.NewVecDense(n, nil)
		rDual.SubVec(&xTilde, x)

		yNew := mat.NewVecDense(m, nil)
		yNew.SubVec(&zTilde, zNew)
		yNew.ScaleVec(rho, yNew)
		yNew.AddVec(yNew, y)

		x, z, y = &xTilde, zNew, yNew

		pn := mat.Norm(rPrim, math.Inf(1))
		dn := mat.Norm(rDual, math.Inf(1))
		if settings.Verbose && iter%20 == 0 {
			log.Printf("solve: iter=%d primal_residual=%.4g dual_residual=%.4g", iter, pn, dn)
		}
		if pn <= settings.EpsAbs && dn <= settings.EpsAbs {
			status = StatusSolved
			iter++
			break
		}
	}

	xOut := make([]float64, n)
	for i := range xOut {
		xOut[i] = x.AtVec(i)
	}

	var px mat.VecDense
	px.MulVec(P, x)
	obj := 0.5*mat.Dot(x, &px) + mat.Dot(x, qv)

	return Result{Status: status, X: xOut, Obj: obj, Iter: iter}, nil
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
