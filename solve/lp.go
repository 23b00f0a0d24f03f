package solve

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// TrySimplexRelaxation solves a pure-LP relaxation (no quadratic
// objective) with gonum's simplex solver instead of the ADMM QP path.
// It reports ok=false for row shapes it cannot express as simplex
// standard form without a doubly-bounded slack column — none of the
// crossing minimizer's rows need that: every row here is an equality
// (antisymmetry), a one-sided inequality (transitivity, the covering
// inequalities), or a single-variable 0/1 bound. The last of those is
// doubly bounded (0 ≤ x ≤ 1) but simplex's own implicit x ≥ 0 already
// covers the lower half, so it only needs a one-sided x ≤ 1 slack too.
func TrySimplexRelaxation(a CSC, q, l, u []float64) (x []float64, obj float64, ok bool) {
	n := a.NCols
	nrows := a.NRows

	rowTerms := make([]int, nrows)
	rowCoef := make([]float64, nrows) // valid only where rowTerms[i] == 1
	for c := 0; c < n; c++ {
		for k := a.Indptr[c]; k < a.Indptr[c+1]; k++ {
			r := a.Indices[k]
			rowTerms[r]++
			rowCoef[r] = a.Data[k]
		}
	}

	type slackRow struct {
		row   int
		coef  float64
		eqVal float64
	}
	var oneSided []slackRow
	b := make([]float64, nrows)

	for i := 0; i < nrows; i++ {
		switch {
		case l[i] == u[i]:
			b[i] = l[i]
		case math.IsInf(u[i], 1) && !math.IsInf(l[i], -1):
			oneSided = append(oneSided, slackRow{row: i, coef: -1, eqVal: l[i]})
		case math.IsInf(l[i], -1) && !math.IsInf(u[i], 1):
			oneSided = append(oneSided, slackRow{row: i, coef: 1, eqVal: u[i]})
		case l[i] == 0 && !math.IsInf(u[i], 1) && rowTerms[i] == 1 && rowCoef[i] > 0:
			oneSided = append(oneSided, slackRow{row: i, coef: 1, eqVal: u[i]})
		default:
			return nil, 0, false
		}
	}

	ncols := n + len(oneSided)
	A := mat.NewDense(nrows, ncols, nil)
	for c := 0; c < n; c++ {
		for k := a.Indptr[c]; k < a.Indptr[c+1]; k++ {
			A.Set(a.Indices[k], c, a.Data[k])
		}
	}
	slackCol := n
	for _, sr := range oneSided {
		A.Set(sr.row, slackCol, sr.coef)
		b[sr.row] = sr.eqVal
		slackCol++
	}

	c := make([]float64, ncols)
	copy(c, q)

	optF, resX, err := lp.Simplex(c, A, b, 1e-10, nil)
	if err != nil {
		return nil, 0, false
	}
	return resX[:n], optF, true
}
