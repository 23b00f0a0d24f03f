package layout

import (
	"context"
	"math"
	"sort"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
	"github.com/jsavage/depict-layout/solve"
)

// crossingVar is the single variable-key type backing both the
// ordering booleans x[rank,a,b] and the crossing indicators
// c[rank,u1,v1,u2,v2]; the constraint algebra's Vars registry needs one
// comparable key type, so the two families are distinguished by kind.
type crossingVar struct {
	kind       byte
	rank       index.VRank
	a, b, c, d index.OHR
}

func xVar(rank index.VRank, a, b index.OHR) crossingVar {
	return crossingVar{kind: 'x', rank: rank, a: a, b: b}
}

func cVar(rank index.VRank, u1, v1, u2, v2 index.OHR) crossingVar {
	return crossingVar{kind: 'c', rank: rank, a: u1, b: v1, c: u2, d: v2}
}

// SolvedLocs maps each rank's OHR to its post-crossing-minimization SHR.
type SolvedLocs map[index.VRank]map[index.OHR]index.SHR

// CrossingResult is the outcome of MinimizeCrossings.
type CrossingResult struct {
	Count int
	SHR   SolvedLocs
}

// MinimizeCrossings runs MinimizeCrossingsWithOptions with DefaultOptions.
func MinimizeCrossings(ctx context.Context, pl *Placement) (CrossingResult, error) {
	return MinimizeCrossingsWithOptions(ctx, pl, DefaultOptions())
}

// MinimizeCrossingsWithOptions encodes the Sankey ILP over per-rank
// ordering booleans and per-hop-pair crossing indicators, solves it
// with the ILP driver, and recovers SHR by row-sum on the solved x
// matrix — except for the two fast paths below, taken without ever
// building a problem.
func MinimizeCrossingsWithOptions(ctx context.Context, pl *Placement, opts Options) (CrossingResult, error) {
	if len(pl.HopsByLevel) == 0 {
		return CrossingResult{Count: 0, SHR: SolvedLocs{}}, nil
	}

	atMostOnePerRank := true
	for _, hops := range pl.HopsByLevel {
		if len(hops) > 1 {
			atMostOnePerRank = false
			break
		}
	}
	if atMostOnePerRank {
		return CrossingResult{Count: 0, SHR: identitySHR(pl)}, nil
	}

	prob := solve.NewProblem[crossingVar]()

	for rank, ohrs := range pl.LocsByLevel {
		n := len(ohrs)
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				prob.Bound(xVar(rank, index.OHR(a), index.OHR(b)), 0, 1)
			}
		}
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				prob.Eqc(map[crossingVar]float64{
					xVar(rank, index.OHR(a), index.OHR(b)): 1,
					xVar(rank, index.OHR(b), index.OHR(a)): 1,
				}, 1)
			}
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				for c := 0; c < n; c++ {
					if c == a || c == b {
						continue
					}
					// -1 <= -x[c,b] - x[b,a] + x[c,a]
					prob.Row(-1, map[crossingVar]float64{
						xVar(rank, index.OHR(c), index.OHR(a)): 1,
						xVar(rank, index.OHR(c), index.OHR(b)): -1,
						xVar(rank, index.OHR(b), index.OHR(a)): -1,
					}, math.Inf(1))
				}
			}
		}
	}

	for rank, hops := range pl.HopsByLevel {
		nextRank := rank + 1
		for i := 0; i < len(hops); i++ {
			for j := i + 1; j < len(hops); j++ {
				h1, h2 := hops[i], hops[j]
				// Hops sharing exactly one endpoint are skipped rather
				// than deduplicated: u1 != u2 && v1 != v2 is required.
				if h1.Upper == h2.Upper || h1.Lower == h2.Lower {
					continue
				}

				u1, v1 := h1.Upper, h1.Lower
				u2, v2 := h2.Upper, h2.Lower
				cv := cVar(rank, u1, v1, u2, v2)
				prob.Bound(cv, 0, 1)
				prob.AddObjective(cv, 1)

				prob.Row(1, map[crossingVar]float64{
					cv: 1,
					xVar(rank, u2, u1):     1,
					xVar(nextRank, v1, v2): 1,
				}, math.Inf(1))
				prob.Row(1, map[crossingVar]float64{
					cv: 1,
					xVar(rank, u1, u2):     1,
					xVar(nextRank, v2, v1): 1,
				}, math.Inf(1))
			}
		}
	}

	a, l, u := prob.AsCSCMatrix()
	q := prob.LinearVector()

	driver := &solve.ILPDriver{
		P:         prob.AsDiagCSCMatrix(),
		A:         a,
		Q:         q,
		L:         l,
		U:         u,
		Settings:  opts.QPSettings,
		EpsAbs:    opts.ILPEpsAbs,
		EpsInfeas: opts.ILPEpsInfeas,
		Rand:      opts.Rand,
	}

	outcome, err := driver.Run(ctx)
	if err != nil {
		return CrossingResult{}, errs.Wrap(errs.ErrSolver, "MinimizeCrossings", err)
	}

	shr := SolvedLocs{}
	for rank, ohrs := range pl.LocsByLevel {
		n := len(ohrs)
		rowSum := make([]int, n)
		for aIdx := 0; aIdx < n; aIdx++ {
			sum := 0
			for bIdx := 0; bIdx < n; bIdx++ {
				if aIdx == bIdx {
					continue
				}
				col := prob.Vars.Index(xVar(rank, index.OHR(aIdx), index.OHR(bIdx)))
				if outcome.X[col] > 0.5 {
					sum++
				}
			}
			rowSum[aIdx] = sum
		}

		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return rowSum[order[i]] < rowSum[order[j]] })

		m := make(map[index.OHR]index.SHR, n)
		for shrVal, ohr := range order {
			m[index.OHR(ohr)] = index.SHR(shrVal)
		}
		shr[rank] = m
	}

	return CrossingResult{Count: int(math.Round(outcome.Obj)), SHR: shr}, nil
}

func identitySHR(pl *Placement) SolvedLocs {
	out := make(SolvedLocs, len(pl.LocsByLevel))
	for rank, ohrs := range pl.LocsByLevel {
		m := make(map[index.OHR]index.SHR, len(ohrs))
		for _, o := range ohrs {
			m[o] = index.SHR(int(o))
		}
		out[rank] = m
	}
	return out
}
