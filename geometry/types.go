package geometry

import "github.com/jsavage/depict-layout/index"

// Options bundles the geometry stage's tunables: the separation
// constant, default hop half-widths, the symmetry penalty weight, and
// the QP settings profile.
type Options struct {
	Sep       float64
	HopWidth  [2]float64
	SymWeight float64
	QPEpsAbs  float64
	QPEpsRel  float64
	QPMaxIter int
}

// DefaultOptions is the default tuning profile: sep=20,
// default_hop_width=(20,20), symmetry weight=100, and the QP
// tuning (ε_abs=ε_rel=0.1, max_iter=400, adaptive-rho disabled).
func DefaultOptions() Options {
	return Options{
		Sep:       DefaultSep,
		HopWidth:  DefaultHopWidth,
		SymWeight: DefaultSymWeight,
		QPEpsAbs:  0.1,
		QPEpsRel:  0.1,
		QPMaxIter: 400,
	}
}

// LayoutProblem is the dense-identifier bookkeeping for the geometry
// stage: LocSol/HopSol ids, their reverse maps back to (VRank,OHR) and
// Hop, and the width tables the geometry constraints consume.
type LayoutProblem struct {
	LocOf    map[index.RankOHR]index.LocSol
	RankOHRs []index.RankOHR // indexed by LocSol
	HopOf    map[index.Hop]index.HopSol
	Hops     []index.Hop // indexed by HopSol

	WidthByLoc map[index.LocSol]float64
	WidthByHop map[index.HopSol][2]float64 // (action, percept)

	RootLoc index.LocSol
}

// LayoutSolution is the outbound geometry: four dense arrays keyed by
// LocSol (left x), LocSol (right x), HopSol (centerline x), and VRank
// (top y).
type LayoutSolution struct {
	Ls []float64 // indexed by LocSol
	Rs []float64 // indexed by LocSol
	Ss []float64 // indexed by HopSol
	Ts map[index.VRank]float64
}

func (s LayoutSolution) L(n index.LocSol) float64 { return s.Ls[n] }
func (s LayoutSolution) R(n index.LocSol) float64 { return s.Rs[n] }
func (s LayoutSolution) S(n index.HopSol) float64 { return s.Ss[n] }
