package geometry

import (
	"math"
	"sort"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
	"github.com/jsavage/depict-layout/layout"
	"github.com/jsavage/depict-layout/solve"
)

// geomVar is the single variable-key type backing the three coordinate
// families (per-LocSol left/right, per-HopSol centerline) plus the
// symmetry trick's auxiliary variables, mirroring crossingVar's role
// in the crossing minimizer.
type geomVar struct {
	kind byte // 'L', 'R', 'S', 't'
	loc  index.LocSol
	hop  index.HopSol
}

func lVar(n index.LocSol) geomVar { return geomVar{kind: 'L', loc: n} }
func rVar(n index.LocSol) geomVar { return geomVar{kind: 'R', loc: n} }
func sVar(n index.HopSol) geomVar { return geomVar{kind: 'S', hop: n} }
func tVar(n index.HopSol) geomVar { return geomVar{kind: 't', hop: n} }

func sortedRanks(pl *layout.Placement) []index.VRank {
	ranks := make([]index.VRank, 0, len(pl.LocsByLevel))
	for r := range pl.LocsByLevel {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

// shrOrder returns rank's OHRs ordered by ascending SHR; a rank absent
// from shr (the crossing minimizer's cheapest fast path, or a
// single-location rank) falls back to raw OHR order, which is already
// the identity permutation in that case.
func shrOrder(pl *layout.Placement, shr layout.SolvedLocs, rank index.VRank) []index.OHR {
	ohrs := append([]index.OHR{}, pl.LocsByLevel[rank]...)
	m := shr[rank]
	sort.Slice(ohrs, func(i, j int) bool {
		if m == nil {
			return ohrs[i] < ohrs[j]
		}
		return m[ohrs[i]] < m[ohrs[j]]
	})
	return ohrs
}

func hopWidth(widths WidthProvider, h index.Hop, opts Options) (float64, float64) {
	if widths == nil {
		return opts.HopWidth[0], opts.HopWidth[1]
	}
	return widths.HopWidth(h)
}

// BuildProblem assigns LocSol/HopSol dense ids, computes the width
// tables, and emits the full constraint algebra problem (container
// frame, node min-width, non-overlap, hop containment, adjacent-hop
// separation, cross-rank separation, vertical-continuity symmetry, and
// non-negativity) over geomVar. The returned *LayoutProblem is the
// bookkeeping Solve unpacks its solution through; the returned
// *solve.Problem is handed to the QP solver glue.
func BuildProblem(pl *layout.Placement, shr layout.SolvedLocs, widths WidthProvider, opts Options) (*solve.Problem[geomVar], *LayoutProblem, error) {
	prob := solve.NewProblem[geomVar]()
	lp := &LayoutProblem{
		LocOf:      map[index.RankOHR]index.LocSol{},
		HopOf:      map[index.Hop]index.HopSol{},
		WidthByLoc: map[index.LocSol]float64{},
		WidthByHop: map[index.HopSol][2]float64{},
	}

	ranks := sortedRanks(pl)

	for _, r := range ranks {
		ohrs := append([]index.OHR{}, pl.LocsByLevel[r]...)
		sort.Slice(ohrs, func(i, j int) bool { return ohrs[i] < ohrs[j] })
		for _, o := range ohrs {
			ro := index.RankOHR{Rank: r, OHR: o}
			id := index.LocSol(len(lp.RankOHRs))
			lp.LocOf[ro] = id
			lp.RankOHRs = append(lp.RankOHRs, ro)
		}
	}

	rootRO := index.RankOHR{Rank: 0, OHR: 0}
	rootLoc, ok := lp.LocOf[rootRO]
	if !ok {
		return nil, nil, errs.Wrap(errs.ErrIndexing, "geometry.BuildProblem: no root loc at (0,0)", nil)
	}
	lp.RootLoc = rootLoc

	for _, r := range ranks {
		for _, h := range pl.HopsByLevel[r] {
			id := index.HopSol(len(lp.Hops))
			lp.HopOf[h] = id
			lp.Hops = append(lp.Hops, h)
		}
	}

	// Width tables (item 2, plus per-hop widths needed by items 4-7).
	for id, ro := range lp.RankOHRs {
		loc := pl.LocToNode[ro]
		n := index.LocSol(id)
		if !loc.IsNode() {
			lp.WidthByLoc[n] = 0
			continue
		}
		w := widths.NodeLabelWidth(loc.Node)
		outSum := 0.0
		for _, h := range pl.HopsByLevel[ro.Rank] {
			if h.Upper == ro.OHR {
				aw, pw := hopWidth(widths, h, opts)
				outSum += aw + pw
			}
		}
		inSum := 0.0
		if ro.Rank > 0 {
			for _, h := range pl.HopsByLevel[ro.Rank-1] {
				if h.Lower == ro.OHR && h.Terminal {
					aw, pw := hopWidth(widths, h, opts)
					inSum += aw + pw
				}
			}
		}
		if outSum > w {
			w = outSum
		}
		if inSum > w {
			w = inSum
		}
		lp.WidthByLoc[n] = w
	}
	for id, h := range lp.Hops {
		aw, pw := hopWidth(widths, h, opts)
		lp.WidthByHop[index.HopSol(id)] = [2]float64{aw, pw}
	}

	sep := opts.Sep
	if sep == 0 {
		sep = DefaultSep
	}
	symWeight := opts.SymWeight
	if symWeight == 0 {
		symWeight = DefaultSymWeight
	}

	// 1. Container frame.
	for id := range lp.RankOHRs {
		n := index.LocSol(id)
		if n == lp.RootLoc {
			continue
		}
		prob.Leq(lVar(lp.RootLoc), lVar(n))
		prob.Leq(rVar(n), rVar(lp.RootLoc))
	}
	prob.AddObjective(rVar(lp.RootLoc), 1)

	// 2. Node min-width.
	for id, ro := range lp.RankOHRs {
		if !pl.LocToNode[ro].IsNode() {
			continue
		}
		n := index.LocSol(id)
		prob.Geqc(rVar(n), lVar(n), lp.WidthByLoc[n])
	}

	// 3. Horizontal non-overlap, in SHR order.
	for _, r := range ranks {
		ordered := shrOrder(pl, shr, r)
		for i := 0; i+1 < len(ordered); i++ {
			a := lp.LocOf[index.RankOHR{Rank: r, OHR: ordered[i]}]
			b := lp.LocOf[index.RankOHR{Rank: r, OHR: ordered[i+1]}]
			prob.Geqc(lVar(b), rVar(a), sep)
		}
	}

	// 4. Hop containment within its node, and 7. hop-within-root bounds
	// (applied to every hop unconditionally as the outermost bound).
	for id, h := range lp.Hops {
		hs := index.HopSol(id)
		aw, pw := lp.WidthByHop[hs][0], lp.WidthByHop[hs][1]

		prob.Geqc(sVar(hs), lVar(lp.RootLoc), aw)
		prob.Leqc(sVar(hs), rVar(lp.RootLoc), pw)

		upperLoc := pl.LocToNode[index.RankOHR{Rank: h.Rank, OHR: h.Upper}]
		if upperLoc.IsNode() {
			nd := lp.LocOf[index.RankOHR{Rank: h.Rank, OHR: h.Upper}]
			prob.Geqc(sVar(hs), lVar(nd), sep+aw)
			prob.Leqc(sVar(hs), rVar(nd), sep+pw)
		}
	}

	// 5. Adjacent-hop separation at a node.
	for id := range lp.RankOHRs {
		ro := lp.RankOHRs[id]
		loc := pl.LocToNode[ro]
		if !loc.IsNode() {
			continue
		}
		attached := pl.HopsAtNode(loc.Node, ro.Rank)
		if len(attached) < 2 {
			continue
		}
		type withOther struct {
			h        index.Hop
			otherSHR index.SHR
		}
		ws := make([]withOther, 0, len(attached))
		for _, h := range attached {
			var otherRank index.VRank
			var otherOHR index.OHR
			if h.Rank == ro.Rank && h.Upper == ro.OHR {
				otherRank, otherOHR = h.Rank+1, h.Lower
			} else {
				otherRank, otherOHR = h.Rank, h.Upper
			}
			var osh index.SHR
			if m := shr[otherRank]; m != nil {
				osh = m[otherOHR]
			} else {
				osh = index.SHR(otherOHR)
			}
			ws = append(ws, withOther{h: h, otherSHR: osh})
		}
		sort.Slice(ws, func(i, j int) bool { return ws[i].otherSHR < ws[j].otherSHR })

		for i := 0; i+1 < len(ws); i++ {
			left, right := ws[i].h, ws[i+1].h
			lID, rID := lp.HopOf[left], lp.HopOf[right]
			_, pwL := lp.WidthByHop[lID][0], lp.WidthByHop[lID][1]
			awR := lp.WidthByHop[rID][0]
			prob.Geqc(sVar(rID), sVar(lID), sep+pwL+awR)
		}
	}

	// 6. Cross-rank separation between a hop and its SHR neighbors.
	for id, h := range lp.Hops {
		hs := index.HopSol(id)
		aw, pw := lp.WidthByHop[hs][0], lp.WidthByHop[hs][1]
		addCrossRankSeparation(prob, pl, shr, lp, hs, h.Rank, h.Upper, aw, pw, sep)
	}

	// 8. Vertical-continuity symmetry.
	for id, h := range lp.Hops {
		if h.Terminal {
			continue
		}
		succ, ok := successorHop(pl, h)
		if !ok {
			continue
		}
		succID, ok := lp.HopOf[succ]
		if !ok {
			continue
		}
		// Sym's weight is halved by the QP's 1/2 x'Px form, so pass
		// 2·symWeight to penalize symWeight·(S(n)−S(nd))².
		prob.Sym(tVar(index.HopSol(id)), sVar(index.HopSol(id)), sVar(succID), 2*symWeight)
	}

	// 9. Non-negativity.
	for id := range lp.RankOHRs {
		n := index.LocSol(id)
		prob.Bound(lVar(n), 0, math.Inf(1))
		prob.Bound(rVar(n), 0, math.Inf(1))
	}
	for id := range lp.Hops {
		prob.Bound(sVar(index.HopSol(id)), 0, math.Inf(1))
	}

	return prob, lp, nil
}

// addCrossRankSeparation keeps a hop from colliding with whatever sits
// immediately to its left/right, in SHR order, at the rank its anchor
// endpoint occupies. The anchor used here is the hop's upper endpoint,
// so the neighbors are those of (hop rank, SHR of the upper endpoint ±1).
func addCrossRankSeparation(prob *solve.Problem[geomVar], pl *layout.Placement, shr layout.SolvedLocs, lp *LayoutProblem, hs index.HopSol, rank index.VRank, ohr index.OHR, aw, pw, sep float64) {
	ordered := shrOrder(pl, shr, rank)
	idx := -1
	for i, o := range ordered {
		if o == ohr {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	if idx > 0 {
		applyNeighbor(prob, pl, lp, hs, rank, ordered[idx-1], aw, pw, sep, true)
	}
	if idx+1 < len(ordered) {
		applyNeighbor(prob, pl, lp, hs, rank, ordered[idx+1], aw, pw, sep, false)
	}
}

func applyNeighbor(prob *solve.Problem[geomVar], pl *layout.Placement, lp *LayoutProblem, hs index.HopSol, rank index.VRank, neighborOHR index.OHR, aw, pw, sep float64, left bool) {
	neighborRO := index.RankOHR{Rank: rank, OHR: neighborOHR}
	loc := pl.LocToNode[neighborRO]
	if loc.IsNode() {
		nx := lp.LocOf[neighborRO]
		if left {
			prob.Geqc(sVar(hs), lVar(nx), sep+aw)
		} else {
			prob.Leqc(sVar(hs), lVar(nx), sep+aw)
		}
		return
	}

	for _, h2 := range pl.HopsByLevel[rank] {
		if h2.Upper != neighborOHR {
			continue
		}
		h2ID, ok := lp.HopOf[h2]
		if !ok {
			continue
		}
		awO, pwO := lp.WidthByHop[h2ID][0], lp.WidthByHop[h2ID][1]
		if left {
			prob.Geqc(sVar(hs), sVar(h2ID), 2*sep+pwO+aw)
		} else {
			prob.Leqc(sVar(hs), sVar(h2ID), 2*sep+awO+pw)
		}
		return
	}
}

// successorHop finds the hop continuing h's edge one rank down, used
// by the vertical-continuity symmetry penalty (item 8).
func successorHop(pl *layout.Placement, h index.Hop) (index.Hop, bool) {
	for _, h2 := range pl.HopsByLevel[h.Rank+1] {
		if h2.Src == h.Src && h2.Dst == h.Dst && h2.Upper == h.Lower {
			return h2, true
		}
	}
	return index.Hop{}, false
}
