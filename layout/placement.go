package layout

import (
	"sort"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
)

// Placement is dense (rank,OHR) bookkeeping for both nodes and
// synthesized hop locations, plus the hop segments chaining each
// multi-rank edge endpoint to endpoint. It generalizes a per-level
// ordered-slice plus bidirectional position map pattern from a single
// uint64 node id to this domain's VRank/OHR/Loc triple.
type Placement struct {
	LocsByLevel map[index.VRank][]index.OHR
	HopsByLevel map[index.VRank][]index.Hop
	HopsByEdge  map[[2]string]map[index.VRank][2]index.OHR
	LocToNode   map[index.RankOHR]index.Loc
	NodeToLoc   map[string]index.RankOHR
}

// BuildPlacement turns a ranking into dense placement bookkeeping.
// Node OHRs come directly from each rank's sorted RankedPaths order;
// each condensed edge spanning more than one rank synthesizes an
// intermediate Loc (and OHR) at every rank strictly between its
// endpoints, chained into per-rank Hops.
func BuildPlacement(ranked RankedPaths, condensed []CondensedEdge, ranks Ranks) (*Placement, error) {
	p := &Placement{
		LocsByLevel: map[index.VRank][]index.OHR{},
		HopsByLevel: map[index.VRank][]index.Hop{},
		HopsByEdge:  map[[2]string]map[index.VRank][2]index.OHR{},
		LocToNode:   map[index.RankOHR]index.Loc{},
		NodeToLoc:   map[string]index.RankOHR{},
	}

	var rankKeys []index.VRank
	for r := range ranked {
		rankKeys = append(rankKeys, r)
	}
	sort.Slice(rankKeys, func(i, j int) bool { return rankKeys[i] < rankKeys[j] })

	for _, r := range rankKeys {
		for i, pair := range ranked[r] {
			name := pair[1]
			o := index.OHR(i)
			p.LocsByLevel[r] = append(p.LocsByLevel[r], o)
			ro := index.RankOHR{Rank: r, OHR: o}
			p.LocToNode[ro] = index.NodeLoc(name, r, o)
			p.NodeToLoc[name] = ro
		}
	}

	for _, ce := range condensed {
		vr, ok := ranks[ce.Src]
		if !ok {
			return nil, errs.Wrap(errs.ErrIndexing, "BuildPlacement: src rank "+ce.Src, nil)
		}
		wr, ok := ranks[ce.Dst]
		if !ok {
			return nil, errs.Wrap(errs.ErrIndexing, "BuildPlacement: dst rank "+ce.Dst, nil)
		}
		if wr <= vr {
			continue
		}

		srcRO, ok := p.NodeToLoc[ce.Src]
		if !ok {
			return nil, errs.Wrap(errs.ErrKeyNotFound, "BuildPlacement: src loc "+ce.Src, nil)
		}
		dstRO, ok := p.NodeToLoc[ce.Dst]
		if !ok {
			return nil, errs.Wrap(errs.ErrKeyNotFound, "BuildPlacement: dst loc "+ce.Dst, nil)
		}

		chain := []index.OHR{srcRO.OHR}
		for r := vr + 1; r < wr; r++ {
			o := index.OHR(len(p.LocsByLevel[r]))
			p.LocsByLevel[r] = append(p.LocsByLevel[r], o)
			p.LocToNode[index.RankOHR{Rank: r, OHR: o}] = index.HopLoc(ce.Src, ce.Dst, r, o)
			chain = append(chain, o)
		}
		chain = append(chain, dstRO.OHR)

		key := [2]string{ce.Src, ce.Dst}
		if p.HopsByEdge[key] == nil {
			p.HopsByEdge[key] = map[index.VRank][2]index.OHR{}
		}
		for i := 0; i < len(chain)-1; i++ {
			r := vr + index.VRank(i)
			hop := index.Hop{
				Rank:     r,
				Upper:    chain[i],
				Lower:    chain[i+1],
				Src:      ce.Src,
				Dst:      ce.Dst,
				Terminal: i == len(chain)-2,
			}
			p.HopsByLevel[r] = append(p.HopsByLevel[r], hop)
			p.HopsByEdge[key][r] = [2]index.OHR{chain[i], chain[i+1]}
		}
	}

	for r := range p.HopsByLevel {
		sort.Slice(p.HopsByLevel[r], func(i, j int) bool { return p.HopsByLevel[r][i].Less(p.HopsByLevel[r][j]) })
	}

	return p, nil
}

// HopsAtNode returns the hops touching name at rank r, whether as upper
// or lower endpoint, used by the geometry builder's adjacent-hop
// separation constraint.
func (p *Placement) HopsAtNode(name string, r index.VRank) []index.Hop {
	ro, ok := p.NodeToLoc[name]
	if !ok || ro.Rank != r {
		return nil
	}
	var out []index.Hop
	for _, h := range p.HopsByLevel[r] {
		if h.Upper == ro.OHR {
			out = append(out, h)
		}
	}
	if r > 0 {
		for _, h := range p.HopsByLevel[r-1] {
			if h.Lower == ro.OHR {
				out = append(out, h)
			}
		}
	}
	return out
}
