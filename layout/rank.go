package layout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
)

// RankedPaths maps a VRank to the sorted (root, target) pairs whose
// longest path from root has exactly that length.
type RankedPaths map[index.VRank][][2]string

// Ranks maps each node name to the largest VRank at which it appears as
// a destination.
type Ranks map[string]index.VRank

// Rank assigns every node the length of its longest path from root,
// via all-pairs shortest path over the VCG with every edge weighted -1
// (so shortest == most-negative == longest path), using gonum's
// Floyd-Warshall implementation. A negative cycle in the weighted graph
// corresponds to an actual cycle in the VCG, which Floyd-Warshall
// cannot resolve into ranks.
func Rank(vcg *VCG) (RankedPaths, Ranks, error) {
	ids := map[string]int64{}
	var nextID int64
	idFor := func(n string) int64 {
		if id, ok := ids[n]; ok {
			return id
		}
		id := nextID
		ids[n] = id
		nextID++
		return id
	}

	g := simple.NewWeightedDirectedGraph(0, 0)
	idFor(RootName)
	g.AddNode(simple.Node(ids[RootName]))
	for _, e := range vcg.Edges {
		s, d := idFor(e.Src), idFor(e.Dst)
		if g.Node(s) == nil {
			g.AddNode(simple.Node(s))
		}
		if g.Node(d) == nil {
			g.AddNode(simple.Node(d))
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(s), T: simple.Node(d), W: -1})
	}

	shortest, ok := path.FloydWarshall(g)
	if !ok {
		return nil, nil, errs.Wrap(errs.ErrNegativeCycle, "Rank", nil)
	}

	rootID := ids[RootName]
	// root itself occupies VRank 0 (the root LocSol is always (VRank 0,
	// OHR 0)), even though it is never a path target.
	ranked := RankedPaths{index.VRank(0): {{RootName, RootName}}}
	ranks := Ranks{RootName: 0}

	for name, id := range ids {
		if name == RootName {
			continue
		}
		w := shortest.Weight(rootID, id)
		if math.IsInf(w, 1) || math.IsInf(w, -1) {
			continue
		}
		r := index.VRank(int(math.Round(-w)))
		if r < 0 {
			continue
		}
		ranked[r] = append(ranked[r], [2]string{RootName, name})
		if cur, ok := ranks[name]; !ok || r > cur {
			ranks[name] = r
		}
	}

	for r := range ranked {
		sort.Slice(ranked[r], func(i, j int) bool { return ranked[r][i][1] < ranked[r][j][1] })
	}

	return ranked, ranks, nil
}
