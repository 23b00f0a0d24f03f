package layout

import "sort"

// CondensedEdge is one group of parallel VCG edges between the same
// (Src,Dst) pair, carrying the sorted list of originals.
type CondensedEdge struct {
	Src, Dst  string
	Originals []VCGEdge
}

// Condense groups vcg's edges by (Src,Dst) and sorts each group's
// originals by (Src,Dst,Kind); the condensed edges themselves are
// returned sorted by (Src,Dst), which is also the traversal order
// placement construction uses as its sole tie-breaker.
func Condense(vcg *VCG) []CondensedEdge {
	type key = [2]string
	groups := map[key][]VCGEdge{}
	var order []key

	for _, e := range vcg.Edges {
		k := key{e.Src, e.Dst}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	out := make([]CondensedEdge, 0, len(order))
	for _, k := range order {
		orig := groups[k]
		sort.Slice(orig, func(i, j int) bool {
			if orig[i].Src != orig[j].Src {
				return orig[i].Src < orig[j].Src
			}
			if orig[i].Dst != orig[j].Dst {
				return orig[i].Dst < orig[j].Dst
			}
			return orig[i].Kind < orig[j].Kind
		})
		out = append(out, CondensedEdge{Src: k[0], Dst: k[1], Originals: orig})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Src != out[j].Src {
			return out[i].Src < out[j].Src
		}
		return out[i].Dst < out[j].Dst
	})

	return out
}
