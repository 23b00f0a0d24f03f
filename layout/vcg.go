package layout

import (
	"strings"

	"github.com/jsavage/depict-layout/errs"
)

// RelationKind names the kind of "must lie above" assertion an edge of
// the vertical constraint graph carries.
type RelationKind string

const (
	RelActuates RelationKind = "actuates"
	RelSenses   RelationKind = "senses"
	RelFake     RelationKind = "fake"
)

// LevelLabels is one Fact segment's action/percept label lists.
type LevelLabels struct {
	Actions  []string
	Percepts []string
}

// Fact is a single parsed input row: an ordered path of node names plus
// per-segment action/percept labels. This is the pipeline's sole
// inbound shape (§6); the parser producing it is an external
// collaborator.
type Fact struct {
	Path          []string
	LabelsByLevel []LevelLabels // len should be len(Path)-1; shorter is padded with empty labels
}

// VCGEdge is one edge of the vertical constraint graph: Src must lie
// strictly above Dst.
type VCGEdge struct {
	Src, Dst string
	Kind     RelationKind
}

// VCG is the vertical constraint graph: a directed multigraph over
// node-name vertices, annotated per edge with its relation kind, plus a
// side table of ordered labels per (src,dst,kind).
type VCG struct {
	Edges  []VCGEdge
	Labels map[[3]string][]string
}

// RootName is the synthetic vertex added so every VCG has a unique root.
const RootName = "root"

// MaxNameDepth bounds how many "."-separated segments a node name may
// carry (e.g. "plant.boiler.valve"). Names are free-form strings, but an
// unbounded nesting depth is almost always a malformed upstream path
// rather than an intentionally deep hierarchy.
const MaxNameDepth = 16

// BuildVCG turns Facts into a vertical constraint graph, in the same
// two-pass shape as the original: first every Fact's adjacent path
// pair contributes a labeled edge per non-empty action/percept label,
// accumulating the (src,dst) pair's labels across every Fact that
// traverses it; only once all Facts are consumed does a second pass
// add a single unlabeled "fake" edge to each pair whose aggregate
// across every Fact is still empty. After that, add "root" with a
// fake edge to every vertex with no incoming edge.
func BuildVCG(facts []Fact) (*VCG, error) {
	vcg := &VCG{Labels: map[[3]string][]string{}}
	hasIncoming := map[string]bool{}
	seen := map[string]bool{}
	labeledPair := map[[2]string]bool{}
	var pairOrder [][2]string
	pairSeen := map[[2]string]bool{}

	addEdge := func(src, dst string, kind RelationKind, label string) {
		vcg.Edges = append(vcg.Edges, VCGEdge{Src: src, Dst: dst, Kind: kind})
		if label != "" {
			key := [3]string{src, dst, string(kind)}
			vcg.Labels[key] = append(vcg.Labels[key], label)
		}
		hasIncoming[dst] = true
	}

	for _, f := range facts {
		if len(f.Path) == 0 {
			return nil, errs.Wrap(errs.ErrMissingFact, "BuildVCG: empty path", nil)
		}
		for _, n := range f.Path {
			if strings.Count(n, ".") >= MaxNameDepth {
				return nil, errs.Scopef(errs.ErrDeepName, "BuildVCG: name %q nests deeper than %d segments", n, MaxNameDepth)
			}
			seen[n] = true
		}
		for i := 0; i+1 < len(f.Path); i++ {
			src, dst := f.Path[i], f.Path[i+1]
			pair := [2]string{src, dst}
			if !pairSeen[pair] {
				pairSeen[pair] = true
				pairOrder = append(pairOrder, pair)
			}

			var ll LevelLabels
			if i < len(f.LabelsByLevel) {
				ll = f.LabelsByLevel[i]
			}

			for _, a := range ll.Actions {
				a = strings.TrimSpace(a)
				if a == "" {
					continue
				}
				addEdge(src, dst, RelActuates, a)
				labeledPair[pair] = true
			}
			for _, pc := range ll.Percepts {
				pc = strings.TrimSpace(pc)
				if pc == "" {
					continue
				}
				addEdge(src, dst, RelSenses, pc)
				labeledPair[pair] = true
			}
		}
	}

	for _, pair := range pairOrder {
		if !labeledPair[pair] {
			addEdge(pair[0], pair[1], RelFake, "")
		}
	}

	for n := range seen {
		if n == RootName {
			continue
		}
		if !hasIncoming[n] {
			addEdge(RootName, n, RelFake, "")
		}
	}

	return vcg, nil
}

// LabelCounts totals the number of labels each (src,dst) pair carries
// across every relation kind, the input the geometry stage's per-rank
// row-height computation needs.
func LabelCounts(vcg *VCG) map[[2]string]int {
	counts := map[[2]string]int{}
	for key, labels := range vcg.Labels {
		k := [2]string{key[0], key[1]}
		counts[k] += len(labels)
	}
	return counts
}
