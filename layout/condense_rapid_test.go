package layout

import (
	"testing"

	"pgregory.net/rapid"
)

// Condense must be a partition of its input: every original edge ends up
// in exactly one group, and groups never merge two distinct (Src,Dst)
// pairs.
func TestCondensePartitionsEdges(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := []string{"a", "b", "c", "d"}
		kinds := []RelationKind{RelActuates, RelSenses, RelFake}
		name := rapid.SampledFrom(names)
		kind := rapid.SampledFrom(kinds)

		n := rapid.IntRange(0, 20).Draw(t, "n")
		vcg := &VCG{}
		for i := 0; i < n; i++ {
			vcg.Edges = append(vcg.Edges, VCGEdge{
				Src:  name.Draw(t, "src"),
				Dst:  name.Draw(t, "dst"),
				Kind: kind.Draw(t, "kind"),
			})
		}

		condensed := Condense(vcg)

		total := 0
		seen := map[[2]string]bool{}
		for _, ce := range condensed {
			key := [2]string{ce.Src, ce.Dst}
			if seen[key] {
				t.Fatalf("duplicate group for %v", key)
			}
			seen[key] = true
			for _, e := range ce.Originals {
				if e.Src != ce.Src || e.Dst != ce.Dst {
					t.Fatalf("original %+v leaked into group %v", e, key)
				}
			}
			total += len(ce.Originals)
		}
		if total != n {
			t.Fatalf("lost edges: input %d, condensed total %d", n, total)
		}
	})
}
