package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCondenseCollapsesParallelEdges(t *testing.T) {
	vcg := &VCG{Edges: []VCGEdge{
		{Src: "a", Dst: "b", Kind: RelActuates},
		{Src: "a", Dst: "b", Kind: RelSenses},
		{Src: "a", Dst: "c", Kind: RelFake},
	}}

	condensed := Condense(vcg)
	require.Len(t, condensed, 2)

	require.Equal(t, "a", condensed[0].Src)
	require.Equal(t, "b", condensed[0].Dst)
	require.Len(t, condensed[0].Originals, 2)
	require.Equal(t, RelActuates, condensed[0].Originals[0].Kind)
	require.Equal(t, RelSenses, condensed[0].Originals[1].Kind)

	require.Equal(t, "c", condensed[1].Dst)
}
