package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict-layout/index"
)

func TestBuildPlacementSynthesizesHopChain(t *testing.T) {
	// "a" sits at rank 1, "c" at rank 3: the a->c edge must synthesize an
	// intermediate Loc at rank 2 and chain two Hops through it.
	ranked := RankedPaths{
		0: {{RootName, RootName}},
		1: {{RootName, "a"}},
		3: {{RootName, "c"}},
	}
	ranks := Ranks{RootName: 0, "a": 1, "c": 3}
	condensed := []CondensedEdge{
		{Src: "a", Dst: "c", Originals: []VCGEdge{{Src: "a", Dst: "c", Kind: RelFake}}},
	}

	pl, err := BuildPlacement(ranked, condensed, ranks)
	require.NoError(t, err)

	require.Len(t, pl.LocsByLevel[2], 1)
	hopLoc := pl.LocToNode[index.RankOHR{Rank: 2, OHR: 0}]
	require.True(t, hopLoc.IsHop())
	require.Equal(t, "a", hopLoc.Src)
	require.Equal(t, "c", hopLoc.Dst)

	require.Len(t, pl.HopsByLevel[1], 1)
	require.False(t, pl.HopsByLevel[1][0].Terminal)
	require.Len(t, pl.HopsByLevel[2], 1)
	require.True(t, pl.HopsByLevel[2][0].Terminal)

	chain := pl.HopsByEdge[[2]string{"a", "c"}]
	require.Len(t, chain, 2)
}

func TestBuildPlacementSingleRankEdgeHasOneTerminalHop(t *testing.T) {
	// An edge spanning exactly one rank synthesizes no intermediate Loc,
	// but still records a single terminal Hop chaining its two node
	// endpoints directly.
	ranked := RankedPaths{
		0: {{RootName, RootName}},
		1: {{RootName, "a"}},
		2: {{RootName, "b"}},
	}
	ranks := Ranks{RootName: 0, "a": 1, "b": 2}
	condensed := []CondensedEdge{
		{Src: "a", Dst: "b", Originals: []VCGEdge{{Src: "a", Dst: "b", Kind: RelActuates}}},
	}

	pl, err := BuildPlacement(ranked, condensed, ranks)
	require.NoError(t, err)
	require.Empty(t, pl.LocsByLevel[1][1:]) // no synthesized intermediate OHR beyond "a" itself
	require.Len(t, pl.HopsByLevel[1], 1)
	require.True(t, pl.HopsByLevel[1][0].Terminal)
	require.Equal(t, pl.NodeToLoc["a"].OHR, pl.HopsByLevel[1][0].Upper)
	require.Equal(t, pl.NodeToLoc["b"].OHR, pl.HopsByLevel[1][0].Lower)

	chain := pl.HopsByEdge[[2]string{"a", "b"}]
	require.Len(t, chain, 1)
}

func TestHopsAtNode(t *testing.T) {
	ranked := RankedPaths{
		0: {{RootName, RootName}},
		1: {{RootName, "a"}},
		3: {{RootName, "c"}},
	}
	ranks := Ranks{RootName: 0, "a": 1, "c": 3}
	condensed := []CondensedEdge{
		{Src: "a", Dst: "c", Originals: []VCGEdge{{Src: "a", Dst: "c", Kind: RelFake}}},
	}
	pl, err := BuildPlacement(ranked, condensed, ranks)
	require.NoError(t, err)

	hops := pl.HopsAtNode("a", 1)
	require.Len(t, hops, 1)
	require.Equal(t, "a", hops[0].Src)
}
