package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict-layout/errs"
)

func TestBuildVCGLabelsAndFakeEdges(t *testing.T) {
	facts := []Fact{
		{
			Path: []string{"a", "b", "c"},
			LabelsByLevel: []LevelLabels{
				{Actions: []string{"actuates-it"}},
				{Percepts: []string{" senses-it "}},
			},
		},
		{
			Path: []string{"d", "e"},
			// No labels at all: should fall back to a single fake edge.
		},
	}

	vcg, err := BuildVCG(facts)
	require.NoError(t, err)

	var kinds []RelationKind
	for _, e := range vcg.Edges {
		if e.Src == "a" && e.Dst == "b" {
			kinds = append(kinds, e.Kind)
		}
	}
	require.Equal(t, []RelationKind{RelActuates}, kinds)
	require.Equal(t, []string{"actuates-it"}, vcg.Labels[[3]string{"a", "b", string(RelActuates)}])

	require.Equal(t, []string{"senses-it"}, vcg.Labels[[3]string{"b", "c", string(RelSenses)}])

	foundFake := false
	for _, e := range vcg.Edges {
		if e.Src == "d" && e.Dst == "e" && e.Kind == RelFake {
			foundFake = true
		}
	}
	require.True(t, foundFake)

	// Every path-start with no incoming edge gets a fake edge from root.
	rootTargets := map[string]bool{}
	for _, e := range vcg.Edges {
		if e.Src == RootName {
			rootTargets[e.Dst] = true
		}
	}
	require.True(t, rootTargets["a"])
	require.True(t, rootTargets["d"])
	require.False(t, rootTargets["b"]) // has incoming edge from a
}

// A (src,dst) pair traversed by two Facts, only one of which carries a
// real label, must not get a fake edge: "received no labels" is
// judged over the aggregate across every Fact, not per occurrence.
func TestBuildVCGAggregatesLabelsAcrossFacts(t *testing.T) {
	facts := []Fact{
		{Path: []string{"a", "b"}}, // no label on this occurrence
		{
			Path:          []string{"a", "b"},
			LabelsByLevel: []LevelLabels{{Actions: []string{"actuates-it"}}},
		},
	}

	vcg, err := BuildVCG(facts)
	require.NoError(t, err)

	var kinds []RelationKind
	for _, e := range vcg.Edges {
		if e.Src == "a" && e.Dst == "b" {
			kinds = append(kinds, e.Kind)
		}
	}
	require.Equal(t, []RelationKind{RelActuates}, kinds)
}

func TestBuildVCGEmptyPathIsError(t *testing.T) {
	_, err := BuildVCG([]Fact{{Path: nil}})
	require.Error(t, err)
}

func TestBuildVCGRejectsDeeplyNestedName(t *testing.T) {
	deep := strings.Repeat("a.", MaxNameDepth+1) + "leaf"
	_, err := BuildVCG([]Fact{{Path: []string{"root", deep}}})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDeepName))
}

func TestLabelCounts(t *testing.T) {
	facts := []Fact{
		{
			Path: []string{"a", "b"},
			LabelsByLevel: []LevelLabels{
				{Actions: []string{"x", "y"}, Percepts: []string{"z"}},
			},
		},
	}
	vcg, err := BuildVCG(facts)
	require.NoError(t, err)

	counts := LabelCounts(vcg)
	require.Equal(t, 3, counts[[2]string{"a", "b"}])
}
