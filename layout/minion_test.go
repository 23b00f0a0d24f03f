package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict-layout/index"
)

func TestWriteMinionSkipsRanksWithSingleLoc(t *testing.T) {
	pl := &Placement{
		LocsByLevel: map[index.VRank][]index.OHR{0: {0}, 1: {0, 1}},
		HopsByLevel: map[index.VRank][]index.Hop{},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMinion(&buf, pl))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "MINION 3\n"))
	require.Contains(t, out, "BOOL x1[2,2]")
	require.NotContains(t, out, "x0[")
	require.Contains(t, out, "eq(csum,0)")
	require.True(t, strings.HasSuffix(out, "**EOF**\n"))
}

func TestWriteMinionEmitsCrossingVariableForEligiblePair(t *testing.T) {
	pl := &Placement{
		LocsByLevel: map[index.VRank][]index.OHR{0: {0, 1}, 1: {0, 1}},
		HopsByLevel: map[index.VRank][]index.Hop{
			0: {
				{Rank: 0, Upper: 0, Lower: 1, Src: "a", Dst: "y"},
				{Rank: 0, Upper: 1, Lower: 0, Src: "b", Dst: "x"},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMinion(&buf, pl))

	out := buf.String()
	require.Contains(t, out, "BOOL c0[2,2,2,2]")
	require.Contains(t, out, "c0[0,1,1,0]")
	require.Contains(t, out, "sumeq([c0[0,1,1,0]],csum)")
}

func TestReadMinionOutputParsesObjectiveAndMatrix(t *testing.T) {
	input := strings.Join([]string{
		"Minion version 3",
		"",
		"2",
		"0 1",
		"1 0",
	}, "\n")

	ranks := []index.VRank{1}
	pop := map[index.VRank]int{1: 2}

	res, err := ReadMinionOutput(strings.NewReader(input), ranks, pop)
	require.NoError(t, err)
	require.Equal(t, 2, res.Obj)
	require.Equal(t, [][]bool{{false, true}, {true, false}}, res.X[1])
}

func TestReadMinionOutputTooFewLinesIsError(t *testing.T) {
	_, err := ReadMinionOutput(strings.NewReader("a\nb\n"), nil, nil)
	require.Error(t, err)
}
