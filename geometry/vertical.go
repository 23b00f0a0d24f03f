package geometry

import (
	"sort"

	"github.com/jsavage/depict-layout/index"
	"github.com/jsavage/depict-layout/layout"
)

// DefaultRowHeight is the baseline vertical extent of a rank before any
// extra space reserved for multi-line edge labels.
const DefaultRowHeight = 40.0

// DefaultLabelLineHeight is the extra vertical extent one additional
// edge label beyond the first contributes to its rank's row height.
const DefaultLabelLineHeight = 14.0

// RowTops computes each rank's top-y offset, derived directly from
// row-height offsets rather than solved. A rank's extra height is
// max(0, max over edges whose hops start at
// that rank of (label_count-1)) scaled by lineHeight, cumulatively
// summed from rank 0.
func RowTops(pl *layout.Placement, labelCounts map[[2]string]int, rowHeight, lineHeight float64) map[index.VRank]float64 {
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLabelLineHeight
	}

	var ranks []index.VRank
	for r := range pl.LocsByLevel {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	ts := make(map[index.VRank]float64, len(ranks))
	cum := 0.0
	for _, r := range ranks {
		ts[r] = cum
		extra := 0
		for _, h := range pl.HopsByLevel[r] {
			lc := labelCounts[[2]string{h.Src, h.Dst}] - 1
			if lc > extra {
				extra = lc
			}
		}
		cum += rowHeight + float64(extra)*lineHeight
	}
	return ts
}
