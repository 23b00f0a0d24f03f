package layout

import (
	"fmt"
	"io"
	"sort"

	"github.com/jsavage/depict-layout/index"
)

// WriteMinion emits the textual MINION 3 constraint problem: an
// interop/testing-parity alternative to the native ADMM/ILP crossing
// minimizer, identical in constraint shape to MinimizeCrossingsWithOptions.
// WriteMinion itself only writes text; RunMinion in minion_run.go feeds
// it to a `minion` binary when one is on PATH, and ReadMinionOutput in
// minion_read.go parses that binary's output, so the two backends can
// be compared.
func WriteMinion(w io.Writer, pl *Placement) error {
	ranks := make([]index.VRank, 0, len(pl.LocsByLevel))
	for r := range pl.LocsByLevel {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	bw := &errWriter{w: w}

	bw.printf("MINION 3\n\n**VARIABLES**\n")
	for _, r := range ranks {
		n := len(pl.LocsByLevel[r])
		if n < 2 {
			continue
		}
		bw.printf("BOOL x%d[%d,%d]\n", r, n, n)
	}
	for _, r := range ranks {
		hops := pl.HopsByLevel[r]
		if len(hops) < 2 {
			continue
		}
		n := len(pl.LocsByLevel[r])
		bw.printf("BOOL c%d[%d,%d,%d,%d]\n", r, n, n, n, n)
	}
	bw.printf("DISCRETE csum[1]\n")

	bw.printf("\n**SEARCH**\nMINIMISING csum\nPRINT [[csum]]\n")
	for _, r := range ranks {
		if len(pl.LocsByLevel[r]) < 2 {
			continue
		}
		bw.printf("PRINT [[x%d]]\n", r)
	}

	bw.printf("\n**CONSTRAINTS**\n")
	var csumTerms []string
	for _, r := range ranks {
		n := len(pl.LocsByLevel[r])
		if n < 2 {
			continue
		}
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				bw.printf("sumleq([x%d[%d,%d],x%d[%d,%d]],1)\n", r, a, b, r, b, a)
				bw.printf("sumgeq([x%d[%d,%d],x%d[%d,%d]],1)\n", r, a, b, r, b, a)
			}
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				for c := 0; c < n; c++ {
					if c == a || c == b {
						continue
					}
					// -1 <= x[c,a] - x[c,b] - x[b,a], rewritten through
					// antisymmetry as x[c,a] + x[b,c] + x[a,b] >= 1.
					bw.printf("sumgeq([x%d[%d,%d],x%d[%d,%d],x%d[%d,%d]],1)\n",
						r, c, a, r, b, c, r, a, b)
				}
			}
		}
	}
	for _, r := range ranks {
		hops := pl.HopsByLevel[r]
		if len(hops) < 2 {
			continue
		}
		nextRank := r + 1
		for i := 0; i < len(hops); i++ {
			for j := i + 1; j < len(hops); j++ {
				h1, h2 := hops[i], hops[j]
				if h1.Upper == h2.Upper || h1.Lower == h2.Lower {
					continue
				}
				u1, v1 := h1.Upper, h1.Lower
				u2, v2 := h2.Upper, h2.Lower
				cvar := fmt.Sprintf("c%d[%d,%d,%d,%d]", r, u1, v1, u2, v2)
				bw.printf("sumgeq([%s,x%d[%d,%d],x%d[%d,%d]],1)\n", cvar, r, u2, u1, nextRank, v1, v2)
				bw.printf("sumgeq([%s,x%d[%d,%d],x%d[%d,%d]],1)\n", cvar, r, u1, u2, nextRank, v2, v1)
				csumTerms = append(csumTerms, cvar)
			}
		}
	}
	if len(csumTerms) > 0 {
		bw.printf("sumeq([%s],csum)\n", joinTerms(csumTerms))
	} else {
		bw.printf("eq(csum,0)\n")
	}

	bw.printf("\n**EOF**\n")
	return bw.err
}

func joinTerms(terms []string) string {
	out := terms[0]
	for _, t := range terms[1:] {
		out += "," + t
	}
	return out
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
