package layout

import (
	"bytes"
	"context"
	"os/exec"
	"sort"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
)

// CrossingsViaMinion is the external-subprocess counterpart to
// MinimizeCrossingsWithOptions: it runs the same problem through a
// `minion` binary instead of the native ILP driver and recovers SHR
// from the parsed boolean matrix by the identical row-sum-then-sort
// rule, so a caller can cross-check the two backends against the same
// Placement.
func CrossingsViaMinion(ctx context.Context, pl *Placement) (CrossingResult, error) {
	res, err := RunMinion(ctx, pl)
	if err != nil {
		return CrossingResult{}, err
	}

	shr := SolvedLocs{}
	for rank, ohrs := range pl.LocsByLevel {
		n := len(ohrs)
		mat, ok := res.X[rank]
		if !ok {
			shr[rank] = identitySHR(pl)[rank]
			continue
		}

		rowSum := make([]int, n)
		for a := 0; a < n; a++ {
			sum := 0
			for b := 0; b < n; b++ {
				if a != b && mat[a][b] {
					sum++
				}
			}
			rowSum[a] = sum
		}

		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return rowSum[order[i]] < rowSum[order[j]] })

		m := make(map[index.OHR]index.SHR, n)
		for shrVal, ohr := range order {
			m[index.OHR(ohr)] = index.SHR(shrVal)
		}
		shr[rank] = m
	}

	return CrossingResult{Count: res.Obj, SHR: shr}, nil
}

// RunMinion is the optional external-subprocess crossing-minimizer
// backend: it writes pl's MINION 3 formulation to a
// `minion` binary's stdin and parses its stdout. No binary is
// fabricated or vendored; if `minion` is not on PATH this returns
// errs.ErrUnimplementedDrawingStyle rather than pretending to solve,
// per the ban on fabricated dependencies.
func RunMinion(ctx context.Context, pl *Placement) (MinionResult, error) {
	path, err := exec.LookPath("minion")
	if err != nil {
		return MinionResult{}, errs.Wrap(errs.ErrUnimplementedDrawingStyle, "RunMinion: minion not on PATH", err)
	}

	var in bytes.Buffer
	if err := WriteMinion(&in, pl); err != nil {
		return MinionResult{}, errs.Wrap(errs.ErrIO, "RunMinion: write problem", err)
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = &in
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return MinionResult{}, errs.Wrap(errs.ErrIO, "RunMinion: subprocess", err)
	}

	ranks := make([]index.VRank, 0, len(pl.LocsByLevel))
	pop := make(map[index.VRank]int, len(pl.LocsByLevel))
	for r, ohrs := range pl.LocsByLevel {
		ranks = append(ranks, r)
		pop[r] = len(ohrs)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	return ReadMinionOutput(&out, ranks, pop)
}
