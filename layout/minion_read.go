package layout

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jsavage/depict-layout/errs"
	"github.com/jsavage/depict-layout/index"
)

// MinionResult is the parsed output of a MINION 3 solver run: the
// objective value plus, per rank, the solved x boolean matrix in
// row-major order.
type MinionResult struct {
	Obj int
	X   map[index.VRank][][]bool
}

// ReadMinionOutput parses a MINION subprocess's stdout:
// the third line is the objective value; subsequent lines are the x
// matrices per rank (in the same rank order WriteMinion emitted their
// PRINT statements), row-major, whitespace-delimited. ranks and their
// populations must be supplied by the caller since the output stream
// carries no rank labels of its own.
func ReadMinionOutput(r io.Reader, ranks []index.VRank, popByRank map[index.VRank]int) (MinionResult, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return MinionResult{}, errs.Wrap(errs.ErrIO, "ReadMinionOutput", err)
	}
	if len(lines) < 3 {
		return MinionResult{}, errs.Wrap(errs.ErrIO, "ReadMinionOutput: too few lines", nil)
	}

	obj, err := strconv.Atoi(strings.TrimSpace(lines[2]))
	if err != nil {
		return MinionResult{}, errs.Wrap(errs.ErrIO, "ReadMinionOutput: objective", err)
	}

	result := MinionResult{Obj: obj, X: map[index.VRank][][]bool{}}
	li := 3
	for _, r := range ranks {
		n := popByRank[r]
		if n < 2 {
			continue
		}
		mat := make([][]bool, n)
		for row := 0; row < n; row++ {
			if li >= len(lines) {
				return MinionResult{}, errs.Wrap(errs.ErrIO, "ReadMinionOutput: truncated matrix", nil)
			}
			fields := strings.Fields(lines[li])
			li++
			mat[row] = make([]bool, n)
			for col := 0; col < n && col < len(fields); col++ {
				mat[row][col] = fields[col] == "1"
			}
		}
		result.X[r] = mat
	}

	return result, nil
}
