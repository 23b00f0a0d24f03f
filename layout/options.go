package layout

import (
	"math/rand"

	"github.com/jsavage/depict-layout/solve"
)

// Options bundles the crossing minimizer's tunables into a single
// value, a small strategy struct over package-level constants or flag
// parsing inside library code.
type Options struct {
	// ILPEpsAbs is the integrality tolerance passed to the ILP driver
	// (default 0.1 if zero).
	ILPEpsAbs float64
	// ILPEpsInfeas is the rounded-feasibility tolerance (default 0.1).
	ILPEpsInfeas float64
	// QPSettings configures the continuous relaxation solves the ILP
	// driver performs at each branch-and-bound node.
	QPSettings solve.Settings
	// Rand, if non-nil, randomizes queue-position branch selection
	// instead of deterministic LIFO order.
	Rand *rand.Rand
}

// DefaultOptions is the default tuning profile: ε_abs = ε_rel = 0.1,
// max_iter = 400, adaptive-rho disabled, not verbose.
func DefaultOptions() Options {
	return Options{
		ILPEpsAbs:    0.1,
		ILPEpsInfeas: 0.1,
		QPSettings:   solve.DefaultSettings(),
	}
}
