// Package errs defines the closed set of error kinds surfaced across
// the layout pipeline.
//
// Error policy:
//   - Only the sentinel variables below are exported for classification.
//   - Callers branch with errors.Is(err, ErrX), never by string matching.
//   - Sentinels are never formatted at definition site; call sites attach
//     context with Wrap, which keeps the sentinel reachable via errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// ErrIndexing marks a bug: an internal dense-map lookup that should
// always succeed failed (e.g. a LocSol id produced by one stage is
// absent from the next stage's reverse map).
var ErrIndexing = errors.New("depict-layout: indexing error")

// ErrKeyNotFound marks a lookup into a caller-provided or side-table map
// that is missing the requested key.
var ErrKeyNotFound = errors.New("depict-layout: key not found")

// ErrMissingDrawing indicates a request referenced a drawing/diagram
// identifier that has no corresponding layout state.
var ErrMissingDrawing = errors.New("depict-layout: missing drawing")

// ErrMissingFact indicates a Fact that names no nodes (an empty path).
var ErrMissingFact = errors.New("depict-layout: missing fact")

// ErrUnimplementedDrawingStyle indicates a requested rendering style or
// external solver backend (e.g. a MINION subprocess) is not available
// in this build or on this host.
var ErrUnimplementedDrawingStyle = errors.New("depict-layout: unimplemented drawing style")

// ErrParse indicates malformed input to the Fact parser boundary.
var ErrParse = errors.New("depict-layout: parse error")

// ErrNegativeCycle indicates the vertical constraint graph contains a
// cycle, which the longest-path ranking step cannot resolve.
var ErrNegativeCycle = errors.New("depict-layout: negative cycle in vertical constraint graph")

// ErrIO wraps failures reading/writing the optional MINION subprocess
// interface.
var ErrIO = errors.New("depict-layout: io error")

// ErrSolverSetup indicates a solver was invoked with a malformed
// problem (mismatched P, q, A, l, u dimensions).
var ErrSolverSetup = errors.New("depict-layout: solver setup error")

// ErrSolver indicates the QP/ILP solver terminated without a usable
// solution (infeasible, diverged, or exhausted its iteration budget
// without reaching an acceptable status).
var ErrSolver = errors.New("depict-layout: solver error")

// ErrDeepName indicates a node name nests more "."-separated segments
// than the supported depth (layout.MaxNameDepth).
var ErrDeepName = errors.New("depict-layout: name nesting too deep")

// ErrUnknownMode indicates an unrecognized layout or solver mode flag.
var ErrUnknownMode = errors.New("depict-layout: unknown mode")

// Wrap attaches a scope string to err for diagnostics while preserving
// errors.Is(wrapped, kind) for the given sentinel kind.
func Wrap(kind error, scope string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", scope, kind)
	}
	return fmt.Errorf("%s: %w: %s", scope, kind, err)
}

// Scopef is Wrap with a formatted scope, mirroring lvlath's
// builderErrorf helper.
func Scopef(kind error, format string, args ...any) error {
	return Wrap(kind, fmt.Sprintf(format, args...), nil)
}
