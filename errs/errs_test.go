package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	wrapped := Wrap(ErrIndexing, "BuildPlacement: missing loc", nil)
	require.True(t, errors.Is(wrapped, ErrIndexing))
	require.False(t, errors.Is(wrapped, ErrKeyNotFound))
	require.Contains(t, wrapped.Error(), "BuildPlacement")
}

func TestWrapWithUnderlyingError(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(ErrSolver, "MinimizeCrossings", cause)
	require.True(t, errors.Is(wrapped, ErrSolver))
	require.Contains(t, wrapped.Error(), "boom")
}

func TestScopef(t *testing.T) {
	wrapped := Scopef(ErrUnknownMode, "mode %q", "foo")
	require.True(t, errors.Is(wrapped, ErrUnknownMode))
	require.Contains(t, wrapped.Error(), `"foo"`)
}
