package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict-layout/errs"
)

func TestRunRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(`{"path":["a","b"]}`+"\n"), 0o644))

	err := run(in, filepath.Join(dir, "out.jsonl"), 1.0, false, "bogus")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnknownMode))
}

func TestRunEndToEndWritesGraph(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	out := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(`{"path":["a","b"],"labels_by_level":[{"actions":["go"]}]}`+"\n"), 0o644))

	require.NoError(t, run(in, out, 1.0, true, "native"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestRunRejectsMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(`not json`+"\n"), 0o644))

	err := run(in, filepath.Join(dir, "out.jsonl"), 1.0, false, "native")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrParse))
}
