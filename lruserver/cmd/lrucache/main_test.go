package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReplayCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.trace")
	require.NoError(t, os.WriteFile(path, []byte("put 1 100\nput 2 200\nget 1\nput 3 300\nget 2\nsize\n"), 0o644))

	out, err := run(t, "replay", "--capacity", "2", path)
	require.NoError(t, err)
	require.Equal(t, "100\nmiss\n2\n", out)
}

func TestReplayCmd_Errors(t *testing.T) {
	_, err := run(t, "replay")
	require.Error(t, err)

	_, err = run(t, "replay", filepath.Join(t.TempDir(), "missing.trace"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestServeCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 0\n"), 0o644))

	_, err := run(t, "serve", "--config", path)
	require.Error(t, err)
}
