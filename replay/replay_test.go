package replay

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/slon/lrucache/lrucache"
)

func TestGolden(t *testing.T) {
	traces, err := filepath.Glob(filepath.Join("testdata", "*.trace"))
	require.NoError(t, err)
	require.NotEmpty(t, traces)

	for _, path := range traces {
		name := strings.TrimSuffix(filepath.Base(path), ".trace")
		t.Run(name, func(t *testing.T) {
			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			want, err := os.ReadFile(strings.TrimSuffix(path, ".trace") + ".golden")
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, Run(context.Background(), f, &out, 16))
			require.Equal(t, string(want), out.String())
		})
	}
}

func TestRun_DefaultCapacity(t *testing.T) {
	trace := "put a 1\nput b 2\nput c 3\nget a\nsize\n"

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), strings.NewReader(trace), &out, 2))
	require.Equal(t, "miss\n2\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		trace  string
		line   int
		output string
	}{
		{name: "unknown command", trace: "put a 1\nfetch a\n", line: 2},
		{name: "missing argument", trace: "# header\n\nput a\n", line: 3},
		{name: "extra argument", trace: "size now\n", line: 1},
		{name: "late cap", trace: "put a 1\ncap 3\n", line: 2},
		{name: "bad cap", trace: "cap many\n", line: 1},
		{name: "results before bad line", trace: "put a 1\nget a\nsize\nbogus\nget a\n", line: 4, output: "1\n1\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), strings.NewReader(tc.trace), &out, 2)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			require.Equal(t, tc.line, syntaxErr.Line)
			require.Equal(t, tc.output, out.String())
		})
	}
}

func TestRun_InvalidCapacity(t *testing.T) {
	err := Run(context.Background(), strings.NewReader("cap 0\nput a 1\n"), &bytes.Buffer{}, 2)
	require.ErrorIs(t, err, lrucache.ErrInvalidCapacity)

	err = Run(context.Background(), strings.NewReader("size\n"), &bytes.Buffer{}, -1)
	require.ErrorIs(t, err, lrucache.ErrInvalidCapacity)

	for _, trace := range []string{"", "# only comment\n", "\n\n"} {
		err = Run(context.Background(), strings.NewReader(trace), &bytes.Buffer{}, 0)
		require.ErrorIs(t, err, lrucache.ErrInvalidCapacity, "trace %q", trace)
	}

	require.NoError(t, Run(context.Background(), strings.NewReader("# only comment\n"), &bytes.Buffer{}, 1))
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, strings.NewReader("size\n"), &bytes.Buffer{}, 2)
	require.True(t, errors.Is(err, context.Canceled))
}
