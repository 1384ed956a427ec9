package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		orig := StdinReader
		defer func() { StdinReader = orig }()
		StdinReader = strings.NewReader("from stdin")

		rc, err := Open(Stdin)
		require.NoError(t, err)
		defer rc.Close()

		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "from stdin", string(b))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.txt")
		require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

		b, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from file", string(b))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(file, []byte("k"), 0o600))

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "stdin", in: Stdin, want: true},
		{name: "existing file", in: file, want: true},
		{name: "directory", in: dir, want: false},
		{name: "missing", in: filepath.Join(dir, "nope"), want: false},
		{name: "glob", in: "*", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Exists(tt.in))

			if tt.want {
				assert.NoError(t, Check(tt.in))
			} else {
				assert.ErrorIs(t, Check(tt.in), ErrNotExist)
			}
		})
	}
}
