package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{""}},
		{"no trailing newline", "foo\nbar", []string{"foo", "bar"}},
		{"trailing newline", "foo\nbar\n", []string{"foo", "bar"}},
		{"blank lines", "foo\n\n\nbar\n", []string{"foo", "", "", "bar"}},
		{"crlf", "foo\r\nbar\r\n", []string{"foo", "bar"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			lines, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer old content"), 0644))

	require.NoError(t, Write(path, strings.NewReader("new")))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}
