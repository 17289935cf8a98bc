package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStem(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"INV-001", "INV-001"},
		{"INV/2026/7", "INV_2026_7"},
		{`a\b:c`, "a_b_c"},
		{"  padded  ", "padded"},
		{"..", "invoice"},
		{"", "invoice"},
		{"tab\there", "tabhere"},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, fileStem(tt.number))
		})
	}
}

func TestWritePayload_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	path, err := writePayload(dir, "INV-001", "xlsx", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-001.xlsx"), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestWritePayload_Overwrites(t *testing.T) {
	dir := t.TempDir()

	_, err := writePayload(dir, "INV-001", "pdf", []byte("old"))
	require.NoError(t, err)
	path, err := writePayload(dir, "INV-001", "pdf", []byte("new"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestOutDir(t *testing.T) {
	opts := &RootOptions{}
	assert.Equal(t, ".", opts.outDir(""))

	opts.Config.OutDir = "/srv/invoices"
	assert.Equal(t, "/srv/invoices", opts.outDir(""))
	assert.Equal(t, "elsewhere", opts.outDir("elsewhere"))
}
