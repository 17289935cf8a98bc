package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/invoify/internal/testutil"
)

func TestList_Empty(t *testing.T) {
	env := newTestEnv(t, "text")

	res := execute(NewListCommand(env.opts), "")

	require.NoError(t, res.err)
	assert.Equal(t, "No saved invoices.\n", res.stdout)
}

func TestList_TextGolden(t *testing.T) {
	env := newTestEnv(t, "text")
	second := testutil.Saved("INV-002")
	second.Receiver.Name = "Initech"
	env.seed(testutil.Saved("INV-001"), second)

	res := execute(NewListCommand(env.opts), "")
	require.NoError(t, res.err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_text", []byte(res.stdout))
}

func TestList_JSON(t *testing.T) {
	env := newTestEnv(t, "json")
	env.seed(testutil.Saved("INV-001"), testutil.Saved("INV-002"))

	res := execute(NewListCommand(env.opts), "")
	require.NoError(t, res.err)

	var rows []ListRow
	resp := decodeResponse(t, res.stdout, &rows)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, rows, 2)
	assert.Equal(t, "INV-001", rows[0].Number)
	assert.Equal(t, "INV-002", rows[1].Number)
	assert.Equal(t, 25.0, rows[0].Total)
	assert.Equal(t, "USD", rows[0].Currency)
}

func TestList_StorageUnavailable(t *testing.T) {
	env := newTestEnv(t, "text")
	// A directory where the database file should be cannot be opened.
	env.opts.Config.DBPath = env.dir

	res := execute(NewListCommand(env.opts), "")

	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.stdout, "Error [E020]")
}
