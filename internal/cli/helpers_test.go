package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/invoify/internal/config"
	"github.com/roach88/invoify/internal/drafts"
	"github.com/roach88/invoify/internal/ids"
	"github.com/roach88/invoify/internal/invoice"
	"github.com/roach88/invoify/internal/testutil"
)

// testEnv is an isolated database and output directory with a fixed clock
// and fixed ids.
type testEnv struct {
	t    *testing.T
	dir  string
	opts *RootOptions
}

func newTestEnv(t *testing.T, format string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	clock := testutil.NewDeterministicClock()
	return &testEnv{
		t:   t,
		dir: dir,
		opts: &RootOptions{
			Format: format,
			Config: config.Config{
				DBPath:     filepath.Join(dir, "data", "invoices.db"),
				APIURL:     "http://127.0.0.1:1/api",
				APITimeout: 5 * time.Second,
				OutDir:     filepath.Join(dir, "out"),
			},
			Now:        clock.Now,
			SessionIDs: ids.Sequence("session-"),
			RequestIDs: ids.Sequence("req-"),
		},
	}
}

// withStore runs fn against the environment's database.
func (e *testEnv) withStore(fn func(*drafts.Store)) {
	e.t.Helper()
	store, closeFn, err := e.opts.openDrafts()
	require.NoError(e.t, err)
	defer closeFn()
	fn(store)
}

func (e *testEnv) seed(invs ...*invoice.Invoice) {
	e.t.Helper()
	e.withStore(func(store *drafts.Store) {
		for _, inv := range invs {
			require.NoError(e.t, store.Save(context.Background(), inv))
		}
	})
}

func (e *testEnv) saved() []invoice.Invoice {
	e.t.Helper()
	var all []invoice.Invoice
	e.withStore(func(store *drafts.Store) {
		var err error
		all, err = store.List(context.Background())
		require.NoError(e.t, err)
	})
	return all
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs cmd with args, feeding stdin to any prompts.
func execute(cmd *cobra.Command, stdin string, args ...string) cmdResult {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cmdResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

// jsonResponse is CLIResponse with the payload left raw for typed decoding.
type jsonResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

func decodeResponse(t *testing.T, out string, data any) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}
