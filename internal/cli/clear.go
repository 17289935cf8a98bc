package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/drafts"
)

// ClearResult is the data of a successful clear.
type ClearResult struct {
	Removed int `json:"removed"`
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "clear",
		Short:         "Delete every saved invoice",
		Long:          `Delete every saved invoice. Asks for confirmation unless --yes is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(rootOpts, yes, cmd)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runClear(opts *RootOptions, yes bool, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		ctx := cmd.Context()

		n, err := store.Count(ctx)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeStorage, "failed to read saved invoices", nil, err)
		}

		if !yes && n > 0 {
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			ok, err := p.confirm(fmt.Sprintf("Delete all %d saved invoice(s)?", n), false)
			if err != nil && !errors.Is(err, errBack) {
				return f.Fail(ExitFailure, ErrCodeInput, "no confirmation given", nil, err)
			}
			if !ok {
				return f.Success(ClearResult{}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "Nothing deleted.")
					return err
				})
			}
		}

		if err := store.ClearAll(ctx); err != nil {
			return f.Fail(ExitFailure, ErrCodeStorage, "failed to clear saved invoices", nil, err)
		}

		return f.Success(ClearResult{Removed: n}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Deleted %d invoice(s)\n", n)
			return err
		})
	})
}
