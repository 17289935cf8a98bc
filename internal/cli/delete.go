package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/drafts"
	"github.com/roach88/invoify/internal/invoice"
)

// DeleteResult is the data of a successful delete.
type DeleteResult struct {
	Number  string `json:"invoiceNumber"`
	Removed int    `json:"removed"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <invoice-number>",
		Short: "Delete a saved invoice",
		Long: `Delete every saved invoice with the given number.

The number must match exactly, including surrounding spaces. It is
Unicode-normalized (NFC) first, the form numbers are saved in.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, invoice.NormalizeNumber(args[0]), cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, number string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		removed, err := store.DeleteByNumber(cmd.Context(), number)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeStorage, "failed to delete invoice", nil, err)
		}
		if removed == 0 {
			return f.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("no saved invoice numbered %q", number), nil, nil)
		}

		result := DeleteResult{Number: number, Removed: removed}
		return f.Success(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Deleted %d invoice(s) numbered %s\n", removed, number)
			return err
		})
	})
}
