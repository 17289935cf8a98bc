package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/api"
	"github.com/roach88/invoify/internal/drafts"
)

// NewPDFCommand creates the pdf command.
func NewPDFCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf <invoice-number>",
		Short: "Render a saved invoice as PDF",
		Long: `Render a saved invoice as PDF through the invoice API and write it to
<out>/<invoice-number>.pdf.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPDF(rootOpts, args[0], out, cmd)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (env INVOIFY_OUT_DIR)")

	return cmd
}

func runPDF(opts *RootOptions, number, out string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		ctx := cmd.Context()

		inv, err := findInvoice(ctx, store, f, number)
		if err != nil {
			return err
		}

		resp, err := opts.apiClient().GeneratePDF(ctx, inv)
		if err != nil {
			return remoteFailure(f, err)
		}
		data, err := api.DecodePayload(resp.PDF)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeRemote, "the API returned an unreadable PDF", nil, err)
		}

		path, err := writePayload(opts.outDir(out), inv.Number(), "pdf", data)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeWrite, "failed to write PDF", nil, err)
		}

		result := FileResult{Number: inv.Number(), Format: "PDF", Path: path, Bytes: len(data)}
		return f.Success(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Wrote %s\n", path)
			return err
		})
	})
}
