package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/api"
	"github.com/roach88/invoify/internal/drafts"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		as  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "export <invoice-number>",
		Short: "Export a saved invoice to another file format",
		Long: `Convert a saved invoice through the invoice API and write it to
<out>/<invoice-number>.<ext>.

Formats: JSON, CSV, XML, XLSX, DOCX (any case).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := api.ParseExportFormat(as)
			if err != nil {
				return rootOpts.formatter(cmd).Fail(ExitCommandError, ErrCodeInput, err.Error(), nil, err)
			}
			return runExport(rootOpts, args[0], format, out, cmd)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "export format (JSON|CSV|XML|XLSX|DOCX)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (env INVOIFY_OUT_DIR)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runExport(opts *RootOptions, number string, format api.ExportFormat, out string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		ctx := cmd.Context()

		inv, err := findInvoice(ctx, store, f, number)
		if err != nil {
			return err
		}

		resp, err := opts.apiClient().Export(ctx, inv, format)
		if err != nil {
			return remoteFailure(f, err)
		}
		data, err := api.DecodePayload(resp.Data)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeRemote, "the API returned an unreadable file", nil, err)
		}

		path, err := writePayload(opts.outDir(out), inv.Number(), format.Extension(), data)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeWrite, "failed to write export", nil, err)
		}

		result := FileResult{Number: inv.Number(), Format: string(format), Path: path, Bytes: len(data)}
		return f.Success(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Wrote %s\n", path)
			return err
		})
	})
}
