package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/drafts"
	"github.com/roach88/invoify/internal/invoice"
)

// ListRow is one line of the list output.
type ListRow struct {
	Number      string  `json:"invoiceNumber"`
	Receiver    string  `json:"receiver"`
	InvoiceDate string  `json:"invoiceDate"`
	DueDate     string  `json:"dueDate"`
	Total       float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List saved invoices",
		Long:          `List every saved invoice in the order it was saved.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		all, err := store.List(cmd.Context())
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeStorage, "failed to read saved invoices", nil, err)
		}

		rows := make([]ListRow, 0, len(all))
		for i := range all {
			rows = append(rows, listRow(&all[i]))
		}
		return f.Success(rows, func(w io.Writer) error {
			return renderList(w, rows)
		})
	})
}

func listRow(inv *invoice.Invoice) ListRow {
	return ListRow{
		Number:      inv.Number(),
		Receiver:    inv.Receiver.Name,
		InvoiceDate: inv.Details.InvoiceDate,
		DueDate:     inv.Details.DueDate,
		Total:       inv.Details.TotalAmount,
		Currency:    inv.Details.Currency,
	}
}

func renderList(w io.Writer, rows []ListRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No saved invoices.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tRECEIVER\tDATE\tDUE\tTOTAL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f %s\n", r.Number, r.Receiver, r.InvoiceDate, r.DueDate, r.Total, r.Currency)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d invoice(s)\n", len(rows))
	return err
}
