package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/drafts"
	"github.com/roach88/invoify/internal/invoice"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <invoice-number>",
		Short: "Show one saved invoice",
		Long: `Show a saved invoice with its line items and a freshly computed summary.

When several saved invoices share the number, the first one saved is shown.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, number string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		inv, err := findInvoice(cmd.Context(), store, f, number)
		if err != nil {
			return err
		}
		inv.RecomputeTotals()

		return f.Success(inv, func(w io.Writer) error {
			return renderInvoice(w, inv)
		})
	})
}

// renderInvoice writes the human-readable form of inv. Totals are printed
// as stored; callers recompute first when they need fresh figures.
func renderInvoice(w io.Writer, inv *invoice.Invoice) error {
	d := inv.Details
	money := func(v float64) string {
		return invoice.FormatAmount(v, d.Currency, d.Language)
	}

	fmt.Fprintf(w, "Invoice %s\n", d.InvoiceNumber)
	fmt.Fprintf(w, "  Date:     %s\n", d.InvoiceDate)
	fmt.Fprintf(w, "  Due:      %s\n", d.DueDate)
	if d.PurchaseOrderNumber != "" {
		fmt.Fprintf(w, "  PO:       %s\n", d.PurchaseOrderNumber)
	}
	fmt.Fprintf(w, "  Currency: %s\n", d.Currency)

	renderParty(w, "From", inv.Sender)
	renderParty(w, "To", inv.Receiver)

	fmt.Fprintln(w, "\nItems:")
	if len(d.Items) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  #\tNAME\tQTY\tUNIT PRICE\tTOTAL")
		for i, item := range d.Items {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n",
				i+1, item.Name, strconv.FormatFloat(item.Quantity, 'f', -1, 64),
				money(item.UnitPrice), money(item.Total))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if p := d.PaymentInformation; p != nil {
		fmt.Fprintln(w, "\nPayment:")
		fmt.Fprintf(w, "  Bank:    %s\n", p.BankName)
		fmt.Fprintf(w, "  Account: %s\n", p.AccountName)
		fmt.Fprintf(w, "  Number:  %s\n", p.AccountNumber)
	}

	if d.PaymentTerms != "" {
		fmt.Fprintf(w, "\nTerms: %s\n", d.PaymentTerms)
	}
	if d.AdditionalNotes != "" {
		fmt.Fprintf(w, "Notes: %s\n", d.AdditionalNotes)
	}

	fmt.Fprintf(w, "\nSubtotal: %s\n", money(d.SubTotal))
	_, err := fmt.Fprintf(w, "Total:    %s\n", money(d.TotalAmount))
	return err
}

func renderParty(w io.Writer, title string, p invoice.Party) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintf(w, "  %s\n", p.Name)

	var place []string
	for _, s := range []string{p.Address, strings.TrimSpace(p.ZipCode + " " + p.City), p.Country} {
		if s != "" {
			place = append(place, s)
		}
	}
	if len(place) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(place, ", "))
	}
	if p.Email != "" {
		fmt.Fprintf(w, "  %s\n", p.Email)
	}
	if p.Phone != "" {
		fmt.Fprintf(w, "  %s\n", p.Phone)
	}
	for _, ci := range p.CustomInputs {
		fmt.Fprintf(w, "  %s: %s\n", ci.Key, ci.Value)
	}
}
