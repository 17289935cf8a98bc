package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/invoify/internal/drafts"
	"github.com/roach88/invoify/internal/invoice"
	"github.com/roach88/invoify/internal/wizard"
)

// errDiscarded means the user declined to save at the summary step.
var errDiscarded = errors.New("invoice discarded")

// CreateResult is the data of a finished create.
type CreateResult struct {
	Saved   bool             `json:"saved"`
	Session string           `json:"session"`
	Invoice *invoice.Invoice `json:"invoice,omitempty"`
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice with the step-by-step wizard",
		Long: `Create an invoice by walking through the wizard steps:

  1. Bill From        sender details
  2. Bill To          receiver details
  3. Invoice Details  number, dates, currency
  4. Items            at least one line item
  5. Payment Info     optional bank details
  6. Summary          review totals and save

Each step is checked before moving on. Type :back at any prompt to return
to the previous step. An empty answer keeps the value shown in brackets
and "-" clears it.

With --from, the draft is read from a YAML or JSON file and submitted
without prompting. The first step that fails validation is reported.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(rootOpts, from, cmd)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "submit the draft in this YAML or JSON file without prompting")

	return cmd
}

func runCreate(opts *RootOptions, from string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	var form *invoice.Invoice
	if from != "" {
		var err error
		form, err = loadDraft(from, opts.now())
		if errors.Is(err, fs.ErrNotExist) {
			return f.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("draft file not found: %s", from), nil, err)
		}
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeInput, "failed to read draft file", from, err)
		}
	}

	validator, err := invoice.NewValidator()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to load invoice schema", nil, err)
	}

	return withDrafts(opts, f, func(store *drafts.Store) error {
		wopts := []wizard.Option{
			wizard.WithClock(opts.now),
			wizard.WithLogger(slog.Default()),
		}
		if opts.SessionIDs != nil {
			wopts = append(wopts, wizard.WithSessionIDs(opts.SessionIDs))
		}
		ctl := wizard.New(form, validator, store, wopts...)

		if from != "" {
			err = submitAll(ctx, ctl)
		} else {
			err = runWizard(ctx, ctl, newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()))
		}

		var stepErr *wizard.StepError
		switch {
		case errors.As(err, &stepErr):
			return f.Fail(ExitFailure, ErrCodeValidation, stepErr.Error(), stepErr.Errors, err)
		case errors.Is(err, wizard.ErrSaveFailed):
			return f.Fail(ExitFailure, ErrCodeStorage, "failed to save invoice", nil, err)
		case errors.Is(err, errDiscarded):
			result := CreateResult{Saved: false, Session: ctl.SessionID()}
			return f.Success(result, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Invoice discarded.")
				return err
			})
		case err != nil:
			return f.Fail(ExitFailure, ErrCodeInput, "wizard stopped", nil, err)
		}

		inv := ctl.Form()
		result := CreateResult{Saved: true, Session: ctl.SessionID(), Invoice: inv}
		return f.Success(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Saved invoice %s (total %.2f %s)\n",
				inv.Number(), inv.Details.TotalAmount, inv.Details.Currency)
			return err
		})
	})
}

// loadDraft reads a draft from a YAML file. JSON files parse too. Unknown
// keys are rejected so typos do not silently drop data.
func loadDraft(path string, now time.Time) (*invoice.Invoice, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var inv invoice.Invoice
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&inv); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	inv.FillDefaults(now)
	return &inv, nil
}

// submitAll advances through every step without prompting.
func submitAll(ctx context.Context, ctl *wizard.Controller) error {
	for {
		outcome, err := ctl.Advance(ctx)
		if err != nil {
			return err
		}
		if outcome == wizard.Submitted {
			return nil
		}
	}
}

// runWizard prompts for each step until the invoice is saved or discarded.
func runWizard(ctx context.Context, ctl *wizard.Controller, p *prompter) error {
	total := len(wizard.Steps())

	for !ctl.Done() {
		step := ctl.Current()
		fmt.Fprintf(p.out, "\n== Step %d/%d: %s ==\n", int(step)+1, total, step.Label())

		err := askStep(p, step, ctl.Form())
		if errors.Is(err, errBack) {
			if !ctl.Retreat() {
				fmt.Fprintln(p.out, "Already at the first step.")
			}
			continue
		}
		if err != nil {
			return err
		}

		if err := advance(ctx, ctl, p); err != nil {
			var stepErr *wizard.StepError
			if errors.As(err, &stepErr) {
				printFieldErrors(p.out, stepErr.Errors)
				continue
			}
			return err
		}
	}
	return nil
}

// advance moves the wizard forward, offering to retry a failed save.
func advance(ctx context.Context, ctl *wizard.Controller, p *prompter) error {
	for {
		_, err := ctl.Advance(ctx)
		if !errors.Is(err, wizard.ErrSaveFailed) {
			return err
		}
		fmt.Fprintf(p.out, "Saving failed: %v\n", err)
		retry, promptErr := p.confirm("Try again?", true)
		if promptErr != nil || !retry {
			return err
		}
	}
}

func printFieldErrors(w io.Writer, errs []invoice.FieldError) {
	fmt.Fprintln(w, "Please fix the following:")
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s: %s\n", e.Field, e.Message)
	}
}

func askStep(p *prompter, step wizard.Step, form *invoice.Invoice) error {
	switch step {
	case wizard.StepBillFrom:
		return askParty(p, &form.Sender)
	case wizard.StepBillTo:
		return askParty(p, &form.Receiver)
	case wizard.StepDetails:
		return askDetails(p, &form.Details)
	case wizard.StepItems:
		return askItems(p, &form.Details)
	case wizard.StepPayment:
		return askPayment(p, &form.Details)
	case wizard.StepSummary:
		return askSummary(p, form)
	default:
		return fmt.Errorf("unknown step %v", step)
	}
}

// ask runs prompts in order, stopping at the first error.
func ask(p *prompter, prompts ...func(*prompter) error) error {
	for _, prompt := range prompts {
		if err := prompt(p); err != nil {
			return err
		}
	}
	return nil
}

func textInto(label string, dst *string) func(*prompter) error {
	return func(p *prompter) error {
		v, err := p.text(label, *dst)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func askParty(p *prompter, party *invoice.Party) error {
	return ask(p,
		textInto("Name", &party.Name),
		textInto("Address", &party.Address),
		textInto("Zip code", &party.ZipCode),
		textInto("City", &party.City),
		textInto("Country", &party.Country),
		textInto("Email", &party.Email),
		textInto("Phone", &party.Phone),
	)
}

func askDetails(p *prompter, d *invoice.Details) error {
	return ask(p,
		textInto("Invoice number", &d.InvoiceNumber),
		textInto("Invoice date (MM/DD/YYYY)", &d.InvoiceDate),
		textInto("Due date (MM/DD/YYYY)", &d.DueDate),
		textInto("Purchase order number", &d.PurchaseOrderNumber),
		textInto("Currency", &d.Currency),
		textInto("Payment terms", &d.PaymentTerms),
		textInto("Additional notes", &d.AdditionalNotes),
	)
}

func askItems(p *prompter, d *invoice.Details) error {
	if len(d.Items) > 0 {
		fmt.Fprintln(p.out, "Current items:")
		for i, item := range d.Items {
			fmt.Fprintf(p.out, "  %d. %s  %g x %.2f\n", i+1, item.Name, item.Quantity, item.UnitPrice)
		}
		restart, err := p.confirm("Remove all items and start over?", false)
		if err != nil {
			return err
		}
		if restart {
			d.Items = []invoice.LineItem{}
		}
	}

	for {
		add, err := p.confirm("Add an item?", len(d.Items) == 0)
		if err != nil {
			return err
		}
		if !add {
			return nil
		}

		var item invoice.LineItem
		err = ask(p,
			textInto("  Name", &item.Name),
			textInto("  Description", &item.Description),
		)
		if err != nil {
			return err
		}
		if item.Quantity, err = p.number("  Quantity", 1); err != nil {
			return err
		}
		if item.UnitPrice, err = p.number("  Unit price", 0); err != nil {
			return err
		}
		item.Total = invoice.LineTotal(item)
		d.Items = append(d.Items, item)
	}
}

func askPayment(p *prompter, d *invoice.Details) error {
	want, err := p.confirm("Add payment information?", d.PaymentInformation != nil)
	if err != nil {
		return err
	}
	if !want {
		d.PaymentInformation = nil
		return nil
	}

	info := invoice.PaymentInformation{}
	if d.PaymentInformation != nil {
		info = *d.PaymentInformation
	}
	err = ask(p,
		textInto("Bank name", &info.BankName),
		textInto("Account name", &info.AccountName),
		textInto("Account number", &info.AccountNumber),
	)
	if err != nil {
		return err
	}
	d.PaymentInformation = &info
	return nil
}

func askSummary(p *prompter, form *invoice.Invoice) error {
	form.RecomputeTotals()
	fmt.Fprintln(p.out)
	if err := renderInvoice(p.out, form); err != nil {
		return err
	}
	save, err := p.confirm("Save invoice?", true)
	if err != nil {
		return err
	}
	if !save {
		return errDiscarded
	}
	return nil
}
