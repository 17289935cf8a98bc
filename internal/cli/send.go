package cli

import (
	"fmt"
	"io"
	"net/mail"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/drafts"
)

// SendResult is the data of a successful send.
type SendResult struct {
	Number    string `json:"invoiceNumber"`
	Recipient string `json:"recipientEmail"`
	Message   string `json:"message,omitempty"`
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:           "send <invoice-number>",
		Short:         "E-mail a saved invoice",
		Long:          `Ask the invoice API to render a saved invoice and e-mail it to --to.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := mail.ParseAddress(to); err != nil {
				return rootOpts.formatter(cmd).Fail(ExitCommandError, ErrCodeInput, fmt.Sprintf("invalid --to address %q", to), nil, err)
			}
			return runSend(rootOpts, args[0], to, cmd)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient e-mail address")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runSend(opts *RootOptions, number, to string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	return withDrafts(opts, f, func(store *drafts.Store) error {
		ctx := cmd.Context()

		inv, err := findInvoice(ctx, store, f, number)
		if err != nil {
			return err
		}

		resp, err := opts.apiClient().SendEmail(ctx, inv, to)
		if err != nil {
			return remoteFailure(f, err)
		}

		result := SendResult{Number: inv.Number(), Recipient: to, Message: resp.Message}
		return f.Success(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Sent invoice %s to %s\n", inv.Number(), to)
			return err
		})
	})
}
