package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/invoify/internal/api"
	"github.com/roach88/invoify/internal/config"
	"github.com/roach88/invoify/internal/drafts"
	"github.com/roach88/invoify/internal/ids"
	"github.com/roach88/invoify/internal/invoice"
	"github.com/roach88/invoify/internal/kv"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DB      string
	APIURL  string
	EnvFile string

	// Config is resolved before any subcommand runs.
	Config config.Config

	// Now, SessionIDs, RequestIDs and HTTPClient allow overriding the clock,
	// id generators and transport (for testing). Nil means wall clock,
	// prefixed UUIDv7 ids and a fresh HTTP client.
	Now        func() time.Time
	SessionIDs ids.Generator
	RequestIDs ids.Generator
	HTTPClient *http.Client
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the invoify CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoify",
		Short: "Create, store and export invoices",
		Long: `invoify walks you through an invoice step by step, keeps the result as a
local draft, and uses the invoice API to render PDFs, export other formats
and send e-mail.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				opts.Format = "text"
				return opts.formatter(cmd).Fail(ExitCommandError, ErrCodeInput, msg, nil, nil)
			}
			configureLogging(cmd, opts.Verbose)
			if err := resolveConfig(opts); err != nil {
				return opts.formatter(cmd).Fail(ExitCommandError, ErrCodeInput, "invalid configuration", nil, err)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to the drafts database (env "+config.EnvDB+")")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "invoice API base URL (env "+config.EnvAPIURL+")")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load")

	// Add subcommands
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewPDFCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSendCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// configureLogging installs the default slog handler on stderr.
func configureLogging(cmd *cobra.Command, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// resolveConfig loads environment settings and applies flag overrides.
func resolveConfig(opts *RootOptions) error {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return err
	}
	if opts.DB != "" {
		cfg.DBPath = opts.DB
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	opts.Config = cfg
	return nil
}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}

// openDrafts opens the configured drafts database, creating its directory
// on first use. The returned func closes it.
func (o *RootOptions) openDrafts() (*drafts.Store, func(), error) {
	path := o.Config.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}
	slog.Debug("opening drafts database", "path", path)
	backing, err := kv.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if closeErr := backing.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}
	return drafts.New(backing, drafts.WithLogger(slog.Default())), closeFn, nil
}

// apiClient returns a client for the configured invoice API.
func (o *RootOptions) apiClient() *api.Client {
	var opts []api.Option
	if o.HTTPClient != nil {
		opts = append(opts, api.WithHTTPClient(o.HTTPClient))
	}
	opts = append(opts,
		api.WithTimeout(o.Config.APITimeout),
		api.WithLogger(slog.Default()),
	)
	if o.RequestIDs != nil {
		opts = append(opts, api.WithRequestIDs(o.RequestIDs))
	}
	return api.New(o.Config.APIURL, opts...)
}

// withDrafts opens the store, runs fn, and closes the store. Failing to
// open is reported as a command error.
func withDrafts(opts *RootOptions, f *OutputFormatter, fn func(*drafts.Store) error) error {
	store, closeFn, err := opts.openDrafts()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStorage, "failed to open drafts database", opts.Config.DBPath, err)
	}
	defer closeFn()
	return fn(store)
}

// findInvoice looks up a saved invoice by the NFC form of number, reporting
// not-found and storage failures through f.
func findInvoice(ctx context.Context, store *drafts.Store, f *OutputFormatter, number string) (*invoice.Invoice, error) {
	number = invoice.NormalizeNumber(number)
	inv, err := store.FindByNumber(ctx, number)
	if errors.Is(err, drafts.ErrNotFound) {
		return nil, f.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("no saved invoice numbered %q", number), nil, err)
	}
	if err != nil {
		return nil, f.Fail(ExitFailure, ErrCodeStorage, "failed to read saved invoices", nil, err)
	}
	return &inv, nil
}
