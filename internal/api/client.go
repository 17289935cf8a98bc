// Package api is the client for the remote invoice service that renders
// PDFs, converts invoices to other file formats, and e-mails them.
//
// Every call is a single JSON POST bounded by the client timeout. Failures of
// any kind come back as *RemoteError carrying a message fit for display; no
// call is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/roach88/invoify/internal/ids"
	"github.com/roach88/invoify/internal/invoice"
)

// DefaultTimeout bounds every API call. PDF rendering is the slow one.
const DefaultTimeout = 60 * time.Second

// RequestIDHeader carries a per-call id for correlating client and server logs.
const RequestIDHeader = "X-Request-Id"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 64 << 20

// Client talks to the invoice API.
type Client struct {
	baseURL string
	http    *http.Client
	ids     ids.Generator
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client may be
// shared; options applied after it never modify it.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-call timeout on a copy of the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		h := *c.http
		h.Timeout = d
		c.http = &h
	}
}

// WithRequestIDs sets the request id generator. Defaults to ids.Requests.
func WithRequestIDs(g ids.Generator) Option {
	return func(c *Client) { c.ids = g }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:3000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		ids:     ids.Requests(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GeneratePDF renders inv as a PDF. The PDF comes back base64 encoded.
func (c *Client) GeneratePDF(ctx context.Context, inv *invoice.Invoice) (PDFResponse, error) {
	var resp PDFResponse
	err := c.post(ctx, "generate PDF", "/invoice/generate", inv, &resp, "Failed to generate PDF")
	return resp, err
}

// Export converts inv to format. The file comes back base64 encoded.
func (c *Client) Export(ctx context.Context, inv *invoice.Invoice, format ExportFormat) (ExportResponse, error) {
	var resp ExportResponse
	body := exportRequest{Invoice: inv, Format: format}
	err := c.post(ctx, "export invoice", "/invoice/export", body, &resp, "Failed to export invoice")
	return resp, err
}

// SendEmail e-mails the rendered invoice to recipient.
func (c *Client) SendEmail(ctx context.Context, inv *invoice.Invoice, recipient string) (SendResponse, error) {
	var resp SendResponse
	body := sendRequest{Invoice: inv, RecipientEmail: recipient}
	err := c.post(ctx, "send email", "/invoice/send", body, &resp, "Failed to send email")
	return resp, err
}

type result interface {
	ok() bool
	reason() string
}

// post sends body as JSON and decodes the reply into out. The API reports
// failures in the body, often with a non-2xx status, so the body is decoded
// before the status is judged.
func (c *Client) post(ctx context.Context, op, path string, body any, out result, fallback string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &RemoteError{Op: op, Message: fmt.Sprintf("encode request: %v", err), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &RemoteError{Op: op, Message: err.Error(), Err: err}
	}
	requestID := c.ids.Generate()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With("op", op, "request_id", requestID)
	logger.Debug("calling invoice API", "url", req.URL.String())
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		msg := err.Error()
		if isTimeout(err) {
			msg = "request timed out"
		}
		logger.Warn("invoice API unreachable", "error", err)
		return &RemoteError{Op: op, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		msg := err.Error()
		if isTimeout(err) {
			msg = "request timed out"
		}
		return &RemoteError{Op: op, Message: msg, Status: resp.StatusCode, Err: err}
	}
	logger.Debug("invoice API replied", "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))

	decodeErr := json.Unmarshal(raw, out)
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	switch {
	case decodeErr == nil && out.ok() && success:
		return nil
	case decodeErr == nil && out.reason() != "":
		return &RemoteError{Op: op, Message: out.reason(), Status: resp.StatusCode}
	case !success:
		return &RemoteError{Op: op, Message: fmt.Sprintf("%s (HTTP %d)", fallback, resp.StatusCode), Status: resp.StatusCode}
	case decodeErr != nil:
		return &RemoteError{Op: op, Message: fmt.Sprintf("%s: unreadable response", fallback), Status: resp.StatusCode, Err: decodeErr}
	default:
		return &RemoteError{Op: op, Message: fallback, Status: resp.StatusCode}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
