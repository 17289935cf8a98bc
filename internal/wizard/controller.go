// Package wizard drives an invoice through the ordered form steps.
//
// A Controller owns the in-memory draft for one session. Leaving a step
// forward validates only the fields that step owns; going back is never
// blocked. Advancing from the last step submits: totals are recomputed and
// the invoice is handed to a Saver. A failed save leaves the draft intact so
// the user can submit again.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/invoify/internal/ids"
	"github.com/roach88/invoify/internal/invoice"
)

// Outcome says what a successful Advance did.
type Outcome int

const (
	// Moved means the wizard is now on the next step.
	Moved Outcome = iota + 1
	// Submitted means the invoice was saved.
	Submitted
)

// Validator checks a subset of invoice fields.
type Validator interface {
	Validate(inv *invoice.Invoice, fields ...invoice.Field) []invoice.FieldError
}

// Saver persists a submitted invoice.
type Saver interface {
	Save(ctx context.Context, inv *invoice.Invoice) error
}

// Controller is one wizard session.
type Controller struct {
	form      *invoice.Invoice
	validator Validator
	saver     Saver
	now       func() time.Time
	session   string
	logger    *slog.Logger

	mu         sync.Mutex
	current    Step
	submitting bool
	done       bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for the draft defaults and the
// updatedAt stamp.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSessionIDs sets the generator for the session id. Defaults to ids.Sessions.
func WithSessionIDs(g ids.Generator) Option {
	return func(c *Controller) { c.session = g.Generate() }
}

// New starts a session on the first step. A nil form starts from an empty
// draft.
func New(form *invoice.Invoice, validator Validator, saver Saver, opts ...Option) *Controller {
	c := &Controller{
		validator: validator,
		saver:     saver,
		now:       time.Now,
		logger:    slog.Default(),
		current:   StepBillFrom,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == "" {
		c.session = ids.Sessions().Generate()
	}
	if form == nil {
		form = invoice.NewDraft(c.now())
	}
	c.form = form
	c.logger = c.logger.With("session", c.session)
	return c
}

// Form returns the draft being edited. Callers mutate it between steps.
func (c *Controller) Form() *invoice.Invoice {
	return c.form
}

// SessionID identifies this session in logs.
func (c *Controller) SessionID() string {
	return c.session
}

// Current returns the step the wizard is on.
func (c *Controller) Current() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Progress returns the fraction of steps reached, counting the current one.
func (c *Controller) Progress() float64 {
	return float64(c.Current()+1) / float64(len(steps))
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Done reports whether the invoice has been saved.
func (c *Controller) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Advance validates the current step and moves forward, or submits from the
// last step. A validation failure returns a *StepError and leaves the
// wizard where it was.
func (c *Controller) Advance(ctx context.Context) (Outcome, error) {
	step := c.Current()

	if fields := step.Fields(); len(fields) > 0 {
		if errs := c.validator.Validate(c.form, fields...); len(errs) > 0 {
			c.logger.Debug("step invalid", "step", step.Label(), "errors", len(errs))
			return 0, &StepError{Step: step, Errors: errs}
		}
	}

	if step.Last() {
		if err := c.Submit(ctx); err != nil {
			return 0, err
		}
		return Submitted, nil
	}

	c.mu.Lock()
	c.current = step + 1
	c.mu.Unlock()
	c.logger.Debug("step advanced", "from", step.Label(), "to", (step + 1).Label())
	return Moved, nil
}

// Retreat moves back one step and reports whether it moved. It is a no-op
// on the first step.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == StepBillFrom {
		return false
	}
	c.current--
	return true
}

// Submit recomputes the invoice totals and saves the invoice.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitting
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	c.form.RecomputeTotals()
	c.form.Details.InvoiceNumber = invoice.NormalizeNumber(c.form.Details.InvoiceNumber)
	c.form.Details.UpdatedAt = c.now().UTC().Format(time.RFC3339)

	if err := c.saver.Save(ctx, c.form); err != nil {
		c.logger.Warn("saving invoice failed", "number", c.form.Number(), "error", err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	c.mu.Lock()
	c.done = true
	c.mu.Unlock()
	c.logger.Info("invoice saved", "number", c.form.Number(), "total", c.form.Details.TotalAmount)
	return nil
}
