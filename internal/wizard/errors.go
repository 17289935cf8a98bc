package wizard

import (
	"errors"
	"fmt"

	"github.com/roach88/invoify/internal/invoice"
)

var (
	// ErrSaveFailed wraps any failure to persist the submitted invoice.
	// The form is left as it was and can be submitted again.
	ErrSaveFailed = errors.New("failed to save invoice")

	// ErrSubmitting is returned while a submission is already in flight.
	ErrSubmitting = errors.New("submission already in progress")
)

// StepError reports the fields that kept the wizard on Step.
type StepError struct {
	Step   Step
	Errors []invoice.FieldError
}

// Error implements the error interface.
func (e *StepError) Error() string {
	switch len(e.Errors) {
	case 0:
		return fmt.Sprintf("step %q is invalid", e.Step.Label())
	case 1:
		return fmt.Sprintf("step %q: %s", e.Step.Label(), e.Errors[0].Error())
	default:
		return fmt.Sprintf("step %q: %s (and %d more)", e.Step.Label(), e.Errors[0].Error(), len(e.Errors)-1)
	}
}

// IsStepError reports whether err carries per-field validation errors.
func IsStepError(err error) bool {
	var se *StepError
	return errors.As(err, &se)
}
