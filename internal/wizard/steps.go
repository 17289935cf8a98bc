package wizard

import (
	"fmt"

	"github.com/roach88/invoify/internal/invoice"
)

// Step is one page of the wizard.
type Step int

const (
	StepBillFrom Step = iota
	StepBillTo
	StepDetails
	StepItems
	StepPayment
	StepSummary
)

type stepDef struct {
	label  string
	fields []invoice.Field
}

// steps is the fixed step table. Each step owns a disjoint set of fields;
// a step with no fields is never validated.
var steps = [...]stepDef{
	StepBillFrom: {"Bill From", []invoice.Field{invoice.FieldSender}},
	StepBillTo:   {"Bill To", []invoice.Field{invoice.FieldReceiver}},
	StepDetails: {"Invoice Details", []invoice.Field{
		invoice.FieldInvoiceNumber,
		invoice.FieldInvoiceDate,
		invoice.FieldDueDate,
	}},
	StepItems:   {"Items", []invoice.Field{invoice.FieldItems}},
	StepPayment: {"Payment Info", []invoice.Field{invoice.FieldPaymentInformation}},
	StepSummary: {"Summary", nil},
}

// lastStep is the submission step.
const lastStep = Step(len(steps) - 1)

// Steps returns every step in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i := range steps {
		out[i] = Step(i)
	}
	return out
}

// Label is the human-readable step title.
func (s Step) Label() string {
	if !s.valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return steps[s].label
}

// Fields returns the fields validated before leaving s.
func (s Step) Fields() []invoice.Field {
	if !s.valid() {
		return nil
	}
	return steps[s].fields
}

// Last reports whether s is the submission step.
func (s Step) Last() bool {
	return s == lastStep
}

// String implements fmt.Stringer.
func (s Step) String() string {
	return s.Label()
}

func (s Step) valid() bool {
	return s >= 0 && int(s) < len(steps)
}
