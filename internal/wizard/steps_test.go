package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/invoify/internal/invoice"
)

func TestStepTable(t *testing.T) {
	tests := []struct {
		step   Step
		label  string
		fields []invoice.Field
	}{
		{StepBillFrom, "Bill From", []invoice.Field{invoice.FieldSender}},
		{StepBillTo, "Bill To", []invoice.Field{invoice.FieldReceiver}},
		{StepDetails, "Invoice Details", []invoice.Field{invoice.FieldInvoiceNumber, invoice.FieldInvoiceDate, invoice.FieldDueDate}},
		{StepItems, "Items", []invoice.Field{invoice.FieldItems}},
		{StepPayment, "Payment Info", []invoice.Field{invoice.FieldPaymentInformation}},
		{StepSummary, "Summary", nil},
	}

	assert.Len(t, Steps(), len(tests))
	for i, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.step, Steps()[i])
			assert.Equal(t, tt.label, tt.step.Label())
			assert.Equal(t, tt.label, tt.step.String())
			assert.Equal(t, tt.fields, tt.step.Fields())
			assert.Equal(t, tt.step == StepSummary, tt.step.Last())
		})
	}
}

func TestStepFieldsAreDisjoint(t *testing.T) {
	owner := make(map[invoice.Field]Step)
	for _, s := range Steps() {
		for _, f := range s.Fields() {
			prev, taken := owner[f]
			assert.False(t, taken, "field %s owned by both %s and %s", f, prev, s)
			owner[f] = s
		}
	}
}

func TestStepOutOfRange(t *testing.T) {
	assert.Equal(t, "Step(9)", Step(9).Label())
	assert.Nil(t, Step(-1).Fields())
}
