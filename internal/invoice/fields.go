package invoice

// Field names a validatable path in the invoice document.
type Field string

const (
	FieldSender             Field = "sender"
	FieldReceiver           Field = "receiver"
	FieldInvoiceNumber      Field = "details.invoiceNumber"
	FieldInvoiceDate        Field = "details.invoiceDate"
	FieldDueDate            Field = "details.dueDate"
	FieldItems              Field = "details.items"
	FieldPaymentInformation Field = "details.paymentInformation"
)

// present reports whether an optional field is set on inv. Absent optional
// fields have nothing to validate.
func (f Field) present(inv *Invoice) bool {
	switch f {
	case FieldPaymentInformation:
		return inv.Details.PaymentInformation != nil
	default:
		return true
	}
}

// String returns the dotted path.
func (f Field) String() string {
	return string(f)
}
