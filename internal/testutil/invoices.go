package testutil

import (
	"github.com/roach88/invoify/internal/invoice"
)

// ValidInvoice returns an invoice that passes every wizard step, numbered
// number, with items 2 x 10 and 1 x 5 (total 25).
//
// Totals are not computed; callers that need them call RecomputeTotals.
func ValidInvoice(number string) *invoice.Invoice {
	inv := invoice.NewDraft(Epoch)
	inv.Sender = invoice.Party{
		Name:    "Acme Corp",
		Address: "1 Main Street",
		ZipCode: "10001",
		City:    "New York",
		Country: "USA",
		Email:   "billing@acme.test",
		Phone:   "+1 555 0100",
	}
	inv.Receiver = invoice.Party{
		Name:    "Globex Ltd",
		Address: "42 High Road",
		ZipCode: "SW1A 1AA",
		City:    "London",
		Country: "UK",
		Email:   "ap@globex.test",
		Phone:   "+44 20 7946 0000",
	}
	inv.Details.InvoiceNumber = number
	inv.Details.DueDate = "04/13/2026"
	inv.Details.PaymentTerms = "Net 30"
	inv.Details.Items = []invoice.LineItem{
		{Name: "Widget", Quantity: 2, UnitPrice: 10},
		{Name: "Gadget", Quantity: 1, UnitPrice: 5},
	}
	return inv
}

// Saved returns ValidInvoice(number) with totals computed, as the wizard
// would have stored it.
func Saved(number string) *invoice.Invoice {
	inv := ValidInvoice(number)
	inv.RecomputeTotals()
	inv.Details.UpdatedAt = Epoch.Format("2006-01-02T15:04:05Z07:00")
	return inv
}
