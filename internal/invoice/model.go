package invoice

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the MM/DD/YYYY layout used for invoice and due dates.
const DateLayout = "01/02/2006"

// Default values for a freshly opened draft.
const (
	DefaultCurrency    = "USD"
	DefaultLanguage    = "en"
	DefaultPDFTemplate = 1
)

// Invoice is the aggregate edited by the wizard.
type Invoice struct {
	Sender   Party   `json:"sender" yaml:"sender"`
	Receiver Party   `json:"receiver" yaml:"receiver"`
	Details  Details `json:"details" yaml:"details"`
}

// Party is either the issuer or the billed party.
type Party struct {
	Name         string        `json:"name" yaml:"name"`
	Address      string        `json:"address" yaml:"address"`
	ZipCode      string        `json:"zipCode" yaml:"zipCode"`
	City         string        `json:"city" yaml:"city"`
	Country      string        `json:"country" yaml:"country"`
	Email        string        `json:"email" yaml:"email"`
	Phone        string        `json:"phone" yaml:"phone"`
	CustomInputs []CustomInput `json:"customInputs,omitempty" yaml:"customInputs,omitempty"`
}

// CustomInput is a free-form key/value line printed under a party.
type CustomInput struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// LineItem is one billed line. Total is derived from Quantity and UnitPrice.
type LineItem struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unitPrice" yaml:"unitPrice"`
	Total       float64 `json:"total" yaml:"total"`
}

// PaymentInformation tells the receiver where to pay.
type PaymentInformation struct {
	BankName      string `json:"bankName" yaml:"bankName"`
	AccountName   string `json:"accountName" yaml:"accountName"`
	AccountNumber string `json:"accountNumber" yaml:"accountNumber"`
}

// TaxDetails is reserved; nothing computes it.
type TaxDetails struct {
	Amount     float64 `json:"amount" yaml:"amount"`
	TaxID      string  `json:"taxID" yaml:"taxID"`
	AmountType string  `json:"amountType" yaml:"amountType"`
}

// DiscountDetails is reserved; nothing computes it.
type DiscountDetails struct {
	Amount     float64 `json:"amount" yaml:"amount"`
	AmountType string  `json:"amountType" yaml:"amountType"`
}

// ShippingDetails is reserved; nothing computes it.
type ShippingDetails struct {
	Cost     float64 `json:"cost" yaml:"cost"`
	CostType string  `json:"costType" yaml:"costType"`
}

// Signature is a drawn, typed or uploaded signature rendered by the API.
type Signature struct {
	Data       string `json:"data" yaml:"data"`
	FontFamily string `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
}

// Details holds invoice metadata, line items and totals.
type Details struct {
	InvoiceLogo         string              `json:"invoiceLogo,omitempty" yaml:"invoiceLogo,omitempty"`
	InvoiceNumber       string              `json:"invoiceNumber" yaml:"invoiceNumber"`
	InvoiceDate         string              `json:"invoiceDate" yaml:"invoiceDate"`
	DueDate             string              `json:"dueDate" yaml:"dueDate"`
	PurchaseOrderNumber string              `json:"purchaseOrderNumber,omitempty" yaml:"purchaseOrderNumber,omitempty"`
	Currency            string              `json:"currency" yaml:"currency"`
	Language            string              `json:"language" yaml:"language"`
	Items               []LineItem          `json:"items" yaml:"items"`
	PaymentInformation  *PaymentInformation `json:"paymentInformation,omitempty" yaml:"paymentInformation,omitempty"`
	TaxDetails          *TaxDetails         `json:"taxDetails,omitempty" yaml:"taxDetails,omitempty"`
	DiscountDetails     *DiscountDetails    `json:"discountDetails,omitempty" yaml:"discountDetails,omitempty"`
	ShippingDetails     *ShippingDetails    `json:"shippingDetails,omitempty" yaml:"shippingDetails,omitempty"`
	SubTotal            float64             `json:"subTotal" yaml:"subTotal"`
	TotalAmount         float64             `json:"totalAmount" yaml:"totalAmount"`
	TotalAmountInWords  string              `json:"totalAmountInWords" yaml:"totalAmountInWords"`
	AdditionalNotes     string              `json:"additionalNotes,omitempty" yaml:"additionalNotes,omitempty"`
	PaymentTerms        string              `json:"paymentTerms" yaml:"paymentTerms"`
	Signature           *Signature          `json:"signature,omitempty" yaml:"signature,omitempty"`
	UpdatedAt           string              `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	PDFTemplate         int                 `json:"pdfTemplate" yaml:"pdfTemplate"`
}

// NewDraft returns the empty invoice a wizard session starts from.
// Invoice and due date both default to now.
func NewDraft(now time.Time) *Invoice {
	date := now.Format(DateLayout)
	return &Invoice{
		Details: Details{
			InvoiceDate: date,
			DueDate:     date,
			Currency:    DefaultCurrency,
			Language:    DefaultLanguage,
			Items:       []LineItem{},
			PDFTemplate: DefaultPDFTemplate,
		},
	}
}

// FillDefaults sets the draft defaults on any field that is still empty,
// leaving supplied values alone. Used for drafts loaded from a file.
func (inv *Invoice) FillDefaults(now time.Time) {
	d := &inv.Details
	date := now.Format(DateLayout)
	if d.InvoiceDate == "" {
		d.InvoiceDate = date
	}
	if d.DueDate == "" {
		d.DueDate = date
	}
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}
	if d.Language == "" {
		d.Language = DefaultLanguage
	}
	if d.PDFTemplate == 0 {
		d.PDFTemplate = DefaultPDFTemplate
	}
	if d.Items == nil {
		d.Items = []LineItem{}
	}
	inv.ClampAmounts()
}

// Number returns the invoice number, the store's identity key.
func (inv *Invoice) Number() string {
	return inv.Details.InvoiceNumber
}

// Clone returns a deep copy. The copy shares nothing with inv.
func (inv *Invoice) Clone() (*Invoice, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("clone invoice: %w", err)
	}
	var out Invoice
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("clone invoice: %w", err)
	}
	return &out, nil
}
