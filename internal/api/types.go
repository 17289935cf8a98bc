package api

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/roach88/invoify/internal/invoice"
)

// ExportFormat is a file format the API can export an invoice to.
type ExportFormat string

const (
	FormatJSON ExportFormat = "JSON"
	FormatCSV  ExportFormat = "CSV"
	FormatXML  ExportFormat = "XML"
	FormatXLSX ExportFormat = "XLSX"
	FormatDOCX ExportFormat = "DOCX"
)

// ExportFormats lists every supported format.
var ExportFormats = []ExportFormat{FormatJSON, FormatCSV, FormatXML, FormatXLSX, FormatDOCX}

// ParseExportFormat accepts a format name in any case.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ExportFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q: must be one of %v", s, ExportFormats)
}

// Extension is the file extension for the format, without the dot.
func (f ExportFormat) Extension() string {
	return strings.ToLower(string(f))
}

// PDFResponse is the body of POST /invoice/generate.
type PDFResponse struct {
	Success bool   `json:"success"`
	PDF     string `json:"pdf,omitempty"` // base64
	Error   string `json:"error,omitempty"`
}

// ExportResponse is the body of POST /invoice/export.
type ExportResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"` // base64
	Error   string `json:"error,omitempty"`
}

// SendResponse is the body of POST /invoice/send.
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r *PDFResponse) ok() bool       { return r.Success }
func (r *PDFResponse) reason() string { return r.Error }

func (r *ExportResponse) ok() bool       { return r.Success }
func (r *ExportResponse) reason() string { return r.Error }

func (r *SendResponse) ok() bool       { return r.Success }
func (r *SendResponse) reason() string { return r.Error }

type exportRequest struct {
	Invoice *invoice.Invoice `json:"invoice"`
	Format  ExportFormat     `json:"format"`
}

type sendRequest struct {
	Invoice        *invoice.Invoice `json:"invoice"`
	RecipientEmail string           `json:"recipientEmail"`
}

// DecodePayload decodes a base64 file payload. A data URL prefix such as
// "data:application/pdf;base64," is stripped first.
func DecodePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return data, nil
}
