package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in   string
		want ExportFormat
		ok   bool
	}{
		{"JSON", FormatJSON, true},
		{"csv", FormatCSV, true},
		{" xml ", FormatXML, true},
		{"Xlsx", FormatXLSX, true},
		{"docx", FormatDOCX, true},
		{"pdf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportFormatExtension(t *testing.T) {
	assert.Equal(t, "xlsx", FormatXLSX.Extension())
	assert.Equal(t, "json", FormatJSON.Extension())
}

func TestDecodePayload(t *testing.T) {
	data, err := DecodePayload("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = DecodePayload("data:application/pdf;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = DecodePayload("!!not base64!!")
	assert.Error(t, err)
}
