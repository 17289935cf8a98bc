package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Text(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
		wantErr error
	}{
		{"answer replaces", "new\n", "old", "new", nil},
		{"empty keeps", "\n", "old", "old", nil},
		{"dash clears", "-\n", "old", "", nil},
		{"dash on empty", "-\n", "", "", nil},
		{"surrounding space trimmed", "  new  \n", "", "new", nil},
		{"back", ":back\n", "old", "", errBack},
		{"closed", "", "old", "", errInputClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPrompter(strings.NewReader(tt.input), &bytes.Buffer{})

			got, err := p.text("Label", tt.current)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_Number(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     float64
		rejected []string
	}{
		{"plain", "2.5\n", 2.5, nil},
		{"empty keeps current", "\n", 1, nil},
		{"nan rejected", "NaN\n3\n", 3, []string{"NaN"}},
		{"infinities rejected", "Inf\n-inf\n+Infinity\n4\n", 4, []string{"Inf", "-inf", "+Infinity"}},
		{"dash is not a number", "-\n5\n", 5, []string{"-"}},
		{"words rejected", "lots\n6\n", 6, []string{"lots"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := newPrompter(strings.NewReader(tt.input), &out)

			got, err := p.number("Quantity", 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.rejected), strings.Count(out.String(), "is not a number"))
			for _, r := range tt.rejected {
				assert.Contains(t, out.String(), `"`+r+`" is not a number`)
			}
		})
	}
}
