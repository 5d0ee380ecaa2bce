package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "simple lowercase",
			input:    "makan siang",
			expected: "makan siang",
		},
		{
			name:     "uppercase is lowered",
			input:    "Bayar Listrik PLN",
			expected: "bayar listrik pln",
		},
		{
			name:     "digits and punctuation become separators",
			input:    "gojek 2x Rp15.000!",
			expected: "gojek x rp",
		},
		{
			name:     "consecutive separators collapse",
			input:    "kopi   --  kenangan",
			expected: "kopi kenangan",
		},
		{
			name:     "leading and trailing noise trimmed",
			input:    "  *** warteg ***  ",
			expected: "warteg",
		},
		{
			name:     "only digits and punctuation",
			input:    "12345 !!! 67.89",
			expected: "",
		},
		{
			name:     "non-ascii letters are stripped",
			input:    "café à la carte",
			expected: "caf la carte",
		},
		{
			name:     "tabs and newlines",
			input:    "makan\tsiang\ndi warteg",
			expected: "makan siang di warteg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"makan siang di warteg",
		"Bayar Tagihan Internet 2024!",
		"   x   y   z   ",
		"!!!@@@###",
		"Grab Bike ke Stasiun MRT",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", input)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty yields nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "punctuation-only yields nil",
			input:    "123 !!!",
			expected: nil,
		},
		{
			name:     "basic split",
			input:    "Makan siang, di warteg!",
			expected: []string{"makan", "siang", "di", "warteg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}
