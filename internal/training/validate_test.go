package training

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dompet/categorizer/internal/logging"
)

func TestValidateCleanDataset(t *testing.T) {
	warnings := Validate(balancedExamples(), logging.NewNop())
	assert.Empty(t, warnings)
}

func TestValidateWarnings(t *testing.T) {
	long := strings.Repeat("x", maxDescriptionLength+1)
	examples := []Example{
		{"makan siang warteg", "Makanan & Minuman"},
		{"makan siang warteg", "Makanan & Minuman"},
		{long, "Transportasi"},
	}

	warnings := Validate(examples, logging.NewNop())

	joined := strings.Join(warnings, "\n")
	assert.Contains(t, joined, "Transportasi", "small category is flagged")
	assert.Contains(t, joined, "duplicate")
	assert.Contains(t, joined, "longer than")
}
