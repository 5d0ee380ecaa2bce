package training

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dompet/categorizer/internal/logging"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" xml ", FormatXML, false},
		{"json", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadCSV(t *testing.T) {
	examples, err := Load(filepath.Join("testdata", "transactions.csv"), FormatCSV, logging.NewNop())
	require.NoError(t, err)

	assert.Len(t, examples, 12)
	assert.Equal(t, "makan siang di warteg dekat kantor", examples[0].Description)
	assert.Equal(t, "Makanan & Minuman", examples[0].Category)
}

func TestLoadCSVDropsBadRows(t *testing.T) {
	examples, err := Load(filepath.Join("testdata", "messy.csv"), FormatCSV, logging.NewNop())
	require.NoError(t, err)

	// Empty description, empty category and unknown category rows are
	// dropped; only the two fully labeled rows survive.
	require.Len(t, examples, 2)
	assert.Equal(t, "makan siang di warteg", examples[0].Description)
	assert.Equal(t, "bayar tagihan listrik", examples[1].Description)
}

func TestLoadXML(t *testing.T) {
	examples, err := Load(filepath.Join("testdata", "transactions.xml"), FormatXML, logging.NewNop())
	require.NoError(t, err)

	require.Len(t, examples, 3, "the record without a description is dropped")
	assert.Equal(t, "makan siang di warteg", examples[0].Description)
	assert.Equal(t, "Makanan & Minuman", examples[0].Category)
	assert.Equal(t, "Tagihan", examples[2].Category)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.csv"), FormatCSV, logging.NewNop())
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "nope.xml"), FormatXML, logging.NewNop())
	assert.Error(t, err)
}

func TestLoadEmptyDatasetErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	writeFile(t, path, "description,category\n")

	_, err := Load(path, FormatCSV, logging.NewNop())
	assert.ErrorContains(t, err, "no valid examples")
}
