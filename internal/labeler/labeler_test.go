package labeler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dompet/categorizer/internal/classifier"
	"dompet/categorizer/internal/lexicon"
	"dompet/categorizer/internal/logging"
	"dompet/categorizer/internal/models"
)

// stubGenerator replays canned responses or errors, in call order.
type stubGenerator struct {
	responses []string
	err       error
	calls     int
}

func (s *stubGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", errors.New("no more canned responses")
	}
	r := s.responses[s.calls]
	s.calls++
	return r, nil
}

func newTestLabeler(gen generator) *Labeler {
	logger := logging.NewNop()
	return &Labeler{
		gen:     gen,
		keyword: classifier.NewKeywordClassifier(lexicon.Default(), 0.1, logger),
		logger:  logger,
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     models.Category
		ok       bool
	}{
		{
			name:     "structured response",
			response: "Category: Transportasi\nSome extra text",
			want:     models.CategoryTransportation,
			ok:       true,
		},
		{
			name:     "category mentioned in prose",
			response: "I think this is Makanan & Minuman because of the food words.",
			want:     models.CategoryFoodBeverage,
			ok:       true,
		},
		{
			name:     "structured line with unknown name falls through to prose scan",
			response: "Category: Groceries\nBut Tagihan also fits.",
			want:     models.CategoryBills,
			ok:       true,
		},
		{
			name:     "nothing usable",
			response: "I cannot categorize this.",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCategory(tt.response)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLabelUsesAIResponse(t *testing.T) {
	l := newTestLabeler(&stubGenerator{responses: []string{"Category: Investasi"}})

	category, source, err := l.Label(context.Background(), "setor reksadana rutin")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryInvestment, category)
	assert.Equal(t, SourceAI, source)
}

func TestLabelFallsBackToKeywords(t *testing.T) {
	tests := []struct {
		name string
		gen  generator
	}{
		{"api error", &stubGenerator{err: errors.New("quota exceeded")}},
		{"unparseable response", &stubGenerator{responses: []string{"no idea"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLabeler(tt.gen)

			category, source, err := l.Label(context.Background(), "makan siang di warteg")
			require.NoError(t, err)
			assert.Equal(t, models.CategoryFoodBeverage, category)
			assert.Equal(t, SourceKeyword, source)
		})
	}
}

func TestRunWritesLabeledCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw.csv")
	output := filepath.Join(dir, "labeled.csv")

	raw := "description\nmakan siang di warteg\n\nnaik gojek ke stasiun\nxyzzy nothing here\n"
	require.NoError(t, os.WriteFile(input, []byte(raw), 0o600))

	// First response labels the warteg row; the other two responses are
	// unusable so the keyword path decides.
	gen := &stubGenerator{responses: []string{
		"Category: Makanan & Minuman",
		"no idea",
		"no idea",
	}}
	l := newTestLabeler(gen)

	summary, err := l.Run(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total, "the blank row is skipped")
	assert.Equal(t, 1, summary.FromAI)
	assert.Equal(t, 2, summary.FromKeyword)
	assert.Equal(t, 1, summary.Unresolved, "the gibberish row lands on the catch-all")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "description,category", lines[0])
	assert.Contains(t, content, "makan siang di warteg,Makanan & Minuman")
	assert.Contains(t, content, "naik gojek ke stasiun,Transportasi")
	assert.Contains(t, content, "xyzzy nothing here,Lainnya")
}

func TestRunMissingInput(t *testing.T) {
	l := newTestLabeler(&stubGenerator{})
	_, err := l.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "", "gemini-2.0-flash", nil, logging.NewNop())
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}
